package cli

func regCommands() {
	//Keys
	keysCmd.AddCommand(keys_genCmd)
	keysCmd.AddCommand(keys_listCmd)
	keysCmd.AddCommand(keys_defaultCmd)

	//Registry
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(leaseCmd)

	//Root
	rootCmd.AddCommand(daemonCmd)
	rootCmd.AddCommand(keysCmd)
}
