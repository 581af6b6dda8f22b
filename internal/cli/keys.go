package cli

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tcfw/didreg/internal/keystore"
	"github.com/tcfw/didreg/pkg/cryptography"
)

var (
	keysCmd = &cobra.Command{
		Use:   "keys",
		Short: "Local signing key commands",
	}

	keys_genCmd = &cobra.Command{
		Use:   "gen",
		Short: "Generate a new signing key",
		RunE:  runKeysGen,
	}

	keys_listCmd = &cobra.Command{
		Use:   "list",
		Short: "List addresses of local keys",
		RunE:  runKeysList,
	}

	keys_defaultCmd = &cobra.Command{
		Use:   "default [address]",
		Short: "Set the default signing key",
		Args:  cobra.ExactArgs(1),
		RunE:  runKeysDefault,
	}
)

func init() {
	keys_genCmd.Flags().StringP("type", "t", string(cryptography.KeyTypeEd25519), "key type: ed25519, secp256k1 or bls12381")
}

func openKeystore() (*keystore.FileStore, error) {
	ks, err := keystore.NewFileStore(cfg.Keystore().Path)
	if err != nil {
		return nil, errors.Wrap(err, "opening keystore")
	}

	return ks, nil
}

func runKeysGen(cmd *cobra.Command, args []string) error {
	kt, _ := cmd.Flags().GetString("type")

	k, err := cryptography.GenerateKey(cryptography.KeyType(kt))
	if err != nil {
		return errors.Wrap(err, "generating key")
	}

	ks, err := openKeystore()
	if err != nil {
		return err
	}

	addr, err := ks.Add(k)
	if err != nil {
		return errors.Wrap(err, "storing key")
	}

	fmt.Fprintln(cmd.OutOrStdout(), addr)

	return nil
}

func runKeysList(cmd *cobra.Command, args []string) error {
	ks, err := openKeystore()
	if err != nil {
		return err
	}

	_, def, _ := ks.Default(cfg.Keystore().Default)

	for _, addr := range ks.List() {
		if addr == def {
			fmt.Fprintf(cmd.OutOrStdout(), "%s (default)\n", addr)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), addr)
		}
	}

	return nil
}

func runKeysDefault(cmd *cobra.Command, args []string) error {
	ks, err := openKeystore()
	if err != nil {
		return err
	}

	return ks.SetDefault(args[0])
}
