package cli

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tcfw/didreg/internal/config"
)

var (
	rootCmd = &cobra.Command{
		Use:               "didreg",
		Short:             "On-ledger identity registry",
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}

	cfg     *config.Config
	cfgFile string

	regOnce sync.Once
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.didreg/didreg.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase verbosity")
	rootCmd.PersistentFlags().String("endpoint", "", "daemon api endpoint")
	rootCmd.PersistentFlags().String("keystore", "", "path to the local key file")

	viper.BindPFlag(config.Cfg_verbose, rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag(config.Cfg_api_endpoint, rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag(config.Cfg_keystore_path, rootCmd.PersistentFlags().Lookup("keystore"))
}

func Execute() error {
	regOnce.Do(regCommands)

	return rootCmd.Execute()
}

func loadConfig(cmd *cobra.Command, args []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	c, err := config.GetConfig()
	if err != nil {
		return err
	}
	cfg = c

	return nil
}

func waitExit(ctx context.Context) <-chan os.Signal {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	return sigs
}
