package cli

import (
	"context"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tcfw/didreg/internal/node"
	"github.com/tcfw/didreg/internal/utils/logging"
)

var (
	daemonCmd = &cobra.Command{
		Use:     "serve",
		Aliases: []string{"daemon"},
		RunE:    runDaemon,
		Short:   "run the registry daemon",
	}
)

func init() {
	daemonCmd.Flags().String("listen", "", "api listen address")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if l, _ := cmd.Flags().GetString("listen"); l != "" {
		cfg.API().Listen = l
	}

	n, err := node.NewNode(ctx, cfg,
		node.WithLogger(logging.Logger()),
		node.WithDefaultOptions(),
	)
	if err != nil {
		return errors.Wrap(err, "initing node")
	}

	errCh := make(chan error, 1)

	go func() {
		if err := n.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		n.Stop(ctx)
		return err
	case <-waitExit(ctx):
		return n.Stop(ctx)
	}
}
