package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/tcfw/didreg/internal/api"
	"github.com/tcfw/didreg/internal/utils/logging"
	"github.com/tcfw/didreg/pkg/cryptography"
	"github.com/tcfw/didreg/pkg/tx"
)

const (
	cmdTimeout = 30 * time.Second
)

var (
	registerCmd = &cobra.Command{
		Use:   "register",
		Short: "Register the identity of the signing key",
		RunE:  runRegister,
	}

	verifyCmd = &cobra.Command{
		Use:   "verify [address]",
		Short: "Mark an identity as verified",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerify,
	}

	viewCmd = &cobra.Command{
		Use:   "view [address]",
		Short: "Show an identity record",
		Args:  cobra.ExactArgs(1),
		RunE:  runView,
	}

	countCmd = &cobra.Command{
		Use:   "count",
		Short: "Show the number of registered identities",
		RunE:  runCount,
	}

	leaseCmd = &cobra.Command{
		Use:   "lease",
		Short: "Show the storage lease of the registry",
		RunE:  runLease,
	}
)

func init() {
	for _, c := range []*cobra.Command{registerCmd, verifyCmd} {
		c.Flags().String("from", "", "address to sign as. blank defaults to the default key")
	}

	registerCmd.Flags().StringP("name", "n", "", "full name")
	registerCmd.Flags().String("id", "", "identity document number")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("id")
}

func newClient() (*api.Client, error) {
	c, err := api.NewClient(cfg.API().Endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "constructing client")
	}

	return c, nil
}

// signer resolves the --from key in the local keystore
func signer(cmd *cobra.Command) (cryptography.PrivateKey, string, error) {
	from, _ := cmd.Flags().GetString("from")
	if from == "" {
		from = cfg.Keystore().Default
	}

	ks, err := openKeystore()
	if err != nil {
		return nil, "", err
	}

	k, addr, err := ks.Default(from)
	if err != nil {
		return nil, "", errors.Wrap(err, "finding signing key")
	}

	return k, addr, nil
}

func invokeSigned(cmd *cobra.Command, op tx.Op, args tx.Args) error {
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	k, addr, err := signer(cmd)
	if err != nil {
		return err
	}

	args.Caller = addr

	t := tx.New(op, args)
	if err := t.Sign(k); err != nil {
		return errors.Wrap(err, "signing tx")
	}

	c, err := newClient()
	if err != nil {
		return err
	}

	logging.WithField("op", op).WithField("caller", addr).Debug("submitting tx")

	res, err := c.Invoke(ctx, t)
	if err != nil {
		return err
	}

	return printJSON(cmd, res)
}

func runRegister(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	id, _ := cmd.Flags().GetString("id")

	return invokeSigned(cmd, tx.OpRegister, tx.Args{FullName: name, IDNumber: id})
}

func runVerify(cmd *cobra.Command, args []string) error {
	return invokeSigned(cmd, tx.OpVerify, tx.Args{Target: args[0]})
}

func runView(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	c, err := newClient()
	if err != nil {
		return err
	}

	res, err := c.View(ctx, args[0])
	if err != nil {
		return errors.Wrap(err, "viewing identity")
	}

	return printJSON(cmd, res.Record)
}

func runCount(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	c, err := newClient()
	if err != nil {
		return err
	}

	n, err := c.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "fetching count")
	}

	fmt.Fprintln(cmd.OutOrStdout(), n)

	return nil
}

func runLease(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cmdTimeout)
	defer cancel()

	c, err := newClient()
	if err != nil {
		return err
	}

	l, err := c.Lease(ctx)
	if err != nil {
		return errors.Wrap(err, "fetching lease")
	}

	return printJSON(cmd, l)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	s, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", s)

	return nil
}
