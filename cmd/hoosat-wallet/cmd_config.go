package main

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"
)

var configCommand = &cli.Command{
	Name:  "config",
	Usage: "Inspect and change agent configuration.",
	Subcommands: []*cli.Command{
		{
			Name:   "get",
			Usage:  "Print the current configuration.",
			Action: configGet,
		},
		{
			Name:      "set-network",
			Usage:     "Set the default network (mainnet or testnet).",
			ArgsUsage: "network",
			Action:    configSetNetwork,
		},
		{
			Name:      "set-dry-run",
			Usage:     "Toggle dry-run mode.",
			ArgsUsage: "true|false",
			Action:    configSetDryRun,
		},
		{
			Name:      "set-confirm",
			Usage:     "Toggle the transfer confirmation gate.",
			ArgsUsage: "true|false",
			Action:    configSetConfirm,
		},
		{
			Name:      "set-log",
			Usage:     "Toggle the transaction log.",
			ArgsUsage: "true|false",
			Action:    configSetLog,
		},
		{
			Name:      "auto-approve",
			Usage:     "Configure auto-approval for a wallet.",
			ArgsUsage: "wallet true|false",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "max-amount",
					Usage: "per-transfer cap in sompi, empty keeps the global default",
				},
			},
			Action: configAutoApprove,
		},
		{
			Name:      "auto-approve-global",
			Usage:     "Toggle the global auto-approve switch.",
			ArgsUsage: "true|false",
			Action:    configAutoApproveGlobal,
		},
	},
}

func configGet(ctx *cli.Context) error {
	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	return printJSON(s.Config())
}

func configSetNetwork(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowSubcommandHelp(ctx)
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	if err := s.SetDefaultNetwork(ctx.Args().First()); err != nil {
		return err
	}
	fmt.Printf("Default network set to %s\n", ctx.Args().First())
	return nil
}

func configSetDryRun(ctx *cli.Context) error {
	enabled, err := boolArg(ctx)
	if err != nil {
		return err
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	if err := s.SetDryRun(enabled); err != nil {
		return err
	}
	fmt.Printf("Dry-run mode: %v\n", enabled)
	return nil
}

func configSetConfirm(ctx *cli.Context) error {
	enabled, err := boolArg(ctx)
	if err != nil {
		return err
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	if err := s.SetConfirmTransactions(enabled); err != nil {
		return err
	}
	fmt.Printf("Confirm transactions: %v\n", enabled)
	return nil
}

func configSetLog(ctx *cli.Context) error {
	enabled, err := boolArg(ctx)
	if err != nil {
		return err
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	if err := s.SetLogTransactions(enabled); err != nil {
		return err
	}
	fmt.Printf("Transaction log: %v\n", enabled)
	return nil
}

func configAutoApprove(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return cli.ShowSubcommandHelp(ctx)
	}

	enabled, err := strconv.ParseBool(ctx.Args().Get(1))
	if err != nil {
		return fmt.Errorf("expected true or false, got %q", ctx.Args().Get(1))
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	if err := s.SetAutoApprove(ctx.Args().Get(0), ctx.String("max-amount"), enabled); err != nil {
		return err
	}
	fmt.Printf("Auto-approve for %q: %v\n", ctx.Args().Get(0), enabled)
	return nil
}

func configAutoApproveGlobal(ctx *cli.Context) error {
	enabled, err := boolArg(ctx)
	if err != nil {
		return err
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	if err := s.SetAutoApproveEnabled(enabled); err != nil {
		return err
	}
	fmt.Printf("Global auto-approve: %v\n", enabled)
	return nil
}

func boolArg(ctx *cli.Context) (bool, error) {
	if ctx.NArg() != 1 {
		cli.ShowSubcommandHelp(ctx)
		return false, fmt.Errorf("expected exactly one argument")
	}
	enabled, err := strconv.ParseBool(ctx.Args().First())
	if err != nil {
		return false, fmt.Errorf("expected true or false, got %q", ctx.Args().First())
	}
	return enabled, nil
}
