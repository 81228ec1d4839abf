package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var addAddressCommand = &cli.Command{
	Name:      "add-address",
	Usage:     "Save an external address under a label.",
	ArgsUsage: "label address",
	Action:    addAddress,
}

func addAddress(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return cli.ShowCommandHelp(ctx, "add-address")
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	entry, err := s.AddAddress(ctx.Args().Get(0), ctx.Args().Get(1), resolveNetwork(ctx, s))
	if err != nil {
		return err
	}
	return printJSON(entry)
}

var listAddressesCommand = &cli.Command{
	Name:   "list-addresses",
	Usage:  "List saved address book entries.",
	Action: listAddresses,
}

func listAddresses(ctx *cli.Context) error {
	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	entries, err := s.ListAddresses()
	if err != nil {
		return err
	}
	return printJSON(entries)
}

var removeAddressCommand = &cli.Command{
	Name:      "remove-address",
	Usage:     "Remove an address book entry.",
	ArgsUsage: "label",
	Action:    removeAddress,
}

func removeAddress(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "remove-address")
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	if err := s.RemoveAddress(ctx.Args().First()); err != nil {
		return err
	}
	fmt.Printf("Removed %q from the address book\n", ctx.Args().First())
	return nil
}

var resolveCommand = &cli.Command{
	Name:      "resolve",
	Usage:     "Resolve a label, wallet name or address to a Hoosat address.",
	ArgsUsage: "identifier",
	Action:    resolveIdentifier,
}

func resolveIdentifier(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "resolve")
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	address, err := s.ResolveAddress(ctx.Args().First())
	if err != nil {
		return err
	}
	fmt.Println(address)
	return nil
}
