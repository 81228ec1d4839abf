package main

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"haw/internal/config"
	"haw/internal/hoosat"

	"github.com/urfave/cli/v2"
)

var initCommand = &cli.Command{
	Name:   "init",
	Usage:  "Create the encrypted wallet store.",
	Action: initStore,
}

func initStore(ctx *cli.Context) error {
	s, err := newStore(ctx)
	if err != nil {
		return err
	}
	if s.Initialized() {
		return fmt.Errorf("wallet store already initialized at %s", s.Dir())
	}

	password, err := config.PromptForPassword("New password: ")
	if err != nil {
		return err
	}
	defer clear(password)

	confirm, err := config.PromptForPassword("Confirm password: ")
	if err != nil {
		return err
	}
	defer clear(confirm)

	if !bytes.Equal(password, confirm) {
		return fmt.Errorf("passwords do not match")
	}

	if err := s.Initialize(password); err != nil {
		return err
	}
	fmt.Printf("Wallet store initialized at %s\n", s.Dir())
	return nil
}

var createCommand = &cli.Command{
	Name:      "create",
	Usage:     "Generate a new wallet in the vault.",
	ArgsUsage: "name",
	Action:    createWallet,
}

func createWallet(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "create")
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	created, err := s.CreateWallet(ctx.Args().First(), resolveNetwork(ctx, s))
	if err != nil {
		return err
	}
	return printJSON(created.Info())
}

var importCommand = &cli.Command{
	Name:      "import",
	Usage:     "Import a private key (hex or WIF) into the vault.",
	ArgsUsage: "name private-key",
	Action:    importWallet,
}

func importWallet(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return cli.ShowCommandHelp(ctx, "import")
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	imported, err := s.ImportWallet(ctx.Args().Get(0), ctx.Args().Get(1), resolveNetwork(ctx, s))
	if err != nil {
		return err
	}
	return printJSON(imported.Info())
}

var listCommand = &cli.Command{
	Name:   "list",
	Usage:  "List stored wallets.",
	Action: listWallets,
}

func listWallets(ctx *cli.Context) error {
	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	wallets, err := s.ListWallets()
	if err != nil {
		return err
	}
	return printJSON(wallets)
}

var infoCommand = &cli.Command{
	Name:      "info",
	Usage:     "Show a wallet's address and metadata.",
	ArgsUsage: "name",
	Action:    walletInfo,
}

func walletInfo(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "info")
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	info, err := s.WalletInfo(ctx.Args().First())
	if err != nil {
		return err
	}
	return printJSON(info)
}

var exportCommand = &cli.Command{
	Name:      "export",
	Usage:     "Export a wallet's private key as hex and WIF. Handle with care.",
	ArgsUsage: "name",
	Action:    exportWallet,
}

func exportWallet(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "export")
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	exported, wif, err := s.ExportWallet(ctx.Args().First())
	if err != nil {
		return err
	}
	return printJSON(map[string]string{
		"name":       exported.Name,
		"address":    exported.Address,
		"network":    exported.Network,
		"privateKey": exported.PrivateKey,
		"wif":        wif,
	})
}

var deleteCommand = &cli.Command{
	Name:      "delete",
	Usage:     "Remove a wallet from the vault.",
	ArgsUsage: "name",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "yes",
			Usage: "skip the confirmation prompt",
		},
	},
	Action: deleteWallet,
}

func deleteWallet(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "delete")
	}
	name := ctx.Args().First()

	if !ctx.Bool("yes") {
		fmt.Printf("Delete wallet %q? The key is unrecoverable without an export. [y/N]: ", name)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	if err := s.DeleteWallet(name); err != nil {
		return err
	}
	fmt.Printf("Wallet %q deleted\n", name)
	return nil
}

var generateCommand = &cli.Command{
	Name:   "generate",
	Usage:  "Generate a keypair offline without storing it. Nothing is saved.",
	Action: generateKeyPair,
}

func generateKeyPair(ctx *cli.Context) error {
	network := ctx.String(networkFlag)
	if network == "" {
		network = hoosat.NetworkTestnet
	}

	privateKey, publicKey, err := hoosat.GenerateKeyPair()
	if err != nil {
		return err
	}
	defer clear(privateKey)

	address, err := hoosat.AddressFromPublicKey(publicKey, network)
	if err != nil {
		return err
	}
	wif, err := hoosat.EncodeWIF(privateKey, network, true)
	if err != nil {
		return err
	}

	return printJSON(map[string]string{
		"address":    address,
		"privateKey": hex.EncodeToString(privateKey),
		"wif":        wif,
		"network":    network,
	})
}

var passwdCommand = &cli.Command{
	Name:   "passwd",
	Usage:  "Change the vault password.",
	Action: changePassword,
}

func changePassword(ctx *cli.Context) error {
	s, err := newStore(ctx)
	if err != nil {
		return err
	}
	if !s.Initialized() {
		return fmt.Errorf("wallet store not initialized")
	}

	oldPassword, err := config.PromptForPassword("Current password: ")
	if err != nil {
		return err
	}
	defer clear(oldPassword)

	newPassword, err := config.PromptForPassword("New password: ")
	if err != nil {
		return err
	}
	defer clear(newPassword)

	confirm, err := config.PromptForPassword("Confirm new password: ")
	if err != nil {
		return err
	}
	defer clear(confirm)

	if !bytes.Equal(newPassword, confirm) {
		return fmt.Errorf("passwords do not match")
	}

	if err := s.ChangePassword(oldPassword, newPassword); err != nil {
		return err
	}
	fmt.Println("Password changed.")
	return nil
}
