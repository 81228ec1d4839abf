package main

import (
	"encoding/json"
	"fmt"
	"os"

	"haw/internal/client"
	"haw/internal/config"
	"haw/internal/logger"
	"haw/internal/wallet"

	"github.com/urfave/cli/v2"
)

const (
	walletDirFlag = "wallet-dir"
	apiURLFlag    = "api-url"
	networkFlag   = "network"
	passwordFlag  = "password"
)

func main() {
	app := &cli.App{
		Name:  "hoosat-wallet",
		Usage: "encrypted Hoosat wallet manager for agents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    walletDirFlag,
				Aliases: []string{"d"},
				Usage:   "wallet directory (default ~/.hoosat-wallets)",
				EnvVars: []string{"HOOSAT_WALLET_DIR"},
			},
			&cli.StringFlag{
				Name:    apiURLFlag,
				Usage:   "REST proxy base URL",
				EnvVars: []string{"HOOSAT_API_URL"},
				Value:   client.DefaultAPIURL,
			},
			&cli.StringFlag{
				Name:    networkFlag,
				Aliases: []string{"n"},
				Usage:   "network (mainnet or testnet), overrides the configured default",
			},
			&cli.StringFlag{
				Name:    passwordFlag,
				Aliases: []string{"p"},
				Usage:   "vault password; prefer " + config.SessionEnvVar + " or the prompt",
			},
		},
		Commands: []*cli.Command{
			initCommand,
			createCommand,
			importCommand,
			listCommand,
			infoCommand,
			exportCommand,
			deleteCommand,
			passwdCommand,
			addAddressCommand,
			listAddressesCommand,
			removeAddressCommand,
			resolveCommand,
			balanceCommand,
			utxosCommand,
			transferCommand,
			sendAllCommand,
			consolidateCommand,
			submitCommand,
			statusCommand,
			qrCommand,
			historyCommand,
			generateCommand,
			configCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "[hoosat-wallet]", err)
		os.Exit(1)
	}
}

func walletDir(ctx *cli.Context) string {
	if dir := ctx.String(walletDirFlag); dir != "" {
		return dir
	}
	return config.DefaultWalletDir()
}

// newStore opens the wallet directory without touching the vault. Used by
// commands that only read config or the address book after unlock.
func newStore(ctx *cli.Context) (*wallet.Store, error) {
	log := logger.New("warn", true)
	return wallet.NewStore(walletDir(ctx), log)
}

// openStore opens the wallet directory and unlocks the vault, prompting for
// the password unless HOOSAT_AGENT_PASSWORD is set.
func openStore(ctx *cli.Context) (*wallet.Store, error) {
	s, err := newStore(ctx)
	if err != nil {
		return nil, err
	}
	if !s.Initialized() {
		return nil, fmt.Errorf("wallet store not initialized, run 'hoosat-wallet init' first")
	}

	password := []byte(ctx.String(passwordFlag))
	if len(password) == 0 {
		password, err = s.Session().Password()
	}
	if err != nil || len(password) == 0 {
		password, err = config.PromptForPassword("Password: ")
		if err != nil {
			return nil, err
		}
	}
	defer clear(password)

	if err := s.Unlock(password); err != nil {
		return nil, err
	}
	return s, nil
}

func newClient(ctx *cli.Context, s *wallet.Store) *client.HoosatClient {
	url := ctx.String(apiURLFlag)
	if url == client.DefaultAPIURL && s != nil {
		url = s.APIEndpoint(resolveNetwork(ctx, s))
	}
	return client.NewHoosatClient(url)
}

func resolveNetwork(ctx *cli.Context, s *wallet.Store) string {
	if n := ctx.String(networkFlag); n != "" {
		return n
	}
	if s != nil {
		return s.DefaultNetwork()
	}
	return ""
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
