package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"

	"haw/agent"
	"haw/internal/common"
	"haw/internal/logger"
	"haw/internal/model"

	"github.com/skip2/go-qrcode"
	"github.com/urfave/cli/v2"
)

var balanceCommand = &cli.Command{
	Name:      "balance",
	Usage:     "Show a wallet's confirmed balance.",
	ArgsUsage: "name",
	Action:    walletBalance,
}

func walletBalance(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "balance")
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	exec := agent.NewExecutor(s, newClient(ctx, s), logger.New("warn", true))
	balance, err := exec.Balance(ctx.Context, ctx.Args().First())
	if err != nil {
		return err
	}
	return printJSON(map[string]string{
		"wallet":  ctx.Args().First(),
		"balance": fmt.Sprintf("%d", balance),
		"htn":     common.SompiToHTN(balance),
	})
}

var utxosCommand = &cli.Command{
	Name:      "utxos",
	Usage:     "List a wallet's unspent outputs.",
	ArgsUsage: "name",
	Action:    walletUTXOs,
}

func walletUTXOs(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "utxos")
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	exec := agent.NewExecutor(s, newClient(ctx, s), logger.New("warn", true))
	utxos, err := exec.UTXOs(ctx.Context, ctx.Args().First())
	if err != nil {
		return err
	}
	return printJSON(utxos)
}

var transferCommand = &cli.Command{
	Name:      "transfer",
	Usage:     "Build an unsigned transfer. Recipient may be a wallet name, label or address.",
	ArgsUsage: "from to amount-htn",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "skip the confirmation gate for this transfer",
		},
	},
	Action: transfer,
}

func transfer(ctx *cli.Context) error {
	if ctx.NArg() != 3 {
		return cli.ShowCommandHelp(ctx, "transfer")
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	var confirm *bool
	if ctx.Bool("yes") {
		skip := false
		confirm = &skip
	}

	exec := agent.NewExecutor(s, newClient(ctx, s), logger.New("warn", true))
	result := exec.Transfer(ctx.Context, agent.TransferRequest{
		FromWallet: ctx.Args().Get(0),
		To:         ctx.Args().Get(1),
		AmountHTN:  ctx.Args().Get(2),
		Confirm:    confirm,
	})
	return printResult(result)
}

var sendAllCommand = &cli.Command{
	Name:      "send-all",
	Usage:     "Build an unsigned transfer of the whole balance minus fee.",
	ArgsUsage: "from to",
	Action:    sendAll,
}

func sendAll(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return cli.ShowCommandHelp(ctx, "send-all")
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	exec := agent.NewExecutor(s, newClient(ctx, s), logger.New("warn", true))
	result := exec.SendAll(ctx.Context, ctx.Args().Get(0), ctx.Args().Get(1))
	return printResult(result)
}

var consolidateCommand = &cli.Command{
	Name:      "consolidate",
	Usage:     "Sweep a wallet's UTXOs into one output when they exceed the threshold.",
	ArgsUsage: "name",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "max-utxos",
			Usage: "consolidate only above this UTXO count",
			Value: agent.DefaultConsolidateThreshold,
		},
	},
	Action: consolidate,
}

func consolidate(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "consolidate")
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	exec := agent.NewExecutor(s, newClient(ctx, s), logger.New("warn", true))
	result := exec.Consolidate(ctx.Context, ctx.Args().First(), ctx.Int("max-utxos"))
	return printResult(result)
}

var submitCommand = &cli.Command{
	Name:      "submit",
	Usage:     "Submit an externally signed transaction from a JSON file.",
	ArgsUsage: "transaction.json",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "wallet",
			Usage: "wallet name for the transaction log",
		},
		&cli.StringFlag{
			Name:  "recipient",
			Usage: "recipient for the transaction log",
		},
	},
	Action: submitTransaction,
}

func submitTransaction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "submit")
	}

	fileData, err := os.ReadFile(ctx.Args().First())
	if err != nil {
		return err
	}

	var tx model.RPCTransaction
	if err := json.Unmarshal(fileData, &tx); err != nil {
		return fmt.Errorf("failed to parse transaction: %w", err)
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	exec := agent.NewExecutor(s, newClient(ctx, s), logger.New("warn", true))
	txID, err := exec.Submit(ctx.Context, &tx, ctx.String("wallet"), ctx.String("recipient"))
	if err != nil {
		return err
	}
	fmt.Println(txID)
	return nil
}

var statusCommand = &cli.Command{
	Name:      "status",
	Usage:     "Show the acceptance status of a transaction.",
	ArgsUsage: "txid",
	Action:    transactionStatus,
}

func transactionStatus(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "status")
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	exec := agent.NewExecutor(s, newClient(ctx, s), logger.New("warn", true))
	status, err := exec.Status(ctx.Context, ctx.Args().First())
	if err != nil {
		return err
	}
	return printJSON(status)
}

var qrCommand = &cli.Command{
	Name:      "qr",
	Usage:     "Write a wallet address QR code as a PNG, or print it base64.",
	ArgsUsage: "name",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "PNG output path; prints base64 to stdout when omitted",
		},
	},
	Action: addressQR,
}

func addressQR(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.ShowCommandHelp(ctx, "qr")
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	stored, err := s.GetWallet(ctx.Args().First())
	if err != nil {
		return err
	}

	png, err := qrcode.Encode(stored.Address, qrcode.Medium, 256)
	if err != nil {
		return err
	}

	if out := ctx.String("output"); out != "" {
		if err := os.WriteFile(out, png, 0644); err != nil {
			return err
		}
		fmt.Printf("QR code for %s written to %s\n", stored.Address, out)
		return nil
	}
	fmt.Println(base64.StdEncoding.EncodeToString(png))
	return nil
}

var historyCommand = &cli.Command{
	Name:  "history",
	Usage: "Show logged transfers, newest last.",
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:  "limit",
			Usage: "only the most recent N entries",
		},
	},
	Action: transactionHistory,
}

func transactionHistory(ctx *cli.Context) error {
	s, err := openStore(ctx)
	if err != nil {
		return err
	}

	entries, err := s.TransactionHistory(ctx.Int("limit"))
	if err != nil {
		return err
	}
	return printJSON(entries)
}

// printResult prints a Result and exits non-zero on failure so scripts can
// branch on it.
func printResult(result *agent.Result) error {
	if err := printJSON(result); err != nil {
		return err
	}
	if !result.Success {
		return cli.Exit("", 1)
	}
	return nil
}
