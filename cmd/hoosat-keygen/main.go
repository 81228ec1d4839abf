// Offline address generator: creates keypairs and prints them without ever
// touching the vault or the network. Usage: hoosat-keygen -network testnet -count 3
package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"haw/internal/hoosat"
)

type generated struct {
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey"`
	WIF        string `json:"wif"`
	Network    string `json:"network"`
}

func main() {
	network := flag.String("network", hoosat.NetworkTestnet, "mainnet or testnet")
	count := flag.Int("count", 1, "number of keypairs to generate")
	validate := flag.String("validate", "", "validate an address instead of generating")
	format := flag.String("format", "text", "text or json")
	flag.Parse()

	if *validate != "" {
		info, err := hoosat.DecodeAddress(*validate)
		if err != nil {
			fmt.Fprintln(os.Stderr, "invalid:", err)
			os.Exit(1)
		}
		fmt.Printf("valid %s address, payload %s\n", info.Network, info.Payload)
		return
	}

	if _, err := hoosat.NetworkPrefix(*network); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	results := make([]generated, 0, *count)
	for i := 0; i < *count; i++ {
		privateKey, publicKey, err := hoosat.GenerateKeyPair()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		address, err := hoosat.AddressFromPublicKey(publicKey, *network)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		wif, err := hoosat.EncodeWIF(privateKey, *network, true)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		results = append(results, generated{
			Address:    address,
			PrivateKey: hex.EncodeToString(privateKey),
			WIF:        wif,
			Network:    *network,
		})
		clear(privateKey)
	}

	switch *format {
	case "json":
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Println(string(out))
	default:
		for _, r := range results {
			fmt.Printf("address:    %s\n", r.Address)
			fmt.Printf("privateKey: %s\n", r.PrivateKey)
			fmt.Printf("wif:        %s\n\n", r.WIF)
		}
	}
}
