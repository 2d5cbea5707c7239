//go:build tools
// +build tools

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github/fluxshare/go-fluxshare/internal/config"
	"github/fluxshare/go-fluxshare/internal/faucet"
)

func main() {
	var (
		address   = flag.String("address", "", "Address receiving the test tokens")
		faucetURL = flag.String("faucet", "", "Faucet base URL (default: FAUCET_BASE_URL)")
		requests  = flag.Int("requests", 0, "Number of faucet requests (default: FAUCET_REQUESTS_PER_CALL)")
	)
	flag.Parse()

	if *address == "" {
		fmt.Fprintf(os.Stderr, "Error: address is required\n")
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.DefaultServiceConfigFromEnv().Faucet
	if *faucetURL != "" {
		cfg.BaseURL = *faucetURL
	}
	if *requests > 0 {
		cfg.RequestsPerCall = *requests
	}

	client, err := faucet.NewClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating faucet client: %v\n", err)
		os.Exit(1)
	}

	res, err := client.Request(context.Background(), *address)
	if err != nil {
		if errors.Is(err, faucet.ErrRateLimited) {
			fmt.Fprintf(os.Stderr, "Faucet rate limit reached, try again later\n")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error requesting tokens: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Requested tokens for %s (%d request(s), last task %s)\n", res.Recipient, res.Requests, res.Task)
}
