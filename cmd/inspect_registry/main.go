//go:build tools
// +build tools

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github/fluxshare/go-fluxshare/internal/config"
	"github/fluxshare/go-fluxshare/internal/ledger"
	"github/fluxshare/go-fluxshare/internal/subscription"
)

func main() {
	var (
		registryID = flag.String("registry", "", "Object ID of the subscription registry")
		rpcURL     = flag.String("rpc", "", "RPC URL of the ledger node (default: LEDGER_RPC_URLS)")
		address    = flag.String("address", "", "Only show subscriptions of this address")
	)
	flag.Parse()

	if *registryID == "" {
		fmt.Println("Error: registry is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg := config.DefaultServiceConfigFromEnv()
	if *rpcURL != "" {
		cfg.Ledger.RPCURLs = []string{*rpcURL}
	}

	ctx := context.Background()

	// Connect to the ledger node
	client, err := ledger.NewClient(ctx, cfg.Ledger, nil)
	if err != nil {
		fmt.Printf("Error connecting to ledger: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	object, err := client.GetObject(ctx, *registryID)
	if err != nil {
		fmt.Printf("Error getting registry: %v\n", err)
		os.Exit(1)
	}

	registry, err := subscription.DecodeRegistry(object)
	if err != nil {
		fmt.Printf("Error decoding registry: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Registry: %s\n", registry.ID)
	fmt.Printf("Next plan ID: %d\n", registry.NextPlanID)
	fmt.Printf("Next subscription ID: %d\n", registry.NextSubscriptionID)
	fmt.Println()

	fmt.Printf("Plans (%d):\n", len(registry.Plans))
	for _, plan := range registry.Plans {
		state := "active"
		if !plan.Active {
			state = "inactive"
		}
		fmt.Printf("  #%d %s, %s every %s, %s, owner %s\n",
			plan.PlanID, plan.Name, ledger.FormatAmount(plan.Price), subscription.FormatPeriod(plan.PeriodSeconds), state, plan.Owner)
	}
	fmt.Println()

	var filter string
	if *address != "" {
		filter, err = ledger.NormalizeAddress(*address)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("Subscriptions:")
	for _, sub := range registry.Subscriptions {
		if filter != "" && sub.Subscriber != filter {
			continue
		}

		status := sub.StatusAt(time.Now(), cfg.Subscription.GracePeriod)
		fmt.Printf("  #%d plan #%d, subscriber %s, next payment %s, %s\n",
			sub.SubscriptionID, sub.PlanID, sub.Subscriber, sub.NextPaymentDue.UTC().Format(time.RFC3339), status)
	}
}
