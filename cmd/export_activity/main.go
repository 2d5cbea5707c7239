//go:build tools
// +build tools

package main

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
	"github/fluxshare/go-fluxshare/internal/activity"
	"github/fluxshare/go-fluxshare/internal/ledger"
)

func main() {
	var (
		sender = flag.String("sender", "", "Address whose activity is exported")
		limit  = flag.Int("limit", activity.MaxListLimit, "Maximum number of entries")
	)
	flag.Parse()

	if *sender == "" {
		fmt.Println("Error: sender is required")
		flag.Usage()
		os.Exit(1)
	}

	address, err := ledger.NormalizeAddress(*sender)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	dbURL := mustDatabaseURL()
	ctx := context.Background()

	// Connect to database
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	entries, err := activity.NewPostgresStore(db).ListBySender(ctx, address, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing activity: %v\n", err)
		os.Exit(1)
	}

	w := csv.NewWriter(os.Stdout)
	_ = w.Write([]string{"id", "created_at", "kind", "tx_digest", "metadata"})

	for _, e := range entries {
		metadata, err := json.Marshal(e.Metadata)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding metadata of entry %d: %v\n", e.ID, err)
			os.Exit(1)
		}

		_ = w.Write([]string{
			strconv.FormatInt(e.ID, 10),
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.Kind,
			e.TxDigest,
			string(metadata),
		})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Exported %d entries for %s\n", len(entries), address)
}

func mustDatabaseURL() string {
	if val := os.Getenv("DATABASE_URL"); val != "" {
		return val
	}
	fmt.Fprintln(os.Stderr, "Error: DATABASE_URL environment variable is required")
	os.Exit(1)
	return ""
}
