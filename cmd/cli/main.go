package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bullion-cli",
		Short: "Bullion ledger CLI tool",
		Long:  `A command line interface for inspecting the bullion ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the bullion ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(partyCmd(), registryCmd(), reconcileCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func partyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "party",
		Short: "Party operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a party with its balance snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchAndPrint("/api/v1/parties/" + args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "entries <id>",
		Short: "List ledger entries for a party",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := getJSON("/api/v1/parties/" + args[0] + "/entries")
			if err != nil {
				return err
			}
			return printEntryTable(body)
		},
	})

	return cmd
}

func registryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Registry batch operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "batch <transaction-id>",
		Short: "Show all entries of one posting batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchAndPrint("/api/v1/registry/batches/" + args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "sums <transaction-id>",
		Short: "Show debit/credit sums per entry type for a batch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchAndPrint("/api/v1/registry/batches/" + args[0] + "/sums")
		},
	})

	return cmd
}

func reconcileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconciliation checks",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "batch <transaction-id>",
		Short: "Check that one posting batch balances",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected exactly one transaction id")
			}
			return fetchAndPrint("/api/v1/reconciliation/batches/" + args[0])
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "totals",
		Short: "Check ledger-wide debit/credit totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return fetchAndPrint("/api/v1/reconciliation/totals")
		},
	})

	return cmd
}

func fetchAndPrint(path string) error {
	body, err := getJSON(path)
	if err != nil {
		return err
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	printJSON(result)
	return nil
}

func getJSON(path string) ([]byte, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to format output: %v\n", err)
		return
	}
	fmt.Println(string(out))
}

type entryRow struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
	Description string `json:"description"`
}

func printEntryTable(body []byte) error {
	var entries []entryRow
	if err := json.Unmarshal(body, &entries); err != nil {
		return fmt.Errorf("failed to parse entries: %w", err)
	}

	fmt.Printf("%-28s %-22s %12s %12s  %s\n", "ID", "TYPE", "DEBIT", "CREDIT", "DESCRIPTION")
	for _, e := range entries {
		fmt.Printf("%-28s %-22s %12s %12s  %s\n", e.ID, e.Type, e.Debit, e.Credit, truncate(e.Description, 40))
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
