package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
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
		Use:   "gstbooks-cli",
		Short: "GSTBooks CLI tool",
		Long:  `A command line interface for interacting with the GSTBooks API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the GSTBooks API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(healthCmd())
	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(daybookCmd())
	rootCmd.AddCommand(trialBalanceCmd())
	rootCmd.AddCommand(outstandingCmd())
	rootCmd.AddCommand(cashFlowCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return getAndPrint("/ready", nil)
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the books balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			return checkBalanced()
		},
	}
}

func checkBalanced() error {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(baseURL + "/api/trial-balance?basis=transactions")
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("consistency check failed (status %d): %s", resp.StatusCode, truncate(string(body), 200))
	}

	var result struct {
		TotalDebit  json.Number `json:"totalDebit"`
		TotalCredit json.Number `json:"totalCredit"`
		Balanced    bool        `json:"balanced"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	if !result.Balanced {
		return fmt.Errorf("books are NOT balanced: debit %s, credit %s", result.TotalDebit, result.TotalCredit)
	}

	fmt.Printf("Books balanced: debit %s, credit %s\n", result.TotalDebit, result.TotalCredit)
	return nil
}

func daybookCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "daybook",
		Short: "Show the daybook for a date",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			if date != "" {
				params.Set("date", date)
			}
			return getAndPrint("/api/daybook", params)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date (YYYY-MM-DD), defaults to today")
	return cmd
}

func trialBalanceCmd() *cobra.Command {
	var basis string

	cmd := &cobra.Command{
		Use:   "trial-balance",
		Short: "Show the trial balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			if basis != "" {
				params.Set("basis", basis)
			}
			return getAndPrint("/api/trial-balance", params)
		},
	}

	cmd.Flags().StringVar(&basis, "basis", "", "Balance basis: opening or transactions")
	return cmd
}

func outstandingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outstanding [receivables|payables]",
		Short: "Show outstanding balances",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "receivables":
				return getAndPrint("/api/outstanding-receivables", nil)
			case "payables":
				return getAndPrint("/api/outstanding-payables", nil)
			default:
				return fmt.Errorf("unknown side %q: want receivables or payables", args[0])
			}
		},
	}
}

func cashFlowCmd() *cobra.Command {
	var year string

	cmd := &cobra.Command{
		Use:   "cash-flow",
		Short: "Show the month-wise cash flow for a financial year",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			params.Set("financialYear", year)
			return getAndPrint("/api/cash-flow", params)
		},
	}

	cmd.Flags().StringVar(&year, "year", "", "Financial year (e.g. 2024-25)")
	_ = cmd.MarkFlagRequired("year")
	return cmd
}

func getAndPrint(path string, params url.Values) error {
	client := &http.Client{Timeout: timeout}

	target := baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	resp, err := client.Get(target)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, truncate(string(body), 200))
	}

	var result any
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	printJSON(result)
	return nil
}

func printJSON(v any) {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to encode output: %v\n", err)
		return
	}
	fmt.Println(string(encoded))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
