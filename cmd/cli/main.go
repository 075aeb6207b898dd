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
		Use:   "atmledger-cli",
		Short: "ATM ledger CLI tool",
		Long:  `A command line interface for interacting with the ATM ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ATM ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	ledgerCmd.AddCommand(consistencyCmd)
	rootCmd.AddCommand(ledgerCmd)

	// Account commands
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	balanceCmd := &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show an account's balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showBalance(args[0])
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history <account-id>",
		Short: "Show an account's transaction history",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showHistory(args[0])
		},
	}

	accountCmd.AddCommand(balanceCmd)
	accountCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(accountCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func checkConsistency() {
	body, status := get("/api/v1/ledger/consistency")

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if status != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\n", status)
		if checked, ok := result["accounts_checked"].(float64); ok {
			fmt.Printf("Accounts checked: %d\n", int(checked))
		}
		if violations, ok := result["violations"].([]any); ok {
			for _, v := range violations {
				fmt.Printf("Violation: %v\n", v)
			}
		}
		os.Exit(1)
	}

	fmt.Printf("Consistency check PASSED\n")
	if checked, ok := result["accounts_checked"].(float64); ok {
		fmt.Printf("Accounts checked: %d\n", int(checked))
	}
}

func showBalance(accountID string) {
	body, status := get("/api/v1/accounts/" + accountID)
	if status != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var account map[string]any
	if err := json.Unmarshal(body, &account); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Account: %s\n", account["id"])
	fmt.Printf("Number:  %s\n", account["account_number"])
	fmt.Printf("Balance: %s\n", account["balance"])
	fmt.Printf("Status:  %s\n", account["status"])
}

func showHistory(accountID string) {
	body, status := get("/api/v1/accounts/" + accountID + "/transactions")
	if status != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", status, string(body))
		os.Exit(1)
	}

	var result struct {
		Transactions []map[string]any `json:"transactions"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	for _, txn := range result.Transactions {
		fmt.Printf("%s  %-12s %12s  %s\n", txn["id"], txn["kind"], txn["amount"], txn["created_at"])
	}
}

func get(path string) ([]byte, int) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return body, resp.StatusCode
}
