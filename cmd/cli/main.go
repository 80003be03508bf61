package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kaditech/saccoledger/internal/domain"
	"github.com/kaditech/saccoledger/internal/infrastructure/auth"
)

var (
	baseURL string
	timeout time.Duration
	token   string
	tenant  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "saccoledger-cli",
		Short: "SACCO ledger CLI tool",
		Long:  `A command line interface for interacting with the SACCO ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated deployments")
	rootCmd.PersistentFlags().StringVar(&tenant, "tenant", "", "Tenant ID sent when authentication is disabled")

	rootCmd.AddCommand(
		processCmd(),
		reverseCmd(),
		balanceCmd(),
		historyCmd(),
		ledgerCmd(),
		mintTokenCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func processCmd() *cobra.Command {
	var (
		txnType      string
		accountID    string
		counterparty string
		amount       string
		narration    string
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process a deposit, withdrawal or transfer",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]any{
				"type":       txnType,
				"account_id": accountID,
				"amount":     amount,
			}
			if counterparty != "" {
				payload["counterparty_id"] = counterparty
			}
			if narration != "" {
				payload["narration"] = narration
			}

			return doJSON(http.MethodPost, "/api/v1/transactions", payload, true)
		},
	}

	cmd.Flags().StringVar(&txnType, "type", "deposit", "Transaction type")
	cmd.Flags().StringVar(&accountID, "account", "", "Source account ID")
	cmd.Flags().StringVar(&counterparty, "to", "", "Destination account ID for transfers")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount")
	cmd.Flags().StringVar(&narration, "narration", "", "Free-text narration")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("amount")

	return cmd
}

func reverseCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "reverse <transaction-id>",
		Short: "Reverse a completed transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doJSON(http.MethodPost, "/api/v1/transactions/"+args[0]+"/reverse",
				map[string]any{"reason": reason}, true)
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reversal reason")
	cmd.MarkFlagRequired("reason")

	return cmd
}

func balanceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "balance <account-id>",
		Short: "Show an account's balance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return doJSON(http.MethodGet, "/api/v1/accounts/"+args[0]+"/balance", nil, false)
		},
	}
}

func historyCmd() *cobra.Command {
	var (
		limit   int
		txnType string
	)

	cmd := &cobra.Command{
		Use:   "history <account-id>",
		Short: "List an account's transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/accounts/%s/transactions?limit=%d", args[0], limit)
			if txnType != "" {
				path += "&type=" + txnType
			}
			return doJSON(http.MethodGet, path, nil, false)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	cmd.Flags().StringVar(&txnType, "type", "", "Filter by transaction type")

	return cmd
}

func ledgerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check that posted debits equal posted credits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return doJSON(http.MethodGet, "/api/v1/ledger/consistency", nil, false)
		},
	})

	return cmd
}

func mintTokenCmd() *cobra.Command {
	var (
		secret   string
		userID   string
		memberID string
		tenantID string
		role     string
		duration time.Duration
	)

	cmd := &cobra.Command{
		Use:   "mint-token",
		Short: "Mint a JWT for testing authenticated deployments",
		RunE: func(cmd *cobra.Command, args []string) error {
			manager := auth.NewJWTManager(secret, duration)
			signed, err := manager.Generate(domain.Actor{
				UserID:   userID,
				MemberID: memberID,
				TenantID: tenantID,
				Role:     domain.Role(role),
			})
			if err != nil {
				return err
			}

			fmt.Println(signed)
			return nil
		},
	}

	cmd.Flags().StringVar(&secret, "secret", "", "JWT signing secret")
	cmd.Flags().StringVar(&userID, "user", "", "User ID claim")
	cmd.Flags().StringVar(&memberID, "member", "", "Member ID claim, empty for staff")
	cmd.Flags().StringVar(&tenantID, "tenant-id", "", "Tenant ID claim")
	cmd.Flags().StringVar(&role, "role", string(domain.RoleStaff), "Role claim")
	cmd.Flags().DurationVar(&duration, "duration", 24*time.Hour, "Token lifetime")
	cmd.MarkFlagRequired("secret")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("tenant-id")

	return cmd
}

// doJSON performs a request against the API and pretty-prints the response.
// Mutating requests carry a fresh idempotency key.
func doJSON(method, path string, payload any, mutating bool) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if tenant != "" {
		req.Header.Set("X-Tenant-ID", tenant)
	}
	if mutating {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var pretty any
	if err := json.Unmarshal(data, &pretty); err != nil {
		fmt.Println(string(data))
	} else {
		printJSON(pretty)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(data))
}
