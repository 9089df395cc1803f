package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/peerpay/peerledger/internal/infrastructure/auth"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "peerledger-cli",
		Short: "PeerLedger CLI tool",
		Long:  `A command line interface for interacting with the PeerLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the PeerLedger API")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("PEERLEDGER_TOKEN"), "Bearer token for authenticated endpoints")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	balanceCmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the authenticated user's balance",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/account/balance", nil)
		},
	}

	var description string
	transferCmd := &cobra.Command{
		Use:   "transfer <recipient> <amount>",
		Short: "Transfer funds to another user",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			body := map[string]any{
				"to":     args[0],
				"amount": json.Number(args[1]),
			}
			if description != "" {
				body["description"] = description
			}
			doRequest(http.MethodPost, "/api/v1/account/transfer", body)
		},
	}
	transferCmd.Flags().StringVar(&description, "description", "", "Transfer description")

	var (
		page       int
		pageSize   int
		historyTyp string
	)
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List the authenticated user's transactions",
		Run: func(cmd *cobra.Command, args []string) {
			path := fmt.Sprintf("/api/v1/account/transactions?page=%d&pageSize=%d&type=%s", page, pageSize, historyTyp)
			doRequest(http.MethodGet, path, nil)
		},
	}
	historyCmd.Flags().IntVar(&page, "page", 1, "Page number")
	historyCmd.Flags().IntVar(&pageSize, "page-size", 10, "Entries per page")
	historyCmd.Flags().StringVar(&historyTyp, "type", "all", "Filter: all, sent or received")

	entryCmd := &cobra.Command{
		Use:   "entry <reference>",
		Short: "Show one transaction by reference",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/account/transactions/"+args[0], nil)
		},
	}

	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}
	ledgerCmd.AddCommand(&cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			doRequest(http.MethodGet, "/api/v1/internal/ledger/consistency", nil)
		},
	})

	var (
		tokenSecret string
		tokenTTL    time.Duration
	)
	tokenCmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Mint a token for local testing",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			manager := auth.NewJWTManager(tokenSecret, tokenTTL)
			signed, err := manager.Generate(args[0])
			if err != nil {
				fmt.Printf("Failed to mint token: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(signed)
		},
	}
	tokenCmd.Flags().StringVar(&tokenSecret, "secret", os.Getenv("JWT_SECRET"), "Signing secret")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")

	rootCmd.AddCommand(balanceCmd, transferCmd, historyCmd, entryCmd, ledgerCmd, tokenCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// doRequest performs one API call and pretty-prints the JSON response.
func doRequest(method, path string, body any) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			fmt.Printf("Failed to encode request: %v\n", err)
			os.Exit(1)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		fmt.Printf("Failed to build request: %v\n", err)
		os.Exit(1)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, respBody, "", "  "); err != nil {
		fmt.Println(string(respBody))
	} else {
		fmt.Println(pretty.String())
	}

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\n", resp.StatusCode)
		os.Exit(1)
	}
}
