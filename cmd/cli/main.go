package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bankgo-cli",
		Short: "BankGo CLI tool",
		Long:  `A command line interface for interacting with the BankGo API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the BankGo API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		healthCmd(),
		registerCmd(),
		createAccountCmd(),
		accountsCmd(),
		depositCmd(),
		withdrawCmd(),
		transferCmd(),
		historyCmd(),
	)

	return rootCmd
}

func healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check API health",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := doGet("/health")
			if err != nil {
				return err
			}
			fmt.Println(string(body))
			return nil
		},
	}
}

func registerCmd() *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user with a default bank account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postAndPrint("/user/create", map[string]string{
				"name":  name,
				"email": email,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "User name")
	cmd.Flags().StringVar(&email, "email", "", "User email")
	cmd.MarkFlagRequired("email")

	return cmd
}

func createAccountCmd() *cobra.Command {
	var name, email string

	cmd := &cobra.Command{
		Use:   "create-account",
		Short: "Open an additional bank account for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postAndPrint("/bank-account/create", map[string]string{
				"bankAccountName": name,
				"ownerEmail":      email,
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Bank account name")
	cmd.Flags().StringVar(&email, "email", "", "Owner email")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")

	return cmd
}

func accountsCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "accounts <userId>",
		Short: "List a user's bank accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/bank-account/" + args[0]
			if name != "" {
				path += "?name=" + name
			}
			body, err := doGet(path)
			if err != nil {
				return err
			}
			return printJSON(body)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Filter by account name")

	return cmd
}

func depositCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <bankAccountId> <amount>",
		Short: "Deposit into a bank account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid bank account id: %s", args[0])
			}
			return postAndPrint("/bank-account/deposit", map[string]any{
				"bankAccountId": accountID,
				"amount":        args[1],
			})
		},
	}
}

func withdrawCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "withdraw <bankAccountId> <amount>",
		Short: "Withdraw from a bank account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid bank account id: %s", args[0])
			}
			return postAndPrint("/bank-account/withdraw", map[string]any{
				"bankAccountId": accountID,
				"amount":        args[1],
			})
		},
	}
}

func transferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <fromAccountId> <toAccountId> <amount>",
		Short: "Transfer between two bank accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid from account id: %s", args[0])
			}
			toID, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid to account id: %s", args[1])
			}
			return postAndPrint("/bank-account/transfer", map[string]any{
				"fromAccountId": fromID,
				"toAccountId":   toID,
				"amount":        args[2],
			})
		},
	}
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <bankAccountId>",
		Short: "List a bank account's transactions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := doGet("/bank-account/transactions/" + args[0])
			if err != nil {
				return err
			}
			return printJSON(body)
		},
	}
}

func doGet(path string) ([]byte, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, body)
	}

	return body, nil
}

func postAndPrint(path string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed (status %d): %s", resp.StatusCode, body)
	}

	return printJSON(body)
}

func printJSON(body []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(body), "", "  "); err != nil {
		fmt.Println(string(body))
		return nil
	}
	fmt.Println(buf.String())
	return nil
}
