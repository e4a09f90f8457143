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
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledger-cli",
		Short: "Ledger operations CLI",
		Long:  `A command line interface for the ledger service's operational endpoints.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(auditCmd())
	rootCmd.AddCommand(accrueCmd())
	rootCmd.AddCommand(disputesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func auditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Balance audit operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Reconcile every account against its entry history",
		Run: func(cmd *cobra.Command, args []string) {
			status, body := doRequest(http.MethodPost, "/api/v1/ledger/audit", nil)
			if status == http.StatusConflict {
				fmt.Println("Audit FAILED: balance mismatches found")
			} else if status == http.StatusOK {
				fmt.Println("Audit PASSED")
			} else {
				fmt.Printf("Audit error (status %d)\n", status)
				printRaw(body)
				os.Exit(1)
			}
			printRaw(body)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "latest",
		Short: "Show the most recent audit report",
		Run: func(cmd *cobra.Command, args []string) {
			status, body := doRequest(http.MethodGet, "/api/v1/ledger/audit", nil)
			if status != http.StatusOK {
				fmt.Printf("No report available (status %d)\n", status)
				os.Exit(1)
			}
			printRaw(body)
		},
	})

	return cmd
}

func accrueCmd() *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "accrue",
		Short: "Run interest accrual for a billing period",
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]string{"period": period}
			status, body := doRequest(http.MethodPost, "/api/v1/ledger/accruals", payload)
			if status != http.StatusOK {
				fmt.Printf("Accrual failed (status %d)\n", status)
				printRaw(body)
				os.Exit(1)
			}
			printRaw(body)
		},
	}

	cmd.Flags().StringVar(&period, "period", "", "Billing period, e.g. 2026-08")
	cmd.MarkFlagRequired("period")

	return cmd
}

func disputesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disputes",
		Short: "Dispute queue operations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List pending disputes",
		Run: func(cmd *cobra.Command, args []string) {
			status, body := doRequest(http.MethodGet, "/api/v1/disputes/", nil)
			if status != http.StatusOK {
				fmt.Printf("Listing failed (status %d)\n", status)
				os.Exit(1)
			}
			printRaw(body)
		},
	})

	var actorID, outcome, resolution string
	resolveCmd := &cobra.Command{
		Use:   "resolve [dispute-id]",
		Short: "Resolve a pending dispute",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			payload := map[string]string{
				"actor_id":   actorID,
				"outcome":    outcome,
				"resolution": resolution,
			}
			status, body := doRequest(http.MethodPost, "/api/v1/disputes/"+args[0]+"/resolve", payload)
			if status != http.StatusOK {
				fmt.Printf("Resolution failed (status %d)\n", status)
				printRaw(body)
				os.Exit(1)
			}
			printRaw(body)
		},
	}
	resolveCmd.Flags().StringVar(&actorID, "actor", "", "Resolving operator ID")
	resolveCmd.Flags().StringVar(&outcome, "outcome", "RESOLVED", "Outcome: RESOLVED or REJECTED")
	resolveCmd.Flags().StringVar(&resolution, "resolution", "", "Resolution text")
	resolveCmd.MarkFlagRequired("actor")
	resolveCmd.MarkFlagRequired("resolution")
	cmd.AddCommand(resolveCmd)

	return cmd
}

func doRequest(method, path string, payload any) (int, []byte) {
	client := &http.Client{Timeout: timeout}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
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
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body
}

// printRaw pretty-prints a JSON body, falling back to raw output.
func printRaw(body []byte) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, body, "", "  "); err != nil {
		fmt.Println(string(body))
		return
	}
	fmt.Println(buf.String())
}
