package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"idvdemo/internal/engine/correlator"
	"idvdemo/internal/platform/models"
)

var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var server, adminToken string

	root := &cobra.Command{
		Use:           "webhookctl",
		Short:         "Inspect and manage buffered vendor callbacks on a running server",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&server, "server", "http://localhost:8080", "Server base URL")
	root.PersistentFlags().StringVar(&adminToken, "admin-token", os.Getenv("WEBHOOKCTL_ADMIN_TOKEN"), "Bearer token for clear")

	newAPI := func() *client { return newClient(server, adminToken) }

	root.AddCommand(listCmd(newAPI))
	root.AddCommand(clearCmd(newAPI))
	root.AddCommand(lookupCmd(newAPI))
	root.AddCommand(waitCmd(newAPI))
	return root
}

func listCmd(newAPI func() *client) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print buffered callbacks, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := newAPI().list(cmd.Context())
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No webhook responses buffered")
				return nil
			}
			for _, r := range records {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", r.Timestamp.Format(time.RFC3339), r.ID, string(r.Data))
			}
			return nil
		},
	}
}

func clearCmd(newAPI func() *client) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all buffered callbacks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := newAPI().clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Webhook buffer cleared")
			return nil
		},
	}
}

func lookupCmd(newAPI func() *client) *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Fetch the stored result for a session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := newAPI().lookup(cmd.Context(), token)
			if err != nil {
				return err
			}
			return printData(cmd, record)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Session token (JWT or raw job id)")
	cmd.MarkFlagRequired("token")
	return cmd
}

func waitCmd(newAPI func() *client) *cobra.Command {
	var (
		token    string
		attempts int
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Poll until the result for a session token arrives",
		RunE: func(cmd *cobra.Command, args []string) error {
			api := newAPI()
			record, err := correlator.Await(cmd.Context(), func(ctx context.Context) (*models.WebhookRecord, error) {
				return api.lookup(ctx, token)
			}, attempts, interval)
			if err != nil {
				return err
			}
			return printData(cmd, record)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Session token (JWT or raw job id)")
	cmd.Flags().IntVar(&attempts, "attempts", correlator.DefaultPollAttempts, "Maximum lookups before giving up")
	cmd.Flags().DurationVar(&interval, "interval", correlator.DefaultPollInterval, "Delay between lookups")
	cmd.MarkFlagRequired("token")
	return cmd
}

func printData(cmd *cobra.Command, record *models.WebhookRecord) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(record.Data)
}
