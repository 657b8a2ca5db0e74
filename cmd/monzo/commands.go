package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bquirin/MonzoAPIWrapper/client"
	"github.com/bquirin/MonzoAPIWrapper/internal/window"
)

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show information about the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "whoami", func(ctx context.Context, c *client.Client) (any, error) {
				return c.Whoami(ctx)
			})
		},
	}
}

func newAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "accounts", func(ctx context.Context, c *client.Client) (any, error) {
				return c.GetAccounts(ctx)
			})
		},
	}
}

func newAccountIDsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "account-ids",
		Short: "List account ids only",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "account-ids", func(ctx context.Context, c *client.Client) (any, error) {
				return c.GetAccountIDs(ctx)
			})
		},
	}
}

func newBalanceCmd() *cobra.Command {
	var accountID string
	var human bool

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Show the balance of an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !human {
				return run(cmd, "balance", func(ctx context.Context, c *client.Client) (any, error) {
					return c.GetBalance(ctx, accountID)
				})
			}
			return run(cmd, "balance", func(ctx context.Context, c *client.Client) (any, error) {
				b, err := c.Balance(ctx, accountID)
				if err != nil {
					return nil, err
				}
				return map[string]string{
					"balance":       client.FormatAmount(b.Balance, b.Currency),
					"total_balance": client.FormatAmount(b.TotalBalance, b.Currency),
					"spend_today":   client.FormatAmount(b.SpendToday, b.Currency),
				}, nil
			})
		},
	}

	cmd.Flags().StringVar(&accountID, "account-id", "", "Account ID (required)")
	cmd.Flags().BoolVar(&human, "human", false, "Print amounts in major units, e.g. GBP 12.34")
	_ = cmd.MarkFlagRequired("account-id")
	return cmd
}

func newTransactionsCmd() *cobra.Command {
	var accountID, since, before string
	var limit int

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List transactions of an account, merchants expanded",
		Long: "List transactions of an account.\n\n" +
			"--since and --before accept RFC 3339 timestamps or durations relative to now (7d, 36h, 2w).\n" +
			"--since also accepts a transaction id.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := nowFunc()
			s, err := window.Resolve(since, window.Since, now)
			if err != nil {
				return err
			}
			b, err := window.Resolve(before, window.Before, now)
			if err != nil {
				return err
			}
			if limit < 0 {
				return fmt.Errorf("--limit must be >= 0")
			}
			q := client.TransactionsQuery{Since: s, Before: b, Limit: limit}
			return run(cmd, "transactions", func(ctx context.Context, c *client.Client) (any, error) {
				return c.GetTransactions(ctx, accountID, q)
			})
		},
	}

	cmd.Flags().StringVar(&accountID, "account-id", "", "Account ID (required)")
	cmd.Flags().StringVar(&since, "since", "", "Lower bound: timestamp, duration or transaction id (optional)")
	cmd.Flags().StringVar(&before, "before", "", "Upper bound: timestamp or duration (optional)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of transactions, 0 for the API default")
	_ = cmd.MarkFlagRequired("account-id")
	return cmd
}

func newTransactionCmd() *cobra.Command {
	var txID string

	cmd := &cobra.Command{
		Use:   "transaction",
		Short: "Show a single transaction, merchant expanded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "transaction", func(ctx context.Context, c *client.Client) (any, error) {
				return c.GetTransaction(ctx, txID)
			})
		},
	}

	cmd.Flags().StringVar(&txID, "id", "", "Transaction ID (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newPotsCmd() *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "pots",
		Short: "List the pots of a current account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, "pots", func(ctx context.Context, c *client.Client) (any, error) {
				return c.GetPots(ctx, accountID)
			})
		},
	}

	cmd.Flags().StringVar(&accountID, "account-id", "", "Current account ID (required)")
	_ = cmd.MarkFlagRequired("account-id")
	return cmd
}
