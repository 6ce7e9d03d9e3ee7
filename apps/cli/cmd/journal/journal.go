package journal

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zenGate-Global/palmyra-idcheck/platform/go/persistence"
)

// Command groups validation journal maintenance helpers.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Validation journal (bootstrap, list)",
	}

	cmd.PersistentFlags().String("database-url", "", "PostgreSQL connection string")
	_ = cmd.MarkPersistentFlagRequired("database-url")

	cmd.AddCommand(bootstrapCommand())
	cmd.AddCommand(listCommand())
	return cmd
}

func bootstrapCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the journal table and indexes (idempotent)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			databaseURL, err := cmd.Flags().GetString("database-url")
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := persistence.NewPool(ctx, persistence.PoolConfig{ConnString: databaseURL})
			if err != nil {
				return fmt.Errorf("init pool: %w", err)
			}
			defer persistence.ClosePool(pool)

			if err := persistence.Bootstrap(ctx, pool); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is ready\n", persistence.ValidationEventsTable)
			return nil
		},
	}
}

func listCommand() *cobra.Command {
	var (
		kind     string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal events, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			databaseURL, err := cmd.Flags().GetString("database-url")
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := persistence.NewPool(ctx, persistence.PoolConfig{ConnString: databaseURL})
			if err != nil {
				return fmt.Errorf("init pool: %w", err)
			}
			defer persistence.ClosePool(pool)

			store, err := persistence.NewValidationEventStore(ctx, pool)
			if err != nil {
				return err
			}

			params := persistence.ListValidationEventsParams{Page: page, PageSize: pageSize}
			if k := strings.TrimSpace(kind); k != "" {
				params.Kind = &k
			}

			result, err := store.ListEvents(ctx, params)
			if err != nil {
				return fmt.Errorf("list journal events: %w", err)
			}

			if len(result.Events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No journal events found.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKIND\tREASON\tCALLER\tCREATED_AT")
			for _, e := range result.Events {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.EventID, e.Kind, e.Reason, e.Caller, e.CreatedAt.UTC().Format(time.RFC3339))
			}
			fmt.Fprintf(tw, "\n%d of %d events\n", len(result.Events), result.TotalItems)
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Only events of this kind")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "Events per page (max 100)")
	return cmd
}
