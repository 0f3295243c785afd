package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"statline/internal/ingest"
)

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <path>...",
		Short: "Load stat-line fixtures into the database",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runIngest,
	}
	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	result, err := ingest.Run(ctx, db, args)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, "Ingestion complete.")
	fmt.Fprintf(os.Stdout, "  Teams upserted:   %d\n", result.TeamsUpserted)
	fmt.Fprintf(os.Stdout, "  Players upserted: %d\n", result.PlayersUpserted)
	fmt.Fprintf(os.Stdout, "  Lines inserted:   %d\n", result.LinesInserted)
	fmt.Fprintf(os.Stdout, "  Files skipped:    %d\n", result.FilesSkipped)

	if len(result.Errors) > 0 {
		fmt.Fprintf(os.Stdout, "\nErrors (%d):\n", len(result.Errors))
		for _, item := range result.Errors {
			fmt.Fprintf(os.Stdout, "  - %v\n", item)
		}
		return fmt.Errorf("ingestion completed with errors")
	}

	return nil
}
