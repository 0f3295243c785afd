package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func conversationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conversation",
		Short: "Inspect stored conversations",
	}
	cmd.AddCommand(conversationListCmd())
	cmd.AddCommand(conversationShowCmd())
	return cmd
}

func conversationListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List conversations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			summaries, err := db.ListConversations(ctx)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Fprintln(os.Stdout, "No conversations.")
				return nil
			}
			for _, s := range summaries {
				fmt.Fprintf(os.Stdout, "%s  %d turns  updated %s\n",
					s.ID, s.TurnCount, s.UpdatedAt.UTC().Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}

func conversationShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a conversation's turns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			turns, err := db.Turns(ctx, args[0])
			if err != nil {
				return err
			}
			if len(turns) == 0 {
				return fmt.Errorf("conversation %s not found", args[0])
			}
			for _, turn := range turns {
				fmt.Fprintf(os.Stdout, "[%d] %s: %s\n", turn.Index, turn.Role, turn.Text)
				for _, entry := range turn.Clarifications {
					fmt.Fprintf(os.Stdout, "    awaiting %s clarification for %q\n", entry.EntityRole, entry.RawName)
				}
			}
			return nil
		},
	}
}
