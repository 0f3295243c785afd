package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"statline/internal/convo"
	"statline/internal/extract"
)

func askCmd() *cobra.Command {
	var conversationID string
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a stats question",
		Long: `Ask a stats question. Ambiguous names come back as a clarification
question; answer it with "ask --conversation <id> <reply>".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(conversationID, strings.Join(args, " "))
		},
	}
	cmd.Flags().StringVar(&conversationID, "conversation", "", "Continue an existing conversation")
	return cmd
}

func runAsk(conversationID, question string) error {
	ctx := context.Background()

	cfg, aliases, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	if err := db.EnsureSchema(ctx); err != nil {
		return err
	}

	session := convo.NewSession(db, extract.NewRuleExtractor(aliases), aliases)
	exchange, err := session.Ask(ctx, conversationID, question)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, exchange.Reply)
	if exchange.AwaitingReply {
		fmt.Fprintf(os.Stdout, "\nReply with: statline ask --conversation %s <answer>\n", exchange.ConversationID)
	} else if conversationID == "" {
		fmt.Fprintf(os.Stdout, "\nConversation: %s\n", exchange.ConversationID)
	}
	return nil
}
