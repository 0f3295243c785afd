package main

import (
	"context"

	"github.com/spf13/cobra"

	"statline/internal/convo"
	"statline/internal/extract"
	"statline/internal/mcp"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
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
	server := mcp.NewServer(db, session, aliases, version)
	return server.Run(ctx, &sdk.StdioTransport{})
}
