package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"statline/internal/config"
	"statline/internal/convo"
	"statline/internal/store"
)

type Server struct {
	db      store.Store
	session *convo.Session
	aliases *config.Aliases
	mcp     *sdk.Server
}

func NewServer(db store.Store, session *convo.Session, aliases *config.Aliases, version string) *Server {
	if aliases == nil {
		aliases = config.DefaultAliases()
	}
	s := &Server{
		db:      db,
		session: session,
		aliases: aliases,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "statline",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
