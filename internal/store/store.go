package store

import (
	"context"
)

type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context) error

	// Candidate lookup. Matching is case-insensitive substring; ordering is
	// deterministic (name, then id) and preserved by callers.
	LookupCandidates(ctx context.Context, role EntityRole, name string) ([]Candidate, error)
	HasActivity(ctx context.Context, role EntityRole, entityID int64, period string) (bool, error)
	HasAnyActivity(ctx context.Context, role EntityRole, entityID int64) (bool, error)
	RecordedPeriods(ctx context.Context, role EntityRole, entityID int64) ([]string, error)

	GetEntity(ctx context.Context, role EntityRole, name string) (*Entity, error)
	SeasonTotals(ctx context.Context, role EntityRole, entityID int64, periods []string, metric string) ([]SeasonTotal, error)

	UpsertTeam(ctx context.Context, name string) (int64, error)
	UpsertPlayer(ctx context.Context, name string, teamID int64) (int64, error)
	InsertStatLine(ctx context.Context, playerID, teamID int64, line StatLine) error

	CreateConversation(ctx context.Context, id string) error
	AppendTurn(ctx context.Context, conversationID string, turn Turn) error
	Turns(ctx context.Context, conversationID string) ([]Turn, error)
	ListConversations(ctx context.Context) ([]ConversationSummary, error)

	ListNamesakes(ctx context.Context, role EntityRole) ([]NamesakeGroup, error)
	ListInactiveEntities(ctx context.Context, role EntityRole) ([]Entity, error)
	ListPeriodsOutsideRange(ctx context.Context, first, last string) ([]string, error)

	RunSQL(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}
