package convo

import (
	"context"
	"fmt"
	"strings"

	"statline/internal/config"
	"statline/internal/resolve"
	"statline/internal/store"
)

// Session runs turns against the store and persists the conversation log.
// It is the one place answer text is assembled; the CLI and the MCP server
// both go through it.
type Session struct {
	db      store.Store
	orch    *resolve.Orchestrator
	aliases *config.Aliases
}

func NewSession(db store.Store, extractor resolve.Extractor, aliases *config.Aliases) *Session {
	if aliases == nil {
		aliases = config.DefaultAliases()
	}
	return &Session{
		db:      db,
		orch:    resolve.NewOrchestrator(db, extractor),
		aliases: aliases,
	}
}

// Exchange is the outcome of one user turn: the assistant's reply plus the
// raw resolution results for callers that want structure.
type Exchange struct {
	ConversationID string
	Reply          string
	Results        []resolve.ResolutionResult

	// AwaitingReply is true when the reply asks at least one clarification
	// question; the next turn in this conversation should answer it.
	AwaitingReply bool
}

// Ask resolves one user turn. An empty conversationID starts a new
// conversation; otherwise the prior turn log is loaded so open
// clarifications carry over.
func (s *Session) Ask(ctx context.Context, conversationID, text string) (*Exchange, error) {
	var conv *Conversation
	if conversationID == "" {
		conv = New()
	} else {
		turns, err := s.db.Turns(ctx, conversationID)
		if err != nil {
			return nil, fmt.Errorf("loading conversation %s: %w", conversationID, err)
		}
		conv = Load(conversationID, turns)
	}
	if err := s.db.CreateConversation(ctx, conv.ID); err != nil {
		return nil, err
	}

	priorTurns := conv.Turns
	turnResult, err := s.orch.ResolveTurn(ctx, text, priorTurns, conv.Ledger())
	if err != nil {
		return nil, err
	}

	reply, entries, err := s.composeReply(ctx, turnResult)
	if err != nil {
		return nil, err
	}

	userTurn := conv.AppendUser(text)
	if err := s.db.AppendTurn(ctx, conv.ID, userTurn); err != nil {
		return nil, err
	}
	assistantTurn := conv.AppendAssistant(reply, entries)
	if err := s.db.AppendTurn(ctx, conv.ID, assistantTurn); err != nil {
		return nil, err
	}

	return &Exchange{
		ConversationID: conv.ID,
		Reply:          reply,
		Results:        turnResult.Results,
		AwaitingReply:  len(entries) > 0,
	}, nil
}

func (s *Session) composeReply(ctx context.Context, turnResult *resolve.TurnResult) (string, []*store.Clarification, error) {
	var lines []string
	var entries []*store.Clarification
	asked := make(map[store.EntityRole]bool)

	for _, res := range turnResult.Results {
		switch res.Outcome {
		case resolve.OutcomeNeedsClarification:
			// One question per role per turn; only the first entry is live
			// in the ledger, so a second question would be unanswerable.
			if asked[res.Clarification.EntityRole] {
				continue
			}
			asked[res.Clarification.EntityRole] = true
			lines = append(lines, res.Clarification.Question)
			entries = append(entries, res.Clarification)
		case resolve.OutcomeResolved:
			if res.Caveat != "" {
				lines = append(lines, res.Caveat)
			}
			answer, err := s.answerFor(ctx, res)
			if err != nil {
				return "", nil, err
			}
			lines = append(lines, answer...)
		case resolve.OutcomeUnresolved:
			lines = append(lines, fmt.Sprintf("No %s matching %q found.", res.Query.Role, res.Query.RawName))
			if res.Query.Role == store.RoleTeam {
				lines = append(lines, fmt.Sprintf("Known teams: %s.", strings.Join(s.aliases.CanonicalTeams(), ", ")))
			}
		}
	}

	if len(lines) == 0 {
		lines = append(lines, "I couldn't find a player or team in that question.")
	}
	return strings.Join(lines, "\n"), entries, nil
}

func (s *Session) answerFor(ctx context.Context, res resolve.ResolutionResult) ([]string, error) {
	role := res.Query.Role
	entity := res.Entity

	if len(res.Query.Metrics) == 0 {
		periods, err := s.db.RecordedPeriods(ctx, role, entity.ID)
		if err != nil {
			return nil, err
		}
		if len(periods) == 0 {
			return []string{fmt.Sprintf("%s has no recorded stats.", entity.Name)}, nil
		}
		return []string{fmt.Sprintf("%s has stats recorded for %s.", entity.Name, strings.Join(periods, ", "))}, nil
	}

	var lines []string
	for _, metric := range res.Query.Metrics {
		totals, err := s.db.SeasonTotals(ctx, role, entity.ID, res.Query.Periods, metric)
		if err != nil {
			return nil, err
		}
		if len(totals) == 0 {
			scope := "any recorded season"
			if len(res.Query.Periods) > 0 {
				scope = strings.Join(res.Query.Periods, ", ")
			}
			lines = append(lines, fmt.Sprintf("%s has no %s recorded for %s.", entity.Name, metric, scope))
			continue
		}
		for _, total := range totals {
			lines = append(lines, fmt.Sprintf("%s: %d %s in %s (%d games).",
				entity.Name, total.Value, total.Metric, total.Period, total.Games))
		}
	}
	return lines, nil
}
