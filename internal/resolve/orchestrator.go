package resolve

import (
	"context"
	"fmt"

	"statline/internal/store"
)

// Orchestrator is the per-turn control flow: consult the reply resolver
// first when a clarification is open, fall through to extraction plus
// disambiguation otherwise. It owns no state; conversation state is passed
// in explicitly and ledger updates are applied to the ledger value the
// caller handed over.
type Orchestrator struct {
	disambiguator *Disambiguator
	extractor     Extractor
}

func NewOrchestrator(lookup Lookup, extractor Extractor) *Orchestrator {
	return &Orchestrator{
		disambiguator: NewDisambiguator(lookup),
		extractor:     extractor,
	}
}

// TurnResult is everything one user turn resolved to, one entry per
// extracted mention in extraction order.
type TurnResult struct {
	Results []ResolutionResult

	// RepliedRoles lists the roles that were resolved by interpreting the
	// turn as a clarification reply; extraction was skipped for them.
	RepliedRoles []store.EntityRole
}

// Result returns the first resolution for one role, or nil.
func (t *TurnResult) Result(role store.EntityRole) *ResolutionResult {
	for i := range t.Results {
		if t.Results[i].Query.Role == role {
			return &t.Results[i]
		}
	}
	return nil
}

// ResolveTurn handles one user turn. priorTurns is the conversation log up
// to but not including this turn; ledger holds the conversation's open
// clarifications and is mutated in place. A new clarification produced here
// carries the turn index its assistant question will occupy.
func (o *Orchestrator) ResolveTurn(ctx context.Context, userText string, priorTurns []store.Turn, ledger *Ledger) (*TurnResult, error) {
	if ledger == nil {
		ledger = NewLedger()
	}

	result := &TurnResult{}
	lastAssistant := lastAssistantIndex(priorTurns)
	handled := make(map[store.EntityRole]bool)

	for _, role := range []store.EntityRole{store.RolePlayer, store.RoleTeam} {
		entry := ledger.Entry(role)
		if entry == nil {
			continue
		}
		// Only the entry attached to the most recent assistant turn is
		// live; anything older was superseded and is discarded.
		if lastAssistant < 0 || entry.TurnIndex != lastAssistant {
			ledger.Close(role, entry.TurnIndex)
			continue
		}
		if res, ok := ResolveReply(userText, entry); ok {
			ledger.Close(role, entry.TurnIndex)
			result.Results = append(result.Results, res)
			result.RepliedRoles = append(result.RepliedRoles, role)
			handled[role] = true
		} else {
			// Not an answer: the turn re-enters as a fresh query and a new
			// assistant turn will supersede this entry regardless.
			ledger.Close(role, entry.TurnIndex)
		}
	}

	queries, err := o.extractor.Extract(userText)
	if err != nil {
		return nil, fmt.Errorf("extracting mentions: %w", err)
	}

	asked := make(map[store.EntityRole]bool)
	for _, q := range queries {
		if handled[q.Role] {
			continue
		}
		res, err := o.disambiguator.Disambiguate(ctx, q)
		if err != nil {
			return nil, err
		}
		if res.Outcome == OutcomeNeedsClarification && !asked[q.Role] {
			// The question will be the next assistant turn, right after the
			// user turn being resolved. Only the first ambiguous mention per
			// role opens an entry; a second Open would supersede it and
			// leave both questions unanswerable.
			res.Clarification.TurnIndex = len(priorTurns) + 1
			ledger.Open(res.Clarification)
			asked[q.Role] = true
		}
		result.Results = append(result.Results, res)
	}

	return result, nil
}

func lastAssistantIndex(turns []store.Turn) int {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == "assistant" {
			return turns[i].Index
		}
	}
	return -1
}
