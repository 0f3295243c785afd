package resolve

import (
	"fmt"
	"strings"

	"statline/internal/store"
)

type Outcome int

const (
	// OutcomeUnresolved means zero candidates matched; asking the user a
	// question would not help.
	OutcomeUnresolved Outcome = iota
	// OutcomeResolved carries exactly one entity plus the recovered query.
	OutcomeResolved
	// OutcomeNeedsClarification carries an open clarification entry.
	OutcomeNeedsClarification
)

func (o Outcome) String() string {
	switch o {
	case OutcomeResolved:
		return "resolved"
	case OutcomeNeedsClarification:
		return "needs_clarification"
	default:
		return "unresolved"
	}
}

// ResolutionResult is the output of one resolution attempt for one entity
// role. Exactly one of Entity (with Outcome == OutcomeResolved) or
// Clarification (OutcomeNeedsClarification) is populated.
type ResolutionResult struct {
	Outcome Outcome

	// Entity and Query are set when Outcome is OutcomeResolved. Query merges
	// the periods and metrics of the query that triggered resolution, so
	// downstream consumers never re-derive them.
	Entity store.Candidate
	Query  NameQuery

	// LowConfidence marks the fallback pick taken when no candidate had
	// activity in the requested periods. Caveat explains the pick.
	LowConfidence bool
	Caveat        string

	Clarification *store.Clarification
}

func resolved(entity store.Candidate, q NameQuery) ResolutionResult {
	return ResolutionResult{Outcome: OutcomeResolved, Entity: entity, Query: q}
}

func unresolved(q NameQuery) ResolutionResult {
	return ResolutionResult{Outcome: OutcomeUnresolved, Query: q}
}

func needsClarification(q NameQuery, candidates []store.Candidate) ResolutionResult {
	entry := &store.Clarification{
		EntityRole: q.Role,
		Question:   buildQuestion(q, candidates),
		Candidates: candidates,
		RawName:    q.RawName,
		Periods:    q.Periods,
		Metrics:    q.Metrics,
	}
	return ResolutionResult{Outcome: OutcomeNeedsClarification, Query: q, Clarification: entry}
}

func buildQuestion(q NameQuery, candidates []store.Candidate) string {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
	}
	role := string(q.Role)
	if len(q.Periods) > 0 {
		return fmt.Sprintf("Multiple %ss named %q were active in %s: %s. Which %s did you mean?",
			role, q.RawName, strings.Join(q.Periods, ", "), strings.Join(names, ", "), role)
	}
	return fmt.Sprintf("Multiple %ss named %q found: %s. Which %s did you mean?",
		role, q.RawName, strings.Join(names, ", "), role)
}
