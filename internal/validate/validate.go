package validate

import (
	"context"
	"fmt"
	"strconv"

	"statline/internal/config"
	"statline/internal/store"
)

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warning"
)

const (
	codeNamesake       = "namesake_name"
	codeNoActivity     = "no_recorded_activity"
	codeSeasonOutRange = "season_out_of_range"
)

type Issue struct {
	Severity Severity
	Code     string
	Message  string
	Role     store.EntityRole
	Entity   string
}

type Report struct {
	Issues []Issue
}

func (r *Report) Errors() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			count++
		}
	}
	return count
}

func (r *Report) Warnings() int {
	return len(r.Issues) - r.Errors()
}

// Run checks the store for conditions that degrade resolution quality:
// namesake names that force clarification, entities with no stat lines, and
// seasons outside the configured range.
func Run(ctx context.Context, cfg *config.ProjectConfig, db store.Store) (*Report, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("store is required")
	}

	issues := make([]Issue, 0)

	for _, role := range []store.EntityRole{store.RolePlayer, store.RoleTeam} {
		namesakes, err := db.ListNamesakes(ctx, role)
		if err != nil {
			return nil, fmt.Errorf("list %s namesakes: %w", role, err)
		}
		for _, group := range namesakes {
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Code:     codeNamesake,
				Message:  fmt.Sprintf("%d %ss share the name %q; full-name mentions will need clarification", group.Count, role, group.Name),
				Role:     role,
				Entity:   group.Name,
			})
		}

		inactive, err := db.ListInactiveEntities(ctx, role)
		if err != nil {
			return nil, fmt.Errorf("list inactive %ss: %w", role, err)
		}
		for _, entity := range inactive {
			issues = append(issues, Issue{
				Severity: SeverityWarn,
				Code:     codeNoActivity,
				Message:  fmt.Sprintf("%s %q has no recorded stat lines", role, entity.Name),
				Role:     role,
				Entity:   entity.Name,
			})
		}
	}

	first := strconv.Itoa(cfg.Seasons.First)
	last := strconv.Itoa(cfg.Seasons.Last)
	outOfRange, err := db.ListPeriodsOutsideRange(ctx, first, last)
	if err != nil {
		return nil, fmt.Errorf("list out-of-range seasons: %w", err)
	}
	for _, season := range outOfRange {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Code:     codeSeasonOutRange,
			Message:  fmt.Sprintf("stat lines recorded for season %s, outside configured range %s-%s", season, first, last),
		})
	}

	return &Report{Issues: issues}, nil
}
