package resolve

import (
	"context"
	"fmt"
	"strings"

	"statline/internal/store"
)

// Lookup is the slice of the store the disambiguator depends on. Both calls
// are read-only and idempotent; failures propagate unmodified and are never
// treated as zero candidates.
type Lookup interface {
	LookupCandidates(ctx context.Context, role store.EntityRole, name string) ([]store.Candidate, error)
	HasActivity(ctx context.Context, role store.EntityRole, entityID int64, period string) (bool, error)
	HasAnyActivity(ctx context.Context, role store.EntityRole, entityID int64) (bool, error)
	RecordedPeriods(ctx context.Context, role store.EntityRole, entityID int64) ([]string, error)
}

type Disambiguator struct {
	lookup Lookup
}

func NewDisambiguator(lookup Lookup) *Disambiguator {
	return &Disambiguator{lookup: lookup}
}

// Disambiguate narrows a raw name to a single entity, or signals that a
// clarification is required. Candidate order from the lookup is preserved
// through to the clarification entry.
func (d *Disambiguator) Disambiguate(ctx context.Context, q NameQuery) (ResolutionResult, error) {
	q = q.Normalize()
	if q.RawName == "" {
		return unresolved(q), nil
	}

	candidates, err := d.lookup.LookupCandidates(ctx, q.Role, q.RawName)
	if err != nil {
		return ResolutionResult{}, fmt.Errorf("looking up candidates for %q: %w", q.RawName, err)
	}

	switch len(candidates) {
	case 0:
		return unresolved(q), nil
	case 1:
		return resolved(candidates[0], q), nil
	}

	if len(q.Periods) == 0 {
		return d.disambiguateWithoutPeriods(ctx, q, candidates)
	}

	active := make([]store.Candidate, 0, len(candidates))
	for _, c := range candidates {
		ok, err := d.activeInAny(ctx, q.Role, c.ID, q.Periods)
		if err != nil {
			return ResolutionResult{}, err
		}
		if ok {
			active = append(active, c)
		}
	}

	switch len(active) {
	case 1:
		return resolved(active[0], q), nil
	case 0:
		pick, err := d.mostRecordedPeriods(ctx, q.Role, candidates)
		if err != nil {
			return ResolutionResult{}, err
		}
		result := resolved(pick, q)
		result.LowConfidence = true
		result.Caveat = fallbackCaveat(q, candidates, pick)
		return result, nil
	default:
		// Inactive namesakes are dropped from the question.
		return needsClarification(q, active), nil
	}
}

func (d *Disambiguator) disambiguateWithoutPeriods(ctx context.Context, q NameQuery, candidates []store.Candidate) (ResolutionResult, error) {
	var active []store.Candidate
	for _, c := range candidates {
		ok, err := d.lookup.HasAnyActivity(ctx, q.Role, c.ID)
		if err != nil {
			return ResolutionResult{}, fmt.Errorf("checking activity for %q: %w", c.Name, err)
		}
		if ok {
			active = append(active, c)
			if len(active) > 1 {
				break
			}
		}
	}
	if len(active) == 1 {
		return resolved(active[0], q), nil
	}
	return needsClarification(q, candidates), nil
}

func (d *Disambiguator) activeInAny(ctx context.Context, role store.EntityRole, id int64, periods []string) (bool, error) {
	for _, period := range periods {
		ok, err := d.lookup.HasActivity(ctx, role, id, period)
		if err != nil {
			return false, fmt.Errorf("checking activity in %s: %w", period, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// mostRecordedPeriods breaks the zero-active-candidates tie explicitly: the
// candidate with the most recorded periods overall wins, earlier lookup
// order wins a further tie.
func (d *Disambiguator) mostRecordedPeriods(ctx context.Context, role store.EntityRole, candidates []store.Candidate) (store.Candidate, error) {
	pick := candidates[0]
	best := -1
	for _, c := range candidates {
		periods, err := d.lookup.RecordedPeriods(ctx, role, c.ID)
		if err != nil {
			return store.Candidate{}, fmt.Errorf("listing recorded periods for %q: %w", c.Name, err)
		}
		if len(periods) > best {
			best = len(periods)
			pick = c
		}
	}
	return pick, nil
}

func fallbackCaveat(q NameQuery, candidates []store.Candidate, pick store.Candidate) string {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
	}
	return fmt.Sprintf("Multiple %ss named %q found (%s), but none were active in %s. Using %s.",
		q.Role, q.RawName, strings.Join(names, ", "), strings.Join(q.Periods, ", "), pick.Name)
}
