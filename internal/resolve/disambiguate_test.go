package resolve

import (
	"context"
	"errors"
	"testing"

	"statline/internal/store"
)

type mockLookup struct {
	candidates map[string][]store.Candidate
	activity   map[int64][]string
	lookupErr  error
	activityErr error
}

func (m *mockLookup) LookupCandidates(ctx context.Context, role store.EntityRole, name string) ([]store.Candidate, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	return m.candidates[name], nil
}

func (m *mockLookup) HasActivity(ctx context.Context, role store.EntityRole, entityID int64, period string) (bool, error) {
	if m.activityErr != nil {
		return false, m.activityErr
	}
	for _, p := range m.activity[entityID] {
		if p == period {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLookup) HasAnyActivity(ctx context.Context, role store.EntityRole, entityID int64) (bool, error) {
	if m.activityErr != nil {
		return false, m.activityErr
	}
	return len(m.activity[entityID]) > 0, nil
}

func (m *mockLookup) RecordedPeriods(ctx context.Context, role store.EntityRole, entityID int64) ([]string, error) {
	if m.activityErr != nil {
		return nil, m.activityErr
	}
	return m.activity[entityID], nil
}

func daicosLookup() *mockLookup {
	return &mockLookup{
		candidates: map[string][]store.Candidate{
			"Daicos": {
				{ID: 1, Name: "Josh Daicos"},
				{ID: 2, Name: "Nick Daicos"},
			},
			"Bontempelli": {
				{ID: 3, Name: "Marcus Bontempelli"},
			},
		},
		activity: map[int64][]string{
			1: {"2021", "2022", "2023", "2024", "2025"},
			2: {"2022", "2023", "2024", "2025"},
			3: {"2024", "2025"},
		},
	}
}

func TestDisambiguate(t *testing.T) {
	ctx := context.Background()

	t.Run("zero candidates is unresolved", func(t *testing.T) {
		d := NewDisambiguator(daicosLookup())
		res, err := d.Disambiguate(ctx, NameQuery{Role: store.RolePlayer, RawName: "Nobody"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != OutcomeUnresolved {
			t.Fatalf("expected unresolved, got %s", res.Outcome)
		}
	})

	t.Run("single candidate auto-resolves regardless of periods", func(t *testing.T) {
		d := NewDisambiguator(daicosLookup())
		res, err := d.Disambiguate(ctx, NameQuery{Role: store.RolePlayer, RawName: "Bontempelli", Periods: []string{"1897"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != OutcomeResolved {
			t.Fatalf("expected resolved, got %s", res.Outcome)
		}
		if res.Entity.Name != "Marcus Bontempelli" {
			t.Fatalf("unexpected entity: %q", res.Entity.Name)
		}
	})

	t.Run("activity breaks the tie", func(t *testing.T) {
		lookup := daicosLookup()
		lookup.activity[2] = []string{"2022"}
		lookup.activity[1] = []string{"2019"}
		d := NewDisambiguator(lookup)
		res, err := d.Disambiguate(ctx, NameQuery{Role: store.RolePlayer, RawName: "Daicos", Periods: []string{"2022"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != OutcomeResolved {
			t.Fatalf("expected resolved, got %s", res.Outcome)
		}
		if res.Entity.Name != "Nick Daicos" {
			t.Fatalf("expected Nick Daicos, got %q", res.Entity.Name)
		}
		if res.LowConfidence {
			t.Fatalf("activity tie-break must not be low confidence")
		}
	})

	t.Run("multiple active candidates ask for clarification in lookup order", func(t *testing.T) {
		d := NewDisambiguator(daicosLookup())
		res, err := d.Disambiguate(ctx, NameQuery{Role: store.RolePlayer, RawName: "Daicos", Periods: []string{"2025"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != OutcomeNeedsClarification {
			t.Fatalf("expected clarification, got %s", res.Outcome)
		}
		entry := res.Clarification
		if entry == nil || len(entry.Candidates) != 2 {
			t.Fatalf("expected 2 candidates, got %#v", entry)
		}
		if entry.Candidates[0].Name != "Josh Daicos" || entry.Candidates[1].Name != "Nick Daicos" {
			t.Fatalf("lookup order not preserved: %#v", entry.Candidates)
		}
		if entry.Periods[0] != "2025" {
			t.Fatalf("original periods not preserved: %#v", entry.Periods)
		}
	})

	t.Run("inactive namesakes are dropped from the question", func(t *testing.T) {
		lookup := daicosLookup()
		lookup.candidates["Daicos"] = append(lookup.candidates["Daicos"], store.Candidate{ID: 9, Name: "Peter Daicos"})
		lookup.activity[9] = []string{"1990"}
		d := NewDisambiguator(lookup)
		res, err := d.Disambiguate(ctx, NameQuery{Role: store.RolePlayer, RawName: "Daicos", Periods: []string{"2025"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != OutcomeNeedsClarification {
			t.Fatalf("expected clarification, got %s", res.Outcome)
		}
		if len(res.Clarification.Candidates) != 2 {
			t.Fatalf("inactive namesake not dropped: %#v", res.Clarification.Candidates)
		}
	})

	t.Run("zero active candidates fall back low confidence", func(t *testing.T) {
		d := NewDisambiguator(daicosLookup())
		res, err := d.Disambiguate(ctx, NameQuery{Role: store.RolePlayer, RawName: "Daicos", Periods: []string{"1897"}})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != OutcomeResolved {
			t.Fatalf("expected resolved, got %s", res.Outcome)
		}
		if !res.LowConfidence {
			t.Fatalf("expected low-confidence fallback")
		}
		// Josh has five recorded seasons, Nick four.
		if res.Entity.Name != "Josh Daicos" {
			t.Fatalf("tie-break by recorded periods failed: %q", res.Entity.Name)
		}
		if res.Caveat == "" {
			t.Fatalf("expected a caveat explaining the fallback")
		}
	})

	t.Run("no periods and one active candidate auto-resolves", func(t *testing.T) {
		lookup := daicosLookup()
		lookup.activity[1] = nil
		d := NewDisambiguator(lookup)
		res, err := d.Disambiguate(ctx, NameQuery{Role: store.RolePlayer, RawName: "Daicos"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != OutcomeResolved {
			t.Fatalf("expected resolved, got %s", res.Outcome)
		}
		if res.Entity.Name != "Nick Daicos" {
			t.Fatalf("expected Nick Daicos, got %q", res.Entity.Name)
		}
	})

	t.Run("no periods and several active candidates list everyone", func(t *testing.T) {
		d := NewDisambiguator(daicosLookup())
		res, err := d.Disambiguate(ctx, NameQuery{Role: store.RolePlayer, RawName: "Daicos"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Outcome != OutcomeNeedsClarification {
			t.Fatalf("expected clarification, got %s", res.Outcome)
		}
		if len(res.Clarification.Candidates) != 2 {
			t.Fatalf("expected all candidates listed, got %#v", res.Clarification.Candidates)
		}
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		wantErr := errors.New("connection refused")
		d := NewDisambiguator(&mockLookup{lookupErr: wantErr})
		_, err := d.Disambiguate(ctx, NameQuery{Role: store.RolePlayer, RawName: "Daicos"})
		if !errors.Is(err, wantErr) {
			t.Fatalf("expected lookup error to propagate, got %v", err)
		}
	})
}
