package extract

import (
	"testing"

	"statline/internal/resolve"
	"statline/internal/store"
)

func queryFor(t *testing.T, queries []resolve.NameQuery, role store.EntityRole) resolve.NameQuery {
	t.Helper()
	for _, q := range queries {
		if q.Role == role {
			return q
		}
	}
	t.Fatalf("no %s query in %#v", role, queries)
	return resolve.NameQuery{}
}

func TestExtract(t *testing.T) {
	e := NewRuleExtractor(nil)

	t.Run("player with season and metric", func(t *testing.T) {
		queries, err := e.Extract("How many goals did Daicos kick in 2025?")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		q := queryFor(t, queries, store.RolePlayer)
		if q.RawName != "Daicos" {
			t.Fatalf("unexpected name: %q", q.RawName)
		}
		if len(q.Periods) != 1 || q.Periods[0] != "2025" {
			t.Fatalf("unexpected periods: %#v", q.Periods)
		}
		if len(q.Metrics) != 1 || q.Metrics[0] != "goals" {
			t.Fatalf("unexpected metrics: %#v", q.Metrics)
		}
	})

	t.Run("multi-word player name", func(t *testing.T) {
		queries, err := e.Extract("What were Marcus Bontempelli's disposals in 2024?")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		q := queryFor(t, queries, store.RolePlayer)
		if q.RawName != "Marcus Bontempelli" {
			t.Fatalf("unexpected name: %q", q.RawName)
		}
		if len(q.Metrics) != 1 || q.Metrics[0] != "disposals" {
			t.Fatalf("unexpected metrics: %#v", q.Metrics)
		}
	})

	t.Run("team nickname resolves to canonical name", func(t *testing.T) {
		queries, err := e.Extract("How did the Cats go in 2023?")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		q := queryFor(t, queries, store.RoleTeam)
		if q.RawName != "Geelong" {
			t.Fatalf("unexpected team: %q", q.RawName)
		}
	})

	t.Run("team words are not players", func(t *testing.T) {
		queries, err := e.Extract("Collingwood goals in 2025")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, q := range queries {
			if q.Role == store.RolePlayer {
				t.Fatalf("team mention leaked into players: %#v", q)
			}
		}
	})

	t.Run("typoed team name resolves via similarity", func(t *testing.T) {
		queries, err := e.Extract("How many goals did Collingwod kick in 2025?")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		q := queryFor(t, queries, store.RoleTeam)
		if q.RawName != "Collingwood" {
			t.Fatalf("unexpected team: %q", q.RawName)
		}
		if len(q.Periods) != 1 || q.Periods[0] != "2025" {
			t.Fatalf("unexpected periods: %#v", q.Periods)
		}
		for _, q := range queries {
			if q.Role == store.RolePlayer {
				t.Fatalf("typoed team leaked into players: %#v", q)
			}
		}
	})

	t.Run("unknown surname stays a player", func(t *testing.T) {
		queries, err := e.Extract("How many marks did Rioli take?")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		q := queryFor(t, queries, store.RolePlayer)
		if q.RawName != "Rioli" {
			t.Fatalf("unexpected name: %q", q.RawName)
		}
		for _, q := range queries {
			if q.Role == store.RoleTeam {
				t.Fatalf("player mention leaked into teams: %#v", q)
			}
		}
	})

	t.Run("bare reply yields a player mention", func(t *testing.T) {
		queries, err := e.Extract("Nick please")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		q := queryFor(t, queries, store.RolePlayer)
		if q.RawName != "Nick" {
			t.Fatalf("unexpected name: %q", q.RawName)
		}
	})

	t.Run("no mentions", func(t *testing.T) {
		queries, err := e.Extract("how many games were played last year?")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(queries) != 0 {
			t.Fatalf("expected no queries, got %#v", queries)
		}
	})
}
