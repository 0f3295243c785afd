package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"statline/internal/store"
	"statline/internal/store/sqlite"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	ctx := context.Background()
	client, err := sqlite.New(ctx, "sqlite://:memory:")
	if err != nil {
		t.Fatalf("opening sqlite: %v", err)
	}
	t.Cleanup(func() { client.Close(ctx) })
	return client
}

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestRunBasicIngestion(t *testing.T) {
	db := newTestStore(t)
	dir := t.TempDir()
	writeFixture(t, dir, "round1.json", `[
  {"player": "Nick Daicos", "team": "Collingwood", "season": "2025", "round": "1", "goals": 1, "disposals": 40},
  {"player": "Josh Daicos", "team": "Collingwood", "season": "2025", "round": "1", "goals": 2, "disposals": 31},
  {"player": "Marcus Bontempelli", "team": "Western Bulldogs", "season": "2025", "round": "1", "goals": 3, "disposals": 33}
]`)

	result, err := Run(context.Background(), db, []string{dir})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.TeamsUpserted != 2 {
		t.Errorf("TeamsUpserted = %d, want 2", result.TeamsUpserted)
	}
	if result.PlayersUpserted != 3 {
		t.Errorf("PlayersUpserted = %d, want 3", result.PlayersUpserted)
	}
	if result.LinesInserted != 3 {
		t.Errorf("LinesInserted = %d, want 3", result.LinesInserted)
	}

	ctx := context.Background()
	entity, err := db.GetEntity(ctx, store.RolePlayer, "Nick Daicos")
	if err != nil {
		t.Fatalf("GetEntity: %v", err)
	}
	if entity == nil {
		t.Fatal("Nick Daicos not ingested")
	}
	totals, err := db.SeasonTotals(ctx, store.RolePlayer, entity.ID, []string{"2025"}, "disposals")
	if err != nil {
		t.Fatalf("SeasonTotals: %v", err)
	}
	if len(totals) != 1 || totals[0].Value != 40 {
		t.Errorf("totals = %+v, want one row of 40 disposals", totals)
	}
}

func TestRunRepeatedIngestDoesNotDuplicateEntities(t *testing.T) {
	db := newTestStore(t)
	dir := t.TempDir()
	writeFixture(t, dir, "round1.json", `[
  {"player": "Nick Daicos", "team": "Collingwood", "season": "2025", "round": "1", "goals": 1}
]`)

	ctx := context.Background()
	if _, err := Run(ctx, db, []string{dir}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := Run(ctx, db, []string{dir}); err != nil {
		t.Fatalf("second run: %v", err)
	}

	candidates, err := db.LookupCandidates(ctx, store.RolePlayer, "Daicos")
	if err != nil {
		t.Fatalf("LookupCandidates: %v", err)
	}
	if len(candidates) != 1 {
		t.Errorf("got %d players after re-ingest, want 1", len(candidates))
	}

	totals, err := db.SeasonTotals(ctx, store.RolePlayer, candidates[0].ID, nil, "goals")
	if err != nil {
		t.Fatalf("SeasonTotals: %v", err)
	}
	if len(totals) != 1 || totals[0].Games != 1 {
		t.Errorf("totals = %+v, want one season with 1 game after re-ingest", totals)
	}
}

func TestRunCollectsRecordErrors(t *testing.T) {
	db := newTestStore(t)
	dir := t.TempDir()
	writeFixture(t, dir, "bad.json", `[
  {"player": "", "team": "Collingwood", "season": "2025", "round": "1"},
  {"player": "Nick Daicos", "team": "Collingwood", "season": "2025", "round": "1", "goals": 1}
]`)

	result, err := Run(context.Background(), db, []string{dir})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(result.Errors), result.Errors)
	}
	if result.LinesInserted != 1 {
		t.Errorf("LinesInserted = %d, want 1", result.LinesInserted)
	}
}

func TestRunSkipsMalformedFile(t *testing.T) {
	db := newTestStore(t)
	dir := t.TempDir()
	writeFixture(t, dir, "broken.json", `{not json`)
	writeFixture(t, dir, "empty.json", `[]`)
	writeFixture(t, dir, "notes.txt", `ignored`)

	result, err := Run(context.Background(), db, []string{dir})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Errorf("got %d errors, want 1 for the malformed file: %v", len(result.Errors), result.Errors)
	}
	if result.FilesSkipped != 1 {
		t.Errorf("FilesSkipped = %d, want 1 for the empty file", result.FilesSkipped)
	}
}

func TestRunSingleFileRoot(t *testing.T) {
	db := newTestStore(t)
	dir := t.TempDir()
	path := writeFixture(t, dir, "round1.json", `[
  {"player": "Nick Daicos", "team": "Collingwood", "season": "2025", "round": "1", "goals": 1}
]`)

	result, err := Run(context.Background(), db, []string{path})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.LinesInserted != 1 {
		t.Errorf("LinesInserted = %d, want 1", result.LinesInserted)
	}
}
