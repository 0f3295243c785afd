package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"statline/internal/store"
)

type Result struct {
	TeamsUpserted   int
	PlayersUpserted int
	LinesInserted   int
	FilesSkipped    int
	Errors          []error
}

// record is one stat line as it appears in a fixture file.
type record struct {
	Player    string `json:"player"`
	Team      string `json:"team"`
	Season    string `json:"season"`
	Round     string `json:"round"`
	Goals     int    `json:"goals"`
	Behinds   int    `json:"behinds"`
	Disposals int    `json:"disposals"`
	Kicks     int    `json:"kicks"`
	Handballs int    `json:"handballs"`
	Marks     int    `json:"marks"`
	Tackles   int    `json:"tackles"`
}

// Run ingests every .json fixture under the given roots. Each file holds an
// array of stat-line records. Teams and players are upserted by name, so
// re-running over the same fixtures does not duplicate entities.
func Run(ctx context.Context, db store.Store, roots []string) (*Result, error) {
	if err := db.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	files, err := walkJSONFiles(roots)
	if err != nil {
		return nil, fmt.Errorf("walking fixture files: %w", err)
	}

	result := &Result{}
	teamIDs := make(map[string]int64)
	playerIDs := make(map[string]int64)

	for _, path := range files {
		records, err := loadRecords(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("loading %s: %w", path, err))
			continue
		}
		if len(records) == 0 {
			result.FilesSkipped++
			continue
		}

		for i, rec := range records {
			if err := validateRecord(rec); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("%s record %d: %w", path, i, err))
				continue
			}

			teamKey := strings.ToLower(rec.Team)
			teamID, ok := teamIDs[teamKey]
			if !ok {
				teamID, err = db.UpsertTeam(ctx, rec.Team)
				if err != nil {
					result.Errors = append(result.Errors, fmt.Errorf("%s record %d: %w", path, i, err))
					continue
				}
				teamIDs[teamKey] = teamID
				result.TeamsUpserted++
			}

			playerKey := strings.ToLower(rec.Player) + "|" + teamKey
			playerID, ok := playerIDs[playerKey]
			if !ok {
				playerID, err = db.UpsertPlayer(ctx, rec.Player, teamID)
				if err != nil {
					result.Errors = append(result.Errors, fmt.Errorf("%s record %d: %w", path, i, err))
					continue
				}
				playerIDs[playerKey] = playerID
				result.PlayersUpserted++
			}

			line := store.StatLine{
				Player:    rec.Player,
				Team:      rec.Team,
				Season:    rec.Season,
				Round:     rec.Round,
				Goals:     rec.Goals,
				Behinds:   rec.Behinds,
				Disposals: rec.Disposals,
				Kicks:     rec.Kicks,
				Handballs: rec.Handballs,
				Marks:     rec.Marks,
				Tackles:   rec.Tackles,
			}
			if err := db.InsertStatLine(ctx, playerID, teamID, line); err != nil {
				result.Errors = append(result.Errors, fmt.Errorf("%s record %d: %w", path, i, err))
				continue
			}
			result.LinesInserted++
		}
	}

	return result, nil
}

func loadRecords(path string) ([]record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding: %w", err)
	}
	return records, nil
}

func validateRecord(rec record) error {
	if strings.TrimSpace(rec.Player) == "" {
		return fmt.Errorf("missing player name")
	}
	if strings.TrimSpace(rec.Team) == "" {
		return fmt.Errorf("missing team name")
	}
	if strings.TrimSpace(rec.Season) == "" {
		return fmt.Errorf("missing season")
	}
	if strings.TrimSpace(rec.Round) == "" {
		return fmt.Errorf("missing round")
	}
	return nil
}

func walkJSONFiles(roots []string) ([]string, error) {
	var files []string
	for _, root := range roots {
		if root == "" {
			continue
		}
		root = filepath.Clean(root)

		info, err := os.Stat(root)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if !strings.HasSuffix(strings.ToLower(d.Name()), ".json") {
				return nil
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}
