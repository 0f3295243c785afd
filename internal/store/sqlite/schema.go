package sqlite

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS teams (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    name            TEXT NOT NULL,
    name_normalized TEXT NOT NULL,
    UNIQUE (name_normalized)
);

CREATE TABLE IF NOT EXISTS players (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    name            TEXT NOT NULL,
    name_normalized TEXT NOT NULL,
    team_id         INTEGER REFERENCES teams(id),
    UNIQUE (name_normalized, team_id)
);

CREATE TABLE IF NOT EXISTS stat_lines (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    player_id INTEGER NOT NULL REFERENCES players(id) ON DELETE CASCADE,
    team_id   INTEGER NOT NULL REFERENCES teams(id),
    season    TEXT NOT NULL,
    round     TEXT NOT NULL,
    goals     INTEGER NOT NULL DEFAULT 0,
    behinds   INTEGER NOT NULL DEFAULT 0,
    disposals INTEGER NOT NULL DEFAULT 0,
    kicks     INTEGER NOT NULL DEFAULT 0,
    handballs INTEGER NOT NULL DEFAULT 0,
    marks     INTEGER NOT NULL DEFAULT 0,
    tackles   INTEGER NOT NULL DEFAULT 0,
    UNIQUE (player_id, season, round)
);

CREATE TABLE IF NOT EXISTS conversations (
    id         TEXT PRIMARY KEY,
    created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
    updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
);

CREATE TABLE IF NOT EXISTS turns (
    conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
    idx             INTEGER NOT NULL,
    role            TEXT NOT NULL,
    text            TEXT NOT NULL DEFAULT '',
    clarifications  TEXT,
    created_at      TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
    PRIMARY KEY (conversation_id, idx)
);

CREATE INDEX IF NOT EXISTS idx_players_name_norm ON players (name_normalized);
CREATE INDEX IF NOT EXISTS idx_teams_name_norm ON teams (name_normalized);
CREATE INDEX IF NOT EXISTS idx_stat_lines_player_season ON stat_lines (player_id, season);
CREATE INDEX IF NOT EXISTS idx_stat_lines_team_season ON stat_lines (team_id, season);
`
	if _, err := c.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
