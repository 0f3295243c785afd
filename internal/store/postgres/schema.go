package postgres

import (
	"context"
	"fmt"
)

func (c *Client) EnsureSchema(ctx context.Context) error {
	ddl := `
CREATE TABLE IF NOT EXISTS teams (
    id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    name            TEXT NOT NULL,
    name_normalized TEXT NOT NULL,
    CONSTRAINT uq_team_name UNIQUE (name_normalized)
);

CREATE TABLE IF NOT EXISTS players (
    id              BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    name            TEXT NOT NULL,
    name_normalized TEXT NOT NULL,
    team_id         BIGINT REFERENCES teams(id),
    CONSTRAINT uq_player_name_team UNIQUE (name_normalized, team_id)
);

CREATE TABLE IF NOT EXISTS stat_lines (
    id        BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    player_id BIGINT NOT NULL REFERENCES players(id) ON DELETE CASCADE,
    team_id   BIGINT NOT NULL REFERENCES teams(id),
    season    TEXT NOT NULL,
    round     TEXT NOT NULL,
    goals     INTEGER NOT NULL DEFAULT 0,
    behinds   INTEGER NOT NULL DEFAULT 0,
    disposals INTEGER NOT NULL DEFAULT 0,
    kicks     INTEGER NOT NULL DEFAULT 0,
    handballs INTEGER NOT NULL DEFAULT 0,
    marks     INTEGER NOT NULL DEFAULT 0,
    tackles   INTEGER NOT NULL DEFAULT 0,
    CONSTRAINT uq_stat_line UNIQUE (player_id, season, round)
);

CREATE TABLE IF NOT EXISTS conversations (
    id         TEXT PRIMARY KEY,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS turns (
    conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
    idx             INTEGER NOT NULL,
    role            TEXT NOT NULL,
    text            TEXT NOT NULL DEFAULT '',
    clarifications  JSONB,
    created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (conversation_id, idx)
);

CREATE INDEX IF NOT EXISTS idx_players_name_norm ON players (name_normalized);
CREATE INDEX IF NOT EXISTS idx_teams_name_norm ON teams (name_normalized);
CREATE INDEX IF NOT EXISTS idx_stat_lines_player_season ON stat_lines (player_id, season);
CREATE INDEX IF NOT EXISTS idx_stat_lines_team_season ON stat_lines (team_id, season);
`
	_, err := c.pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
