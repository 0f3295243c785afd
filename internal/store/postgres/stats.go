package postgres

import (
	"context"
	"fmt"
	"strings"

	"statline/internal/store"
)

var metricColumns = map[string]string{
	"goals":     "goals",
	"behinds":   "behinds",
	"disposals": "disposals",
	"kicks":     "kicks",
	"handballs": "handballs",
	"marks":     "marks",
	"tackles":   "tackles",
}

func (c *Client) SeasonTotals(ctx context.Context, role store.EntityRole, entityID int64, periods []string, metric string) ([]store.SeasonTotal, error) {
	if _, err := tableFor(role); err != nil {
		return nil, err
	}
	column, ok := metricColumns[strings.ToLower(metric)]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %q", metric)
	}

	query := fmt.Sprintf(`
SELECT season, COALESCE(SUM(%s), 0), COUNT(*)
FROM stat_lines
WHERE %s = $1
`, column, activityColumn(role))

	args := []any{entityID}
	if len(periods) > 0 {
		query += " AND season = ANY($2)"
		args = append(args, periods)
	}
	query += " GROUP BY season ORDER BY season"

	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying season totals: %w", err)
	}
	defer rows.Close()

	var totals []store.SeasonTotal
	for rows.Next() {
		total := store.SeasonTotal{Metric: strings.ToLower(metric)}
		if err := rows.Scan(&total.Period, &total.Value, &total.Games); err != nil {
			return nil, fmt.Errorf("scanning season total: %w", err)
		}
		totals = append(totals, total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating season totals: %w", err)
	}
	return totals, nil
}

func (c *Client) UpsertTeam(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("team name is empty")
	}

	var id int64
	err := c.pool.QueryRow(ctx, `
INSERT INTO teams (name, name_normalized)
VALUES ($1, $2)
ON CONFLICT (name_normalized) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`, name, strings.ToLower(name)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upserting team %q: %w", name, err)
	}
	return id, nil
}

func (c *Client) UpsertPlayer(ctx context.Context, name string, teamID int64) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("player name is empty")
	}

	var id int64
	err := c.pool.QueryRow(ctx, `
INSERT INTO players (name, name_normalized, team_id)
VALUES ($1, $2, $3)
ON CONFLICT (name_normalized, team_id) DO UPDATE SET name = EXCLUDED.name
RETURNING id
`, name, strings.ToLower(name), teamID).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upserting player %q: %w", name, err)
	}
	return id, nil
}

// InsertStatLine is idempotent: a line for the same player, season and round
// replaces the earlier one.
func (c *Client) InsertStatLine(ctx context.Context, playerID, teamID int64, line store.StatLine) error {
	_, err := c.pool.Exec(ctx, `
INSERT INTO stat_lines (player_id, team_id, season, round, goals, behinds, disposals, kicks, handballs, marks, tackles)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (player_id, season, round) DO UPDATE SET
    team_id = EXCLUDED.team_id,
    goals = EXCLUDED.goals,
    behinds = EXCLUDED.behinds,
    disposals = EXCLUDED.disposals,
    kicks = EXCLUDED.kicks,
    handballs = EXCLUDED.handballs,
    marks = EXCLUDED.marks,
    tackles = EXCLUDED.tackles
`, playerID, teamID, line.Season, line.Round,
		line.Goals, line.Behinds, line.Disposals, line.Kicks, line.Handballs, line.Marks, line.Tackles)
	if err != nil {
		return fmt.Errorf("inserting stat line: %w", err)
	}
	return nil
}
