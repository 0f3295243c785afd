package postgres

import (
	"context"
	"fmt"
	"strings"

	"statline/internal/store"
)

func tableFor(role store.EntityRole) (string, error) {
	switch role {
	case store.RolePlayer:
		return "players", nil
	case store.RoleTeam:
		return "teams", nil
	default:
		return "", fmt.Errorf("unknown entity role: %q", role)
	}
}

func activityColumn(role store.EntityRole) string {
	if role == store.RoleTeam {
		return "team_id"
	}
	return "player_id"
}

func (c *Client) LookupCandidates(ctx context.Context, role store.EntityRole, name string) ([]store.Candidate, error) {
	table, err := tableFor(role)
	if err != nil {
		return nil, err
	}

	pattern := "%" + strings.ToLower(strings.TrimSpace(name)) + "%"
	query := fmt.Sprintf(`
SELECT id, name
FROM %s
WHERE name_normalized LIKE $1
ORDER BY name, id
`, table)

	rows, err := c.pool.Query(ctx, query, pattern)
	if err != nil {
		return nil, fmt.Errorf("looking up %s candidates: %w", role, err)
	}
	defer rows.Close()

	var candidates []store.Candidate
	for rows.Next() {
		var cand store.Candidate
		if err := rows.Scan(&cand.ID, &cand.Name); err != nil {
			return nil, fmt.Errorf("scanning candidate: %w", err)
		}
		candidates = append(candidates, cand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating candidates: %w", err)
	}
	return candidates, nil
}

func (c *Client) HasActivity(ctx context.Context, role store.EntityRole, entityID int64, period string) (bool, error) {
	if _, err := tableFor(role); err != nil {
		return false, err
	}
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM stat_lines WHERE %s = $1 AND season = $2)`, activityColumn(role))

	var active bool
	if err := c.pool.QueryRow(ctx, query, entityID, period).Scan(&active); err != nil {
		return false, fmt.Errorf("checking activity: %w", err)
	}
	return active, nil
}

func (c *Client) HasAnyActivity(ctx context.Context, role store.EntityRole, entityID int64) (bool, error) {
	if _, err := tableFor(role); err != nil {
		return false, err
	}
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM stat_lines WHERE %s = $1)`, activityColumn(role))

	var active bool
	if err := c.pool.QueryRow(ctx, query, entityID).Scan(&active); err != nil {
		return false, fmt.Errorf("checking activity: %w", err)
	}
	return active, nil
}

func (c *Client) RecordedPeriods(ctx context.Context, role store.EntityRole, entityID int64) ([]string, error) {
	if _, err := tableFor(role); err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT DISTINCT season FROM stat_lines WHERE %s = $1 ORDER BY season`, activityColumn(role))

	rows, err := c.pool.Query(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("listing recorded periods: %w", err)
	}
	defer rows.Close()

	var periods []string
	for rows.Next() {
		var period string
		if err := rows.Scan(&period); err != nil {
			return nil, fmt.Errorf("scanning period: %w", err)
		}
		periods = append(periods, period)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating periods: %w", err)
	}
	return periods, nil
}

func (c *Client) GetEntity(ctx context.Context, role store.EntityRole, name string) (*store.Entity, error) {
	table, err := tableFor(role)
	if err != nil {
		return nil, err
	}

	nameNormalized := strings.ToLower(strings.TrimSpace(name))
	query := fmt.Sprintf(`SELECT id, name, '' FROM %s WHERE name_normalized = $1 ORDER BY id`, table)
	if role == store.RolePlayer {
		query = `
SELECT p.id, p.name, COALESCE(t.name, '')
FROM players p
LEFT JOIN teams t ON t.id = p.team_id
WHERE p.name_normalized = $1
ORDER BY p.id
`
	}

	rows, err := c.pool.Query(ctx, query, nameNormalized)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", role, err)
	}
	defer rows.Close()

	var entities []store.Entity
	for rows.Next() {
		e := store.Entity{Role: role}
		if err := rows.Scan(&e.ID, &e.Name, &e.Team); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", role, err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", role, err)
	}

	if len(entities) == 0 {
		return nil, nil
	}
	if len(entities) > 1 {
		return nil, fmt.Errorf("%d %ss share the name %q; disambiguate first", len(entities), role, name)
	}

	entity := entities[0]
	periods, err := c.RecordedPeriods(ctx, role, entity.ID)
	if err != nil {
		return nil, err
	}
	entity.Periods = periods
	return &entity, nil
}
