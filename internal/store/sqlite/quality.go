package sqlite

import (
	"context"
	"fmt"

	"statline/internal/store"
)

func (c *Client) ListNamesakes(ctx context.Context, role store.EntityRole) ([]store.NamesakeGroup, error) {
	table, err := tableFor(role)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
SELECT MIN(name), COUNT(*)
FROM %s
GROUP BY name_normalized
HAVING COUNT(*) > 1
ORDER BY MIN(name)
`, table)

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing namesakes: %w", err)
	}
	defer rows.Close()

	var groups []store.NamesakeGroup
	for rows.Next() {
		var g store.NamesakeGroup
		if err := rows.Scan(&g.Name, &g.Count); err != nil {
			return nil, fmt.Errorf("scanning namesake group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating namesake groups: %w", err)
	}
	return groups, nil
}

func (c *Client) ListInactiveEntities(ctx context.Context, role store.EntityRole) ([]store.Entity, error) {
	table, err := tableFor(role)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
SELECT e.id, e.name
FROM %s e
LEFT JOIN stat_lines s ON s.%s = e.id
WHERE s.id IS NULL
ORDER BY e.name, e.id
`, table, activityColumn(role))

	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing inactive entities: %w", err)
	}
	defer rows.Close()

	var entities []store.Entity
	for rows.Next() {
		e := store.Entity{Role: role}
		if err := rows.Scan(&e.ID, &e.Name); err != nil {
			return nil, fmt.Errorf("scanning entity: %w", err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entities: %w", err)
	}
	return entities, nil
}

func (c *Client) ListPeriodsOutsideRange(ctx context.Context, first, last string) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, `
SELECT DISTINCT season
FROM stat_lines
WHERE season < ? OR season > ?
ORDER BY season
`, first, last)
	if err != nil {
		return nil, fmt.Errorf("listing out-of-range periods: %w", err)
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
