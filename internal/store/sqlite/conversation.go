package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"statline/internal/store"
)

// Timestamps are stored as RFC 3339 text; sqlite has no native type for them.
func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", value, err)
	}
	return t, nil
}

func (c *Client) CreateConversation(ctx context.Context, id string) error {
	_, err := c.db.ExecContext(ctx, `
INSERT INTO conversations (id) VALUES (?)
ON CONFLICT (id) DO NOTHING
`, id)
	if err != nil {
		return fmt.Errorf("creating conversation: %w", err)
	}
	return nil
}

func (c *Client) AppendTurn(ctx context.Context, conversationID string, turn store.Turn) error {
	var clarifications any
	if len(turn.Clarifications) > 0 {
		encoded, err := json.Marshal(turn.Clarifications)
		if err != nil {
			return fmt.Errorf("encoding clarifications: %w", err)
		}
		clarifications = string(encoded)
	}

	_, err := c.db.ExecContext(ctx, `
INSERT INTO turns (conversation_id, idx, role, text, clarifications)
VALUES (?, ?, ?, ?, ?)
`, conversationID, turn.Index, turn.Role, turn.Text, clarifications)
	if err != nil {
		return fmt.Errorf("appending turn: %w", err)
	}

	_, err = c.db.ExecContext(ctx, `
UPDATE conversations
SET updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
WHERE id = ?
`, conversationID)
	if err != nil {
		return fmt.Errorf("touching conversation: %w", err)
	}
	return nil
}

func (c *Client) Turns(ctx context.Context, conversationID string) ([]store.Turn, error) {
	rows, err := c.db.QueryContext(ctx, `
SELECT idx, role, text, clarifications, created_at
FROM turns
WHERE conversation_id = ?
ORDER BY idx
`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("listing turns: %w", err)
	}
	defer rows.Close()

	var turns []store.Turn
	for rows.Next() {
		var turn store.Turn
		var clarifications *string
		var createdAt string
		if err := rows.Scan(&turn.Index, &turn.Role, &turn.Text, &clarifications, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		if clarifications != nil && *clarifications != "" {
			if err := json.Unmarshal([]byte(*clarifications), &turn.Clarifications); err != nil {
				return nil, fmt.Errorf("decoding clarifications for turn %d: %w", turn.Index, err)
			}
		}
		if turn.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating turns: %w", err)
	}
	return turns, nil
}

func (c *Client) ListConversations(ctx context.Context) ([]store.ConversationSummary, error) {
	rows, err := c.db.QueryContext(ctx, `
SELECT c.id, COUNT(t.idx), c.created_at, c.updated_at
FROM conversations c
LEFT JOIN turns t ON t.conversation_id = c.id
GROUP BY c.id, c.created_at, c.updated_at
ORDER BY c.updated_at DESC
`)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}
	defer rows.Close()

	var summaries []store.ConversationSummary
	for rows.Next() {
		var s store.ConversationSummary
		var createdAt, updatedAt string
		if err := rows.Scan(&s.ID, &s.TurnCount, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning conversation: %w", err)
		}
		if s.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversations: %w", err)
	}
	return summaries, nil
}
