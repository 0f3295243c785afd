package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"statline/internal/store"
)

func (c *Client) CreateConversation(ctx context.Context, id string) error {
	_, err := c.pool.Exec(ctx, `
INSERT INTO conversations (id) VALUES ($1)
ON CONFLICT (id) DO NOTHING
`, id)
	if err != nil {
		return fmt.Errorf("creating conversation: %w", err)
	}
	return nil
}

func (c *Client) AppendTurn(ctx context.Context, conversationID string, turn store.Turn) error {
	var clarifications []byte
	if len(turn.Clarifications) > 0 {
		encoded, err := json.Marshal(turn.Clarifications)
		if err != nil {
			return fmt.Errorf("encoding clarifications: %w", err)
		}
		clarifications = encoded
	}

	_, err := c.pool.Exec(ctx, `
INSERT INTO turns (conversation_id, idx, role, text, clarifications)
VALUES ($1, $2, $3, $4, $5)
`, conversationID, turn.Index, turn.Role, turn.Text, clarifications)
	if err != nil {
		return fmt.Errorf("appending turn: %w", err)
	}

	_, err = c.pool.Exec(ctx, `UPDATE conversations SET updated_at = now() WHERE id = $1`, conversationID)
	if err != nil {
		return fmt.Errorf("touching conversation: %w", err)
	}
	return nil
}

func (c *Client) Turns(ctx context.Context, conversationID string) ([]store.Turn, error) {
	rows, err := c.pool.Query(ctx, `
SELECT idx, role, text, clarifications, created_at
FROM turns
WHERE conversation_id = $1
ORDER BY idx
`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("listing turns: %w", err)
	}
	defer rows.Close()

	var turns []store.Turn
	for rows.Next() {
		var turn store.Turn
		var clarifications []byte
		if err := rows.Scan(&turn.Index, &turn.Role, &turn.Text, &clarifications, &turn.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		if len(clarifications) > 0 {
			if err := json.Unmarshal(clarifications, &turn.Clarifications); err != nil {
				return nil, fmt.Errorf("decoding clarifications for turn %d: %w", turn.Index, err)
			}
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating turns: %w", err)
	}
	return turns, nil
}

func (c *Client) ListConversations(ctx context.Context) ([]store.ConversationSummary, error) {
	rows, err := c.pool.Query(ctx, `
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
		if err := rows.Scan(&s.ID, &s.TurnCount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning conversation: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversations: %w", err)
	}
	return summaries, nil
}
