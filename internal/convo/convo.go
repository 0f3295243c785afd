// Package convo models one conversation as an explicit value: the ordered
// turn log plus the open clarification ledger derived from it. It is owned
// by the session and passed into the orchestrator per turn; nothing here is
// global. Persistence of the turn log belongs to the store.
package convo

import (
	"time"

	"github.com/google/uuid"

	"statline/internal/resolve"
	"statline/internal/store"
)

type Conversation struct {
	ID     string
	Turns  []store.Turn
	ledger *resolve.Ledger
}

func New() *Conversation {
	return &Conversation{
		ID:     uuid.NewString(),
		ledger: resolve.NewLedger(),
	}
}

// Load rebuilds a conversation from its persisted turn log. Clarifications
// are replayed in order, so a later entry for a role supersedes an earlier
// one exactly as it did live.
func Load(id string, turns []store.Turn) *Conversation {
	c := &Conversation{ID: id, Turns: turns, ledger: resolve.NewLedger()}
	for _, turn := range turns {
		if turn.Role != "assistant" {
			continue
		}
		for _, entry := range turn.Clarifications {
			c.ledger.Open(entry)
		}
	}
	return c
}

// Ledger exposes the open clarifications for the orchestrator to consult
// and mutate.
func (c *Conversation) Ledger() *resolve.Ledger {
	return c.ledger
}

func (c *Conversation) AppendUser(text string) store.Turn {
	turn := store.Turn{
		Index:     len(c.Turns),
		Role:      "user",
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	c.Turns = append(c.Turns, turn)
	return turn
}

// AppendAssistant records an assistant turn, stamping each attached
// clarification with the turn's index so the next user turn can be checked
// against the most recent question.
func (c *Conversation) AppendAssistant(text string, entries []*store.Clarification) store.Turn {
	turn := store.Turn{
		Index:          len(c.Turns),
		Role:           "assistant",
		Text:           text,
		Clarifications: entries,
		CreatedAt:      time.Now().UTC(),
	}
	for _, entry := range entries {
		entry.TurnIndex = turn.Index
		c.ledger.Open(entry)
	}
	c.Turns = append(c.Turns, turn)
	return turn
}
