package resolve

import "statline/internal/store"

// Ledger holds the open clarification entries of one conversation, at most
// one per entity role. It is single-writer state: turns of a conversation
// are resolved strictly sequentially, so no locking is needed here.
type Ledger struct {
	open map[store.EntityRole]*store.Clarification
}

func NewLedger() *Ledger {
	return &Ledger{open: make(map[store.EntityRole]*store.Clarification)}
}

// Open records an entry, replacing any open entry for the same role in one
// step. A new ambiguity supersedes an unanswered question for that role.
func (l *Ledger) Open(entry *store.Clarification) {
	if entry == nil {
		return
	}
	l.open[entry.EntityRole] = entry
}

// Entry returns the open entry for a role, or nil.
func (l *Ledger) Entry(role store.EntityRole) *store.Clarification {
	return l.open[role]
}

// Close invalidates the open entry for a role, provided it is still the one
// created at turnIndex. A superseded entry is left alone.
func (l *Ledger) Close(role store.EntityRole, turnIndex int) bool {
	entry := l.open[role]
	if entry == nil || entry.TurnIndex != turnIndex {
		return false
	}
	delete(l.open, role)
	return true
}
