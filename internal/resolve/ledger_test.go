package resolve

import (
	"testing"

	"statline/internal/store"
)

func TestLedgerSupersession(t *testing.T) {
	ledger := NewLedger()

	first := &store.Clarification{EntityRole: store.RolePlayer, RawName: "Daicos", TurnIndex: 1}
	second := &store.Clarification{EntityRole: store.RolePlayer, RawName: "Kelly", TurnIndex: 3}

	ledger.Open(first)
	ledger.Open(second)

	got := ledger.Entry(store.RolePlayer)
	if got == nil || got.RawName != "Kelly" {
		t.Fatalf("expected second entry to be live, got %#v", got)
	}

	// Closing with the superseded entry's turn index is a no-op.
	if ledger.Close(store.RolePlayer, first.TurnIndex) {
		t.Fatalf("closing a superseded entry must not succeed")
	}
	if ledger.Entry(store.RolePlayer) == nil {
		t.Fatalf("live entry was removed by a stale close")
	}

	if !ledger.Close(store.RolePlayer, second.TurnIndex) {
		t.Fatalf("expected the live entry to close")
	}
	if ledger.Entry(store.RolePlayer) != nil {
		t.Fatalf("entry still open after close")
	}
}

func TestLedgerRolesAreIndependent(t *testing.T) {
	ledger := NewLedger()
	ledger.Open(&store.Clarification{EntityRole: store.RolePlayer, RawName: "Daicos", TurnIndex: 1})
	ledger.Open(&store.Clarification{EntityRole: store.RoleTeam, RawName: "Adelaide", TurnIndex: 1})

	if ledger.Entry(store.RolePlayer) == nil || ledger.Entry(store.RoleTeam) == nil {
		t.Fatalf("expected one open entry per role")
	}

	ledger.Close(store.RolePlayer, 1)
	if ledger.Entry(store.RoleTeam) == nil {
		t.Fatalf("closing the player entry closed the team entry")
	}
}
