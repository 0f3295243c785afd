package resolve

import (
	"testing"

	"statline/internal/store"
)

func daicosEntry() *store.Clarification {
	return &store.Clarification{
		EntityRole: store.RolePlayer,
		RawName:    "Daicos",
		Periods:    []string{"2025"},
		Metrics:    []string{"goals"},
		Candidates: []store.Candidate{
			{ID: 1, Name: "Josh Daicos"},
			{ID: 2, Name: "Nick Daicos"},
		},
		TurnIndex: 1,
	}
}

func TestResolveReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
		ok    bool
	}{
		{name: "first name", reply: "Nick", want: "Nick Daicos", ok: true},
		{name: "lowercase", reply: "nick", want: "Nick Daicos", ok: true},
		{name: "filler words", reply: "Nick please", want: "Nick Daicos", ok: true},
		{name: "politeness", reply: "josh, thanks!", want: "Josh Daicos", ok: true},
		{name: "full name", reply: "josh daicos", want: "Josh Daicos", ok: true},
		{name: "exact display name", reply: "Nick Daicos", want: "Nick Daicos", ok: true},
		{name: "surname matches both", reply: "Daicos", ok: false},
		{name: "unrelated text", reply: "how about the Bulldogs", ok: false},
		{name: "empty after fillers", reply: "please", ok: false},
		{name: "empty", reply: "   ", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := ResolveReply(tt.reply, daicosEntry())
			if ok != tt.ok {
				t.Fatalf("ResolveReply(%q) ok = %v, want %v", tt.reply, ok, tt.ok)
			}
			if !ok {
				return
			}
			if res.Outcome != OutcomeResolved {
				t.Fatalf("expected resolved, got %s", res.Outcome)
			}
			if res.Entity.Name != tt.want {
				t.Fatalf("ResolveReply(%q) = %q, want %q", tt.reply, res.Entity.Name, tt.want)
			}
		})
	}
}

func TestResolveReplyRecoversOriginalQuery(t *testing.T) {
	res, ok := ResolveReply("Nick", daicosEntry())
	if !ok {
		t.Fatalf("expected a match")
	}
	if len(res.Query.Periods) != 1 || res.Query.Periods[0] != "2025" {
		t.Fatalf("periods not recovered: %#v", res.Query.Periods)
	}
	if len(res.Query.Metrics) != 1 || res.Query.Metrics[0] != "goals" {
		t.Fatalf("metrics not recovered: %#v", res.Query.Metrics)
	}
	if res.Query.Role != store.RolePlayer {
		t.Fatalf("role not recovered: %q", res.Query.Role)
	}
}

func TestResolveReplyNilEntry(t *testing.T) {
	if _, ok := ResolveReply("Nick", nil); ok {
		t.Fatalf("nil entry must not match")
	}
}
