package store

import "time"

type EntityRole string

const (
	RolePlayer EntityRole = "player"
	RoleTeam   EntityRole = "team"
)

// Candidate is a name-matched possibility for an entity mention. It exists
// only for the duration of one resolution attempt.
type Candidate struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Entity struct {
	ID      int64
	Name    string
	Role    EntityRole
	Team    string
	Periods []string
}

// StatLine is one player's line for one match, as ingested.
type StatLine struct {
	Player    string
	Team      string
	Season    string
	Round     string
	Goals     int
	Behinds   int
	Disposals int
	Kicks     int
	Handballs int
	Marks     int
	Tackles   int
}

// SeasonTotal is an aggregated metric value for one entity in one period.
type SeasonTotal struct {
	Period string
	Metric string
	Value  int
	Games  int
}

// Clarification is the persisted form of an open ledger entry: one
// outstanding "which one did you mean?" question attached to an assistant
// turn. Candidates keep presentation order.
type Clarification struct {
	EntityRole EntityRole  `json:"entity_role"`
	Question   string      `json:"question"`
	Candidates []Candidate `json:"candidates"`
	RawName    string      `json:"raw_name"`
	Periods    []string    `json:"periods,omitempty"`
	Metrics    []string    `json:"metrics,omitempty"`
	TurnIndex  int         `json:"turn_index"`
}

type Turn struct {
	Index          int
	Role           string
	Text           string
	Clarifications []*Clarification
	CreatedAt      time.Time
}

type ConversationSummary struct {
	ID        string
	TurnCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NamesakeGroup is a set of distinct entities sharing one normalized name.
type NamesakeGroup struct {
	Name  string
	Count int
}
