package resolve

import (
	"strings"

	"statline/internal/store"
)

// NameQuery is one entity mention as extracted from a user turn: a raw name
// plus the periods and metrics requested alongside it. It is consumed
// read-only by the disambiguator.
type NameQuery struct {
	Role    store.EntityRole
	RawName string
	Periods []string
	Metrics []string
}

// Extractor produces the structured mentions of a user turn. The real
// implementation is external to the engine; internal/extract ships a
// rule-based one.
type Extractor interface {
	Extract(text string) ([]NameQuery, error)
}

func dedupe(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Normalize trims and de-duplicates periods and metrics while preserving
// their order, so identical queries compare and resolve identically.
func (q NameQuery) Normalize() NameQuery {
	q.RawName = strings.TrimSpace(q.RawName)
	q.Periods = dedupe(q.Periods)
	q.Metrics = dedupe(q.Metrics)
	return q
}
