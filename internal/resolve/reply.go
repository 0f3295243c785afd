package resolve

import (
	"strings"

	"statline/internal/store"
)

// fillerTokens are dropped from a clarification reply before matching, so
// "Nick please" reads as "Nick".
var fillerTokens = map[string]struct{}{
	"please": {},
	"thanks": {},
	"thank":  {},
	"you":    {},
	"pls":    {},
	"thx":    {},
	"cheers": {},
}

// ResolveReply interprets a user turn as the answer to an open clarification
// entry. It returns ok=false when the text does not single out exactly one
// candidate; the caller must then treat the turn as an ordinary new query. A
// partial match against two candidates never silently picks one.
func ResolveReply(userText string, entry *store.Clarification) (ResolutionResult, bool) {
	if entry == nil || len(entry.Candidates) == 0 {
		return ResolutionResult{}, false
	}

	tokens := normalizeReply(userText)
	if len(tokens) == 0 {
		return ResolutionResult{}, false
	}
	normalized := strings.Join(tokens, " ")

	var matches []store.Candidate
	for _, candidate := range entry.Candidates {
		if replyMatches(normalized, tokens, candidate.Name) {
			matches = append(matches, candidate)
		}
	}
	if len(matches) != 1 {
		return ResolutionResult{}, false
	}

	recovered := NameQuery{
		Role:    entry.EntityRole,
		RawName: entry.RawName,
		Periods: entry.Periods,
		Metrics: entry.Metrics,
	}
	return resolved(matches[0], recovered), true
}

func replyMatches(normalized string, tokens []string, candidateName string) bool {
	candidateNorm := strings.ToLower(strings.TrimSpace(candidateName))
	if normalized == candidateNorm {
		return true
	}

	candidateWords := make(map[string]struct{})
	for _, w := range strings.Fields(candidateNorm) {
		candidateWords[w] = struct{}{}
	}
	for _, token := range tokens {
		if _, ok := candidateWords[token]; !ok {
			return false
		}
	}
	return true
}

func normalizeReply(text string) []string {
	var tokens []string
	for _, field := range strings.Fields(strings.ToLower(text)) {
		token := strings.Trim(field, ".,!?;:'\"")
		if token == "" {
			continue
		}
		if _, ok := fillerTokens[token]; ok {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
