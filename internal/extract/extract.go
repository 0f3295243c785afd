// Package extract turns free-form turn text into the structured mentions
// the resolution engine consumes. The engine itself only depends on the
// resolve.Extractor interface; deployments with a language-model extractor
// plug that in instead. RuleExtractor is the built-in heuristic that makes
// the CLI and MCP surface work without one.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"statline/internal/config"
	"statline/internal/resolve"
	"statline/internal/store"
)

var seasonPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// sentence furniture that is capitalized at sentence starts but never part
// of a name.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "against": {}, "best": {}, "by": {},
	"compare": {}, "did": {}, "do": {}, "does": {}, "for": {}, "from": {},
	"get": {}, "got": {}, "has": {}, "have": {}, "how": {}, "in": {},
	"is": {}, "kick": {}, "kicked": {}, "last": {}, "many": {}, "much": {},
	"of": {}, "on": {}, "play": {}, "played": {}, "score": {}, "scored": {},
	"season": {}, "show": {}, "tell": {}, "the": {}, "this": {}, "to": {},
	"versus": {}, "vs": {}, "was": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "who": {}, "with": {}, "year": {},
}

type RuleExtractor struct {
	aliases *config.Aliases
}

func NewRuleExtractor(aliases *config.Aliases) *RuleExtractor {
	if aliases == nil {
		aliases = config.DefaultAliases()
	}
	return &RuleExtractor{aliases: aliases}
}

var _ resolve.Extractor = (*RuleExtractor)(nil)

// Extract finds season years, metric words, team mentions and candidate
// player names (runs of capitalized tokens). Teams match by exact alias
// first; capitalized runs that miss the alias table but clear the
// similarity threshold are reclassified as teams. All mentions share the
// turn's periods and metrics.
func (e *RuleExtractor) Extract(text string) ([]resolve.NameQuery, error) {
	periods := seasonPattern.FindAllString(text, -1)
	tokens := tokenize(text)
	metrics := e.findMetrics(tokens)
	teams, teamTokens := e.findTeams(tokens)
	players := e.findPlayers(tokens, teamTokens)
	teams, players = e.reclassifyTypoedTeams(teams, players)

	var queries []resolve.NameQuery
	for _, player := range players {
		queries = append(queries, resolve.NameQuery{
			Role:    store.RolePlayer,
			RawName: player,
			Periods: periods,
			Metrics: metrics,
		})
	}
	for _, team := range teams {
		queries = append(queries, resolve.NameQuery{
			Role:    store.RoleTeam,
			RawName: team,
			Periods: periods,
			Metrics: metrics,
		})
	}
	return queries, nil
}

type token struct {
	text        string
	capitalized bool
}

func tokenize(text string) []token {
	var tokens []token
	for _, field := range strings.Fields(text) {
		trimmed := strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		trimmed = strings.TrimSuffix(trimmed, "'s")
		if trimmed == "" {
			continue
		}
		first, _ := firstRune(trimmed)
		tokens = append(tokens, token{
			text:        trimmed,
			capitalized: unicode.IsUpper(first),
		})
	}
	return tokens
}

func firstRune(s string) (rune, bool) {
	for _, r := range s {
		return r, true
	}
	return 0, false
}

func (e *RuleExtractor) findMetrics(tokens []token) []string {
	var metrics []string
	seen := make(map[string]struct{})
	for i := range tokens {
		// Two-word aliases like "goals scored" win over the single word.
		if i+1 < len(tokens) {
			phrase := tokens[i].text + " " + tokens[i+1].text
			if canonical, ok := e.aliases.ResolveMetric(phrase); ok {
				if _, dup := seen[canonical]; !dup {
					seen[canonical] = struct{}{}
					metrics = append(metrics, canonical)
				}
				continue
			}
		}
		if canonical, ok := e.aliases.ResolveMetric(tokens[i].text); ok {
			if _, dup := seen[canonical]; !dup {
				seen[canonical] = struct{}{}
				metrics = append(metrics, canonical)
			}
		}
	}
	return metrics
}

// findTeams scans n-grams (longest first) for exact alias matches and
// reports which token positions they consumed, so the player scan skips
// them.
func (e *RuleExtractor) findTeams(tokens []token) ([]string, map[int]struct{}) {
	var teams []string
	seen := make(map[string]struct{})
	consumed := make(map[int]struct{})

	for i := 0; i < len(tokens); i++ {
		if _, ok := consumed[i]; ok {
			continue
		}
		for n := 3; n >= 1; n-- {
			if i+n > len(tokens) {
				continue
			}
			parts := make([]string, 0, n)
			for j := i; j < i+n; j++ {
				parts = append(parts, tokens[j].text)
			}
			phrase := strings.Join(parts, " ")
			canonical, ok := e.aliases.LookupTeamAlias(phrase)
			if !ok {
				continue
			}
			// Single lowercase common words ("power", "suns") only count as
			// teams when capitalized; longer phrases are unambiguous.
			if n == 1 && !tokens[i].capitalized {
				continue
			}
			if _, dup := seen[canonical]; !dup {
				seen[canonical] = struct{}{}
				teams = append(teams, canonical)
			}
			for j := i; j < i+n; j++ {
				consumed[j] = struct{}{}
			}
			i += n - 1
			break
		}
	}
	return teams, consumed
}

// reclassifyTypoedTeams reruns the capitalized runs that failed the exact
// alias scan through the similarity fallback, so "Collingwod" surfaces as a
// team mention rather than an unknown player.
func (e *RuleExtractor) reclassifyTypoedTeams(teams, players []string) ([]string, []string) {
	seen := make(map[string]struct{}, len(teams))
	for _, team := range teams {
		seen[team] = struct{}{}
	}

	var kept []string
	for _, player := range players {
		canonical, ok := e.aliases.ResolveTeam(player)
		if !ok {
			kept = append(kept, player)
			continue
		}
		if _, dup := seen[canonical]; !dup {
			seen[canonical] = struct{}{}
			teams = append(teams, canonical)
		}
	}
	return teams, kept
}

// findPlayers collects maximal runs of capitalized tokens that are not
// stopwords, seasons, metrics, or team mentions.
func (e *RuleExtractor) findPlayers(tokens []token, teamTokens map[int]struct{}) []string {
	var players []string
	seen := make(map[string]struct{})
	var run []string

	flush := func() {
		if len(run) == 0 {
			return
		}
		name := strings.Join(run, " ")
		run = nil
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		players = append(players, name)
	}

	for i, tok := range tokens {
		if _, isTeam := teamTokens[i]; isTeam {
			flush()
			continue
		}
		lower := strings.ToLower(tok.text)
		if !tok.capitalized {
			flush()
			continue
		}
		if _, stop := stopwords[lower]; stop {
			flush()
			continue
		}
		if seasonPattern.MatchString(tok.text) {
			flush()
			continue
		}
		if _, isMetric := e.aliases.ResolveMetric(lower); isMetric {
			flush()
			continue
		}
		run = append(run, tok.text)
	}
	flush()
	return players
}
