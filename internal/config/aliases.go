package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Aliases maps the many ways users write team names and metrics onto the
// canonical values the store knows. A yaml file may replace the built-in
// tables wholesale; most deployments use the defaults.
type Aliases struct {
	Teams   []TeamAliases   `yaml:"teams"`
	Metrics []MetricAliases `yaml:"metrics"`

	teamIndex   map[string]string
	metricIndex map[string]string
}

type TeamAliases struct {
	Canonical string   `yaml:"canonical"`
	Aliases   []string `yaml:"aliases"`
}

type MetricAliases struct {
	Canonical string   `yaml:"canonical"`
	Aliases   []string `yaml:"aliases"`
}

const fuzzyTeamThreshold = 0.75

func LoadAliases(path string) (*Aliases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading aliases: %w", err)
	}

	var aliases Aliases
	if err := yaml.Unmarshal(data, &aliases); err != nil {
		return nil, fmt.Errorf("loading aliases: %w", err)
	}

	if err := validateAliases(&aliases); err != nil {
		return nil, fmt.Errorf("loading aliases: %w", err)
	}

	aliases.buildIndex()
	return &aliases, nil
}

func validateAliases(a *Aliases) error {
	seen := make(map[string]struct{})
	for i, team := range a.Teams {
		if strings.TrimSpace(team.Canonical) == "" {
			return fmt.Errorf("team %d canonical name is required", i)
		}
		key := strings.ToLower(team.Canonical)
		if _, exists := seen[key]; exists {
			return fmt.Errorf("duplicate team: %s", team.Canonical)
		}
		seen[key] = struct{}{}
	}
	for i, metric := range a.Metrics {
		if strings.TrimSpace(metric.Canonical) == "" {
			return fmt.Errorf("metric %d canonical name is required", i)
		}
	}
	return nil
}

func (a *Aliases) buildIndex() {
	a.teamIndex = make(map[string]string)
	for _, team := range a.Teams {
		a.teamIndex[strings.ToLower(team.Canonical)] = team.Canonical
		for _, alias := range team.Aliases {
			a.teamIndex[strings.ToLower(alias)] = team.Canonical
		}
	}
	a.metricIndex = make(map[string]string)
	for _, metric := range a.Metrics {
		a.metricIndex[strings.ToLower(metric.Canonical)] = metric.Canonical
		for _, alias := range metric.Aliases {
			a.metricIndex[strings.ToLower(alias)] = metric.Canonical
		}
	}
}

// ResolveTeam maps user input to a canonical team name: exact alias lookup
// first, then a similarity fallback for typos.
func (a *Aliases) ResolveTeam(input string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}
	if canonical, ok := a.teamIndex[normalized]; ok {
		return canonical, true
	}

	// Table order, canonical before aliases, so equal scores always resolve
	// to the same team.
	best := ""
	bestScore := 0.0
	for _, team := range a.Teams {
		for _, alias := range append([]string{team.Canonical}, team.Aliases...) {
			score := similarityRatio(normalized, strings.ToLower(alias))
			if score > bestScore && score >= fuzzyTeamThreshold {
				bestScore = score
				best = team.Canonical
			}
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// LookupTeamAlias is the exact-only form of ResolveTeam, for callers that
// scan free text and cannot afford fuzzy false positives.
func (a *Aliases) LookupTeamAlias(input string) (string, bool) {
	canonical, ok := a.teamIndex[strings.ToLower(strings.TrimSpace(input))]
	return canonical, ok
}

func (a *Aliases) ResolveMetric(input string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	canonical, ok := a.metricIndex[normalized]
	return canonical, ok
}

func (a *Aliases) CanonicalTeams() []string {
	names := make([]string, 0, len(a.Teams))
	for _, team := range a.Teams {
		names = append(names, team.Canonical)
	}
	sort.Strings(names)
	return names
}

func (a *Aliases) CanonicalMetrics() []string {
	names := make([]string, 0, len(a.Metrics))
	for _, metric := range a.Metrics {
		names = append(names, metric.Canonical)
	}
	sort.Strings(names)
	return names
}

// similarityRatio is a Levenshtein-based similarity in [0,1]. No pack
// dependency offers fuzzy matching, so the handful of lines live here.
func similarityRatio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	return 1.0 - float64(prev[len(b)])/float64(longest)
}
