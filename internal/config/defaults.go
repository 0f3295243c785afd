package config

// DefaultAliases returns the built-in AFL team nickname and metric alias
// tables. A project-level aliases.yaml replaces them entirely.
func DefaultAliases() *Aliases {
	a := &Aliases{
		Teams: []TeamAliases{
			{Canonical: "Adelaide", Aliases: []string{"adelaide crows", "crows", "the crows", "ade"}},
			{Canonical: "Brisbane Lions", Aliases: []string{"brisbane", "lions", "the lions", "bri", "brisbane bears"}},
			{Canonical: "Carlton", Aliases: []string{"blues", "the blues", "car", "navy blues"}},
			{Canonical: "Collingwood", Aliases: []string{"magpies", "the magpies", "pies", "the pies", "col"}},
			{Canonical: "Essendon", Aliases: []string{"bombers", "the bombers", "dons", "the dons", "ess"}},
			{Canonical: "Fremantle", Aliases: []string{"dockers", "the dockers", "freo", "fre"}},
			{Canonical: "Geelong", Aliases: []string{"geelong cats", "cats", "the cats", "gee"}},
			{Canonical: "Gold Coast", Aliases: []string{"gold coast suns", "suns", "the suns", "gcs"}},
			{Canonical: "Greater Western Sydney", Aliases: []string{"gws", "giants", "gws giants", "the giants", "western sydney"}},
			{Canonical: "Hawthorn", Aliases: []string{"hawks", "the hawks", "haw"}},
			{Canonical: "Melbourne", Aliases: []string{"demons", "the demons", "dees", "the dees", "mel"}},
			{Canonical: "North Melbourne", Aliases: []string{"kangaroos", "the kangaroos", "roos", "the roos", "north", "nm", "shinboners"}},
			{Canonical: "Port Adelaide", Aliases: []string{"port adelaide power", "power", "the power", "port", "pa"}},
			{Canonical: "Richmond", Aliases: []string{"richmond tigers", "tigers", "the tigers", "tiges", "ric"}},
			{Canonical: "St Kilda", Aliases: []string{"st. kilda", "saints", "the saints", "stk"}},
			{Canonical: "Sydney", Aliases: []string{"sydney swans", "swans", "the swans", "syd", "south melbourne"}},
			{Canonical: "West Coast", Aliases: []string{"west coast eagles", "eagles", "the eagles", "wce"}},
			{Canonical: "Western Bulldogs", Aliases: []string{"bulldogs", "the bulldogs", "dogs", "the dogs", "wb", "footscray"}},
		},
		Metrics: []MetricAliases{
			{Canonical: "goals", Aliases: []string{"goal", "goals scored", "total goals", "snags", "majors"}},
			{Canonical: "behinds", Aliases: []string{"behind", "minor scores"}},
			{Canonical: "disposals", Aliases: []string{"disposal", "possessions", "touches"}},
			{Canonical: "kicks", Aliases: []string{"kick"}},
			{Canonical: "handballs", Aliases: []string{"handball", "handpasses"}},
			{Canonical: "marks", Aliases: []string{"mark", "grabs"}},
			{Canonical: "tackles", Aliases: []string{"tackle"}},
		},
	}
	a.buildIndex()
	return a
}
