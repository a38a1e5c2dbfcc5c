package teams

import "strings"

// Team keeps display metadata for one NFL franchise so depth charts and
// exports can label rows consistently without hitting the database.
type Team struct {
	Slug       string   `json:"slug"`
	Abbr       string   `json:"abbr"`
	Name       string   `json:"name"`
	Conference string   `json:"conference"`
	Division   string   `json:"division"`
	Aliases    []string `json:"-"`
}

// catalog holds the canonical metadata so callers never mutate shared state.
// Slugs match the lowercase codes the depth chart site uses in its URLs.
var catalog = []Team{
	{Slug: "ari", Abbr: "ARI", Name: "Arizona Cardinals", Conference: "NFC", Division: "West", Aliases: []string{"arz", "az"}},
	{Slug: "atl", Abbr: "ATL", Name: "Atlanta Falcons", Conference: "NFC", Division: "South"},
	{Slug: "bal", Abbr: "BAL", Name: "Baltimore Ravens", Conference: "AFC", Division: "North"},
	{Slug: "buf", Abbr: "BUF", Name: "Buffalo Bills", Conference: "AFC", Division: "East"},
	{Slug: "car", Abbr: "CAR", Name: "Carolina Panthers", Conference: "NFC", Division: "South"},
	{Slug: "chi", Abbr: "CHI", Name: "Chicago Bears", Conference: "NFC", Division: "North"},
	{Slug: "cin", Abbr: "CIN", Name: "Cincinnati Bengals", Conference: "AFC", Division: "North"},
	{Slug: "cle", Abbr: "CLE", Name: "Cleveland Browns", Conference: "AFC", Division: "North"},
	{Slug: "dal", Abbr: "DAL", Name: "Dallas Cowboys", Conference: "NFC", Division: "East"},
	{Slug: "den", Abbr: "DEN", Name: "Denver Broncos", Conference: "AFC", Division: "West"},
	{Slug: "det", Abbr: "DET", Name: "Detroit Lions", Conference: "NFC", Division: "North"},
	{Slug: "gb", Abbr: "GB", Name: "Green Bay Packers", Conference: "NFC", Division: "North", Aliases: []string{"gnb"}},
	{Slug: "hou", Abbr: "HOU", Name: "Houston Texans", Conference: "AFC", Division: "South"},
	{Slug: "ind", Abbr: "IND", Name: "Indianapolis Colts", Conference: "AFC", Division: "South"},
	{Slug: "jax", Abbr: "JAX", Name: "Jacksonville Jaguars", Conference: "AFC", Division: "South", Aliases: []string{"jac"}},
	{Slug: "kc", Abbr: "KC", Name: "Kansas City Chiefs", Conference: "AFC", Division: "West", Aliases: []string{"kan"}},
	{Slug: "lac", Abbr: "LAC", Name: "Los Angeles Chargers", Conference: "AFC", Division: "West", Aliases: []string{"sd", "sdg"}},
	{Slug: "lar", Abbr: "LAR", Name: "Los Angeles Rams", Conference: "NFC", Division: "West", Aliases: []string{"la", "ram"}},
	{Slug: "lv", Abbr: "LV", Name: "Las Vegas Raiders", Conference: "AFC", Division: "West", Aliases: []string{"lvr", "oak"}},
	{Slug: "mia", Abbr: "MIA", Name: "Miami Dolphins", Conference: "AFC", Division: "East"},
	{Slug: "min", Abbr: "MIN", Name: "Minnesota Vikings", Conference: "NFC", Division: "North"},
	{Slug: "ne", Abbr: "NE", Name: "New England Patriots", Conference: "AFC", Division: "East", Aliases: []string{"nwe"}},
	{Slug: "no", Abbr: "NO", Name: "New Orleans Saints", Conference: "NFC", Division: "South", Aliases: []string{"nor"}},
	{Slug: "nyg", Abbr: "NYG", Name: "New York Giants", Conference: "NFC", Division: "East"},
	{Slug: "nyj", Abbr: "NYJ", Name: "New York Jets", Conference: "AFC", Division: "East"},
	{Slug: "phi", Abbr: "PHI", Name: "Philadelphia Eagles", Conference: "NFC", Division: "East"},
	{Slug: "pit", Abbr: "PIT", Name: "Pittsburgh Steelers", Conference: "AFC", Division: "North"},
	{Slug: "sea", Abbr: "SEA", Name: "Seattle Seahawks", Conference: "NFC", Division: "West"},
	{Slug: "sf", Abbr: "SF", Name: "San Francisco 49ers", Conference: "NFC", Division: "West", Aliases: []string{"sfo"}},
	{Slug: "tb", Abbr: "TB", Name: "Tampa Bay Buccaneers", Conference: "NFC", Division: "South", Aliases: []string{"tam", "tbb"}},
	{Slug: "ten", Abbr: "TEN", Name: "Tennessee Titans", Conference: "AFC", Division: "South"},
	{Slug: "was", Abbr: "WAS", Name: "Washington Commanders", Conference: "NFC", Division: "East", Aliases: []string{"wsh"}},
}

// catalogIndex maps slugs and aliases to teams for quick lookups without
// extra allocations.
var catalogIndex = func() map[string]Team {
	index := make(map[string]Team, len(catalog)*2)
	for _, team := range catalog {
		index[team.Slug] = team
		for _, alias := range team.Aliases {
			index[alias] = team
		}
	}
	return index
}()

// Catalog returns a copy so callers can reorder without mutating the shared slice.
func Catalog() []Team {
	out := make([]Team, len(catalog))
	copy(out, catalog)
	return out
}

// Slugs lists every team slug in catalog order, handy for "fetch everything"
// loops.
func Slugs() []string {
	out := make([]string, len(catalog))
	for i, team := range catalog {
		out[i] = team.Slug
	}
	return out
}

// BySlug looks up a team by its canonical slug or a known alias.
func BySlug(slug string) (Team, bool) {
	resolved, ok := ResolveSlug(slug)
	if !ok {
		return Team{}, false
	}
	return catalogIndex[resolved], true
}

// ResolveSlug maps abbreviations, aliases, full names and bare nicknames to
// stable slugs so CLI input and exports stay aligned. "BUF", "Buffalo Bills"
// and "bills" all resolve to "buf".
func ResolveSlug(raw string) (string, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return "", false
	}
	if team, ok := catalogIndex[trimmed]; ok {
		return team.Slug, true
	}
	for _, team := range catalog {
		name := strings.ToLower(team.Name)
		if trimmed == name || strings.Contains(trimmed, nickname(name)) {
			return team.Slug, true
		}
	}
	return "", false
}

// NormalizeSlug keeps known teams consistent while preserving unknown labels
// in lowercase, which is what depth chart URLs expect.
func NormalizeSlug(raw string) string {
	if resolved, ok := ResolveSlug(raw); ok {
		return resolved
	}
	return strings.ToLower(strings.TrimSpace(raw))
}

// nickname is the last word of a franchise name: "bills", "49ers",
// "commanders". Every current franchise has a unique one.
func nickname(name string) string {
	if i := strings.LastIndexByte(name, ' '); i >= 0 {
		return name[i+1:]
	}
	return name
}
