package depthchart

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// LoadOverrides reads a hand-maintained starters override CSV. The header
// names any of team, position, player and status in any order; rows without
// a status default to ACT. A missing file is not an error, it simply means
// no overrides.
func LoadOverrides(path string) ([]Starter, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open overrides: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read overrides %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, nil
	}

	index := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := make([]Starter, 0, len(records)-1)
	for _, row := range records[1:] {
		starter := Starter{
			Team:     field(row, "team"),
			Position: field(row, "position"),
			Player:   field(row, "player"),
			Status:   field(row, "status"),
		}
		if starter.Status == "" {
			starter.Status = ActiveStatus
		}
		out = append(out, starter)
	}
	return out, nil
}

// applyOverrides replaces every scraped row whose (team, position) pair
// appears in the override set, then appends the override rows. Overrides
// claim whole positions rather than individual players, which is how the
// fix-up files are maintained.
func applyOverrides(scraped, overrides []Starter) []Starter {
	if len(overrides) == 0 {
		return scraped
	}
	replaced := make(map[string]bool, len(overrides))
	for _, o := range overrides {
		replaced[o.Team+"\x00"+o.Position] = true
	}
	out := make([]Starter, 0, len(scraped)+len(overrides))
	for _, s := range scraped {
		if replaced[s.Team+"\x00"+s.Position] {
			continue
		}
		out = append(out, s)
	}
	return append(out, overrides...)
}
