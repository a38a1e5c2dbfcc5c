package depthchart

import (
	"reflect"
	"strings"
	"testing"
)

// sampleChart mirrors the structure the site serves: a two-row header, an
// Offense section, receiver depth across columns and a Defense section we
// must ignore.
const sampleChart = `
<html><body>
<table>
    <thead>
        <tr>
            <th>Pos</th>
            <th>No</th>
            <th>No</th>
            <th>No</th>
        </tr>
        <tr>
            <th></th>
            <th>Player 1</th>
            <th>Player 2</th>
            <th>Player 3</th>
        </tr>
    </thead>
    <tbody>
        <tr><td>Offense</td><td></td><td></td><td></td></tr>
        <tr><td>QB</td><td>Allen, Josh 26S</td><td></td><td></td></tr>
        <tr><td>RB</td><td>Cook, James</td><td>Murray, Latavius 28</td><td></td></tr>
        <tr><td>WR</td><td>Diggs, Stefon 26S</td><td>Davis, Gabriel</td><td>Shakir, Khalil</td></tr>
        <tr><td>SWR</td><td>Beasley, Cole</td><td></td><td></td></tr>
        <tr><td>Defense</td><td></td><td></td><td></td></tr>
        <tr><td>DE</td><td>Rousseau, Greg</td><td></td><td></td></tr>
    </tbody>
</table>
</body></html>
`

// TestParseDepthChartSample walks the canned chart through the full
// pipeline: header flattening, offense slicing, slot mapping and name
// cleanup. Depth one fills before depth two, so the row order is stable.
func TestParseDepthChartSample(t *testing.T) {
	got, err := parseDepthChart(strings.NewReader(sampleChart), "buf")
	if err != nil {
		t.Fatalf("parseDepthChart: %v", err)
	}
	want := []Starter{
		{Team: "buf", Position: "QB", Player: "Josh Allen", Status: "ACT"},
		{Team: "buf", Position: "RB1", Player: "James Cook", Status: "ACT"},
		{Team: "buf", Position: "WR1", Player: "Stefon Diggs", Status: "ACT"},
		{Team: "buf", Position: "SLOT", Player: "Cole Beasley", Status: "ACT"},
		{Team: "buf", Position: "RB2", Player: "Latavius Murray", Status: "ACT"},
		{Team: "buf", Position: "WR2", Player: "Gabriel Davis", Status: "ACT"},
		{Team: "buf", Position: "WR3", Player: "Khalil Shakir", Status: "ACT"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseDepthChart =\n%v\nwant\n%v", got, want)
	}
}

// TestParseDepthChartNoMarkers treats a chart without Offense/Defense
// section rows as offense-only instead of dropping everything.
func TestParseDepthChartNoMarkers(t *testing.T) {
	chart := `
<table>
    <tr><th>Pos</th><th>Player 1</th><th>Player 2</th></tr>
    <tr><td>QB</td><td>Mahomes, Patrick</td><td>Henne, Chad</td></tr>
    <tr><td>TE</td><td>Kelce, Travis</td></tr>
</table>`
	got, err := parseDepthChart(strings.NewReader(chart), "kc")
	if err != nil {
		t.Fatalf("parseDepthChart: %v", err)
	}
	want := []Starter{
		{Team: "kc", Position: "QB", Player: "Patrick Mahomes", Status: "ACT"},
		{Team: "kc", Position: "TE1", Player: "Travis Kelce", Status: "ACT"},
		{Team: "kc", Position: "QB", Player: "Chad Henne", Status: "ACT"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("parseDepthChart =\n%v\nwant\n%v", got, want)
	}
}

// TestParseDepthChartDedupes keeps the first appearance when the same
// player fills two depth slots that map to one position.
func TestParseDepthChartDedupes(t *testing.T) {
	chart := `
<table>
    <tr><th>Pos</th><th>Player 1</th><th>Player 2</th><th>Player 3</th></tr>
    <tr><td>RB</td><td>Cook, James</td><td>Murray, Latavius</td><td>Murray, Latavius</td></tr>
</table>`
	got, err := parseDepthChart(strings.NewReader(chart), "buf")
	if err != nil {
		t.Fatalf("parseDepthChart: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("parseDepthChart kept %d rows, want 2: %v", len(got), got)
	}
}

// TestParseDepthChartEmptyInputs makes sure pages without usable tables
// yield no starters and no error, which is how mid-redesign pages look.
func TestParseDepthChartEmptyInputs(t *testing.T) {
	pages := map[string]string{
		"no table":          `<html><body><p>come back later</p></body></html>`,
		"no player columns": `<table><tr><th>Pos</th><th>Coach</th></tr><tr><td>QB</td><td>Reid</td></tr></table>`,
		"headers only":      `<table><tr><th>Pos</th><th>Player 1</th></tr></table>`,
	}
	for name, page := range pages {
		got, err := parseDepthChart(strings.NewReader(page), "buf")
		if err != nil {
			t.Fatalf("%s: parseDepthChart: %v", name, err)
		}
		if len(got) != 0 {
			t.Fatalf("%s: parseDepthChart = %v, want none", name, got)
		}
	}
}

// TestCleanName covers the cell formats the site actually uses: jersey
// numbers with draft codes, parenthetical notes and "Last, First" ordering.
func TestCleanName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Allen, Josh 26S", "Josh Allen"},
		{"Murray, Latavius 28", "Latavius Murray"},
		{"Cook, James", "James Cook"},
		{"Smith, John (IR)", "John Smith"},
		{"St. Brown, Amon-Ra 14", "Amon-Ra St. Brown"},
		{"Hill , Tyreek 10", "Tyreek Hill"},
		{"Kelce Travis", "Kelce Travis"},
	}
	for _, tc := range tests {
		if got := cleanName(tc.in); got != tc.want {
			t.Errorf("cleanName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestMapPosition pins the slotting rules: QB/FB are unslotted, RB/TE cap
// at two depths, receivers fan out to WR1..WR5 and slot receivers only
// count at depth one.
func TestMapPosition(t *testing.T) {
	tests := []struct {
		pos  string
		slot int
		want string
	}{
		{"QB", 1, "QB"},
		{"QB", 2, "QB"},
		{"qb", 1, "QB"},
		{"FB", 1, "FB"},
		{"RB", 1, "RB1"},
		{"RB", 2, "RB2"},
		{"RB", 3, "RB2"},
		{"TE", 1, "TE1"},
		{"TE", 2, "TE2"},
		{"WR", 1, "WR1"},
		{"WR", 4, "WR4"},
		{"WR", 6, ""},
		{"LWR", 1, "WR1"},
		{"RWR", 2, "WR2"},
		{"SWR", 1, "SLOT"},
		{"SWR", 2, ""},
		{"WR-SLOT", 1, "SLOT"},
		{"SLOT", 1, "SLOT"},
		{"LT", 1, ""},
		{"C", 1, ""},
	}
	for _, tc := range tests {
		if got := mapPosition(tc.pos, tc.slot); got != tc.want {
			t.Errorf("mapPosition(%q, %d) = %q, want %q", tc.pos, tc.slot, got, tc.want)
		}
	}
}
