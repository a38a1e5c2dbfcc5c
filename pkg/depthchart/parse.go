package depthchart

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// playerColumn matches the header labels the site gives its depth slots:
// "Player 1", "No Player 2" and so on.
var playerColumn = regexp.MustCompile(`(?i)^(?:No\s*)?Player`)

var (
	trailingDepth = regexp.MustCompile(`\s*\d+\w*$`)
	parenthetical = regexp.MustCompile(`\s*\(.*?\)`)
	doubleSpace   = regexp.MustCompile(`\s{2,}`)
)

// chartRow is one body row reduced to its position label and the player
// cells in depth-slot order.
type chartRow struct {
	pos     string
	players []string
}

// parseDepthChart extracts starters from a depth chart page. A page without
// a usable table yields no starters and no error; the site serves those for
// teams mid-redesign and callers treat them as "nothing published".
func parseDepthChart(r io.Reader, team string) ([]Starter, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse depth chart html: %w", err)
	}

	table := firstTable(doc)
	if table == nil {
		return nil, nil
	}
	headerRows, bodyRows := tableRows(table)
	if len(headerRows) == 0 || len(bodyRows) == 0 {
		return nil, nil
	}

	columns := flattenHeader(headerRows)
	var playerCols []int
	for i := 1; i < len(columns); i++ {
		if playerColumn.MatchString(columns[i]) {
			playerCols = append(playerCols, i)
		}
	}
	if len(playerCols) == 0 {
		return nil, nil
	}

	rows := make([]chartRow, 0, len(bodyRows))
	for _, cells := range bodyRows {
		if len(cells) == 0 {
			continue
		}
		row := chartRow{pos: strings.TrimSpace(cells[0])}
		for _, col := range playerCols {
			value := ""
			if col < len(cells) {
				value = strings.TrimSpace(cells[col])
			}
			row.players = append(row.players, value)
		}
		rows = append(rows, row)
	}

	offense := sliceOffense(rows)

	// Walk slot by slot so depth one fills before depth two, matching how
	// the chart reads left to right. Duplicate (position, player) pairs keep
	// their first appearance.
	var out []Starter
	seen := make(map[string]bool)
	for slot := 1; slot <= len(playerCols); slot++ {
		for _, row := range offense {
			if row.pos == "" || sectionLabel(row.pos) {
				continue
			}
			raw := row.players[slot-1]
			if raw == "" {
				continue
			}
			position := mapPosition(row.pos, slot)
			if position == "" {
				continue
			}
			player := cleanName(raw)
			if player == "" {
				continue
			}
			key := position + "\x00" + player
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, Starter{Team: team, Position: position, Player: player, Status: ActiveStatus})
		}
	}
	return out, nil
}

// mapPosition turns a chart row label plus a depth slot into the canonical
// starter position. QB and FB rows are unslotted. RB and TE keep two depth
// spots each. WR fans out to WR1..WR5 by column, while slot receiver rows
// only count at depth one. Anything else (linemen, defense leftovers) is
// dropped.
func mapPosition(rowPos string, slot int) string {
	pos := strings.ToUpper(rowPos)
	switch pos {
	case "QB", "FB":
		return pos
	case "RB":
		if slot == 1 {
			return "RB1"
		}
		return "RB2"
	case "TE":
		if slot == 1 {
			return "TE1"
		}
		return "TE2"
	case "WR", "LWR", "RWR":
		wide := [...]string{"WR1", "WR2", "WR3", "WR4", "WR5"}
		if slot >= 1 && slot <= len(wide) {
			return wide[slot-1]
		}
	case "SWR", "WR-SLOT", "SLOT":
		if slot == 1 {
			return "SLOT"
		}
	}
	return ""
}

// cleanName strips jersey numbers and draft annotations off a roster cell
// and flips "Last, First" into "First Last": "Allen, Josh 26S" becomes
// "Josh Allen".
func cleanName(raw string) string {
	cleaned := trailingDepth.ReplaceAllString(raw, "")
	cleaned = parenthetical.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)
	if i := strings.IndexByte(cleaned, ','); i >= 0 {
		last := strings.TrimSpace(cleaned[:i])
		first := strings.TrimSpace(cleaned[i+1:])
		cleaned = strings.TrimSpace(first + " " + last)
	}
	return doubleSpace.ReplaceAllString(cleaned, " ")
}

// sliceOffense keeps the rows between the "Offense" and "Defense" section
// markers. A chart without markers is treated as offense-only.
func sliceOffense(rows []chartRow) []chartRow {
	offense, defense := -1, -1
	for i, row := range rows {
		switch strings.ToUpper(row.pos) {
		case "OFFENSE":
			if offense < 0 {
				offense = i
			}
		case "DEFENSE":
			if defense < 0 {
				defense = i
			}
		}
	}
	start, end := 0, len(rows)
	if offense >= 0 {
		start = offense + 1
	}
	if defense >= 0 {
		end = defense
	}
	if start > end {
		return nil
	}
	return rows[start:end]
}

func sectionLabel(pos string) bool {
	lower := strings.ToLower(pos)
	return strings.Contains(lower, "offense") ||
		strings.Contains(lower, "defense") ||
		strings.Contains(lower, "special")
}

func firstTable(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := firstTable(child); found != nil {
			return found
		}
	}
	return nil
}

// tableRows splits a table into header and body rows. A row counts as
// header when every cell is a <th>, which is how the site marks its
// stacked column captions.
func tableRows(table *html.Node) (header, body [][]string) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "tr" {
			cells, allHeader := rowCells(n)
			if len(cells) == 0 {
				return
			}
			if allHeader {
				header = append(header, cells)
			} else {
				body = append(body, cells)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child.Type == html.ElementNode && child.Data == "table" {
				continue // nested tables are not part of this chart
			}
			walk(child)
		}
	}
	for child := table.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}
	return header, body
}

func rowCells(tr *html.Node) (cells []string, allHeader bool) {
	allHeader = true
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "td" || n.Data == "th") {
			cells = append(cells, nodeText(n))
			if n.Data == "td" {
				allHeader = false
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for child := tr.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}
	return cells, allHeader
}

// flattenHeader merges stacked header rows per column, so "No" on top of
// "Player 1" reads back as "No Player 1".
func flattenHeader(headerRows [][]string) []string {
	width := 0
	for _, row := range headerRows {
		if len(row) > width {
			width = len(row)
		}
	}
	columns := make([]string, width)
	for i := 0; i < width; i++ {
		var parts []string
		for _, row := range headerRows {
			if i < len(row) {
				if part := strings.TrimSpace(row[i]); part != "" {
					parts = append(parts, part)
				}
			}
		}
		columns[i] = strings.Join(parts, " ")
	}
	return columns
}

// nodeText concatenates the text nodes under n and collapses runs of
// whitespace, mirroring how a browser renders the cell.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
