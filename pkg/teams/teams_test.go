package teams

import "testing"

// TestResolveSlugVariants verifies that abbreviations, historical aliases,
// full names and bare nicknames all land on the canonical slug.
func TestResolveSlugVariants(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"buf", "buf"},
		{"BUF", "buf"},
		{" buf ", "buf"},
		{"Buffalo Bills", "buf"},
		{"bills", "buf"},
		{"jac", "jax"}, // pre-2020 abbreviation still in circulation
		{"oak", "lv"},  // Oakland-era Raiders
		{"sd", "lac"},  // San Diego-era Chargers
		{"wsh", "was"},
		{"49ers", "sf"},
		{"Green Bay Packers", "gb"},
	}
	for _, tc := range tests {
		got, ok := ResolveSlug(tc.in)
		if !ok {
			t.Errorf("ResolveSlug(%q) not found, want %q", tc.in, tc.want)
			continue
		}
		if got != tc.want {
			t.Errorf("ResolveSlug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestResolveSlugUnknown ensures junk input reports not-found instead of
// guessing a team.
func TestResolveSlugUnknown(t *testing.T) {
	for _, in := range []string{"", "  ", "xfl", "london monarchs"} {
		if got, ok := ResolveSlug(in); ok {
			t.Fatalf("ResolveSlug(%q) = %q, want not found", in, got)
		}
	}
}

// TestCatalogComplete pins the league size and slug uniqueness so a catalog
// edit cannot silently drop or duplicate a franchise.
func TestCatalogComplete(t *testing.T) {
	all := Catalog()
	if len(all) != 32 {
		t.Fatalf("Catalog() has %d teams, want 32", len(all))
	}
	seen := make(map[string]bool, len(all))
	for _, team := range all {
		if seen[team.Slug] {
			t.Fatalf("duplicate slug %q in catalog", team.Slug)
		}
		seen[team.Slug] = true
		if team.Conference != "AFC" && team.Conference != "NFC" {
			t.Fatalf("team %q has conference %q", team.Slug, team.Conference)
		}
	}
	if len(Slugs()) != 32 {
		t.Fatalf("Slugs() has %d entries, want 32", len(Slugs()))
	}
}

func TestBySlug(t *testing.T) {
	team, ok := BySlug("kan")
	if !ok || team.Name != "Kansas City Chiefs" {
		t.Fatalf("BySlug(kan) = %+v, %v, want Kansas City Chiefs", team, ok)
	}
	if _, ok := BySlug("nope"); ok {
		t.Fatalf("BySlug(nope) found a team, want miss")
	}
}

// TestNormalizeSlug keeps unknown labels lowercase for URL building while
// canonicalizing known ones.
func TestNormalizeSlug(t *testing.T) {
	if got := NormalizeSlug("Bills"); got != "buf" {
		t.Fatalf("NormalizeSlug(Bills) = %q, want buf", got)
	}
	if got := NormalizeSlug(" XFL-Team "); got != "xfl-team" {
		t.Fatalf("NormalizeSlug(XFL-Team) = %q, want xfl-team", got)
	}
}
