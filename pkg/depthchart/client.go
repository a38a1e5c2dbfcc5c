// Package depthchart scrapes NFL depth charts from ourlads.com and reduces
// them to one row per projected offensive starter. The site publishes one
// HTML table per team with positions down the side and depth slots across
// the columns; we keep the offensive section, map row positions and column
// slots to canonical starter positions (QB, RB1, WR1..WR5, SLOT and so on)
// and normalize "Last, First 12" cells into plain player names. A local CSV
// can override scraped rows when the site lags behind a roster move.
package depthchart

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"nflverse-datahub/pkg/logger"
)

// Starter is one projected offensive starter for one team. Status mirrors
// the roster feeds: "ACT" for active, anything else passes through from
// overrides untouched.
type Starter struct {
	Team     string `json:"team"`
	Position string `json:"position"`
	Player   string `json:"player"`
	Status   string `json:"status"`
}

// ActiveStatus marks a player on the active roster. Scraped rows always get
// it; override rows only when they leave status blank.
const ActiveStatus = "ACT"

// Config collects scraper options. Zero values fall back to the production
// endpoint, a 30 second timeout and a browser-like user agent.
type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Client fetches and parses depth chart pages from one endpoint.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewClient builds a depth chart client, filling defaults for any zero
// Config fields.
func NewClient(cfg Config) *Client {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		base = "https://www.ourlads.com/nfldepthcharts/pfdepthchart"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	agent := strings.TrimSpace(cfg.UserAgent)
	if agent == "" {
		agent = "Mozilla/5.0 (compatible; nflverse-datahub/1.0)"
	}
	return &Client{
		baseURL:   base,
		userAgent: agent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchTeam downloads and parses the depth chart for a single team slug.
// The slug goes straight into the URL path, so callers should normalize it
// first (see the teams package).
func (c *Client) FetchTeam(ctx context.Context, team string) ([]Starter, error) {
	endpoint := c.baseURL + "/" + url.PathEscape(team)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request depth chart: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("depth chart http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read depth chart: %w", err)
	}

	return parseDepthChart(bytes.NewReader(body), team)
}

// ReadStarters fetches depth charts for a batch of teams and merges in the
// override file when one exists at overridePath. A failing team logs and
// contributes nothing so one outage cannot sink a whole league pull; pass
// overridePath "" to skip overrides entirely.
func (c *Client) ReadStarters(ctx context.Context, teamSlugs []string, overridePath string) ([]Starter, error) {
	var out []Starter
	for _, team := range teamSlugs {
		logger.Begin(team)
		logger.Append(team, fmt.Sprintf("[%-4s] fetching %s/%s", team, c.baseURL, team))

		starters, err := c.FetchTeam(ctx, team)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.FlushError(team, err)
			continue
		}

		logger.Success(team, len(starters))
		out = append(out, starters...)
	}

	if overridePath == "" {
		return out, nil
	}
	overrides, err := LoadOverrides(overridePath)
	if err != nil {
		return nil, err
	}
	return applyOverrides(out, overrides), nil
}
