package federation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPClient is a Client over the federation's JSON gateway
type HTTPClient struct {
	baseURL  string
	clubCode string
	client   *http.Client
}

// Ensure HTTPClient implements the interface
var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a federation client for the given gateway URL and
// club code
func NewHTTPClient(baseURL, clubCode string) *HTTPClient {
	return &HTTPClient{
		baseURL:  baseURL,
		clubCode: clubCode,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// TeamsForClub returns the club's teams
func (c *HTTPClient) TeamsForClub(ctx context.Context) ([]Team, error) {
	var teams []Team
	err := c.getList(ctx, "/equipes", url.Values{"club": {c.clubCode}}, &teams)
	return teams, err
}

// PlayersForClub returns the club's roster
func (c *HTTPClient) PlayersForClub(ctx context.Context) ([]Player, error) {
	var players []Player
	err := c.getList(ctx, "/joueurs", url.Values{"club": {c.clubCode}}, &players)
	return players, err
}

// MatchesForTeam returns a team's fixtures
func (c *HTTPClient) MatchesForTeam(ctx context.Context, team Team) ([]Match, error) {
	var matches []Match
	err := c.getList(ctx, "/rencontres", url.Values{"equipe": {team.ID}}, &matches)
	return matches, err
}

// PlayerDetail returns the enrichment record for a license, or nil when
// the federation has none
func (c *HTTPClient) PlayerDetail(ctx context.Context, license string) (*PlayerDetail, error) {
	body, status, err := c.get(ctx, "/joueur", url.Values{"licence": {license}})
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound || len(body) == 0 {
		return nil, nil
	}
	var detail PlayerDetail
	if err := json.Unmarshal(body, &detail); err != nil {
		return nil, fmt.Errorf("decoding player detail %s: %w", license, err)
	}
	if detail.License == "" {
		return nil, nil
	}
	return &detail, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, query url.Values) ([]byte, int, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusNotFound {
		return nil, resp.StatusCode, fmt.Errorf("federation %s: status %d", path, resp.StatusCode)
	}
	return buf, resp.StatusCode, nil
}

// getList decodes a list endpoint. The gateway returns a bare array for
// multi-row results but a single object when only one row matches, so
// both shapes are accepted here and nowhere else.
func (c *HTTPClient) getList(ctx context.Context, path string, query url.Values, out any) error {
	body, status, err := c.get(ctx, path, query)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err == nil {
		return nil
	}
	wrapped := make([]byte, 0, len(body)+2)
	wrapped = append(wrapped, '[')
	wrapped = append(wrapped, body...)
	wrapped = append(wrapped, ']')
	return json.Unmarshal(wrapped, out)
}
