package mocks

import (
	"context"
	"sync"

	"github.com/plebrun/ttroster/internal/federation"
)

// MockFederation is an in-memory federation client for testing
type MockFederation struct {
	mu sync.Mutex

	Teams   []federation.Team
	Players []federation.Player
	// MatchesByTeam maps a raw team id to its fixtures
	MatchesByTeam map[string][]federation.Match
	// Details maps a license to its enrichment record; absent licenses
	// return nil like the real client
	Details map[string]*federation.PlayerDetail

	// Err, when set, is returned by every call
	Err error

	// DetailCalls records the licenses detail lookups were made for
	DetailCalls []string
}

// Ensure MockFederation implements the interface
var _ federation.Client = (*MockFederation)(nil)

// NewMockFederation creates an empty mock federation client
func NewMockFederation() *MockFederation {
	return &MockFederation{
		MatchesByTeam: make(map[string][]federation.Match),
		Details:       make(map[string]*federation.PlayerDetail),
	}
}

// TeamsForClub returns the configured teams
func (m *MockFederation) TeamsForClub(ctx context.Context) ([]federation.Team, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Teams, nil
}

// PlayersForClub returns the configured players
func (m *MockFederation) PlayersForClub(ctx context.Context) ([]federation.Player, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Players, nil
}

// MatchesForTeam returns the configured fixtures for the team
func (m *MockFederation) MatchesForTeam(ctx context.Context, team federation.Team) ([]federation.Match, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.MatchesByTeam[team.ID], nil
}

// PlayerDetail returns the configured detail record, nil when absent
func (m *MockFederation) PlayerDetail(ctx context.Context, license string) (*federation.PlayerDetail, error) {
	m.mu.Lock()
	m.DetailCalls = append(m.DetailCalls, license)
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Details[license], nil
}
