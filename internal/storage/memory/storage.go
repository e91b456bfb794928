package memory

import (
	"context"
	"sync"

	"github.com/plebrun/ttroster/internal/model"
	"github.com/plebrun/ttroster/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players      map[model.LicenseID]*model.Player
	teams        map[model.TeamID]*model.Team
	matches      map[model.TeamID][]model.Match
	compositions map[model.CompositionKey]*model.Composition
	defaults     map[model.DefaultsKey]*model.DefaultComposition
	availability map[model.CompositionKey]*model.Availability
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:      make(map[model.LicenseID]*model.Player),
		teams:        make(map[model.TeamID]*model.Team),
		matches:      make(map[model.TeamID][]model.Match),
		compositions: make(map[model.CompositionKey]*model.Composition),
		defaults:     make(map[model.DefaultsKey]*model.DefaultComposition),
		availability: make(map[model.CompositionKey]*model.Availability),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.License] = player
	return nil
}

func (s *Storage) SavePlayers(ctx context.Context, players []*model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range players {
		s.players[p.License] = p
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.LicenseID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*model.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	return players, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.LicenseID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Team operations

func (s *Storage) SaveTeam(ctx context.Context, team *model.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[team.ID] = team
	return nil
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	team, ok := s.teams[id]
	if !ok {
		return nil, model.ErrTeamNotFound
	}
	return team, nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	teams := make([]*model.Team, 0, len(s.teams))
	for _, t := range s.teams {
		teams = append(teams, t)
	}
	return teams, nil
}

// Match operations

func (s *Storage) SaveMatches(ctx context.Context, teamID model.TeamID, matches []model.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[teamID] = matches
	return nil
}

func (s *Storage) GetMatchesForTeam(ctx context.Context, teamID model.TeamID) ([]model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.matches[teamID], nil
}

// Composition operations

func (s *Storage) SaveComposition(ctx context.Context, comp *model.Composition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compositions[comp.Key] = comp
	return nil
}

func (s *Storage) GetComposition(ctx context.Context, key model.CompositionKey) (*model.Composition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comp, ok := s.compositions[key]
	if !ok {
		return nil, model.ErrCompositionNotFound
	}
	return comp, nil
}

// Default composition operations

func (s *Storage) SaveDefaults(ctx context.Context, defaults *model.DefaultComposition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults[defaults.Key] = defaults
	return nil
}

func (s *Storage) GetDefaults(ctx context.Context, key model.DefaultsKey) (*model.DefaultComposition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	defaults, ok := s.defaults[key]
	if !ok {
		return nil, model.ErrDefaultsNotFound
	}
	return defaults, nil
}

// Availability operations

func (s *Storage) SaveAvailability(ctx context.Context, avail *model.Availability) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.availability[avail.Key] = avail
	return nil
}

func (s *Storage) GetAvailability(ctx context.Context, key model.CompositionKey) (*model.Availability, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	avail, ok := s.availability[key]
	if !ok {
		return nil, model.ErrAvailabilityNotFound
	}
	return avail, nil
}
