package lineup

import (
	"context"
	"errors"
	"log/slog"

	"github.com/plebrun/ttroster/internal/dependencies/clock"
	"github.com/plebrun/ttroster/internal/model"
	"github.com/plebrun/ttroster/internal/services/classify"
	"github.com/plebrun/ttroster/internal/storage"
)

// Service runs the pure validators against the latest stored state and
// owns the validate-then-commit cycle for assignments
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// NewService creates a new lineup service
func NewService(store storage.Storage, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		clock:   clk,
		logger:  logger,
	}
}

// LoadSnapshot reads the current players, teams and compositions for one
// match day into an immutable validation snapshot
func (s *Service) LoadSnapshot(ctx context.Context, key model.CompositionKey) (Snapshot, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	teams, err := s.storage.ListTeams(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{
		Players: make(map[model.LicenseID]*model.Player, len(players)),
		Teams:   make(map[model.TeamID]*model.Team, len(teams)),
	}
	for _, p := range players {
		snap.Players[p.License] = p
	}
	for _, t := range teams {
		snap.Teams[t.ID] = t
	}

	current, err := s.storage.GetComposition(ctx, key)
	if err != nil && !errors.Is(err, model.ErrCompositionNotFound) {
		return Snapshot{}, err
	}
	if current == nil {
		current = model.NewComposition(key)
	}
	snap.Current = current

	// The day-2 rule needs the day-1 composition of the same phase
	if key.Journee == dayTwoJournee && key.Epreuve != model.EpreuveParis {
		dayOneKey := key
		dayOneKey.Journee = 1
		dayOne, err := s.storage.GetComposition(ctx, dayOneKey)
		if err != nil && !errors.Is(err, model.ErrCompositionNotFound) {
			return Snapshot{}, err
		}
		snap.DayOne = dayOne
	}

	return snap, nil
}

// CheckAssignment validates a candidate assignment against the latest
// stored state without committing anything
func (s *Service) CheckAssignment(ctx context.Context, key model.CompositionKey, playerID model.LicenseID, teamID model.TeamID) (Decision, error) {
	snap, err := s.LoadSnapshot(ctx, key)
	if err != nil {
		return Decision{}, err
	}
	team := snap.team(teamID)
	if team == nil {
		return Decision{}, model.ErrTeamNotFound
	}
	return CanAssign(snap, playerID, teamID, key.Phase, key.Journee, classify.MaxPlayersForTeam(*team)), nil
}

// CommitAssignment re-reads the latest state, validates the assignment
// against it and writes the updated composition only when the check still
// passes. This is the read-modify-write cycle that guards against lost
// updates from concurrent coaches.
func (s *Service) CommitAssignment(ctx context.Context, key model.CompositionKey, playerID model.LicenseID, teamID model.TeamID) (Decision, error) {
	snap, err := s.LoadSnapshot(ctx, key)
	if err != nil {
		return Decision{}, err
	}
	team := snap.team(teamID)
	if team == nil {
		return Decision{}, model.ErrTeamNotFound
	}

	decision := CanAssign(snap, playerID, teamID, key.Phase, key.Journee, classify.MaxPlayersForTeam(*team))
	if !decision.CanAssign {
		return decision, nil
	}

	comp := snap.Current
	comp.Assign(teamID, playerID)
	comp.UpdatedAt = s.clock.Now()
	if err := s.storage.SaveComposition(ctx, comp); err != nil {
		return Decision{}, err
	}

	s.logger.Info("assignment committed",
		slog.String("player", string(playerID)),
		slog.String("team", string(teamID)),
		slog.Int("journee", key.Journee),
		slog.String("phase", string(key.Phase)),
	)

	return decision, nil
}

// RemovePlayer drops the player from the match day's composition
func (s *Service) RemovePlayer(ctx context.Context, key model.CompositionKey, playerID model.LicenseID) error {
	comp, err := s.storage.GetComposition(ctx, key)
	if errors.Is(err, model.ErrCompositionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	comp.Remove(playerID)
	comp.UpdatedAt = s.clock.Now()
	return s.storage.SaveComposition(ctx, comp)
}

// TeamState recomputes the aggregate validity of a team's current roster,
// with the availability cross-check merged in
func (s *Service) TeamState(ctx context.Context, key model.CompositionKey, teamID model.TeamID) (StateResult, error) {
	snap, err := s.LoadSnapshot(ctx, key)
	if err != nil {
		return StateResult{}, err
	}
	team := snap.team(teamID)
	if team == nil {
		return StateResult{}, model.ErrTeamNotFound
	}

	result := ValidateTeamState(snap, teamID, key.Phase, key.Journee, classify.MaxPlayersForTeam(*team))

	avail, err := s.storage.GetAvailability(ctx, key)
	if err != nil && !errors.Is(err, model.ErrAvailabilityNotFound) {
		return StateResult{}, err
	}
	return ApplyAvailability(result, snap, teamID, avail), nil
}
