package defaults

import (
	"context"
	"errors"
	"log/slog"

	"github.com/plebrun/ttroster/internal/dependencies/clock"
	"github.com/plebrun/ttroster/internal/model"
	"github.com/plebrun/ttroster/internal/storage"
)

// Service loads templates and availability from storage, runs the engine
// and persists the resulting compositions
type Service struct {
	storage storage.Storage
	engine  *Engine
	clock   clock.Clock
	logger  *slog.Logger
}

// NewService creates a new defaults service
func NewService(store storage.Storage, engine *Engine, clk clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: store,
		engine:  engine,
		clock:   clk,
		logger:  logger,
	}
}

// ApplyToJournee applies the saved templates of both categories to one
// match day and persists every produced composition. All compositions are
// computed before the first write.
func (s *Service) ApplyToJournee(ctx context.Context, epreuve model.Epreuve, phase model.Phase, journee int) (map[model.CompositionKey]*model.Composition, error) {
	players, err := s.listPlayers(ctx)
	if err != nil {
		return nil, err
	}
	teams, err := s.listTeams(ctx)
	if err != nil {
		return nil, err
	}

	templates := make(map[model.Category]*model.DefaultComposition)
	avails := make(map[model.Category]*model.Availability)
	for _, category := range []model.Category{model.CategoryMasculine, model.CategoryFeminine} {
		template, err := s.storage.GetDefaults(ctx, model.DefaultsKey{Phase: phase, Category: category})
		if err != nil && !errors.Is(err, model.ErrDefaultsNotFound) {
			return nil, err
		}
		templates[category] = template

		avail, err := s.storage.GetAvailability(ctx, model.CompositionKey{
			Epreuve:  epreuve,
			Phase:    phase,
			Journee:  journee,
			Category: category,
		})
		if err != nil && !errors.Is(err, model.ErrAvailabilityNotFound) {
			return nil, err
		}
		avails[category] = avail
	}

	compositions := s.engine.ApplyForJournee(templates, avails, players, teams, epreuve, phase, journee)

	for _, comp := range compositions {
		comp.UpdatedAt = s.clock.Now()
		if err := s.storage.SaveComposition(ctx, comp); err != nil {
			return nil, err
		}
	}

	s.logger.Info("defaults applied",
		slog.String("epreuve", string(epreuve)),
		slog.String("phase", string(phase)),
		slog.Int("journee", journee),
		slog.Int("compositions", len(compositions)),
	)

	return compositions, nil
}

func (s *Service) listPlayers(ctx context.Context) (map[model.LicenseID]*model.Player, error) {
	players, err := s.storage.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[model.LicenseID]*model.Player, len(players))
	for _, p := range players {
		out[p.License] = p
	}
	return out, nil
}

func (s *Service) listTeams(ctx context.Context) (map[model.TeamID]*model.Team, error) {
	teams, err := s.storage.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[model.TeamID]*model.Team, len(teams))
	for _, t := range teams {
		out[t.ID] = t
	}
	return out, nil
}
