package storage

import (
	"context"

	"github.com/plebrun/ttroster/internal/model"
)

// MaxWriteBatch is the largest number of documents a single batched write
// may carry; implementations must chunk larger inputs
const MaxWriteBatch = 500

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	// SavePlayers persists many players, chunked at MaxWriteBatch
	SavePlayers(ctx context.Context, players []*model.Player) error
	GetPlayer(ctx context.Context, id model.LicenseID) (*model.Player, error)
	ListPlayers(ctx context.Context) ([]*model.Player, error)
	DeletePlayer(ctx context.Context, id model.LicenseID) error

	// Team operations
	SaveTeam(ctx context.Context, team *model.Team) error
	GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error)
	ListTeams(ctx context.Context) ([]*model.Team, error)

	// Match operations: matches are stored per team and replaced wholesale
	// on every sync
	SaveMatches(ctx context.Context, teamID model.TeamID, matches []model.Match) error
	GetMatchesForTeam(ctx context.Context, teamID model.TeamID) ([]model.Match, error)

	// Composition operations
	SaveComposition(ctx context.Context, comp *model.Composition) error
	GetComposition(ctx context.Context, key model.CompositionKey) (*model.Composition, error)

	// Default composition operations
	SaveDefaults(ctx context.Context, defaults *model.DefaultComposition) error
	GetDefaults(ctx context.Context, key model.DefaultsKey) (*model.DefaultComposition, error)

	// Availability operations
	SaveAvailability(ctx context.Context, avail *model.Availability) error
	GetAvailability(ctx context.Context, key model.CompositionKey) (*model.Availability, error)
}
