package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/plebrun/ttroster/internal/model"
	"github.com/plebrun/ttroster/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client, cfg: cfg}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{client: client, cfg: cfg}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, 0).Err()
}

func (s *Storage) getJSON(ctx context.Context, key string, v any, notFound error) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return notFound
		}
		return err
	}
	return json.Unmarshal(data, v)
}

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	if err := s.setJSON(ctx, playerKey(player.License), player); err != nil {
		return err
	}
	return s.client.SAdd(ctx, playersIndexKey(), string(player.License)).Err()
}

// SavePlayers persists many players through pipelines chunked at
// storage.MaxWriteBatch operations
func (s *Storage) SavePlayers(ctx context.Context, players []*model.Player) error {
	for start := 0; start < len(players); start += storage.MaxWriteBatch {
		end := start + storage.MaxWriteBatch
		if end > len(players) {
			end = len(players)
		}

		pipe := s.client.Pipeline()
		for _, p := range players[start:end] {
			data, err := json.Marshal(p)
			if err != nil {
				return err
			}
			pipe.Set(ctx, playerKey(p.License), data, 0)
			pipe.SAdd(ctx, playersIndexKey(), string(p.License))
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.LicenseID) (*model.Player, error) {
	var player model.Player
	if err := s.getJSON(ctx, playerKey(id), &player, model.ErrPlayerNotFound); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) ListPlayers(ctx context.Context) ([]*model.Player, error) {
	ids, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	players := make([]*model.Player, 0, len(ids))
	for _, id := range ids {
		player, err := s.GetPlayer(ctx, model.LicenseID(id))
		if errors.Is(err, model.ErrPlayerNotFound) {
			// Stale index entry
			continue
		}
		if err != nil {
			return nil, err
		}
		players = append(players, player)
	}
	return players, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.LicenseID) error {
	if err := s.client.Del(ctx, playerKey(id)).Err(); err != nil {
		return err
	}
	return s.client.SRem(ctx, playersIndexKey(), string(id)).Err()
}

// Team operations

func (s *Storage) SaveTeam(ctx context.Context, team *model.Team) error {
	if err := s.setJSON(ctx, teamKey(team.ID), team); err != nil {
		return err
	}
	return s.client.SAdd(ctx, teamsIndexKey(), string(team.ID)).Err()
}

func (s *Storage) GetTeam(ctx context.Context, id model.TeamID) (*model.Team, error) {
	var team model.Team
	if err := s.getJSON(ctx, teamKey(id), &team, model.ErrTeamNotFound); err != nil {
		return nil, err
	}
	return &team, nil
}

func (s *Storage) ListTeams(ctx context.Context) ([]*model.Team, error) {
	ids, err := s.client.SMembers(ctx, teamsIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	teams := make([]*model.Team, 0, len(ids))
	for _, id := range ids {
		team, err := s.GetTeam(ctx, model.TeamID(id))
		if errors.Is(err, model.ErrTeamNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}

// Match operations

func (s *Storage) SaveMatches(ctx context.Context, teamID model.TeamID, matches []model.Match) error {
	return s.setJSON(ctx, matchesKey(teamID), matches)
}

func (s *Storage) GetMatchesForTeam(ctx context.Context, teamID model.TeamID) ([]model.Match, error) {
	var matches []model.Match
	err := s.getJSON(ctx, matchesKey(teamID), &matches, nil)
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// Composition operations

func (s *Storage) SaveComposition(ctx context.Context, comp *model.Composition) error {
	return s.setJSON(ctx, compositionKey(comp.Key), comp)
}

func (s *Storage) GetComposition(ctx context.Context, key model.CompositionKey) (*model.Composition, error) {
	var comp model.Composition
	if err := s.getJSON(ctx, compositionKey(key), &comp, model.ErrCompositionNotFound); err != nil {
		return nil, err
	}
	return &comp, nil
}

// Default composition operations

func (s *Storage) SaveDefaults(ctx context.Context, defaults *model.DefaultComposition) error {
	return s.setJSON(ctx, defaultsKey(defaults.Key), defaults)
}

func (s *Storage) GetDefaults(ctx context.Context, key model.DefaultsKey) (*model.DefaultComposition, error) {
	var defaults model.DefaultComposition
	if err := s.getJSON(ctx, defaultsKey(key), &defaults, model.ErrDefaultsNotFound); err != nil {
		return nil, err
	}
	return &defaults, nil
}

// Availability operations

func (s *Storage) SaveAvailability(ctx context.Context, avail *model.Availability) error {
	return s.setJSON(ctx, availabilityKey(avail.Key), avail)
}

func (s *Storage) GetAvailability(ctx context.Context, key model.CompositionKey) (*model.Availability, error) {
	var avail model.Availability
	if err := s.getJSON(ctx, availabilityKey(key), &avail, model.ErrAvailabilityNotFound); err != nil {
		return nil, err
	}
	return &avail, nil
}
