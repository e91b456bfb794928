// Package sync pulls the club's teams, players and matches from the
// federation and rebuilds the materialized burn state.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/plebrun/ttroster/internal/dependencies/clock"
	"github.com/plebrun/ttroster/internal/federation"
	"github.com/plebrun/ttroster/internal/model"
	"github.com/plebrun/ttroster/internal/notify"
	"github.com/plebrun/ttroster/internal/services/classify"
	"github.com/plebrun/ttroster/internal/storage"
)

// Config holds sync tuning knobs
type Config struct {
	// MatchFetchConcurrency bounds simultaneous per-team match fetches
	MatchFetchConcurrency int
	// DetailPoolSize bounds the player-detail enrichment worker pool
	DetailPoolSize int
	// NotifyChannelID, when set, receives a summary message after a
	// completed sync
	NotifyChannelID string
}

// DefaultConfig returns the standard pool sizes
func DefaultConfig() Config {
	return Config{
		MatchFetchConcurrency: 5,
		DetailPoolSize:        50,
	}
}

// Report summarizes one sync run. A failed run still reports the counts
// written before the failure.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Teams      int
	Players    int
	Matches    int
	Success    bool
	Error      string
}

// Engine orchestrates the bulk federation sync
type Engine struct {
	storage  storage.Storage
	fed      federation.Client
	notifier notify.Notifier
	clock    clock.Clock
	logger   *slog.Logger
	cfg      Config
}

// NewEngine creates a new sync engine
func NewEngine(store storage.Storage, fed federation.Client, notifier notify.Notifier, clk clock.Clock, logger *slog.Logger, cfg Config) *Engine {
	if cfg.MatchFetchConcurrency <= 0 {
		cfg.MatchFetchConcurrency = DefaultConfig().MatchFetchConcurrency
	}
	if cfg.DetailPoolSize <= 0 {
		cfg.DetailPoolSize = DefaultConfig().DetailPoolSize
	}
	return &Engine{
		storage:  store,
		fed:      fed,
		notifier: notifier,
		clock:    clk,
		logger:   logger,
		cfg:      cfg,
	}
}

// Run performs a full sync: teams, matches, players, burn state. Errors
// are reported through the Report; writes completed before a failure are
// preserved.
func (e *Engine) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: e.clock.Now(),
	}
	e.logger.Info("sync started", slog.String("run_id", report.RunID))

	err := e.run(ctx, report)
	report.FinishedAt = e.clock.Now()
	report.Success = err == nil
	if err != nil {
		report.Error = err.Error()
		e.logger.Error("sync failed",
			slog.String("run_id", report.RunID),
			slog.String("error", err.Error()),
		)
		return report, err
	}

	e.logger.Info("sync finished",
		slog.String("run_id", report.RunID),
		slog.Int("teams", report.Teams),
		slog.Int("players", report.Players),
		slog.Int("matches", report.Matches),
	)
	e.notifySummary(ctx, report)
	return report, nil
}

func (e *Engine) run(ctx context.Context, report *Report) error {
	rawTeams, err := e.fed.TeamsForClub(ctx)
	if err != nil {
		return fmt.Errorf("fetching teams: %w", err)
	}
	rawPlayers, err := e.fed.PlayersForClub(ctx)
	if err != nil {
		return fmt.Errorf("fetching players: %w", err)
	}

	teams, matchesByTeam, err := e.syncTeams(ctx, rawTeams)
	if err != nil {
		return err
	}
	report.Teams = len(teams)
	for _, matches := range matchesByTeam {
		report.Matches += len(matches)
	}

	players, err := e.buildPlayers(ctx, rawPlayers)
	if err != nil {
		return err
	}

	counts := accumulateCounts(teams, matchesByTeam)
	for _, player := range players {
		applyBurnState(player, counts[player.License])
	}

	if err := e.storage.SavePlayers(ctx, players); err != nil {
		return fmt.Errorf("saving players: %w", err)
	}
	report.Players = len(players)
	return nil
}

// syncTeams fetches every team's matches with bounded concurrency,
// normalizes them, and persists teams and matches
func (e *Engine) syncTeams(ctx context.Context, rawTeams []federation.Team) ([]*model.Team, map[model.TeamID][]model.Match, error) {
	teams := make([]*model.Team, len(rawTeams))
	matchLists := make([][]model.Match, len(rawTeams))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.MatchFetchConcurrency)
	for i, raw := range rawTeams {
		i, raw := i, raw
		g.Go(func() error {
			rawMatches, err := e.fed.MatchesForTeam(gCtx, raw)
			if err != nil {
				return fmt.Errorf("fetching matches for %s: %w", raw.Name, err)
			}

			team := adaptTeam(raw)
			matches := make([]model.Match, 0, len(rawMatches))
			for _, rm := range rawMatches {
				matches = append(matches, adaptMatch(rm, team.ID))
			}
			assignJournees(matches)

			team.Category = classify.TeamCategory(matches)
			if classify.IsParisChampionship(*team, matches) {
				team.Epreuve = model.EpreuveParis
			} else {
				team.Epreuve = model.EpreuveChampionnat
			}

			teams[i] = team
			matchLists[i] = matches
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	now := e.clock.Now()
	matchesByTeam := make(map[model.TeamID][]model.Match, len(teams))
	for i, team := range teams {
		e.mergeTeam(ctx, team, now)
		if err := e.storage.SaveTeam(ctx, team); err != nil {
			return nil, nil, fmt.Errorf("saving team %s: %w", team.Name, err)
		}
		if err := e.storage.SaveMatches(ctx, team.ID, matchLists[i]); err != nil {
			return nil, nil, fmt.Errorf("saving matches for %s: %w", team.Name, err)
		}
		matchesByTeam[team.ID] = matchLists[i]
	}
	return teams, matchesByTeam, nil
}

// mergeTeam preserves the user-managed fields of an already-stored team
func (e *Engine) mergeTeam(ctx context.Context, team *model.Team, now time.Time) {
	existing, err := e.storage.GetTeam(ctx, team.ID)
	if err == nil {
		team.VenueID = existing.VenueID
		team.ChannelID = existing.ChannelID
		team.CreatedAt = existing.CreatedAt
	} else {
		team.CreatedAt = now
	}
	team.UpdatedAt = now
}

// buildPlayers adapts the roster, enriches each player through a bounded
// worker pool, and merges user-managed fields from stored records
func (e *Engine) buildPlayers(ctx context.Context, rawPlayers []federation.Player) ([]*model.Player, error) {
	players := make([]*model.Player, len(rawPlayers))
	for i, raw := range rawPlayers {
		players[i] = adaptPlayer(raw)
	}

	// Drain the enrichment queue through a fixed-width pool; new requests
	// replace completed ones until the queue is empty. Missing detail
	// records are tolerated.
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.DetailPoolSize)
	for _, player := range players {
		player := player
		g.Go(func() error {
			detail, err := e.fed.PlayerDetail(gCtx, string(player.License))
			if err != nil {
				e.logger.Warn("player detail unavailable",
					slog.String("license", string(player.License)),
					slog.String("error", err.Error()),
				)
				return nil
			}
			applyDetail(player, detail)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := e.clock.Now()
	for _, player := range players {
		e.mergePlayer(ctx, player, now)
	}
	return players, nil
}

// mergePlayer carries the user-managed fields and the existing burn
// caches over from the stored record, unless the stored record was marked
// temporary, in which case the sync fully replaces it and clears the flag
func (e *Engine) mergePlayer(ctx context.Context, player *model.Player, now time.Time) {
	existing, err := e.storage.GetPlayer(ctx, player.License)
	if err != nil {
		if !errors.Is(err, model.ErrPlayerNotFound) {
			e.logger.Warn("reading stored player",
				slog.String("license", string(player.License)),
				slog.String("error", err.Error()),
			)
		}
		player.CreatedAt = now
		player.UpdatedAt = now
		return
	}

	player.CreatedAt = existing.CreatedAt
	player.UpdatedAt = now

	if existing.Temporary {
		// Full overwrite; the temporary flag does not survive a sync
		player.Temporary = false
		return
	}

	player.ChatMentionID = existing.ChatMentionID
	player.ManualParticipation = existing.ManualParticipation
	player.Wheelchair = player.Wheelchair || existing.Wheelchair

	// Carry the stored caches so the tri-state update can distinguish
	// "explicit clear" from "never present"
	player.BurnedTeam = existing.BurnedTeam
	player.MatchCounts = existing.MatchCounts
}

func (e *Engine) notifySummary(ctx context.Context, report *Report) {
	if e.cfg.NotifyChannelID == "" || e.notifier == nil {
		return
	}
	msg := fmt.Sprintf("Sync done: %d teams, %d players, %d matches.",
		report.Teams, report.Players, report.Matches)
	if err := e.notifier.SendMessage(ctx, e.cfg.NotifyChannelID, msg); err != nil {
		e.logger.Warn("sync notification failed", slog.String("error", err.Error()))
	}
}
