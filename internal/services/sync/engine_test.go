package sync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/plebrun/ttroster/internal/dependencies/mocks"
	"github.com/plebrun/ttroster/internal/federation"
	"github.com/plebrun/ttroster/internal/model"
	"github.com/plebrun/ttroster/internal/storage/memory"
	"github.com/plebrun/ttroster/internal/testutil"
)

type EngineSuite struct {
	suite.Suite
	storage  *memory.Storage
	fed      *mocks.MockFederation
	notifier *mocks.MockNotifier
	clock    *mocks.MockClock
	ctx      context.Context
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.storage = memory.New()
	s.fed = mocks.NewMockFederation()
	s.notifier = mocks.NewMockNotifier()
	s.clock = mocks.NewMockClock(time.Date(2026, 9, 20, 10, 0, 0, 0, time.UTC))
	s.ctx = context.Background()
}

func (s *EngineSuite) engine(cfg Config) *Engine {
	return NewEngine(s.storage, s.fed, s.notifier, s.clock, testutil.NopLogger(), cfg)
}

func (s *EngineSuite) seedFederation() {
	s.fed.Teams = []federation.Team{
		{ID: "t1", Name: "CLUB 1", Division: "Régionale 1"},
		{ID: "t2", Name: "CLUB 2", Division: "Régionale 2"},
	}
	s.fed.Players = []federation.Player{
		{License: "100", FirstName: "Jean", LastName: "Dupont", Points: "1450", Nationality: "F", Gender: "M"},
		{License: "101", FirstName: "Marie", LastName: "Durand", Points: "980", Nationality: "F", Gender: "F"},
	}
	s.fed.MatchesByTeam = map[string][]federation.Match{
		"t1": {
			{
				ID:          "m1",
				Label:       "Journée 1",
				Phase:       "1",
				DatePlanned: "20/09/2026",
				ScoreHome:   "8",
				ScoreAway:   "6",
				OwnPlayers:  []federation.MatchPlayer{{License: "100"}},
			},
		},
		"t2": {
			{
				ID:          "m2",
				Label:       "Journée 1",
				Phase:       "1",
				DatePlanned: "21/09/2026",
				OwnPlayers:  []federation.MatchPlayer{{License: "100"}},
			},
		},
	}
}

func (s *EngineSuite) TestRunSyncsEverything() {
	s.seedFederation()

	report, err := s.engine(DefaultConfig()).Run(s.ctx)
	s.Require().NoError(err)
	s.True(report.Success)
	s.NotEmpty(report.RunID)
	s.Equal(2, report.Teams)
	s.Equal(2, report.Players)
	s.Equal(2, report.Matches)

	teams, err := s.storage.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Len(teams, 2)

	player, err := s.storage.GetPlayer(s.ctx, "100")
	s.Require().NoError(err)
	s.Equal("Jean Dupont", player.DisplayName)

	matches, err := s.storage.GetMatchesForTeam(s.ctx, "t1")
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.True(matches[0].Played)
}

func (s *EngineSuite) TestRunMaterializesBurnState() {
	s.seedFederation()

	_, err := s.engine(DefaultConfig()).Run(s.ctx)
	s.Require().NoError(err)

	// Player 100 appeared in both CLUB 1 and CLUB 2: the 2nd match burns
	// them into team 2
	player, err := s.storage.GetPlayer(s.ctx, "100")
	s.Require().NoError(err)
	s.Equal(2, player.BurnedTeamNumber(model.ContextMasculine, model.PhaseAller))

	// Player 101 has not played: no burn cache at all
	player, err = s.storage.GetPlayer(s.ctx, "101")
	s.Require().NoError(err)
	s.Nil(player.BurnedTeam)
}

func (s *EngineSuite) TestRunAppliesPlayerDetails() {
	s.seedFederation()
	s.fed.Details["100"] = &federation.PlayerDetail{ExactPoints: "1462"}

	_, err := s.engine(DefaultConfig()).Run(s.ctx)
	s.Require().NoError(err)

	player, err := s.storage.GetPlayer(s.ctx, "100")
	s.Require().NoError(err)
	s.Equal(1462, player.Rating())

	s.Len(s.fed.DetailCalls, 2)
}

func (s *EngineSuite) TestRunPreservesUserManagedFields() {
	s.seedFederation()
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{
		License:       "100",
		DisplayName:   "Old Name",
		ChatMentionID: "<@jean>",
		Wheelchair:    true,
		CreatedAt:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}))
	s.Require().NoError(s.storage.SaveTeam(s.ctx, &model.Team{
		ID:        "t1",
		Name:      "CLUB 1",
		VenueID:   "gym-3",
		ChannelID: "chan-1",
		CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}))

	_, err := s.engine(DefaultConfig()).Run(s.ctx)
	s.Require().NoError(err)

	player, err := s.storage.GetPlayer(s.ctx, "100")
	s.Require().NoError(err)
	s.Equal("Jean Dupont", player.DisplayName)
	s.Equal("<@jean>", player.ChatMentionID)
	s.True(player.Wheelchair)
	s.Equal(2025, player.CreatedAt.Year())

	team, err := s.storage.GetTeam(s.ctx, "t1")
	s.Require().NoError(err)
	s.Equal("gym-3", team.VenueID)
	s.Equal("chan-1", team.ChannelID)
	s.Equal(2025, team.CreatedAt.Year())
	s.Equal(s.clock.CurrentTime, team.UpdatedAt)
}

func (s *EngineSuite) TestRunReplacesTemporaryPlayer() {
	s.seedFederation()
	s.Require().NoError(s.storage.SavePlayer(s.ctx, &model.Player{
		License:       "100",
		DisplayName:   "Placeholder",
		Temporary:     true,
		ChatMentionID: "<@placeholder>",
	}))

	_, err := s.engine(DefaultConfig()).Run(s.ctx)
	s.Require().NoError(err)

	player, err := s.storage.GetPlayer(s.ctx, "100")
	s.Require().NoError(err)
	s.False(player.Temporary)
	s.Empty(player.ChatMentionID)
}

func (s *EngineSuite) TestRunNotifiesWhenConfigured() {
	s.seedFederation()
	cfg := DefaultConfig()
	cfg.NotifyChannelID = "chan-sync"

	_, err := s.engine(cfg).Run(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(s.notifier.Messages, 1)
	s.Equal("chan-sync", s.notifier.Messages[0].ChannelID)
	s.Contains(s.notifier.Messages[0].Content, "2 teams")
}

func (s *EngineSuite) TestRunNoNotificationByDefault() {
	s.seedFederation()

	_, err := s.engine(DefaultConfig()).Run(s.ctx)
	s.Require().NoError(err)
	s.Empty(s.notifier.Messages)
}

func (s *EngineSuite) TestRunReportsFetchFailure() {
	s.fed.Err = errors.New("gateway timeout")

	report, err := s.engine(DefaultConfig()).Run(s.ctx)
	s.Require().Error(err)
	s.False(report.Success)
	s.Contains(report.Error, "gateway timeout")
	s.Empty(s.notifier.Messages)
}

func (s *EngineSuite) TestRunToleratesDetailErrors() {
	s.seedFederation()

	// Details are enriched after the roster fetch; per-player failures
	// must not abort the run. The mock returns nil details, which the
	// real client also does for missing records.
	report, err := s.engine(DefaultConfig()).Run(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, report.Players)
}
