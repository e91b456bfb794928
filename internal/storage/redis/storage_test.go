package redis

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/plebrun/ttroster/internal/model"
	"github.com/plebrun/ttroster/internal/storage"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func dayKey(journee int) model.CompositionKey {
	return model.CompositionKey{
		Epreuve:  model.EpreuveChampionnat,
		Phase:    model.PhaseAller,
		Journee:  journee,
		Category: model.CategoryMasculine,
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	points := 1450
	player := &model.Player{
		License:     "100",
		DisplayName: "Jean Dupont",
		Nationality: model.NationalityFrench,
		Gender:      model.GenderMale,
		Points:      &points,
		BurnedTeam: map[model.RuleContext]map[model.Phase]int{
			model.ContextMasculine: {model.PhaseAller: 2},
		},
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "100")
	s.Require().NoError(err)
	s.Equal(player.DisplayName, retrieved.DisplayName)
	s.Equal(1450, retrieved.Rating())
	s.Equal(2, retrieved.BurnedTeamNumber(model.ContextMasculine, model.PhaseAller))
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestSavePlayersPipelined() {
	// More players than one pipeline chunk carries
	players := make([]*model.Player, storage.MaxWriteBatch+10)
	for i := range players {
		players[i] = &model.Player{License: model.LicenseID("lic-" + strconv.Itoa(i))}
	}

	err := s.storage.SavePlayers(s.ctx, players)
	s.Require().NoError(err)

	listed, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Len(listed, len(players))
}

func (s *StorageSuite) TestDeletePlayerAlsoDropsIndexEntry() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{License: "100"})

	err := s.storage.DeletePlayer(s.ctx, "100")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "100")
	s.ErrorIs(err, model.ErrPlayerNotFound)

	listed, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Empty(listed)
}

func (s *StorageSuite) TestListPlayersSkipsStaleIndexEntries() {
	_ = s.storage.SavePlayer(s.ctx, &model.Player{License: "100"})
	_ = s.storage.SavePlayer(s.ctx, &model.Player{License: "101"})

	// Drop the document but leave the index entry behind
	s.mini.Del(playerKey("101"))

	listed, err := s.storage.ListPlayers(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal(model.LicenseID("100"), listed[0].License)
}

// Team tests

func (s *StorageSuite) TestSaveAndGetTeam() {
	team := &model.Team{
		ID:       "t1",
		Name:     "CLUB 1",
		Division: "Régionale 1",
		Category: model.CategoryFeminine,
		Epreuve:  model.EpreuveChampionnat,
		VenueID:  "gym-3",
	}

	err := s.storage.SaveTeam(s.ctx, team)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetTeam(s.ctx, "t1")
	s.Require().NoError(err)
	s.Equal(team.Name, retrieved.Name)
	s.Equal(team.Category, retrieved.Category)
	s.Equal(team.VenueID, retrieved.VenueID)
}

func (s *StorageSuite) TestGetTeamNotFound() {
	_, err := s.storage.GetTeam(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrTeamNotFound)
}

func (s *StorageSuite) TestListTeams() {
	_ = s.storage.SaveTeam(s.ctx, &model.Team{ID: "t1", Name: "CLUB 1"})
	_ = s.storage.SaveTeam(s.ctx, &model.Team{ID: "t2", Name: "CLUB 2"})

	teams, err := s.storage.ListTeams(s.ctx)
	s.Require().NoError(err)
	s.Len(teams, 2)
}

// Match tests

func (s *StorageSuite) TestSaveMatchesReplacesWholesale() {
	err := s.storage.SaveMatches(s.ctx, "t1", []model.Match{{ID: "m1"}, {ID: "m2"}})
	s.Require().NoError(err)
	err = s.storage.SaveMatches(s.ctx, "t1", []model.Match{{ID: "m3"}})
	s.Require().NoError(err)

	matches, err := s.storage.GetMatchesForTeam(s.ctx, "t1")
	s.Require().NoError(err)
	s.Require().Len(matches, 1)
	s.Equal("m3", matches[0].ID)
}

func (s *StorageSuite) TestGetMatchesForUnknownTeam() {
	matches, err := s.storage.GetMatchesForTeam(s.ctx, "t1")
	s.Require().NoError(err)
	s.Empty(matches)
}

// Composition tests

func (s *StorageSuite) TestSaveAndGetComposition() {
	comp := model.NewComposition(dayKey(3))
	comp.Assign("t1", "100")
	comp.Assign("t1", "101")

	err := s.storage.SaveComposition(s.ctx, comp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetComposition(s.ctx, dayKey(3))
	s.Require().NoError(err)
	s.Equal([]model.LicenseID{"100", "101"}, retrieved.Roster("t1"))
}

func (s *StorageSuite) TestGetCompositionNotFound() {
	_, err := s.storage.GetComposition(s.ctx, dayKey(3))
	s.ErrorIs(err, model.ErrCompositionNotFound)
}

// Defaults tests

func (s *StorageSuite) TestSaveAndGetDefaults() {
	defaults := &model.DefaultComposition{
		Key: model.DefaultsKey{Phase: model.PhaseAller, Category: model.CategoryMasculine},
		Teams: map[model.TeamID][]model.LicenseID{
			"t1": {"100"},
		},
	}

	err := s.storage.SaveDefaults(s.ctx, defaults)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetDefaults(s.ctx, defaults.Key)
	s.Require().NoError(err)
	s.Equal(defaults.Teams, retrieved.Teams)
}

func (s *StorageSuite) TestGetDefaultsNotFound() {
	_, err := s.storage.GetDefaults(s.ctx, model.DefaultsKey{Phase: model.PhaseRetour, Category: model.CategoryFeminine})
	s.ErrorIs(err, model.ErrDefaultsNotFound)
}

// Availability tests

func (s *StorageSuite) TestSaveAndGetAvailability() {
	avail := model.NewAvailability(dayKey(3))
	avail.Set("100", true, "")
	avail.Set("101", false, "injured")

	err := s.storage.SaveAvailability(s.ctx, avail)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetAvailability(s.ctx, dayKey(3))
	s.Require().NoError(err)
	s.True(retrieved.IsAvailable("100"))
	s.False(retrieved.IsAvailable("101"))
	s.Equal("injured", retrieved.Responses["101"].Comment)
}

func (s *StorageSuite) TestGetAvailabilityNotFound() {
	_, err := s.storage.GetAvailability(s.ctx, dayKey(3))
	s.ErrorIs(err, model.ErrAvailabilityNotFound)
}
