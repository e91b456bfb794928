package sync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/plebrun/ttroster/internal/model"
)

type BurnStateSuite struct {
	suite.Suite
}

func TestBurnStateSuite(t *testing.T) {
	suite.Run(t, new(BurnStateSuite))
}

func playedMatch(epreuve model.Epreuve, phase model.Phase, female bool, players ...model.LicenseID) model.Match {
	return model.Match{
		Epreuve:    epreuve,
		Phase:      phase,
		IsFemale:   female,
		Date:       time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		Played:     true,
		OwnPlayers: players,
	}
}

func (s *BurnStateSuite) TestAccumulateCountsSkipsUnplayed() {
	teams := []*model.Team{{ID: "t1", Name: "CLUB 1"}}
	upcoming := playedMatch(model.EpreuveChampionnat, model.PhaseAller, false, "100")
	upcoming.Played = false

	counts := accumulateCounts(teams, map[model.TeamID][]model.Match{"t1": {upcoming}})
	s.Empty(counts)
}

func (s *BurnStateSuite) TestAccumulateCountsByContextAndPhase() {
	teams := []*model.Team{
		{ID: "t1", Name: "CLUB 1"},
		{ID: "t3", Name: "CLUB 3"},
	}
	matches := map[model.TeamID][]model.Match{
		"t1": {
			playedMatch(model.EpreuveChampionnat, model.PhaseAller, false, "100"),
			playedMatch(model.EpreuveChampionnat, model.PhaseRetour, false, "100"),
			playedMatch(model.EpreuveChampionnat, model.PhaseAller, true, "200"),
		},
		"t3": {
			playedMatch(model.EpreuveChampionnat, model.PhaseAller, false, "100"),
		},
	}

	counts := accumulateCounts(teams, matches)

	s.Equal(model.MatchCountByTeam{1: 1, 3: 1}, counts["100"][model.ContextMasculine][model.PhaseAller])
	s.Equal(model.MatchCountByTeam{1: 1}, counts["100"][model.ContextMasculine][model.PhaseRetour])
	s.Equal(model.MatchCountByTeam{1: 1}, counts["200"][model.ContextFeminine][model.PhaseAller])
}

func (s *BurnStateSuite) TestAccumulateCountsParisNormalizedToAller() {
	teams := []*model.Team{{ID: "t7", Name: "CLUB 7"}}
	matches := map[model.TeamID][]model.Match{
		"t7": {
			playedMatch(model.EpreuveParis, model.PhaseRetour, false, "100"),
		},
	}

	counts := accumulateCounts(teams, matches)

	s.Equal(model.MatchCountByTeam{7: 1}, counts["100"][model.ContextParis][model.PhaseAller])
	s.Empty(counts["100"][model.ContextParis][model.PhaseRetour])
}

// Tri-state cache update

func (s *BurnStateSuite) TestApplyBurnStateWrites() {
	player := &model.Player{License: "100"}
	counts := contextCounts{
		model.ContextMasculine: {
			model.PhaseAller: {1: 1, 3: 1},
		},
	}

	applyBurnState(player, counts)

	s.Equal(3, player.BurnedTeamNumber(model.ContextMasculine, model.PhaseAller))
	s.Equal(model.MatchCountByTeam{1: 1, 3: 1}, player.CountsFor(model.ContextMasculine, model.PhaseAller))
}

func (s *BurnStateSuite) TestApplyBurnStateNotBurnedClearsEntry() {
	player := &model.Player{
		License: "100",
		BurnedTeam: map[model.RuleContext]map[model.Phase]int{
			model.ContextMasculine: {model.PhaseAller: 3},
		},
	}
	counts := contextCounts{
		model.ContextMasculine: {
			model.PhaseAller: {1: 1},
		},
	}

	applyBurnState(player, counts)

	s.Zero(player.BurnedTeamNumber(model.ContextMasculine, model.PhaseAller))
	s.NotNil(player.CountsFor(model.ContextMasculine, model.PhaseAller))
}

func (s *BurnStateSuite) TestApplyBurnStateExplicitClearWhenStale() {
	player := &model.Player{
		License: "100",
		BurnedTeam: map[model.RuleContext]map[model.Phase]int{
			model.ContextFeminine: {model.PhaseAller: 2},
		},
		MatchCounts: map[model.RuleContext]map[model.Phase]model.MatchCountByTeam{
			model.ContextFeminine: {model.PhaseAller: {1: 2}},
		},
	}

	// No feminine matches anymore: the stale cache entries are removed
	applyBurnState(player, contextCounts{})

	s.NotContains(player.BurnedTeam, model.ContextFeminine)
	s.NotContains(player.MatchCounts, model.ContextFeminine)
}

func (s *BurnStateSuite) TestApplyBurnStateUntouchedWhenNeverPresent() {
	player := &model.Player{License: "100"}

	applyBurnState(player, contextCounts{})

	s.Nil(player.BurnedTeam)
	s.Nil(player.MatchCounts)
}

func (s *BurnStateSuite) TestApplyBurnStateParisRule() {
	player := &model.Player{License: "100"}
	counts := contextCounts{
		model.ContextParis: {
			model.PhaseAller: {1: 3, 2: 1},
		},
	}

	applyBurnState(player, counts)

	s.Equal(2, player.BurnedTeamNumber(model.ContextParis, model.PhaseAller))
}
