package defaults

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/plebrun/ttroster/internal/model"
	"github.com/plebrun/ttroster/internal/testutil"
)

type EngineSuite struct {
	suite.Suite
	engine  *Engine
	players map[model.LicenseID]*model.Player
	teams   map[model.TeamID]*model.Team
	avail   *model.Availability
}

func TestEngineSuite(t *testing.T) {
	suite.Run(t, new(EngineSuite))
}

func (s *EngineSuite) SetupTest() {
	s.engine = NewEngine(testutil.NopLogger())
	s.players = make(map[model.LicenseID]*model.Player)
	s.teams = make(map[model.TeamID]*model.Team)
	s.avail = model.NewAvailability(model.CompositionKey{
		Epreuve:  model.EpreuveChampionnat,
		Phase:    model.PhaseAller,
		Journee:  3,
		Category: model.CategoryMasculine,
	})
}

func (s *EngineSuite) addPlayer(id model.LicenseID, available bool, mutate ...func(*model.Player)) {
	p := &model.Player{
		License:     id,
		DisplayName: "Player " + string(id),
		Nationality: model.NationalityFrench,
		Gender:      model.GenderMale,
	}
	for _, m := range mutate {
		m(p)
	}
	s.players[id] = p
	if available {
		s.avail.Set(id, true, "")
	}
}

func (s *EngineSuite) addTeam(id model.TeamID, name string) {
	s.teams[id] = &model.Team{
		ID:       id,
		Name:     name,
		Category: model.CategoryMasculine,
		Epreuve:  model.EpreuveChampionnat,
	}
}

func (s *EngineSuite) template(teams map[model.TeamID][]model.LicenseID) *model.DefaultComposition {
	return &model.DefaultComposition{
		Key:   model.DefaultsKey{Phase: model.PhaseAller, Category: model.CategoryMasculine},
		Teams: teams,
	}
}

func (s *EngineSuite) apply(template *model.DefaultComposition) map[model.TeamID][]model.LicenseID {
	return s.engine.Apply(template, s.avail, s.players, s.teams, model.EpreuveChampionnat, model.PhaseAller)
}

func (s *EngineSuite) TestNilTemplate() {
	s.Empty(s.apply(nil))
}

func (s *EngineSuite) TestKeepsTemplateOrder() {
	s.addTeam("t2", "CLUB 2")
	for _, id := range []model.LicenseID{"103", "101", "102"} {
		s.addPlayer(id, true)
	}

	out := s.apply(s.template(map[model.TeamID][]model.LicenseID{
		"t2": {"103", "101", "102"},
	}))

	s.Equal([]model.LicenseID{"103", "101", "102"}, out["t2"])
}

func (s *EngineSuite) TestDropsUnavailablePlayers() {
	s.addTeam("t2", "CLUB 2")
	s.addPlayer("100", true)
	s.addPlayer("101", false)
	s.addPlayer("102", true)

	out := s.apply(s.template(map[model.TeamID][]model.LicenseID{
		"t2": {"100", "101", "102"},
	}))

	s.Equal([]model.LicenseID{"100", "102"}, out["t2"])
}

func (s *EngineSuite) TestDropsUnknownPlayers() {
	s.addTeam("t2", "CLUB 2")
	s.addPlayer("100", true)
	s.avail.Set("ghost", true, "")

	out := s.apply(s.template(map[model.TeamID][]model.LicenseID{
		"t2": {"ghost", "100"},
	}))

	s.Equal([]model.LicenseID{"100"}, out["t2"])
}

func (s *EngineSuite) TestDropsBurnedPlayers() {
	s.addTeam("t2", "CLUB 2")
	s.addPlayer("100", true, func(p *model.Player) {
		p.BurnedTeam = map[model.RuleContext]map[model.Phase]int{
			model.ContextMasculine: {model.PhaseAller: 3},
		}
	})
	s.addPlayer("101", true)

	out := s.apply(s.template(map[model.TeamID][]model.LicenseID{
		"t2": {"100", "101"},
	}))

	s.Equal([]model.LicenseID{"101"}, out["t2"])
}

func (s *EngineSuite) TestBurnedPlayerKeptInUnnumberedTeam() {
	s.addTeam("tx", "CLUB")
	s.addPlayer("100", true, func(p *model.Player) {
		p.BurnedTeam = map[model.RuleContext]map[model.Phase]int{
			model.ContextMasculine: {model.PhaseAller: 3},
		}
	})

	out := s.apply(s.template(map[model.TeamID][]model.LicenseID{
		"tx": {"100"},
	}))

	s.Equal([]model.LicenseID{"100"}, out["tx"])
}

func (s *EngineSuite) TestCapsRosterAtFive() {
	s.addTeam("t2", "CLUB 2")
	ids := []model.LicenseID{"100", "101", "102", "103", "104", "105", "106"}
	for _, id := range ids {
		s.addPlayer(id, true)
	}

	out := s.apply(s.template(map[model.TeamID][]model.LicenseID{
		"t2": ids,
	}))

	s.Equal(ids[:5], out["t2"])
}

func (s *EngineSuite) TestSkipsUnknownTeams() {
	s.addPlayer("100", true)

	out := s.apply(s.template(map[model.TeamID][]model.LicenseID{
		"t-gone": {"100"},
	}))

	s.Empty(out)
}

func (s *EngineSuite) TestEmptyRostersOmitted() {
	s.addTeam("t2", "CLUB 2")

	out := s.apply(s.template(map[model.TeamID][]model.LicenseID{
		"t2": {"ghost"},
	}))

	s.NotContains(out, model.TeamID("t2"))
}

func (s *EngineSuite) TestApplyForJourneeKeys() {
	s.addTeam("t2", "CLUB 2")
	s.addPlayer("100", true)

	templates := map[model.Category]*model.DefaultComposition{
		model.CategoryMasculine: s.template(map[model.TeamID][]model.LicenseID{
			"t2": {"100"},
		}),
	}
	avails := map[model.Category]*model.Availability{
		model.CategoryMasculine: s.avail,
	}

	out := s.engine.ApplyForJournee(templates, avails, s.players, s.teams,
		model.EpreuveChampionnat, model.PhaseAller, 3)

	key := model.CompositionKey{
		Epreuve:  model.EpreuveChampionnat,
		Phase:    model.PhaseAller,
		Journee:  3,
		Category: model.CategoryMasculine,
	}
	s.Require().Len(out, 1)
	s.Require().Contains(out, key)
	s.Equal([]model.LicenseID{"100"}, out[key].Roster("t2"))
}
