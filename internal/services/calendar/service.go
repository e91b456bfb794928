package calendar

import (
	"strings"
	"time"

	"github.com/plebrun/ttroster/internal/dependencies/clock"
	"github.com/plebrun/ttroster/internal/model"
)

// Service resolves matches to competitions and phases and indexes the
// club's match days
type Service struct {
	clock clock.Clock
}

// New creates a new calendar service
func New(clk clock.Clock) *Service {
	return &Service{clock: clk}
}

// MatchEpreuve classifies a match into the standard team championship or
// the Paris championship, using the match's competition label with a
// team-name fallback when the label is empty
func MatchEpreuve(m model.Match, team model.Team) model.Epreuve {
	if m.Epreuve != "" {
		return m.Epreuve
	}
	if m.EpreuveLabel != "" {
		if strings.Contains(strings.ToLower(m.EpreuveLabel), "paris") {
			return model.EpreuveParis
		}
		return model.EpreuveChampionnat
	}
	low := strings.ToLower(team.Name + " " + team.Division)
	if strings.Contains(low, "paris") {
		return model.EpreuveParis
	}
	return model.EpreuveChampionnat
}

// JourneeDates accumulates the calendar dates seen for one match day.
// A match day may span several dates because different teams play on
// different evenings of the same round.
type JourneeDates struct {
	Dates []time.Time
}

func (j *JourneeDates) addDate(t time.Time) {
	day := t.Truncate(24 * time.Hour)
	for _, d := range j.Dates {
		if d.Equal(day) {
			return
		}
	}
	j.Dates = append(j.Dates, day)
}

// Earliest returns the earliest date recorded for the match day
func (j *JourneeDates) Earliest() (time.Time, bool) {
	if len(j.Dates) == 0 {
		return time.Time{}, false
	}
	earliest := j.Dates[0]
	for _, d := range j.Dates[1:] {
		if d.Before(earliest) {
			earliest = d
		}
	}
	return earliest, true
}

// Index maps epreuve -> phase -> journée number -> dates
type Index map[model.Epreuve]map[model.Phase]map[int]*JourneeDates

// Journees returns the indexed match days for an epreuve and phase; the
// result may be nil
func (idx Index) Journees(epreuve model.Epreuve, phase model.Phase) map[int]*JourneeDates {
	return idx[epreuve][phase]
}

// BuildIndex scans every match of every team and groups match days by
// epreuve and phase. Paris matches have no aller/retour split and are
// normalized to the aller phase.
func BuildIndex(teams []model.Team, matchesByTeam map[model.TeamID][]model.Match) Index {
	idx := make(Index)
	for _, team := range teams {
		for _, m := range matchesByTeam[team.ID] {
			if m.Journee == 0 || m.Date.IsZero() {
				continue
			}
			epreuve := MatchEpreuve(m, team)
			phase := m.Phase
			if epreuve == model.EpreuveParis {
				phase = model.PhaseAller
			}
			if phase == "" {
				phase = model.PhaseAller
			}

			byPhase, ok := idx[epreuve]
			if !ok {
				byPhase = make(map[model.Phase]map[int]*JourneeDates)
				idx[epreuve] = byPhase
			}
			byJournee, ok := byPhase[phase]
			if !ok {
				byJournee = make(map[int]*JourneeDates)
				byPhase[phase] = byJournee
			}
			jd, ok := byJournee[m.Journee]
			if !ok {
				jd = &JourneeDates{}
				byJournee[m.Journee] = jd
			}
			jd.addDate(m.Date)
		}
	}
	return idx
}

// Selection is the competition and match day the UI should open on
type Selection struct {
	Epreuve model.Epreuve
	Phase   model.Phase
	Journee int
}

// NextJournee selects the (epreuve, phase, journée) whose earliest date is
// the closest one on or after now, falling back to the first journée of
// the standard championship when nothing is upcoming
func (s *Service) NextJournee(idx Index) Selection {
	return NextJourneeAt(idx, s.clock.Now())
}

// NextJourneeAt is NextJournee against an explicit reference time
func NextJourneeAt(idx Index, now time.Time) Selection {
	today := now.Truncate(24 * time.Hour)

	var best Selection
	var bestDate time.Time
	found := false

	for epreuve, byPhase := range idx {
		for phase, byJournee := range byPhase {
			for journee, dates := range byJournee {
				earliest, ok := dates.Earliest()
				if !ok || earliest.Before(today) {
					continue
				}
				if !found || earliest.Before(bestDate) {
					best = Selection{Epreuve: epreuve, Phase: phase, Journee: journee}
					bestDate = earliest
					found = true
				}
			}
		}
	}

	if !found {
		return Selection{Epreuve: model.EpreuveChampionnat, Phase: model.PhaseAller, Journee: 1}
	}
	return best
}
