package sync

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/plebrun/ttroster/internal/federation"
	"github.com/plebrun/ttroster/internal/model"
)

// This file is the only place that consumes raw federation payloads.
// Everything downstream works on strict model types.

var journeeLabelRe = regexp.MustCompile(`(?i)(?:journ[ée]e|tour)\s*(?:n°\s*)?(\d+)`)

// journeeFromLabel extracts the match-day number from the federation's
// label text, returning 0 when nothing parses
func journeeFromLabel(label string) int {
	m := journeeLabelRe.FindStringSubmatch(label)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

var dateLayouts = []string{"02/01/2006", "2006-01-02", "02/01/2006 15:04"}

func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parsePhase(raw string) model.Phase {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "2", "retour":
		return model.PhaseRetour
	default:
		return model.PhaseAller
	}
}

func parseEpreuve(label string) model.Epreuve {
	if strings.Contains(strings.ToLower(label), "paris") {
		return model.EpreuveParis
	}
	return model.EpreuveChampionnat
}

func isFemaleLabel(label string) bool {
	low := strings.ToLower(label)
	return strings.Contains(low, "dames") || strings.Contains(low, "féminin") || strings.Contains(low, "feminin")
}

func parseNationality(raw string) model.Nationality {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "", "F", "FR":
		return model.NationalityFrench
	case "E", "EU", "UE", "C":
		return model.NationalityEU
	default:
		return model.NationalityForeign
	}
}

func parseGender(raw string) model.Gender {
	if strings.EqualFold(strings.TrimSpace(raw), "F") {
		return model.GenderFemale
	}
	return model.GenderMale
}

// parsePoints accepts "1234", "1234.5" and blank, returning nil for
// anything unparseable
func parsePoints(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return &n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		n := int(f)
		return &n
	}
	return nil
}

func adaptTeam(raw federation.Team) *model.Team {
	return &model.Team{
		ID:       model.TeamID(raw.ID),
		Name:     strings.TrimSpace(raw.Name),
		Division: strings.TrimSpace(raw.Division),
	}
}

func adaptMatch(raw federation.Match, teamID model.TeamID) model.Match {
	date := parseDate(raw.DatePlayed)
	if date.IsZero() {
		date = parseDate(raw.DatePlanned)
	}

	own := make([]model.LicenseID, 0, len(raw.OwnPlayers))
	for _, p := range raw.OwnPlayers {
		if p.License != "" {
			own = append(own, model.LicenseID(p.License))
		}
	}

	return model.Match{
		ID:           raw.ID,
		TeamID:       teamID,
		Epreuve:      parseEpreuve(raw.EpreuveLabel),
		EpreuveLabel: raw.EpreuveLabel,
		Phase:        parsePhase(raw.Phase),
		Journee:      journeeFromLabel(raw.Label),
		IsFemale:     isFemaleLabel(raw.EpreuveLabel),
		Date:         date,
		Opponent:     pickOpponent(raw),
		Played:       raw.ScoreHome != "" || raw.ScoreAway != "" || len(own) > 0,
		Score:        joinScore(raw.ScoreHome, raw.ScoreAway),
		OwnPlayers:   own,
	}
}

func pickOpponent(raw federation.Match) string {
	if raw.AwayTeam != "" {
		return raw.AwayTeam
	}
	return raw.HomeTeam
}

func joinScore(home, away string) string {
	if home == "" && away == "" {
		return ""
	}
	return home + "-" + away
}

// assignJournees fills in match-day numbers the label extraction missed,
// ranking the team's distinct match dates chronologically within each
// (epreuve, phase) calendar
func assignJournees(matches []model.Match) {
	type calendar struct {
		epreuve model.Epreuve
		phase   model.Phase
	}

	datesByCalendar := make(map[calendar][]time.Time)
	for _, m := range matches {
		if m.Date.IsZero() {
			continue
		}
		cal := calendar{m.Epreuve, m.Phase}
		day := m.Date.Truncate(24 * time.Hour)
		found := false
		for _, d := range datesByCalendar[cal] {
			if d.Equal(day) {
				found = true
				break
			}
		}
		if !found {
			datesByCalendar[cal] = append(datesByCalendar[cal], day)
		}
	}

	rank := make(map[calendar]map[time.Time]int)
	for cal, dates := range datesByCalendar {
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
		rank[cal] = make(map[time.Time]int, len(dates))
		for i, d := range dates {
			rank[cal][d] = i + 1
		}
	}

	for i := range matches {
		if matches[i].Journee != 0 || matches[i].Date.IsZero() {
			continue
		}
		cal := calendar{matches[i].Epreuve, matches[i].Phase}
		matches[i].Journee = rank[cal][matches[i].Date.Truncate(24*time.Hour)]
	}
}

func adaptPlayer(raw federation.Player) *model.Player {
	name := strings.TrimSpace(raw.FirstName + " " + raw.LastName)
	return &model.Player{
		License:     model.LicenseID(raw.License),
		DisplayName: name,
		Nationality: parseNationality(raw.Nationality),
		Gender:      parseGender(raw.Gender),
		Points:      parsePoints(raw.Points),
	}
}

// applyDetail merges the enrichment record into the player; a nil detail
// is a no-op since missing records are tolerated
func applyDetail(player *model.Player, detail *federation.PlayerDetail) {
	if detail == nil {
		return
	}
	if pts := parsePoints(detail.ExactPoints); pts != nil {
		player.Points = pts
	} else if pts := parsePoints(detail.Points); pts != nil {
		player.Points = pts
	}
	if detail.Nationality != "" {
		player.Nationality = parseNationality(detail.Nationality)
	}
	if detail.Gender != "" {
		player.Gender = parseGender(detail.Gender)
	}
	if detail.Wheelchair != "" && !strings.EqualFold(detail.Wheelchair, "non") {
		player.Wheelchair = true
	}
}
