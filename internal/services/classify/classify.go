package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/plebrun/ttroster/internal/model"
)

// DefaultTeamSize is the roster size for a standard championship team, and
// the fallback for Paris teams whose division text does not parse
const DefaultTeamSize = 4

// preRegionalFeminineSize is the reduced roster size for women's teams in
// the pré-régionale division
const preRegionalFeminineSize = 3

var teamNumberRe = regexp.MustCompile(`(\d+)\s*$`)

// TeamNumber parses the trailing integer in a team's display name
// ("CLUB 3" -> 3). It returns 0 when the name carries no number; a zero
// team number is exempt from every rank-ordering rule.
func TeamNumber(name string) int {
	m := teamNumberRe.FindStringSubmatch(strings.TrimSpace(name))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// TeamCategory derives a team's gender category from its matches: a team
// is feminine iff at least one of its matches is flagged female
func TeamCategory(matches []model.Match) model.Category {
	for _, m := range matches {
		if m.IsFemale {
			return model.CategoryFeminine
		}
	}
	return model.CategoryMasculine
}

// IsParisChampionship reports whether the team plays in the mixed Paris
// championship, based on its matches' competition classification with a
// division-text fallback when no match is classified
func IsParisChampionship(team model.Team, matches []model.Match) bool {
	for _, m := range matches {
		if m.Epreuve == model.EpreuveParis {
			return true
		}
		if m.Epreuve != "" {
			return false
		}
	}
	return containsParis(team.Division) || containsParis(team.Name)
}

func containsParis(s string) bool {
	return strings.Contains(strings.ToLower(s), "paris")
}

// Structure describes a Paris team's group layout
type Structure struct {
	TotalPlayers int
	GroupSize    int
}

var parisStructureRe = regexp.MustCompile(`(?i)(\d+)\s*(?:groupes?|équipes?|gr\.?)\s*de\s*(\d+)`)

// ParisStructure parses the division text for the group layout of a Paris
// team ("3 groupes de 3" -> 9 players in groups of 3). The second return
// is false when the text is unrecognized; callers must fall back to
// DefaultTeamSize.
func ParisStructure(division string) (Structure, bool) {
	m := parisStructureRe.FindStringSubmatch(division)
	if m == nil {
		return Structure{}, false
	}
	groups, err := strconv.Atoi(m[1])
	if err != nil || groups == 0 {
		return Structure{}, false
	}
	size, err := strconv.Atoi(m[2])
	if err != nil || size == 0 {
		return Structure{}, false
	}
	return Structure{TotalPlayers: groups * size, GroupSize: size}, true
}

// MaxPlayersForTeam returns the roster capacity for a team: the Paris
// structure's total for Paris teams, 3 for pré-régionale women's teams,
// DefaultTeamSize otherwise
func MaxPlayersForTeam(team model.Team) int {
	if team.Epreuve == model.EpreuveParis {
		if s, ok := ParisStructure(team.Division); ok {
			return s.TotalPlayers
		}
		return DefaultTeamSize
	}
	if team.Category == model.CategoryFeminine && isPreRegional(team.Division) {
		return preRegionalFeminineSize
	}
	return DefaultTeamSize
}

func isPreRegional(division string) bool {
	low := strings.ToLower(division)
	for _, v := range []string{"pré-régionale", "pre-regionale", "prérégionale", "pré-regionale"} {
		if strings.Contains(low, v) {
			return true
		}
	}
	return false
}

// RatingRule is a minimum-rating constraint derived from a division string
type RatingRule struct {
	Level    int
	Feminine bool
}

var divisionLevelRe = regexp.MustCompile(`(?i)nationale\s*([123])`)

// DivisionRatingRule parses the division text into a competition level and
// gender category for the minimum-rating rules ("FED_Nationale 2 Dames"
// -> level 2, feminine). The second return is false for divisions that do
// not carry a rating constraint; those bypass the rule entirely.
func DivisionRatingRule(division string) (RatingRule, bool) {
	m := divisionLevelRe.FindStringSubmatch(division)
	if m == nil {
		return RatingRule{}, false
	}
	level, err := strconv.Atoi(m[1])
	if err != nil {
		return RatingRule{}, false
	}
	low := strings.ToLower(division)
	feminine := strings.Contains(low, "dames") || strings.Contains(low, "féminin")
	if feminine && level > 2 {
		// Only women's levels 1 and 2 carry rating constraints
		return RatingRule{}, false
	}
	return RatingRule{Level: level, Feminine: feminine}, true
}
