package model

// LicenseID is a player's federation license number
type LicenseID string

// TeamID uniquely identifies one of the club's teams
type TeamID string

// Phase is one half of the standard season
type Phase string

const (
	PhaseAller  Phase = "aller"
	PhaseRetour Phase = "retour"
)

// Phases lists the two season phases in calendar order
var Phases = []Phase{PhaseAller, PhaseRetour}

// Epreuve is the competition a match belongs to
type Epreuve string

const (
	// EpreuveChampionnat is the standard team championship (aller/retour)
	EpreuveChampionnat Epreuve = "championnat"
	// EpreuveParis is the mixed Paris championship (single season)
	EpreuveParis Epreuve = "paris"
)

// Category is a team's gender category
type Category string

const (
	CategoryMasculine Category = "masculine"
	CategoryFeminine  Category = "feminine"
)

// RuleContext identifies one of the three independent burn-rule contexts.
// Burn state is tracked separately per context because a player may appear
// in the men's championship, the women's championship and the Paris
// championship in the same season.
type RuleContext string

const (
	ContextMasculine RuleContext = "masculine"
	ContextFeminine  RuleContext = "feminine"
	ContextParis     RuleContext = "paris"
)

// RuleContexts lists all burn-rule contexts
var RuleContexts = []RuleContext{ContextMasculine, ContextFeminine, ContextParis}

// ContextFor returns the burn-rule context governing a team
func ContextFor(epreuve Epreuve, category Category) RuleContext {
	if epreuve == EpreuveParis {
		return ContextParis
	}
	if category == CategoryFeminine {
		return ContextFeminine
	}
	return ContextMasculine
}
