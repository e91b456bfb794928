// Package federation defines the narrow interface to the external
// federation data source and the raw payload types it returns.
//
// Raw types keep the wire's loose shape (string numerics, alternate field
// names); nothing outside the sync adapter may consume them directly.
package federation

import "context"

// Team is a raw federation team record
type Team struct {
	ID           string `json:"idequipe"`
	Name         string `json:"libequipe"`
	Division     string `json:"libdivision"`
	EpreuveID    string `json:"idepr"`
	EpreuveLabel string `json:"libepr"`
}

// Player is a raw federation roster record
type Player struct {
	License     string `json:"licence"`
	LastName    string `json:"nom"`
	FirstName   string `json:"prenom"`
	Points      string `json:"points"`
	Nationality string `json:"natio"`
	Gender      string `json:"sexe"`
}

// MatchPlayer is one of the club's own players listed on a match sheet
type MatchPlayer struct {
	License string `json:"licence"`
	Name    string `json:"nom"`
}

// Match is a raw federation fixture record
type Match struct {
	ID           string        `json:"idrencontre"`
	Label        string        `json:"libelle"`
	EpreuveLabel string        `json:"libepr"`
	Phase        string        `json:"phase"`
	DatePlanned  string        `json:"dateprevue"`
	DatePlayed   string        `json:"datereelle"`
	HomeTeam     string        `json:"equa"`
	AwayTeam     string        `json:"equb"`
	ScoreHome    string        `json:"scorea"`
	ScoreAway    string        `json:"scoreb"`
	OwnPlayers   []MatchPlayer `json:"joueurs"`
}

// PlayerDetail is the per-license enrichment record; any field may be
// empty when the federation has no data
type PlayerDetail struct {
	License     string `json:"licence"`
	Points      string `json:"point"`
	ExactPoints string `json:"pointm"`
	Nationality string `json:"natio"`
	Gender      string `json:"sexe"`
	Wheelchair  string `json:"handicap"`
}

// Client pulls the club's data from the federation. Implementations must
// tolerate eventual consistency and occasional missing detail records.
type Client interface {
	TeamsForClub(ctx context.Context) ([]Team, error)
	PlayersForClub(ctx context.Context) ([]Player, error)
	MatchesForTeam(ctx context.Context, team Team) ([]Match, error)
	// PlayerDetail returns nil (no error) when the federation has no
	// detail record for the license
	PlayerDetail(ctx context.Context, license string) (*PlayerDetail, error)
}
