package model

import "time"

// Team is one of the club's teams in a competition.
//
// The display name encodes the team number ("CLUB 3"); the division string
// encodes the competition level, gender category and pool. Venue and chat
// channel are user-managed and preserved across syncs.
type Team struct {
	ID       TeamID
	Name     string
	Division string

	// Category is derived from the team's matches during sync: a team is
	// feminine iff at least one of its matches is flagged female
	Category Category

	// Epreuve is derived from the team's matches during sync
	Epreuve Epreuve

	// User-managed fields, preserved across syncs
	VenueID   string
	ChannelID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Match is one fixture of a team's calendar.
//
// Journee numbers come from the federation's label text when it parses,
// falling back to the chronological rank of the match date within the
// team's calendar.
type Match struct {
	ID     string
	TeamID TeamID

	Epreuve Epreuve
	// EpreuveLabel is the raw federation competition label the Epreuve
	// was classified from
	EpreuveLabel string

	Phase    Phase
	Journee  int
	IsFemale bool

	Date     time.Time
	Opponent string

	// Played is derived from the presence of a score or individual results
	Played bool
	Score  string

	// OwnPlayers lists the club's own players who appeared in this match;
	// this is the input to the burn-state recomputation
	OwnPlayers []LicenseID
}
