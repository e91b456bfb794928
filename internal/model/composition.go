package model

import "time"

// CompositionKey scopes a roster document to one match day of one
// competition, phase and gender category
type CompositionKey struct {
	Epreuve  Epreuve
	Phase    Phase
	Journee  int
	Category Category
}

// DefaultsKey scopes a default (template) roster to a phase and category
type DefaultsKey struct {
	Phase    Phase
	Category Category
}

// Composition is the assigned rosters for every team of one category on
// one match day.
//
// Invariant: a player appears in at most one team's roster. Assign
// enforces this by removing the player from any other team first.
type Composition struct {
	Key       CompositionKey
	Teams     map[TeamID][]LicenseID
	UpdatedAt time.Time
}

// NewComposition creates an empty composition for the given key
func NewComposition(key CompositionKey) *Composition {
	return &Composition{
		Key:   key,
		Teams: make(map[TeamID][]LicenseID),
	}
}

// Roster returns the ordered roster for a team; the result may be nil
func (c *Composition) Roster(teamID TeamID) []LicenseID {
	if c == nil {
		return nil
	}
	return c.Teams[teamID]
}

// TeamOf returns the team the player is currently assigned to, if any
func (c *Composition) TeamOf(player LicenseID) (TeamID, bool) {
	if c == nil {
		return "", false
	}
	for teamID, roster := range c.Teams {
		for _, id := range roster {
			if id == player {
				return teamID, true
			}
		}
	}
	return "", false
}

// Contains reports whether the player is assigned to the given team
func (c *Composition) Contains(teamID TeamID, player LicenseID) bool {
	for _, id := range c.Roster(teamID) {
		if id == player {
			return true
		}
	}
	return false
}

// Assign places the player at the end of the team's roster, removing them
// from any other team in the same composition first
func (c *Composition) Assign(teamID TeamID, player LicenseID) {
	c.Remove(player)
	if c.Teams == nil {
		c.Teams = make(map[TeamID][]LicenseID)
	}
	c.Teams[teamID] = append(c.Teams[teamID], player)
}

// Remove drops the player from whichever team they are assigned to
func (c *Composition) Remove(player LicenseID) {
	for teamID, roster := range c.Teams {
		for i, id := range roster {
			if id == player {
				c.Teams[teamID] = append(roster[:i:i], roster[i+1:]...)
				break
			}
		}
	}
}

// Clone returns a deep copy of the composition
func (c *Composition) Clone() *Composition {
	if c == nil {
		return nil
	}
	out := &Composition{
		Key:       c.Key,
		Teams:     make(map[TeamID][]LicenseID, len(c.Teams)),
		UpdatedAt: c.UpdatedAt,
	}
	for teamID, roster := range c.Teams {
		out.Teams[teamID] = append([]LicenseID(nil), roster...)
	}
	return out
}

// DefaultComposition is a template roster applied to match days that have
// no explicit composition yet
type DefaultComposition struct {
	Key       DefaultsKey
	Teams     map[TeamID][]LicenseID
	UpdatedAt time.Time
}
