package redis

import (
	"fmt"

	"github.com/plebrun/ttroster/internal/model"
)

// Key prefix for all roster data
const keyPrefix = "ttroster"

// playerKey returns the Redis key for a Player
func playerKey(id model.LicenseID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playersIndexKey returns the Redis key for the SET of all player licenses
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// teamKey returns the Redis key for a Team
func teamKey(id model.TeamID) string {
	return fmt.Sprintf("%s:team:%s", keyPrefix, id)
}

// teamsIndexKey returns the Redis key for the SET of all team ids
func teamsIndexKey() string {
	return fmt.Sprintf("%s:idx:teams", keyPrefix)
}

// matchesKey returns the Redis key for a team's match list
func matchesKey(teamID model.TeamID) string {
	return fmt.Sprintf("%s:matches:%s", keyPrefix, teamID)
}

// compositionKey returns the Redis key for a Composition document
func compositionKey(key model.CompositionKey) string {
	return fmt.Sprintf("%s:compo:%s:%s:%d:%s", keyPrefix, key.Epreuve, key.Phase, key.Journee, key.Category)
}

// defaultsKey returns the Redis key for a DefaultComposition document
func defaultsKey(key model.DefaultsKey) string {
	return fmt.Sprintf("%s:defaults:%s:%s", keyPrefix, key.Phase, key.Category)
}

// availabilityKey returns the Redis key for an Availability document
func availabilityKey(key model.CompositionKey) string {
	return fmt.Sprintf("%s:avail:%s:%s:%d:%s", keyPrefix, key.Epreuve, key.Phase, key.Journee, key.Category)
}
