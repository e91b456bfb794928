package model

import "time"

// AvailabilityResponse is one player's answer for one match day
type AvailabilityResponse struct {
	Available bool
	Comment   string
}

// Availability collects the players' responses for one match day.
// A player with no recorded response is treated as unavailable everywhere
// a composition is computed or validated.
type Availability struct {
	Key       CompositionKey
	Responses map[LicenseID]AvailabilityResponse
	UpdatedAt time.Time
}

// NewAvailability creates an empty availability document for the given key
func NewAvailability(key CompositionKey) *Availability {
	return &Availability{
		Key:       key,
		Responses: make(map[LicenseID]AvailabilityResponse),
	}
}

// IsAvailable reports whether the player has an explicit available=true
// response
func (a *Availability) IsAvailable(player LicenseID) bool {
	if a == nil {
		return false
	}
	return a.Responses[player].Available
}

// Set records a player's response
func (a *Availability) Set(player LicenseID, available bool, comment string) {
	if a.Responses == nil {
		a.Responses = make(map[LicenseID]AvailabilityResponse)
	}
	a.Responses[player] = AvailabilityResponse{Available: available, Comment: comment}
}
