package request

import (
	"errors"

	"github.com/plebrun/ttroster/internal/model"
)

// ErrInvalidDay is returned when a request's match-day scope is malformed
var ErrInvalidDay = errors.New("invalid match day: epreuve, phase, journee and category are required")

// Day identifies one match day in request bodies
type Day struct {
	Epreuve  string `json:"epreuve"`
	Phase    string `json:"phase"`
	Journee  int    `json:"journee"`
	Category string `json:"category"`
}

// CompositionKey converts the request scope to a model key
func (d Day) CompositionKey() (model.CompositionKey, error) {
	key := model.CompositionKey{
		Epreuve:  model.Epreuve(d.Epreuve),
		Phase:    model.Phase(d.Phase),
		Journee:  d.Journee,
		Category: model.Category(d.Category),
	}
	switch key.Epreuve {
	case model.EpreuveChampionnat, model.EpreuveParis:
	default:
		return model.CompositionKey{}, ErrInvalidDay
	}
	switch key.Phase {
	case model.PhaseAller, model.PhaseRetour:
	default:
		return model.CompositionKey{}, ErrInvalidDay
	}
	switch key.Category {
	case model.CategoryMasculine, model.CategoryFeminine:
	default:
		return model.CompositionKey{}, ErrInvalidDay
	}
	if key.Journee <= 0 {
		return model.CompositionKey{}, ErrInvalidDay
	}
	return key, nil
}

// ValidateAssignmentRequest is the body for assignment checks and commits
type ValidateAssignmentRequest struct {
	Day
	Player string `json:"player"`
	Team   string `json:"team"`
}

// ValidateCompositionRequest is the body for team-state checks
type ValidateCompositionRequest struct {
	Day
	Team string `json:"team"`
}

// ApplyDefaultsRequest is the body for applying template rosters
type ApplyDefaultsRequest struct {
	Epreuve string `json:"epreuve"`
	Phase   string `json:"phase"`
	Journee int    `json:"journee"`
}

// SetAvailabilityRequest is the body for recording a player's response
type SetAvailabilityRequest struct {
	Day
	Available bool   `json:"available"`
	Comment   string `json:"comment"`
}
