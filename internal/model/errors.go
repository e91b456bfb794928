package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Team errors
	ErrTeamNotFound = errors.New("team not found")

	// Composition errors
	ErrCompositionNotFound = errors.New("composition not found")
	ErrDefaultsNotFound    = errors.New("default composition not found")
	ErrAssignmentRejected  = errors.New("assignment rejected")

	// Availability errors
	ErrAvailabilityNotFound = errors.New("availability not found")

	// Sync errors
	ErrSyncInProgress = errors.New("a sync is already running")
)
