package services

import "errors"

// Shared service errors, mapped onto HTTP statuses by the handlers.
var (
	ErrNotFound = errors.New("requested resource not found")

	// Validation and business rules.
	ErrValidationFailed   = errors.New("validation failed")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRoomNameRequired   = errors.New("room name is required")
	ErrTeamRosterRequired = errors.New("every team needs at least one player")
	ErrTeamCountInvalid   = errors.New("team count not allowed for the chosen format")
	ErrInvalidFormat      = errors.New("unknown game format")
	ErrScoresEqual        = errors.New("match scores must not be equal")
	ErrScoresNegative     = errors.New("match scores must not be negative")

	// Conflicts.
	ErrUserEmailConflict     = errors.New("email address is already in use")
	ErrRoomMemberConflict    = errors.New("user is already a member of the room")
	ErrMatchAlreadyFinished  = errors.New("match result was already submitted")
	ErrGameAlreadyCompleted  = errors.New("game is already completed")
	ErrGameNotCompleted      = errors.New("game has not completed yet")
	ErrPointsAlreadyAssigned = errors.New("points were already assigned for this game")

	// Authentication and authorization.
	ErrForbiddenOperation = errors.New("operation not allowed for the current user")
	ErrNotRoomMember      = errors.New("user is not a member of the room")

	// Entity-specific lookups.
	ErrUserNotFound  = errors.New("user not found")
	ErrRoomNotFound  = errors.New("room not found")
	ErrGameNotFound  = errors.New("game not found")
	ErrMatchNotFound = errors.New("match not found")
)
