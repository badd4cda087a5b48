package brackets

import (
	"errors"
	"fmt"
)

// Error classes. Every error returned by this package wraps one of them.
var (
	ErrPreconditionNotMet = errors.New("precondition not met")
	ErrInsufficientData   = errors.New("insufficient data")
	ErrDataIntegrity      = errors.New("data integrity violation")
)

var (
	ErrWrongStatus     = fmt.Errorf("%w: category not in the expected status", ErrPreconditionNotMet)
	ErrIncompleteRound = fmt.Errorf("%w: incomplete round", ErrPreconditionNotMet)
	ErrBracketComplete = fmt.Errorf("%w: bracket already complete", ErrPreconditionNotMet)
	ErrZonesIncomplete = fmt.Errorf("%w: zone matches still pending", ErrPreconditionNotMet)
	ErrNoBracket       = fmt.Errorf("%w: category has no playoff rounds", ErrPreconditionNotMet)

	ErrNotEnoughQualifiers  = fmt.Errorf("%w: at least 2 qualifiers are required", ErrInsufficientData)
	ErrOddTeamCount         = fmt.Errorf("%w: insufficient teams for next round", ErrInsufficientData)
	ErrNoDrawableCategories = fmt.Errorf("%w: no categories ready to draw", ErrInsufficientData)
	ErrNoTeams              = fmt.Errorf("%w: no teams to draw", ErrInsufficientData)

	ErrUnknownTeam    = fmt.Errorf("%w: team not found", ErrDataIntegrity)
	ErrUnknownMatch   = fmt.Errorf("%w: match not found", ErrDataIntegrity)
	ErrInvalidScore   = fmt.Errorf("%w: invalid score", ErrDataIntegrity)
	ErrUndecidedMatch = fmt.Errorf("%w: match has no winner", ErrDataIntegrity)
	ErrDuplicateTeam  = fmt.Errorf("%w: team already registered", ErrDataIntegrity)
)

func wrongStatus(got string, want ...string) error {
	return fmt.Errorf("%w: status %q, expected one of %v", ErrWrongStatus, got, want)
}
