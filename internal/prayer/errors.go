package prayer

import "errors"

var (
	// ErrInvalidTime is returned when a computed instant is not a valid time
	// of day, usually because the sun never reaches the required angle.
	ErrInvalidTime = errors.New("invalid time of day")

	// ErrInvalidDate is returned when the requested day cannot be built.
	ErrInvalidDate = errors.New("invalid date")

	// ErrNoCurrentPrayer is returned by lookups whose query instant lies
	// outside the schedule's day.
	ErrNoCurrentPrayer = errors.New("no current prayer")

	// ErrInvalidLocation is returned for non-finite or out-of-range coordinates.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrInvalidConfig is returned for unknown methods or madhabs and for
	// angles, intervals or adjustments outside their accepted range.
	ErrInvalidConfig = errors.New("invalid config")
)
