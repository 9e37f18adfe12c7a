package orb

import "errors"

var (
	// ErrNoAppearance indicates the controller was built without a render target.
	ErrNoAppearance = errors.New("orb: appearance sink is required")

	// ErrInvalidSettings indicates a tunable outside its valid range.
	ErrInvalidSettings = errors.New("orb: invalid settings")
)
