package retain

import "errors"

var (
	// ErrSeekOverflow is returned when a seek relative to the current
	// position would overflow the logical cursor.
	ErrSeekOverflow = errors.New("retain: seek position overflow")

	// ErrNegativePosition is returned when a seek resolves to a position
	// before the start of the source.
	ErrNegativePosition = errors.New("retain: negative seek position")

	// ErrReleased is returned by operations on a Reader whose source has
	// been released.
	ErrReleased = errors.New("retain: reader released")
)
