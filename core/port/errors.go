package port

import "errors"

// ErrNoBerth means no placement of the requested kind currently exists. It is
// a transient condition; callers retry on their polling interval.
var ErrNoBerth = errors.New("no berth available")

// ErrUnsatisfiableFootprint means the vessel's footprint exceeds the grid in
// at least one axis and could never be placed. Detected at admission so the
// vessel is rejected instead of waiting forever.
var ErrUnsatisfiableFootprint = errors.New("footprint exceeds grid dimensions")
