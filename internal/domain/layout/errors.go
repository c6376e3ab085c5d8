package layout

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrRosterTooLarge = errors.New("roster exceeds formation slot count")
)
