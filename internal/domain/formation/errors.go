package formation

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrUnknownFormation = errors.New("unknown formation")
)
