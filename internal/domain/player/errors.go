package player

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrEmptyName        = errors.New("player name must not be empty")
	ErrInvalidAttribute = errors.New("attribute out of range")
	ErrUnknownPlayer    = errors.New("player not in stock catalog")
)
