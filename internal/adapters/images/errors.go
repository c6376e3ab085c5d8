package images

import "errors"

// Sentinel error kinds for this package. They stay internal to the lookup
// path: Resolve absorbs them into the placeholder fallback.
var (
	ErrNoImage           = errors.New("no image found for player")
	ErrSourceUnavailable = errors.New("image source unavailable")
)
