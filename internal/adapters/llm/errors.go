package llm

import "errors"

// ErrUnavailable indicates the text-generation endpoint could not produce
// a completion. It covers transport failures, non-2xx responses and empty
// or malformed completions alike.
var ErrUnavailable = errors.New("completion unavailable")
