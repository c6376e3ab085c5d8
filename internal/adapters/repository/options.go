package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithMaxSessions caps the number of concurrently stored sessions.
func WithMaxSessions(limit int) Option {
	return func(s *MemStore) {
		if limit > 0 {
			s.maxSessions = limit
		}
	}
}
