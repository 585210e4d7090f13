package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithInitialCapacity sizes the underlying document map up front.
func WithInitialCapacity(n int) Option {
	return func(s *MemStore) {
		if n > 0 {
			s.initialCapacity = n
		}
	}
}
