package repository

// Option applies a configuration option to the StormStore.
type Option func(*StormStore)

// WithBucket overrides the storm bucket holding the blob.
func WithBucket(bucket string) Option {
	return func(s *StormStore) {
		if bucket != "" {
			s.bucket = bucket
		}
	}
}

// WithKey overrides the versioned key the blob is stored under.
func WithKey(key string) Option {
	return func(s *StormStore) {
		if key != "" {
			s.key = key
		}
	}
}
