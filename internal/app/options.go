package service

import (
	"time"

	"github.com/gymlab/palaestra/internal/adapters/repository"
	"github.com/gymlab/palaestra/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the durable store backing the service.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(log logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithClock overrides the time source. Tests pin it for stable meet
// dates and archive timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides entity id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// WithMaxHistory caps how many completed meets are retained, oldest
// dropped first. Zero keeps everything.
func WithMaxHistory(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxHistory = n
		}
	}
}
