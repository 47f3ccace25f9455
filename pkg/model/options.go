package model

import "log/slog"

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the structured logger. Nil keeps the no-op default.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithIDGenerator replaces the UUID generator used for cells attached without an id.
func WithIDGenerator(gen IDGenerator) Option {
	return func(m *Model) {
		if gen != nil {
			m.ids = gen
		}
	}
}
