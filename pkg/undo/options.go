package undo

import (
	"log/slog"

	"github.com/BenKalegin/clouddiagram-sub004/internal/logging"
	"github.com/BenKalegin/clouddiagram-sub004/pkg/domain"
)

type options struct {
	logger *slog.Logger
	size   int
}

func defaultOptions() options {
	return options{
		logger: logging.NewNop(),
		size:   domain.DefaultHistorySize,
	}
}

// Option configures a Manager or Transactions.
type Option func(*options)

// WithLogger sets the structured logger. Nil keeps the no-op default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSize bounds the number of edits a Manager keeps. Zero or a negative
// size keeps every edit.
func WithSize(size int) Option {
	return func(o *options) {
		o.size = size
	}
}
