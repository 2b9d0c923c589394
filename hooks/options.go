package hooks

import (
	"log/slog"

	"github.com/delaneyj/hookparty/pkg/observability"
)

type Option func(*Root)

// WithObserver sends runtime events (renders, skips, commits, effect runs,
// unmounts, faults) to obs.
func WithObserver(obs observability.Observer) Option {
	return func(r *Root) {
		if obs != nil {
			r.observer = obs
		}
	}
}

// WithErrorHandler replaces the default handler, which logs faults at error
// level.
func WithErrorHandler(h ErrorHandler) Option {
	return func(r *Root) {
		r.onFault = h
	}
}

// WithLogger sets the logger used by the default error handler.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Root) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithNestedUpdateLimit bounds how many times one work loop may render
// again because of updates made while committing. The default is 50.
func WithNestedUpdateLimit(n int) Option {
	return func(r *Root) {
		if n > 0 {
			r.nestedLimit = n
		}
	}
}
