package feedback

import "log/slog"

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. If not specified, a discard logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithStrictFields makes Validate and ResetFields abort the whole request
// when any name is unknown. By default unknown names fail individually and
// the rest proceed.
func WithStrictFields(strict bool) Option {
	return func(e *Engine) {
		e.strict = strict
	}
}

// WithDefaultStop sets the stop policy of groups that declare none.
// The default is StopFirstError.
func WithDefaultStop(p StopPolicy) Option {
	return func(e *Engine) {
		if p != StopDefault && p <= StopFirstInfo {
			e.defaultStop = p
		}
	}
}

// WithNotifyBuffer sets the per-subscriber event buffer. Events that do not
// fit are dropped for that subscriber.
func WithNotifyBuffer(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.notifyBuffer = n
		}
	}
}

// WithOnChange registers a callback invoked for every event, on the
// goroutine that caused the change and without the engine lock held.
func WithOnChange(fn func(Event)) Option {
	return func(e *Engine) {
		if fn != nil {
			e.onChange = append(e.onChange, fn)
		}
	}
}
