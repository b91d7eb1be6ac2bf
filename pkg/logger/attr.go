package logger

import (
	"log/slog"
	"strconv"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Errors groups non-nil errors under "errors"; all-nil yields an empty Attr.
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// Error records err under "error"; nil yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Field records a form field name.
func Field(name string) slog.Attr {
	return slog.String("field", name)
}

// Fields records a list of field names.
func Fields(names []string) slog.Attr {
	return slog.Any("fields", names)
}

// PassID records the identifier of a validation pass.
func PassID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("pass_id", id)
}

// Epoch records a field's validation epoch.
func Epoch(n uint64) slog.Attr {
	return slog.Uint64("epoch", n)
}

// Rule records the key of a feedback rule.
func Rule(key string) slog.Attr {
	return slog.String("rule", key)
}
