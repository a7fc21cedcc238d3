// Package sl holds small helpers for building slog attributes.
package sl

import "log/slog"

// Err returns an "error" attribute. A nil error is rendered as an empty string.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}

	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
