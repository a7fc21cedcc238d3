package slogpretty

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestPrettyHandler_Handle(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer

	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf))

	log.With(slog.String("op", "test")).WithGroup("req").Info("hello", slog.Int("status", 200))

	out := buf.String()
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, `"op": "test"`)
	assert.Contains(t, out, `"req.status": 200`)
}

func TestPrettyHandler_GroupQualification(t *testing.T) {
	color.NoColor = true

	testCases := []struct {
		name     string
		log      func(l *slog.Logger)
		expected []string
		absent   []string
	}{
		{
			name: "With before WithGroup keeps the bare key",
			log: func(l *slog.Logger) {
				l.With(slog.String("op", "test")).WithGroup("req").Info("hello")
			},
			expected: []string{`"op": "test"`},
			absent:   []string{`"req.op"`},
		},
		{
			name: "With after WithGroup is prefixed",
			log: func(l *slog.Logger) {
				l.WithGroup("req").With(slog.String("id", "r-1")).Info("hello")
			},
			expected: []string{`"req.id": "r-1"`},
		},
		{
			name: "Nested groups",
			log: func(l *slog.Logger) {
				l.With(slog.String("env", "local")).
					WithGroup("req").With(slog.String("id", "r-1")).
					WithGroup("user").Info("hello", slog.String("role", "EDITOR"))
			},
			expected: []string{`"env": "local"`, `"req.id": "r-1"`, `"req.user.role": "EDITOR"`},
			absent:   []string{`"req.env"`, `"req.user.id"`},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer

			opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
			tc.log(slog.New(opts.NewPrettyHandler(&buf)))

			out := buf.String()
			for _, s := range tc.expected {
				assert.Contains(t, out, s)
			}

			for _, s := range tc.absent {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestSetupLogger(t *testing.T) {
	testCases := []struct {
		env        string
		debugShown bool
	}{
		{env: EnvLocal, debugShown: true},
		{env: EnvDev, debugShown: true},
		{env: EnvProd, debugShown: false},
		{env: "unknown", debugShown: false},
	}

	for _, tc := range testCases {
		t.Run(tc.env, func(t *testing.T) {
			var buf bytes.Buffer

			log := setupLogger(tc.env, &buf)
			log.Debug("debug line")

			if tc.debugShown {
				assert.Contains(t, buf.String(), "debug line")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}
