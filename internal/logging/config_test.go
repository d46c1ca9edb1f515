package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]struct {
		level zerolog.Level
		ok    bool
	}{
		"":         {zerolog.InfoLevel, false},
		"TRACE":    {zerolog.TraceLevel, true},
		" debug ":  {zerolog.DebugLevel, true},
		"warning":  {zerolog.WarnLevel, true},
		"error":    {zerolog.ErrorLevel, true},
		"off":      {zerolog.Disabled, true},
		"verbose?": {zerolog.InfoLevel, false},
	}
	for raw, want := range cases {
		lvl, ok := parseLevel(raw)
		if lvl != want.level || ok != want.ok {
			t.Fatalf("parseLevel(%q)=(%v,%v) want (%v,%v)", raw, lvl, ok, want.level, want.ok)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvLogTimestamp, "false")
	t.Setenv(EnvLogNoColor, "true")
	t.Setenv(EnvLogBypass, "true")

	cfg := defaultConfig(ProfileRuntime)
	applyEnvOverrides(&cfg)
	if cfg.Level != zerolog.ErrorLevel || cfg.Timestamp || !cfg.NoColor || !cfg.Bypass {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestEnvOverridesUnsetKeepsProfile(t *testing.T) {
	cfg := defaultConfig(ProfileTest)
	applyEnvOverrides(&cfg)
	if cfg.Level != zerolog.DebugLevel || cfg.Timestamp {
		t.Fatalf("test profile changed without env: %+v", cfg)
	}
}

func TestApplyWritesAndBypass(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	Apply(Config{App: "logging-test", Level: zerolog.InfoLevel, NoColor: true, Out: &buf})
	log.Debug().Msg("hidden")
	log.Info().Msg("visible")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "visible") {
		t.Fatalf("level filtering broken: %q", buf.String())
	}

	buf.Reset()
	Apply(Config{Level: zerolog.InfoLevel, Bypass: true, Out: &buf})
	log.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("bypass wrote output: %q", buf.String())
	}
}
