package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/danmuck/bindkit/internal/observability"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel     = "BINDKIT_LOG_LEVEL"
	EnvLogTimestamp = "BINDKIT_LOG_TIMESTAMP"
	EnvLogNoColor   = "BINDKIT_LOG_NOCOLOR"
	EnvLogBypass    = "BINDKIT_LOG_BYPASS"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

// Config is the resolved logging setup for one process.
type Config struct {
	App       string
	Level     zerolog.Level
	Timestamp bool
	NoColor   bool
	Bypass    bool
	Out       io.Writer
}

type envOverrides struct {
	Level     string `env:"BINDKIT_LOG_LEVEL"`
	Timestamp *bool  `env:"BINDKIT_LOG_TIMESTAMP"`
	NoColor   *bool  `env:"BINDKIT_LOG_NOCOLOR"`
	Bypass    *bool  `env:"BINDKIT_LOG_BYPASS"`
}

var configureOnce sync.Once

func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

func ConfigureTests() {
	Configure(ProfileTest)
}

// Configure installs the global zerolog logger for profile. Only the
// first call per process has an effect.
func Configure(profile Profile) {
	configureOnce.Do(func() {
		cfg := defaultConfig(profile)
		applyEnvOverrides(&cfg)
		Apply(cfg)
	})
}

// Apply installs cfg unconditionally.
func Apply(cfg Config) {
	out := cfg.Out
	if cfg.Bypass || out == nil {
		out = io.Discard
	}
	zerolog.SetGlobalLevel(cfg.Level)
	log.Logger = observability.NewLogger(observability.LoggerOptions{
		Out:       out,
		App:       cfg.App,
		Timestamp: cfg.Timestamp,
		NoColor:   cfg.NoColor,
	})
}

func defaultConfig(profile Profile) Config {
	cfg := Config{App: "bindkit", Out: os.Stderr}
	switch profile {
	case ProfileTest:
		cfg.Level = zerolog.DebugLevel
		cfg.Timestamp = false
	default:
		cfg.Level = zerolog.InfoLevel
		cfg.Timestamp = true
	}
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	var raw envOverrides
	if err := env.Parse(&raw); err != nil {
		return
	}
	if lvl, ok := parseLevel(raw.Level); ok {
		cfg.Level = lvl
	}
	if raw.Timestamp != nil {
		cfg.Timestamp = *raw.Timestamp
	}
	if raw.NoColor != nil {
		cfg.NoColor = *raw.NoColor
	}
	if raw.Bypass != nil {
		cfg.Bypass = *raw.Bypass
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "trace", "diagnostics":
		return zerolog.TraceLevel, true
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none", "inactive":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}
