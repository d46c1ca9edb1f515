package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/bindkit/internal/config"
	"github.com/danmuck/bindkit/internal/demo"
	"github.com/danmuck/bindkit/internal/logging"
	"github.com/danmuck/bindkit/internal/observability"
	"github.com/rs/zerolog/log"
)

func main() {
	manifest := flag.String("manifest", "", "binding manifest (default: built-in demo wiring, no steps)")
	format := flag.String("format", "toml", "output format: toml|text")
	metrics := flag.Bool("metrics", false, "print binding metrics after the run")
	flag.Parse()

	logging.ConfigureRuntime()
	if err := run(os.Stdout, *manifest, *format, *metrics); err != nil {
		fmt.Fprintf(os.Stderr, "bindctl: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, manifestPath, format string, metrics bool) error {
	m := config.Manifest{Name: "bindctl"}
	if manifestPath != "" {
		loaded, err := config.LoadManifest(manifestPath)
		if err != nil {
			return err
		}
		m = loaded
	}

	scene, err := demo.NewScene()
	if err != nil {
		return err
	}
	defer scene.Close()

	if err := scene.Apply(m); err != nil {
		return fmt.Errorf("apply %s: %w", m.Name, err)
	}
	log.Info().
		Str("manifest", m.Name).
		Int("bindings", scene.Group.Len()).
		Int("steps", len(m.Steps)).
		Msg("bindctl applied")

	if err := writeSnapshot(w, format, scene.Snapshot()); err != nil {
		return err
	}
	if metrics {
		return observability.WriteMetrics(w)
	}
	return nil
}
