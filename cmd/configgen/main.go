package main

import (
	"flag"
	"log"

	"github.com/danmuck/bindkit/internal/config"
)

const defaultManifest = "cmd/bindctl/bind.toml"

func main() {
	kind := flag.String("kind", "demo", "manifest kind: demo|locale")
	output := flag.String("output", defaultManifest, "output path for manifest template")
	validate := flag.Bool("validate", false, "validate an existing manifest")
	input := flag.String("input", defaultManifest, "manifest path for validation")
	force := flag.Bool("force", false, "overwrite existing manifest")
	flag.Parse()

	if *validate {
		m, err := config.LoadManifest(*input)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("Validated manifest %q at %s (%d bindings, %d steps)", m.Name, *input, len(m.Bindings), len(m.Steps))
		return
	}

	if err := config.WriteTemplate(*output, *kind, *force); err != nil {
		log.Fatal(err)
	}
	log.Printf("Wrote %s manifest template to %s", *kind, *output)
}
