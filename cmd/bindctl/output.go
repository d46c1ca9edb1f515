package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

func writeSnapshot(w io.Writer, format string, snap map[string]map[string]any) error {
	switch format {
	case "toml":
		data, err := toml.Marshal(snap)
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "text":
		for _, object := range sortedObjects(snap) {
			values := snap[object]
			paths := make([]string, 0, len(values))
			for p := range values {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			for _, p := range paths {
				if _, err := fmt.Fprintf(w, "%s.%s = %v\n", object, p, values[p]); err != nil {
					return err
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func sortedObjects(snap map[string]map[string]any) []string {
	out := make([]string, 0, len(snap))
	for k := range snap {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
