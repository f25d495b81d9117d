// Command holidays-catalogpacker merges catalog/<n>/core.json and the entity
// fragments into the catalogue embedded by internal/core/catalog
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"holidays/internal/platform/config"
)

func must(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func main() {
	var (
		flagRoot = flag.String("root", "", "catalogue version directory (e.g., ./catalog/1 or ./catalog). If empty, auto-discover")
		out      = flag.String("out", "./internal/core/catalog/catalog.json", "output path or '-' for stdout")
		pretty   = flag.Bool("pretty", true, "pretty-print JSON")
		verbose  = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	env := config.New().Prefix("HOLIDAYS_").MayString("CATALOG_ROOT", "")
	root, attempts, err := resolveRoot(*flagRoot, env)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to locate catalogue root (looked in):\n")
		for _, a := range attempts {
			_, _ = fmt.Fprintf(os.Stderr, "  - %s\n", a)
		}
		_, _ = fmt.Fprintf(os.Stderr, "hint: run from the repository root or set HOLIDAYS_CATALOG_ROOT\n")
		must(err)
	}
	if *verbose {
		_, _ = fmt.Fprintf(os.Stderr, "using catalogue root: %s\n", root)
	}

	obj, enc, err := assemble(root)
	must(err)
	if *pretty {
		enc, err = json.MarshalIndent(obj, "", "  ")
		must(err)
	}

	if strings.TrimSpace(*out) == "-" {
		_, err := os.Stdout.Write(append(enc, '\n'))
		must(err)
		return
	}
	must(os.MkdirAll(filepath.Dir(*out), 0o755))
	must(os.WriteFile(*out, append(enc, '\n'), 0o644))
	if *verbose {
		_, _ = fmt.Fprintf(os.Stderr, "wrote %s (%d entities, %d bytes)\n", *out, len(obj.Entities), len(enc))
	}
}
