// Command intercept-engine reads a scenario JSON from a file argument (or stdin),
// searches for a defender intercept, and writes the report JSON to stdout.
//
// Usage:
//
//	intercept-engine [-plot out.png] [-html out.html] [-workers N] [-stop-below E] [scenario.json]
//
// Relative -plot and -html paths are placed under OUTPUT_DIR.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cxd309/intercept-engine/internal/config"
	"github.com/cxd309/intercept-engine/internal/engine"
	"github.com/cxd309/intercept-engine/internal/monitoring"
	"github.com/cxd309/intercept-engine/internal/render"
	"github.com/cxd309/intercept-engine/internal/scenario"
)

func main() {
	cfg := config.Load()
	monitoring.SetDebug(cfg.Debug)

	plotPath := flag.String("plot", "", "write a PNG plot of the run to this path")
	htmlPath := flag.String("html", "", "write an interactive HTML chart of the run to this path")
	workers := flag.Int("workers", cfg.SearchWorkers, "search goroutines (<= 1 is sequential)")
	stopBelow := flag.Float64("stop-below", 0, "stop at the first candidate with error below this (0 searches exhaustively)")
	flag.Parse()

	var (
		data []byte
		err  error
	)

	if flag.NArg() > 0 {
		data, err = os.ReadFile(flag.Arg(0))
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading input: %v\n", err)
		os.Exit(1)
	}

	sc, err := scenario.Parse(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "scenario error: %v\n", err)
		os.Exit(1)
	}

	report, err := engine.Run(context.Background(), sc, engine.RunOptions{Workers: *workers, StopBelow: *stopBelow})
	if err != nil {
		fmt.Fprintf(os.Stderr, "search error: %v\n", err)
		os.Exit(1)
	}

	if *plotPath != "" {
		if err := render.SavePNG(report, outputPath(cfg, *plotPath)); err != nil {
			fmt.Fprintf(os.Stderr, "plot error: %v\n", err)
			os.Exit(1)
		}
	}
	if *htmlPath != "" {
		if err := render.SaveHTML(report, outputPath(cfg, *htmlPath)); err != nil {
			fmt.Fprintf(os.Stderr, "chart error: %v\n", err)
			os.Exit(1)
		}
	}

	out, err := json.Marshal(report)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error encoding report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

func outputPath(cfg *config.Config, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cfg.OutputDir, path)
}
