//go:build js && wasm

// Command wasm exposes the intercept engine to the browser via WebAssembly.
// After loading, it registers a global JavaScript function:
//
//	runIntercept(jsonString) -> jsonString
//
// The input is a scenario and the output the run report, the same contract the
// CLI and the /api/v1/intercept endpoint use.
package main

import (
	"syscall/js"

	"github.com/cxd309/intercept-engine/internal/engine"
	"github.com/cxd309/intercept-engine/internal/monitoring"
)

func main() {
	monitoring.SetLogger(nil)
	js.Global().Set("runIntercept", js.FuncOf(runIntercept))
	select {} // keep the WASM module alive until the page is closed
}

func runIntercept(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return map[string]any{"error": "no input provided"}
	}

	result, err := engine.RunJSON(args[0].String(), engine.RunOptions{})
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return result
}
