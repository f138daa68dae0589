// main is the entry point for the repopulse CLI.
package main

import (
	"os"

	"github.com/huangsam/repopulse/cmd"
	"github.com/huangsam/repopulse/internal/contract"
	"github.com/huangsam/repopulse/internal/iostore"
)

func main() {
	code := 0
	if err := cmd.Execute(); err != nil {
		_, _ = contract.ErrorColor.Fprintf(os.Stderr, "Fatal: %v\n", err)
		code = 1
	}

	if err := cmd.StopProfiling(); err != nil {
		contract.LogWarn("could not stop profiling", err)
	}
	iostore.CloseStore()

	os.Exit(code)
}
