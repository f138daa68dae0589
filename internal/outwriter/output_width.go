package outwriter

import (
	"os"

	"golang.org/x/term"

	"github.com/huangsam/repopulse/internal/contract"
)

// GetTableWidth returns the terminal width the table renderer should
// assume, honoring an explicit override before probing the terminal.
func GetTableWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}

	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default for narrow terminals and CI
		return 80
	}
	return detectedWidth
}
