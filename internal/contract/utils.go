package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Color variables for console output.
var (
	ErrorColor   = color.New(color.FgRed, color.Bold)
	WarnColor    = color.New(color.FgYellow)
	SuccessColor = color.New(color.FgGreen)
)

// SelectOutputFile returns the appropriate file handle for output, based
// on the provided file path. It falls back to os.Stdout for an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = ErrorColor.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		_, _ = WarnColor.Fprintf(os.Stderr, "Warning %s: %v\n", msg, err)
		return
	}
	_, _ = WarnColor.Fprintf(os.Stderr, "Warning %s\n", msg)
}

// LogProgress prints a progress line to stderr so data output on stdout
// stays machine-readable.
func LogProgress(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
}
