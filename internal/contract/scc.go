package contract

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os/exec"
	"strconv"

	"github.com/huangsam/repopulse/schema"
)

// SCCLineCounter implements LineCounter by invoking the scc binary
// installed on the machine. Each call is a blocking subprocess run; a
// non-zero exit or unparsable output aborts the caller's stage.
type SCCLineCounter struct {
	// Binary overrides the executable name, mainly for tests.
	Binary string
}

var _ LineCounter = &SCCLineCounter{} // Compile-time check

// NewSCCLineCounter creates a line counter that shells out to scc.
func NewSCCLineCounter() *SCCLineCounter {
	return &SCCLineCounter{Binary: "scc"}
}

// Columns the tool emits that are not part of the persisted schema.
// They are dropped during parsing rather than after.
var requiredSCCColumns = []string{"Language", "Location", "Lines", "Code", "Comments", "Blanks", "Bytes"}

// Measure implements the LineCounter interface.
func (s *SCCLineCounter) Measure(ctx context.Context, directory string) ([]schema.FileSizeRow, error) {
	cmd := exec.CommandContext(ctx, s.Binary,
		"--format", "csv",
		"--by-file",
		"--no-cocomo",
		"--no-min-gen",
		directory,
	)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return nil, fmt.Errorf("scc failed in %q: %s", directory, bytes.TrimSpace(exitErr.Stderr))
	} else if err != nil {
		return nil, fmt.Errorf("scc invocation failed: %w. Ensure scc is installed and available on your PATH", err)
	}
	return parseSCCOutput(out)
}

// parseSCCOutput converts scc's CSV output into file size rows. Column
// positions are resolved from the header so tool upgrades that add
// columns (complexity, unique lines) do not break the parse.
func parseSCCOutput(out []byte) ([]schema.FileSizeRow, error) {
	reader := csv.NewReader(bytes.NewReader(out))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("cannot parse scc output: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("scc produced no output")
	}

	colIndex := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		colIndex[name] = i
	}
	for _, name := range requiredSCCColumns {
		if _, ok := colIndex[name]; !ok {
			return nil, fmt.Errorf("scc output missing column %q", name)
		}
	}

	rows := make([]schema.FileSizeRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := schema.FileSizeRow{
			Language: record[colIndex["Language"]],
			Path:     record[colIndex["Location"]],
		}
		fields := []struct {
			name string
			dest *int64
		}{
			{"Lines", &row.Lines},
			{"Code", &row.Code},
			{"Comments", &row.Comments},
			{"Blanks", &row.Blanks},
			{"Bytes", &row.Bytes},
		}
		for _, f := range fields {
			v, convErr := strconv.ParseInt(record[colIndex[f.name]], 10, 64)
			if convErr != nil {
				return nil, fmt.Errorf("cannot parse scc column %s value %q: %w", f.name, record[colIndex[f.name]], convErr)
			}
			*f.dest = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}
