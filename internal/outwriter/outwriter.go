// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/huangsam/repopulse/internal/contract"
	"github.com/huangsam/repopulse/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API
// for the command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteDailySize prints the daily size series using the configured output format.
func (ow *OutWriter) WriteDailySize(rows []schema.ProjectSizeDayRow, cfg *contract.Config) error {
	return PrintDailySize(rows, cfg)
}

// WriteProductivity prints the daily productivity series using the configured output format.
func (ow *OutWriter) WriteProductivity(rows []schema.ProductivityDayRow, cfg *contract.Config) error {
	return PrintProductivity(rows, cfg)
}

// WriteBusFactor prints the bus factor table using the configured output format.
func (ow *OutWriter) WriteBusFactor(rows []schema.BusFactorRow, cfg *contract.Config) error {
	return PrintBusFactor(rows, cfg)
}

// WriteSpoilage prints the daily spoilage series using the configured output format.
func (ow *OutWriter) WriteSpoilage(rows []schema.SpoilageRow, cfg *contract.Config) error {
	return PrintSpoilage(rows, cfg)
}

// WriteDensity prints the issue density series using the configured output format.
func (ow *OutWriter) WriteDensity(rows []schema.DensityRow, cfg *contract.Config) error {
	return PrintDensity(rows, cfg)
}
