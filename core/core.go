// Package core computes longitudinal repository metrics from raw
// revision and issue facts: normalized commit tables, code-size rollups,
// productivity deltas, bus factor, issue spoilage and issue density.
//
// Every transform in this package is a pure function over explicit rows;
// the Pipeline type wires them to the VCS, line-counter, tracker and
// store collaborators.
package core
