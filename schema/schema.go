// Package schema defines the row models, table names and shared helper
// types for the repopulse metric tables.
package schema
