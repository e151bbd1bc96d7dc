// Package timeouts provides centralized timeout values for handler
// operations. Handlers wrap r.Context() with these before store calls so a
// slow MongoDB never holds a request open indefinitely.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Short: simple single-document reads or lookups
//   - Medium: list queries, moderate writes, multi-step reads
//   - Long: operations touching multiple collections (cascading deletes,
//     stats aggregation)
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	short  = 5 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
)

// Ping returns the timeout for health checks.
func Ping() time.Duration { return ping }

// Short returns the timeout for simple single-document operations.
// Examples: get by ID, lookup by email.
func Short() time.Duration { return short }

// Medium returns the timeout for list queries and simple creates/updates.
func Medium() time.Duration { return medium }

// Long returns the timeout for multi-collection operations.
// Examples: workspace delete with project/task cleanup, stats aggregation.
func Long() time.Duration { return long }
