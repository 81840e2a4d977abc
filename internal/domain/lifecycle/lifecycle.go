// Package lifecycle holds shared lifecycle constants for startup and
// shutdown hooks.
package lifecycle

import "time"

// DefaultTimeout bounds how long start/stop hooks may take.
const DefaultTimeout = 10 * time.Second
