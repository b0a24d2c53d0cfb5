// Package lifecycle holds timeouts shared by fx start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds a single start-up or shutdown step.
const DefaultTimeout = 10 * time.Second
