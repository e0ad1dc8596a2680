package debug

import (
	"fmt"
	"log"
	"time"
)

// Output prints a timestamped debug line if debugging is enabled.
func Output(enabled bool, format string, args ...interface{}) {
	if enabled {
		timestamp := time.Now().Format("15:04:05.000")
		message := fmt.Sprintf(format, args...)
		log.Printf("[%s] %s", timestamp, message)
	}
}

// Timing measures and logs execution time of a pipeline stage if
// debugging is enabled. Use as: defer debug.Timing(enabled, "mapping")().
func Timing(enabled bool, stage string) func() {
	if !enabled {
		return func() {}
	}

	start := time.Now()
	Output(enabled, "Starting: %s", stage)

	return func() {
		Output(enabled, "Completed: %s (took %v)", stage, time.Since(start))
	}
}
