package inspect

import "fmt"

// probeErr converts a recovered probe panic into an error. Born
// modules report shape mismatches by panicking; a probe turns those
// into values the caller can inspect.
func probeErr(r any) error {
	if err, ok := r.(error); ok {
		return fmt.Errorf("probe forward pass: %w", err)
	}
	return fmt.Errorf("probe forward pass: %v", r)
}
