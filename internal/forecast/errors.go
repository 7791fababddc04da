package forecast

import (
	"fmt"
	"strings"
)

// NoDataError is returned when neither source yields a usable timestamp axis
// and no forecast points can be derived. The message enumerates every
// recorded source failure so the caller can tell which upstream call broke.
type NoDataError struct {
	Warnings []string
}

func (e *NoDataError) Error() string {
	if len(e.Warnings) == 0 {
		return "no forecast data available"
	}
	return "no forecast data available: " + strings.Join(e.Warnings, "; ")
}

// ValidationError is returned when a merged series fails schema validation at
// emission time. It is distinct from NoDataError: the merge succeeded but the
// assembled data does not match the declared output shape, which points at
// upstream schema drift.
type ValidationError struct {
	Cause    error
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("forecast failed schema validation: %v", e.Cause)
}

func (e *ValidationError) Unwrap() error { return e.Cause }
