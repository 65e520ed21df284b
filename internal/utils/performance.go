package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// SlowOperation is the duration past which OperationTimer logs a warning
const SlowOperation = 30 * time.Second

// SlowQuery is the duration past which MeasureDBQuery logs a warning
const SlowQuery = 5 * time.Second

// OperationTimer provides a defer-friendly way to measure operation duration.
// The returned func logs and returns the elapsed time.
//
// Usage:
//
//	func (j *Job) Run() error {
//	    defer utils.OperationTimer("db_maintenance", j.log)()
//	}
func OperationTimer(operation string, log zerolog.Logger) func() time.Duration {
	start := time.Now()

	return func() time.Duration {
		duration := time.Since(start)

		log.Debug().
			Str("operation", operation).
			Dur("duration_ms", duration).
			Msg("Operation completed")

		if duration > SlowOperation {
			log.Warn().
				Str("operation", operation).
				Dur("duration", duration).
				Msg("Slow operation detected")
		}
		return duration
	}
}

// MeasureDBQuery measures database query performance
func MeasureDBQuery(queryName string, log zerolog.Logger) func(rows int) {
	start := time.Now()

	return func(rows int) {
		duration := time.Since(start)

		log.Debug().
			Str("query", queryName).
			Dur("duration_ms", duration).
			Int("rows", rows).
			Msg("Database query completed")

		if duration > SlowQuery {
			log.Warn().
				Str("query", queryName).
				Dur("duration", duration).
				Int("rows", rows).
				Msg("Slow database query detected")
		}
	}
}
