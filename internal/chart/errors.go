package chart

import "fmt"

// ValidationError reports malformed or contradictory input. User-correctable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConfigurationError reports a missing credential or connection. Not
// correctable per-request.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// GeocodingError reports a failed, timed out, or unmatched geocoding lookup.
type GeocodingError struct {
	Query string
	Err   error
}

func (e *GeocodingError) Error() string {
	return fmt.Sprintf("geocoding %q: %v", e.Query, e.Err)
}

func (e *GeocodingError) Unwrap() error { return e.Err }

// EphemerisError reports a computation the ephemeris library rejected,
// typically a date outside its supported span. Deterministic, never retried.
type EphemerisError struct {
	Reason string
}

func (e *EphemerisError) Error() string {
	return "ephemeris computation failed: " + e.Reason
}

// DataIntegrityError reports a violated internal invariant, e.g. a snapshot
// missing a required planet. Treated as a defect.
type DataIntegrityError struct {
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return "data integrity: " + e.Reason
}
