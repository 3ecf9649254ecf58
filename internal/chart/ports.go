package chart

import (
	"context"
	"time"
)

// Geocoder resolves a city/nation pair to coordinates and a timezone.
// Implementations live in internal/geo.
type Geocoder interface {
	Name() string
	Resolve(ctx context.Context, city, nation string) (ResolvedLocation, error)
}

// Computer wraps the external ephemeris computation. It is treated as a
// pure function: deterministic for identical input, no side effects visible
// to callers.
type Computer interface {
	Compute(utc time.Time, loc ResolvedLocation) (Snapshot, error)
}

// InterpretationStore is the read side of the interpretation table. Absence
// of a key is not an error; the second return reports whether text exists.
type InterpretationStore interface {
	Lookup(ctx context.Context, key string) (text string, ok bool, err error)
}
