package chart

import (
	"context"
	"fmt"
)

// Service runs the chart pipeline: validate, resolve location, compute the
// ephemeris snapshot, analyze, interpret, assemble. Each stage requires the
// prior stage's complete output; any failure short-circuits the rest with
// its error kind preserved.
type Service struct {
	geocoder Geocoder // nil when no geocoding credential is configured
	computer Computer
	store    InterpretationStore
}

// NewService creates a Service. geocoder may be nil, which restricts
// requests to direct-coordinate mode.
func NewService(geocoder Geocoder, computer Computer, store InterpretationStore) *Service {
	return &Service{
		geocoder: geocoder,
		computer: computer,
		store:    store,
	}
}

// BuildChart assembles a full chart response for one birth input.
func (s *Service) BuildChart(ctx context.Context, in BirthInput) (*Response, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	loc, err := s.resolveLocation(ctx, in)
	if err != nil {
		return nil, err
	}

	utc, err := civilToUTC(in, loc)
	if err != nil {
		return nil, err
	}

	snap, err := s.computer.Compute(utc, loc)
	if err != nil {
		return nil, err
	}

	facts, err := Analyze(snap)
	if err != nil {
		return nil, err
	}

	interps, err := s.resolveInterpretations(ctx, snap, facts)
	if err != nil {
		return nil, err
	}

	return &Response{
		Name: in.Name,
		BirthDatetime: fmt.Sprintf("%04d-%02d-%02dT%02d:%02d",
			in.Year, in.Month, in.Day, in.Hour, in.Minute),
		Latitude:        loc.Lat,
		Longitude:       loc.Lng,
		Timezone:        loc.TzStr,
		SunSign:         facts.SunSign,
		MoonSign:        facts.MoonSign,
		RisingSign:      facts.RisingSign,
		LunarPhase:      snap.LunarPhase,
		Planets:         snap.Planets,
		Houses:          snap.Houses,
		Aspects:         facts.Aspects,
		ChartShape:      facts.Shape,
		Distribution:    facts.Distribution,
		Interpretations: interps,
	}, nil
}
