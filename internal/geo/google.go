package geo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kelvins/geocoder"

	"github.com/astrilabs/natal-chart-api/internal/chart"
)

// TimezoneFinder maps coordinates to an IANA zone name. Satisfied by
// tzf.DefaultFinder; a stub works for tests.
type TimezoneFinder interface {
	GetTimezoneName(lng, lat float64) string
}

// Google resolves city/nation through the Google Geocoding API. The API
// returns no timezone, so the zone is derived from the coordinates via the
// embedded timezone index.
type Google struct {
	tz      TimezoneFinder
	timeout time.Duration
	geocode func(geocoder.Address) (geocoder.Location, error)
}

// NewGoogle configures the kelvins/geocoder package-level credential and
// returns the adapter. The library holds its key globally, so only one
// Google geocoder per process makes sense. timeout bounds each lookup;
// zero means only the caller's context bounds it.
func NewGoogle(apiKey string, tz TimezoneFinder, timeout time.Duration) *Google {
	geocoder.ApiKey = apiKey
	return &Google{tz: tz, timeout: timeout, geocode: geocoder.Geocoding}
}

func (g *Google) Name() string { return "google" }

// Resolve looks up the city's coordinates and derives its timezone. The
// library offers no context plumbing, so the lookup runs in a goroutine
// raced against ctx; on expiry the request unblocks and the stray lookup is
// abandoned.
func (g *Google) Resolve(ctx context.Context, city, nation string) (chart.ResolvedLocation, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	addr := geocoder.Address{
		City:    city,
		Country: nation,
	}

	type outcome struct {
		loc geocoder.Location
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		loc, err := g.geocode(addr)
		done <- outcome{loc: loc, err: err}
	}()

	var loc geocoder.Location
	select {
	case <-ctx.Done():
		return chart.ResolvedLocation{}, &chart.GeocodingError{Query: city, Err: ctx.Err()}
	case out := <-done:
		if out.err != nil {
			return chart.ResolvedLocation{}, &chart.GeocodingError{
				Query: city,
				Err:   fmt.Errorf("google geocoding: %w", out.err),
			}
		}
		loc = out.loc
	}

	tz := g.tz.GetTimezoneName(loc.Longitude, loc.Latitude)
	if tz == "" {
		return chart.ResolvedLocation{}, &chart.GeocodingError{
			Query: city,
			Err:   errors.New("no timezone for resolved coordinates"),
		}
	}

	return chart.ResolvedLocation{
		Lat:   loc.Latitude,
		Lng:   loc.Longitude,
		TzStr: tz,
	}, nil
}
