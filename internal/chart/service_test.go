package chart_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrilabs/natal-chart-api/internal/chart"
	"github.com/astrilabs/natal-chart-api/internal/store"
)

// --- stubs ---

type stubGeocoder struct {
	loc   chart.ResolvedLocation
	err   error
	calls int
}

func (g *stubGeocoder) Name() string { return "stub" }

func (g *stubGeocoder) Resolve(_ context.Context, _, _ string) (chart.ResolvedLocation, error) {
	g.calls++
	return g.loc, g.err
}

type stubComputer struct {
	snap  chart.Snapshot
	err   error
	calls int
}

func (c *stubComputer) Compute(_ time.Time, _ chart.ResolvedLocation) (chart.Snapshot, error) {
	c.calls++
	return c.snap, c.err
}

// testSnapshot builds a complete, internally consistent snapshot: twelve
// equal houses starting at 0 Aries and all tracked bodies placed.
func testSnapshot() chart.Snapshot {
	houses := make([]chart.HouseCusp, 12)
	for i := range houses {
		abs := float64(i * 30)
		sign, _ := chart.SignAt(abs)
		houses[i] = chart.HouseCusp{Number: i + 1, Sign: sign, Degree: 0, AbsDegree: abs}
	}

	names := []string{
		"Sun", "Moon", "Mercury", "Venus", "Mars",
		"Jupiter", "Saturn", "Uranus", "Neptune", "Pluto",
		"Chiron", chart.NorthNode, chart.SouthNode,
	}
	planets := make([]chart.PlanetPosition, len(names))
	for i, name := range names {
		abs := float64((i * 27) % 360)
		sign, signNum := chart.SignAt(abs)
		planets[i] = chart.PlanetPosition{
			Name:      name,
			Sign:      sign,
			SignNum:   signNum,
			Degree:    abs - float64(int(abs/30))*30,
			AbsDegree: abs,
			House:     int(abs/30) + 1,
		}
	}

	return chart.Snapshot{
		Planets: planets,
		Houses:  houses,
		LunarPhase: chart.LunarPhase{
			DegreesBetween: 27,
			PhaseName:      "Waxing Crescent",
			Emoji:          "\U0001F312",
		},
	}
}

func coords(lat, lng float64) (*float64, *float64) {
	return &lat, &lng
}

// --- tests ---

func TestBuildChart_DirectCoordinates(t *testing.T) {
	lat, lng := coords(40.7128, -74.006)
	geocoder := &stubGeocoder{}
	computer := &stubComputer{snap: testSnapshot()}
	svc := chart.NewService(geocoder, computer, store.NewMemoryFromMap(store.DefaultEntries()))

	resp, err := svc.BuildChart(context.Background(), chart.BirthInput{
		Year: 1990, Month: 6, Day: 15, Hour: 12, Minute: 0,
		Lat: lat, Lng: lng, TzStr: "America/New_York",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, geocoder.calls, "direct coordinates must not geocode")
	assert.Equal(t, 1, computer.calls)

	assert.Equal(t, "1990-06-15T12:00", resp.BirthDatetime)
	assert.NotEmpty(t, resp.SunSign)
	assert.NotEmpty(t, resp.MoonSign)
	assert.NotEmpty(t, resp.RisingSign)
	assert.Len(t, resp.Planets, 13)
	assert.Len(t, resp.Houses, 12)

	// Every planet-in-sign key resolves to some text.
	assert.Len(t, resp.Interpretations.PlanetInSign, 13)
	for label, text := range resp.Interpretations.PlanetInSign {
		assert.NotEmpty(t, text, "empty interpretation for %s", label)
	}
}

func TestBuildChart_CoordinatesTakePrecedenceOverCity(t *testing.T) {
	lat, lng := coords(48.8566, 2.3522)
	geocoder := &stubGeocoder{}
	computer := &stubComputer{snap: testSnapshot()}
	svc := chart.NewService(geocoder, computer, store.NewMemory())

	_, err := svc.BuildChart(context.Background(), chart.BirthInput{
		Year: 1985, Month: 3, Day: 2, Hour: 9, Minute: 30,
		Lat: lat, Lng: lng, TzStr: "Europe/Paris",
		City: "Paris", Nation: "FR",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, geocoder.calls)
}

func TestBuildChart_CityWithoutCredential(t *testing.T) {
	computer := &stubComputer{snap: testSnapshot()}
	svc := chart.NewService(nil, computer, store.NewMemory())

	_, err := svc.BuildChart(context.Background(), chart.BirthInput{
		Year: 1990, Month: 6, Day: 15, Hour: 12,
		City: "New York", Nation: "US",
	})

	var ce *chart.ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 0, computer.calls, "no ephemeris call on configuration error")
}

func TestBuildChart_InvalidMonth(t *testing.T) {
	geocoder := &stubGeocoder{}
	computer := &stubComputer{snap: testSnapshot()}
	svc := chart.NewService(geocoder, computer, store.NewMemory())

	_, err := svc.BuildChart(context.Background(), chart.BirthInput{
		Year: 1990, Month: 13, Day: 15, Hour: 12,
		City: "New York", Nation: "US",
	})

	var ve *chart.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "month", ve.Field)
	assert.Equal(t, 0, geocoder.calls)
	assert.Equal(t, 0, computer.calls)
}

func TestBuildChart_MissingBothLocationModes(t *testing.T) {
	computer := &stubComputer{snap: testSnapshot()}
	svc := chart.NewService(&stubGeocoder{}, computer, store.NewMemory())

	tz := "America/New_York"
	lat := 40.0
	cases := []chart.BirthInput{
		{Year: 1990, Month: 6, Day: 15, Hour: 12},                            // nothing
		{Year: 1990, Month: 6, Day: 15, Hour: 12, Lat: &lat},                 // partial coords
		{Year: 1990, Month: 6, Day: 15, Hour: 12, TzStr: tz},                 // tz only
		{Year: 1990, Month: 6, Day: 15, Hour: 12, Lat: &lat, TzStr: tz},      // missing lng
	}

	for _, in := range cases {
		_, err := svc.BuildChart(context.Background(), in)
		var ve *chart.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "location", ve.Field)
	}
	assert.Equal(t, 0, computer.calls)
}

func TestBuildChart_GeocodedCity(t *testing.T) {
	geocoder := &stubGeocoder{
		loc: chart.ResolvedLocation{Lat: 40.7128, Lng: -74.006, TzStr: "America/New_York"},
	}
	computer := &stubComputer{snap: testSnapshot()}
	svc := chart.NewService(geocoder, computer, store.NewMemory())

	resp, err := svc.BuildChart(context.Background(), chart.BirthInput{
		Year: 1990, Month: 6, Day: 15, Hour: 12,
		City: "New York", Nation: "US",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, geocoder.calls)
	assert.Equal(t, 40.7128, resp.Latitude)
	assert.Equal(t, "America/New_York", resp.Timezone)
}

func TestBuildChart_GeocodingFailureShortCircuits(t *testing.T) {
	geocoder := &stubGeocoder{
		err: &chart.GeocodingError{Query: "Atlantis", Err: errors.New("no match found")},
	}
	computer := &stubComputer{snap: testSnapshot()}
	svc := chart.NewService(geocoder, computer, store.NewMemory())

	_, err := svc.BuildChart(context.Background(), chart.BirthInput{
		Year: 1990, Month: 6, Day: 15, Hour: 12, City: "Atlantis",
	})

	var ge *chart.GeocodingError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, 0, computer.calls)
}

func TestBuildChart_EphemerisFailure(t *testing.T) {
	lat, lng := coords(0.0, 0.0)
	computer := &stubComputer{err: &chart.EphemerisError{Reason: "date outside supported span"}}
	svc := chart.NewService(nil, computer, store.NewMemory())

	_, err := svc.BuildChart(context.Background(), chart.BirthInput{
		Year: 9999, Month: 1, Day: 1, Hour: 12,
		Lat: lat, Lng: lng, TzStr: "UTC",
	})

	var ee *chart.EphemerisError
	require.ErrorAs(t, err, &ee)
}

func TestBuildChart_EmptyStoreFallsBackEverywhere(t *testing.T) {
	lat, lng := coords(40.7128, -74.006)
	computer := &stubComputer{snap: testSnapshot()}
	svc := chart.NewService(nil, computer, store.NewMemory())

	resp, err := svc.BuildChart(context.Background(), chart.BirthInput{
		Year: 1990, Month: 6, Day: 15, Hour: 12,
		Lat: lat, Lng: lng, TzStr: "America/New_York",
	})
	require.NoError(t, err)

	for _, text := range resp.Interpretations.PlanetInSign {
		assert.Equal(t, chart.FallbackText, text)
	}
	for _, text := range resp.Interpretations.PlanetInHouse {
		assert.Equal(t, chart.FallbackText, text)
	}
	for _, text := range resp.Interpretations.Aspects {
		assert.Equal(t, chart.FallbackText, text)
	}
	if resp.ChartShape != "" {
		assert.Equal(t, chart.FallbackText, resp.Interpretations.ChartShape)
	}
}

func TestBuildChart_IncompleteSnapshotIsIntegrityError(t *testing.T) {
	lat, lng := coords(10.0, 10.0)
	snap := testSnapshot()
	snap.Planets = snap.Planets[:5] // drop required planets
	computer := &stubComputer{snap: snap}
	svc := chart.NewService(nil, computer, store.NewMemory())

	_, err := svc.BuildChart(context.Background(), chart.BirthInput{
		Year: 1990, Month: 6, Day: 15, Hour: 12,
		Lat: lat, Lng: lng, TzStr: "UTC",
	})

	var de *chart.DataIntegrityError
	require.ErrorAs(t, err, &de)
}

func TestBuildChart_InvalidTimezoneString(t *testing.T) {
	lat, lng := coords(40.0, -74.0)
	computer := &stubComputer{snap: testSnapshot()}
	svc := chart.NewService(nil, computer, store.NewMemory())

	_, err := svc.BuildChart(context.Background(), chart.BirthInput{
		Year: 1990, Month: 6, Day: 15, Hour: 12,
		Lat: lat, Lng: lng, TzStr: "Not/AZone",
	})

	var ve *chart.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "tz_str", ve.Field)
	assert.Equal(t, 0, computer.calls)
}
