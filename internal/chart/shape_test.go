package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyShape_Bundle(t *testing.T) {
	lons := []float64{5, 20, 35, 50, 65, 70, 80, 90, 100, 110}
	assert.Equal(t, ShapeBundle, ClassifyShape(lons))
}

func TestClassifyShape_Bowl(t *testing.T) {
	lons := []float64{0, 20, 40, 60, 90, 110, 130, 150, 165, 175}
	assert.Equal(t, ShapeBowl, ClassifyShape(lons))
}

func TestClassifyShape_Bucket(t *testing.T) {
	// Nine planets in a tight arc with a single handle opposite.
	lons := []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 260}
	assert.Equal(t, ShapeBucket, ClassifyShape(lons))
}

func TestClassifyShape_SeeSaw(t *testing.T) {
	lons := []float64{0, 10, 20, 180, 190, 200, 210}
	assert.Equal(t, ShapeSeeSaw, ClassifyShape(lons))
}

func TestClassifyShape_Locomotive(t *testing.T) {
	// Planets over 240 degrees, one empty trine.
	lons := []float64{0, 30, 60, 90, 120, 150, 180, 210, 240}
	assert.Equal(t, ShapeLocomotive, ClassifyShape(lons))
}

func TestClassifyShape_Splash(t *testing.T) {
	// Evenly spread every 36 degrees.
	lons := make([]float64, 10)
	for i := range lons {
		lons[i] = float64(i) * 36
	}
	assert.Equal(t, ShapeSplash, ClassifyShape(lons))
}

func TestClassifyShape_Splay(t *testing.T) {
	// Five tight pairs separated by 70-degree gaps: too scattered for a
	// locomotive, too clumped for a splash.
	lons := []float64{0, 10, 80, 90, 160, 170, 240, 250, 320, 330}
	assert.Equal(t, ShapeSplay, ClassifyShape(lons))
}

func TestClassifyShape_DeterministicAndIdempotent(t *testing.T) {
	lons := []float64{12, 48, 97, 133, 181, 226, 274, 310, 355, 30}
	first := ClassifyShape(lons)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ClassifyShape(lons))
	}
}

func TestClassifyShape_TooFewPlanets(t *testing.T) {
	assert.Equal(t, "", ClassifyShape([]float64{10, 200}))
}

func TestCountDistribution_RawCountsAndEmphasis(t *testing.T) {
	snap := Snapshot{
		Planets: []PlanetPosition{
			{Name: "Sun", House: 10}, {Name: "Moon", House: 11},
			{Name: "Mercury", House: 10}, {Name: "Venus", House: 12},
			{Name: "Mars", House: 9}, {Name: "Jupiter", House: 11},
			{Name: "Saturn", House: 12}, {Name: "Uranus", House: 3},
			{Name: "Neptune", House: 4}, {Name: "Pluto", House: 10},
			{Name: "Chiron", House: 1}, // not a traditional planet, ignored
		},
	}

	dist, emphasized := CountDistribution(snap)

	assert.Equal(t, 8, dist.HemisphereNorthern) // houses 7-12
	assert.Equal(t, 2, dist.HemisphereSouthern)
	assert.Equal(t, 8, dist.HemisphereEastern)
	assert.Equal(t, 2, dist.HemisphereWestern)
	assert.Equal(t, 1, dist.Quadrant1)
	assert.Equal(t, 1, dist.Quadrant2)
	assert.Equal(t, 1, dist.Quadrant3)
	assert.Equal(t, 7, dist.Quadrant4)

	require.Contains(t, emphasized, "hemisphere_northern")
	require.Contains(t, emphasized, "hemisphere_eastern")
	require.Contains(t, emphasized, "quadrant_4")
	assert.Len(t, emphasized, 3)
}

func TestCountDistribution_NoHousesNoEmphasis(t *testing.T) {
	snap := Snapshot{Planets: []PlanetPosition{{Name: "Sun", House: 0}}}
	dist, emphasized := CountDistribution(snap)
	assert.Equal(t, Distribution{}, dist)
	assert.Empty(t, emphasized)
}
