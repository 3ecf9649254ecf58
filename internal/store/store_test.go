package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astrilabs/natal-chart-api/internal/chart"
	"github.com/astrilabs/natal-chart-api/internal/store"
)

func TestMemory_LookupAbsentKey(t *testing.T) {
	m := store.NewMemory()

	text, ok, err := m.Lookup(context.Background(), "planet_sign:Sun:Aries")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestMemory_PutKeepsExistingText(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	require.NoError(t, m.Put(ctx, "aspect:Trine", "hand-written text"))
	require.NoError(t, m.Put(ctx, "aspect:Trine", store.Placeholder))

	text, ok, err := m.Lookup(ctx, "aspect:Trine")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hand-written text", text)
}

func TestSeed_CoversEveryCategory(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	n, err := store.Seed(ctx, m)
	require.NoError(t, err)

	// 11 planets x (12 signs + 12 houses) + 6 aspects + 7 shapes + 8 distributions.
	assert.Equal(t, 11*24+6+7+8, n)

	for _, key := range []string{
		chart.PlanetSignKey("Sun", "Aries"),
		chart.PlanetSignKey("Chiron", "Pisces"),
		chart.PlanetHouseKey("Moon", 12),
		chart.AspectKey("Quincunx"),
		chart.ShapeKey(chart.ShapeSeeSaw),
		chart.DistributionKey("quadrant_4"),
	} {
		_, ok, err := m.Lookup(ctx, key)
		require.NoError(t, err)
		assert.True(t, ok, "missing seeded key %s", key)
	}
}

// TestSeed_TextCarriesLabelPrefix verifies that every seeded row names what
// it interprets ahead of the placeholder, so editors see what they are
// filling in.
func TestSeed_TextCarriesLabelPrefix(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	_, err := store.Seed(ctx, m)
	require.NoError(t, err)

	cases := map[string]string{
		chart.PlanetSignKey("Sun", "Aries"):           "Sun in Aries: " + store.Placeholder,
		chart.PlanetHouseKey("Moon", 7):               "Moon in House 7: " + store.Placeholder,
		chart.AspectKey("Trine"):                      "Trine aspect: " + store.Placeholder,
		chart.ShapeKey(chart.ShapeSeeSaw):             "The See Saw pattern: " + store.Placeholder,
		chart.ShapeKey(chart.ShapeBowl):               "The Bowl pattern: " + store.Placeholder,
		chart.DistributionKey("quadrant_1"):           "Quadrant 1st emphasis: " + store.Placeholder,
		chart.DistributionKey("hemisphere_northern"): "Hemisphere Northern emphasis: " + store.Placeholder,
	}
	for key, want := range cases {
		text, ok, err := m.Lookup(ctx, key)
		require.NoError(t, err)
		require.True(t, ok, "missing seeded key %s", key)
		assert.Equal(t, want, text, "key %s", key)
	}
}

func TestSQLite_SeedAndLookup(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "interp.db")

	db, err := store.OpenSQLite(dsn)
	require.NoError(t, err)
	defer db.Close()

	_, err = store.Seed(ctx, db)
	require.NoError(t, err)

	text, ok, err := db.Lookup(ctx, chart.PlanetSignKey("Venus", "Libra"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Venus in Libra: "+store.Placeholder, text)

	_, ok, err = db.Lookup(ctx, "planet_sign:Venus:Nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLite_SeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "interp.db")

	db, err := store.OpenSQLite(dsn)
	require.NoError(t, err)
	defer db.Close()

	first, err := store.Seed(ctx, db)
	require.NoError(t, err)

	second, err := store.Seed(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	text, ok, err := db.Lookup(ctx, chart.ShapeKey(chart.ShapeBowl))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "The Bowl pattern: "+store.Placeholder, text)
}
