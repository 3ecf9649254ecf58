package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/astrilabs/natal-chart-api/internal/chart"
)

// Placeholder marks a seeded row whose editorial content has not been
// written yet. Each seeded row carries its human-readable label as a prefix
// ("Sun in Aries: [Add your interpretation here]") so editors see what they
// are filling in. Distinct from the resolver's fallback marker, which
// stands for a key with no row at all.
const Placeholder = "[Add your interpretation here]"

var seedPlanets = []string{
	"Sun", "Moon", "Mercury", "Venus", "Mars",
	"Jupiter", "Saturn", "Uranus", "Neptune", "Pluto", "Chiron",
}

var seedAspects = []string{
	"Conjunction", "Opposition", "Square", "Trine", "Sextile", "Quincunx",
}

var seedShapes = []string{
	"splash", "splay", "bundle", "bowl", "locomotive", "bucket", "see_saw",
}

var seedDistributions = []string{
	"hemisphere_northern", "hemisphere_southern",
	"hemisphere_eastern", "hemisphere_western",
	"quadrant_1", "quadrant_2", "quadrant_3", "quadrant_4",
}

// Writer is the write side a seed target must expose. Both Memory and
// SQLite satisfy it.
type Writer interface {
	Put(ctx context.Context, key, text string) error
}

// DefaultEntries builds the full default interpretation table: every
// planet-sign and planet-house pair plus aspect, shape, and distribution
// rows, all holding label-prefixed placeholder text.
func DefaultEntries() map[string]string {
	entries := make(map[string]string, len(seedPlanets)*24+32)

	for _, planet := range seedPlanets {
		for _, sign := range chart.Signs {
			entries[chart.PlanetSignKey(planet, sign)] =
				fmt.Sprintf("%s in %s: %s", planet, sign, Placeholder)
		}
		for house := 1; house <= 12; house++ {
			entries[chart.PlanetHouseKey(planet, house)] =
				fmt.Sprintf("%s in House %d: %s", planet, house, Placeholder)
		}
	}
	for _, a := range seedAspects {
		entries[chart.AspectKey(a)] = fmt.Sprintf("%s aspect: %s", a, Placeholder)
	}
	for _, s := range seedShapes {
		entries[chart.ShapeKey(s)] = fmt.Sprintf("The %s pattern: %s", keyLabel(s), Placeholder)
	}
	for _, d := range seedDistributions {
		entries[chart.DistributionKey(d)] = fmt.Sprintf("%s emphasis: %s", keyLabel(d), Placeholder)
	}
	return entries
}

// ordinal quadrant numbers as they read in the seeded labels.
var ordinals = map[string]string{"1": "1st", "2": "2nd", "3": "3rd", "4": "4th"}

// keyLabel turns a snake_case key into its title-cased label:
// "see_saw" reads "See Saw", "quadrant_4" reads "Quadrant 4th".
func keyLabel(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if ord, ok := ordinals[w]; ok {
			words[i] = ord
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// Seed writes the default entries into dst, keeping any rows already
// present. Idempotent; intended to run once out-of-band.
func Seed(ctx context.Context, dst Writer) (int, error) {
	entries := DefaultEntries()
	for key, text := range entries {
		if err := dst.Put(ctx, key, text); err != nil {
			return 0, fmt.Errorf("seed %s: %w", key, err)
		}
	}
	return len(entries), nil
}
