package chart

import (
	"math"
	"sort"
)

// House groupings for hemisphere and quadrant analysis. Northern is above
// the horizon (houses 7-12), eastern is the ascendant side.
var (
	hemisphereNorthern = houseSet(7, 8, 9, 10, 11, 12)
	hemisphereSouthern = houseSet(1, 2, 3, 4, 5, 6)
	hemisphereEastern  = houseSet(10, 11, 12, 1, 2, 3)
	hemisphereWestern  = houseSet(4, 5, 6, 7, 8, 9)
	quadrant1          = houseSet(1, 2, 3)
	quadrant2          = houseSet(4, 5, 6)
	quadrant3          = houseSet(7, 8, 9)
	quadrant4          = houseSet(10, 11, 12)
)

func houseSet(houses ...int) map[int]bool {
	m := make(map[int]bool, len(houses))
	for _, h := range houses {
		m[h] = true
	}
	return m
}

// shapePlanetLongitudes extracts the ecliptic longitudes of the ten
// traditional planets.
func shapePlanetLongitudes(snap Snapshot) []float64 {
	var lons []float64
	for _, p := range snap.Planets {
		if TraditionalPlanets[p.Name] {
			lons = append(lons, p.AbsDegree)
		}
	}
	return lons
}

// largestGap returns the widest empty arc between consecutive longitudes.
func largestGap(lons []float64) float64 {
	if len(lons) < 2 {
		return 360
	}
	sorted := append([]float64(nil), lons...)
	sort.Float64s(sorted)

	max := 0.0
	for i := range sorted {
		next := (i + 1) % len(sorted)
		gap := normalizeAngle(sorted[next] - sorted[i])
		if gap > max {
			max = gap
		}
	}
	return max
}

// span is the occupied arc: 360 minus the largest gap.
func span(lons []float64) float64 {
	if len(lons) < 2 {
		return 0
	}
	return 360 - largestGap(lons)
}

// handleCount counts planets in the "handle", the smaller group opposite
// the main cluster. Zero unless the largest gap splits the wheel decisively.
func handleCount(lons []float64) int {
	if len(lons) < 3 {
		return 0
	}
	sorted := append([]float64(nil), lons...)
	sort.Float64s(sorted)

	gap, gapIndex := 0.0, -1
	for i := range sorted {
		next := (i + 1) % len(sorted)
		g := normalizeAngle(sorted[next] - sorted[i])
		if g > gap {
			gap, gapIndex = g, i
		}
	}
	if gapIndex < 0 || gap < 100 {
		return 0
	}
	after := (len(sorted) - gapIndex - 1) % len(sorted)
	if after == 0 {
		after = len(sorted)
	}
	before := len(sorted) - after
	if before < after {
		return before
	}
	return after
}

// clumpCount counts groupings: consecutive planets closer than the gap
// threshold belong to one clump.
func clumpCount(lons []float64, gapThreshold float64) int {
	if len(lons) < 2 {
		return len(lons)
	}
	sorted := append([]float64(nil), lons...)
	sort.Float64s(sorted)

	clumps := 1
	for i := range sorted {
		next := (i + 1) % len(sorted)
		if normalizeAngle(sorted[next]-sorted[i]) > gapThreshold {
			clumps++
		}
	}
	return clumps
}

// isSeeSaw reports two groups of at least two planets roughly opposite each
// other with empty space on both sides.
func isSeeSaw(lons []float64) bool {
	if len(lons) < 4 {
		return false
	}
	sorted := append([]float64(nil), lons...)
	sort.Float64s(sorted)

	gap := largestGap(sorted)
	if gap < 100 || gap > 200 {
		return false
	}

	gapIdx := 0
	for i := range sorted {
		next := (i + 1) % len(sorted)
		if normalizeAngle(sorted[next]-sorted[i]) > 150 {
			gapIdx = i
			break
		}
	}
	group1 := sorted[:gapIdx+1]
	group2 := sorted[gapIdx+1:]
	if len(group1) < 2 || len(group2) < 2 {
		return false
	}

	// Group centers must sit roughly opposite each other (within 60 degrees
	// of exact opposition).
	c1 := mean(group1)
	c2 := mean(group2)
	return math.Abs(angularDistance(c1, c2)-180) < 60
}

func mean(vs []float64) float64 {
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// Chart shape labels, as stored in the interpretation table.
const (
	ShapeBucket     = "bucket"
	ShapeBundle     = "bundle"
	ShapeBowl       = "bowl"
	ShapeSeeSaw     = "see_saw"
	ShapeLocomotive = "locomotive"
	ShapeSplay      = "splay"
	ShapeSplash     = "splash"
)

// ClassifyShape buckets the traditional planets' longitudes into one of the
// Jones patterns. The rules are evaluated strictly top to bottom; ambiguous
// charts resolve to the earliest matching pattern. Returns "" for fewer
// than three usable planets.
func ClassifyShape(lons []float64) string {
	if len(lons) < 3 {
		return ""
	}

	sp := span(lons)
	gap := largestGap(lons)
	handle := handleCount(lons)
	clumps := clumpCount(lons, 60)

	switch {
	case (handle == 1 || handle == 2) && sp <= 180 && len(lons) >= 5:
		return ShapeBucket
	case sp <= 120:
		return ShapeBundle
	case sp <= 180:
		return ShapeBowl
	case isSeeSaw(lons):
		return ShapeSeeSaw
	case sp >= 200 && sp <= 280 && gap >= 80:
		return ShapeLocomotive
	case clumps >= 3:
		return ShapeSplay
	case sp >= 200 && gap < 80:
		return ShapeSplash
	default:
		return ShapeSplay
	}
}

// distributionBuckets fixes the emission order for emphasis keys.
var distributionBuckets = []struct {
	Key string
	Set map[int]bool
}{
	{"hemisphere_northern", hemisphereNorthern},
	{"hemisphere_southern", hemisphereSouthern},
	{"hemisphere_eastern", hemisphereEastern},
	{"hemisphere_western", hemisphereWestern},
	{"quadrant_1", quadrant1},
	{"quadrant_2", quadrant2},
	{"quadrant_3", quadrant3},
	{"quadrant_4", quadrant4},
}

// CountDistribution partitions the traditional planets by house and returns
// raw counts plus the buckets holding more than half of them.
func CountDistribution(snap Snapshot) (Distribution, []string) {
	var houses []int
	for _, p := range snap.Planets {
		if TraditionalPlanets[p.Name] && p.House >= 1 && p.House <= 12 {
			houses = append(houses, p.House)
		}
	}

	counts := make(map[string]int, len(distributionBuckets))
	for _, h := range houses {
		for _, b := range distributionBuckets {
			if b.Set[h] {
				counts[b.Key]++
			}
		}
	}

	d := Distribution{
		HemisphereNorthern: counts["hemisphere_northern"],
		HemisphereSouthern: counts["hemisphere_southern"],
		HemisphereEastern:  counts["hemisphere_eastern"],
		HemisphereWestern:  counts["hemisphere_western"],
		Quadrant1:          counts["quadrant_1"],
		Quadrant2:          counts["quadrant_2"],
		Quadrant3:          counts["quadrant_3"],
		Quadrant4:          counts["quadrant_4"],
	}

	var emphasized []string
	threshold := float64(len(houses)) / 2
	for _, b := range distributionBuckets {
		if float64(counts[b.Key]) > threshold {
			emphasized = append(emphasized, b.Key)
		}
	}
	return d, emphasized
}
