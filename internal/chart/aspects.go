package chart

import "math"

// aspectDef fixes an aspect type's exact angle and orb tolerance.
type aspectDef struct {
	Name  string
	Angle float64
	Orb   float64
}

// Orbs follow standard natal-chart convention; boundaries are inclusive.
var aspectDefs = []aspectDef{
	{"Conjunction", 0, 8},
	{"Opposition", 180, 8},
	{"Trine", 120, 8},
	{"Square", 90, 7},
	{"Sextile", 60, 6},
	{"Quincunx", 150, 3},
}

func normalizeAngle(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// angularDistance returns the shortest separation between two longitudes,
// in [0, 180].
func angularDistance(a, b float64) float64 {
	d := math.Abs(normalizeAngle(a) - normalizeAngle(b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

// matchAspect maps a separation to an aspect type, or reports none. When a
// separation sits within two tolerances the tighter orb wins; equal orbs
// fall back to the smaller deviation.
func matchAspect(separation float64) (aspectDef, float64, bool) {
	var (
		best    aspectDef
		bestDev float64
		found   bool
	)
	for _, def := range aspectDefs {
		dev := math.Abs(separation - def.Angle)
		if dev > def.Orb {
			continue
		}
		if !found || def.Orb < best.Orb || (def.Orb == best.Orb && dev < bestDev) {
			best, bestDev, found = def, dev, true
		}
	}
	return best, bestDev, found
}

// DeriveAspects computes the aspect set over every unordered pair of bodies.
// The South Node is skipped: it mirrors the North Node by construction and
// would only duplicate its aspects.
func DeriveAspects(snap Snapshot) []Aspect {
	bodies := make([]PlanetPosition, 0, len(snap.Planets))
	for _, p := range snap.Planets {
		if p.Name == SouthNode {
			continue
		}
		bodies = append(bodies, p)
	}

	var aspects []Aspect
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			sep := angularDistance(bodies[i].AbsDegree, bodies[j].AbsDegree)
			def, dev, ok := matchAspect(sep)
			if !ok {
				continue
			}
			aspects = append(aspects, Aspect{
				Planet1:       bodies[i].Name,
				Planet2:       bodies[j].Name,
				Name:          def.Name,
				AspectDegrees: int(def.Angle),
				Orb:           round4(dev),
			})
		}
	}
	return aspects
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
