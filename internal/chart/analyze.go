package chart

import "fmt"

// Analyze derives the chart's high-level facts from a snapshot: big three,
// aspects, shape, and hemisphere/quadrant distribution. A snapshot missing
// a required body or cusp is a DataIntegrityError.
func Analyze(snap Snapshot) (Facts, error) {
	if len(snap.Houses) != 12 {
		return Facts{}, &DataIntegrityError{
			Reason: fmt.Sprintf("snapshot has %d house cusps, want 12", len(snap.Houses)),
		}
	}
	for name := range TraditionalPlanets {
		if _, ok := snap.Planet(name); !ok {
			return Facts{}, &DataIntegrityError{Reason: "snapshot missing required planet " + name}
		}
	}

	sun, _ := snap.Planet(Sun)
	moon, _ := snap.Planet(Moon)

	dist, emphasized := CountDistribution(snap)

	return Facts{
		SunSign:      sun.Sign,
		MoonSign:     moon.Sign,
		RisingSign:   snap.Houses[0].Sign,
		Shape:        ClassifyShape(shapePlanetLongitudes(snap)),
		Distribution: dist,
		Emphasized:   emphasized,
		Aspects:      DeriveAspects(snap),
	}, nil
}
