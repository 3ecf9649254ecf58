package ephemeris

import "github.com/astrilabs/natal-chart-api/internal/chart"

// phaseNames covers the standard 8-phase wheel, 45 degrees of Sun-Moon
// elongation each, centered on the exact phase angles.
var phaseNames = []struct {
	Name  string
	Emoji string
}{
	{"New Moon", "\U0001F311"},
	{"Waxing Crescent", "\U0001F312"},
	{"First Quarter", "\U0001F313"},
	{"Waxing Gibbous", "\U0001F314"},
	{"Full Moon", "\U0001F315"},
	{"Waning Gibbous", "\U0001F316"},
	{"Last Quarter", "\U0001F317"},
	{"Waning Crescent", "\U0001F318"},
}

// lunarPhase derives the phase from the Moon's elongation east of the Sun.
func lunarPhase(sunLon, moonLon float64) chart.LunarPhase {
	between := normalize(moonLon - sunLon)

	// Shift by half a segment so each name is centered on its exact angle.
	idx := int(normalize(between+22.5)/45) % len(phaseNames)

	return chart.LunarPhase{
		DegreesBetween: round4(between),
		PhaseName:      phaseNames[idx].Name,
		Emoji:          phaseNames[idx].Emoji,
	}
}
