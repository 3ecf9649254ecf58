// Package ephemeris adapts the Swiss Ephemeris into the pure-function
// Computer port the chart pipeline depends on. The underlying C library is
// stateful and not reentrant, so computations are serialized here; callers
// see a deterministic function of (time, location).
package ephemeris

import (
	"bytes"
	"math"
	"sync"
	"time"

	"github.com/mshafiee/swephgo"

	"github.com/astrilabs/natal-chart-api/internal/chart"
)

// bodies lists the computed points in response order. The South Node is not
// computed: it is the North Node reflected by 180 degrees. Chiron is an
// asteroid outside the Moshier analytical model; the library computes it
// only from ephemeris data files, so it is optional: rejected means omitted
// from the snapshot, not a failed request.
var bodies = []struct {
	ID       int
	Name     string
	Optional bool
}{
	{swephgo.SeSun, "Sun", false},
	{swephgo.SeMoon, "Moon", false},
	{swephgo.SeMercury, "Mercury", false},
	{swephgo.SeVenus, "Venus", false},
	{swephgo.SeMars, "Mars", false},
	{swephgo.SeJupiter, "Jupiter", false},
	{swephgo.SeSaturn, "Saturn", false},
	{swephgo.SeUranus, "Uranus", false},
	{swephgo.SeNeptune, "Neptune", false},
	{swephgo.SePluto, "Pluto", false},
	{swephgo.SeChiron, "Chiron", true},
	{swephgo.SeTrueNode, chart.NorthNode, false},
}

// SwissEphemeris computes snapshots with the Moshier analytical ephemeris,
// which needs no data files and covers roughly 3000 BCE to 3000 CE for the
// planets and nodes. Optional bodies (Chiron) appear in snapshots only when
// the installation carries the asteroid ephemeris files the library wants
// for them.
type SwissEphemeris struct {
	mu sync.Mutex
}

func New() *SwissEphemeris {
	return &SwissEphemeris{}
}

// Close releases the library's internal buffers. Call once on shutdown.
func (e *SwissEphemeris) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	swephgo.Close()
}

const calcFlags = swephgo.SeflgMoseph | swephgo.SeflgSpeed

// Compute returns the full snapshot for a UTC instant at the given
// coordinates: planet positions, Placidus house cusps, and lunar phase.
func (e *SwissEphemeris) Compute(utc time.Time, loc chart.ResolvedLocation) (chart.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	hour := float64(utc.Hour()) +
		float64(utc.Minute())/60 +
		float64(utc.Second())/3600
	jd := swephgo.Julday(utc.Year(), int(utc.Month()), utc.Day(), hour, swephgo.SeGregCal)

	cusps := make([]float64, 13)
	ascmc := make([]float64, 10)
	if rc := swephgo.Houses(jd, loc.Lat, loc.Lng, int('P'), cusps, ascmc); rc < 0 {
		return chart.Snapshot{}, &chart.EphemerisError{
			Reason: "house computation failed for the given date and location",
		}
	}

	houses := make([]chart.HouseCusp, 12)
	for i := 1; i <= 12; i++ {
		sign, _ := chart.SignAt(cusps[i])
		houses[i-1] = chart.HouseCusp{
			Number:    i,
			Sign:      sign,
			Degree:    round4(math.Mod(cusps[i], 30)),
			AbsDegree: round4(cusps[i]),
		}
	}

	planets, err := computeBodies(swissCalc, jd, cusps)
	if err != nil {
		return chart.Snapshot{}, err
	}

	sun, _ := snapshotPlanet(planets, "Sun")
	moon, _ := snapshotPlanet(planets, "Moon")

	return chart.Snapshot{
		Planets:    planets,
		Houses:     houses,
		LunarPhase: lunarPhase(sun.AbsDegree, moon.AbsDegree),
	}, nil
}

// bodyCalc computes one body's position into xx (longitude at [0], speed at
// [3]), writing any library message into serr. Negative return means the
// library rejected the computation.
type bodyCalc func(jd float64, body int, xx []float64, serr []byte) int

func swissCalc(jd float64, body int, xx []float64, serr []byte) int {
	return int(swephgo.CalcUt(jd, body, calcFlags, xx, serr))
}

// computeBodies runs calc for every tracked body and appends the derived
// South Node. A rejected optional body is dropped; a rejected mandatory body
// fails the snapshot.
func computeBodies(calc bodyCalc, jd float64, cusps []float64) ([]chart.PlanetPosition, error) {
	planets := make([]chart.PlanetPosition, 0, len(bodies)+1)
	for _, b := range bodies {
		xx := make([]float64, 6)
		serr := make([]byte, 256)
		if rc := calc(jd, b.ID, xx, serr); rc < 0 {
			if b.Optional {
				continue
			}
			return nil, &chart.EphemerisError{Reason: cString(serr)}
		}
		planets = append(planets, position(b.Name, xx[0], xx[3], cusps))
	}

	// Derive the South Node from the North Node's longitude.
	for _, p := range planets {
		if p.Name == chart.NorthNode {
			planets = append(planets, position(chart.SouthNode, p.AbsDegree+180, p.Speed, cusps))
			break
		}
	}
	return planets, nil
}

// position assembles a PlanetPosition from a raw longitude and speed.
func position(name string, lon, speed float64, cusps []float64) chart.PlanetPosition {
	abs := normalize(lon)
	sign, signNum := chart.SignAt(abs)
	return chart.PlanetPosition{
		Name:       name,
		Sign:       sign,
		SignNum:    signNum,
		Degree:     round4(math.Mod(abs, 30)),
		AbsDegree:  round4(abs),
		House:      houseOf(abs, cusps),
		Retrograde: speed < 0,
		Speed:      round6(speed),
	}
}

// houseOf places a longitude between consecutive cusps. cusps is 1-indexed
// with 12 entries, as returned by the house computation.
func houseOf(lon float64, cusps []float64) int {
	for i := 1; i <= 12; i++ {
		next := i%12 + 1
		start := normalize(cusps[i])
		end := normalize(cusps[next])
		l := normalize(lon)

		if start <= end {
			if l >= start && l < end {
				return i
			}
		} else { // house spans the 0-degree point
			if l >= start || l < end {
				return i
			}
		}
	}
	return 0
}

func snapshotPlanet(planets []chart.PlanetPosition, name string) (chart.PlanetPosition, bool) {
	for _, p := range planets {
		if p.Name == name {
			return p, true
		}
	}
	return chart.PlanetPosition{}, false
}

func normalize(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
func round6(v float64) float64 { return math.Round(v*1000000) / 1000000 }

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	s := string(bytes.TrimSpace(b))
	if s == "" {
		s = "computation rejected by the ephemeris library"
	}
	return s
}
