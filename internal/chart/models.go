package chart

// Signs lists the zodiac signs in ecliptic order, 30 degrees each starting
// at 0 Aries.
var Signs = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignAt returns the sign name and 1-based sign number for an absolute
// ecliptic longitude.
func SignAt(absDegree float64) (string, int) {
	idx := int(normalizeAngle(absDegree) / 30)
	if idx > 11 {
		idx = 11
	}
	return Signs[idx], idx + 1
}

// Body names as they appear in snapshots and interpretation keys.
const (
	Sun       = "Sun"
	Moon      = "Moon"
	NorthNode = "North Node"
	SouthNode = "South Node"
)

// TraditionalPlanets are the ten bodies that participate in shape and
// distribution analysis (Jones patterns use Sun through Pluto only).
var TraditionalPlanets = map[string]bool{
	"Sun": true, "Moon": true, "Mercury": true, "Venus": true, "Mars": true,
	"Jupiter": true, "Saturn": true, "Uranus": true, "Neptune": true, "Pluto": true,
}

// BirthInput carries the validated request parameters for one chart.
// Exactly one location mode must be complete: either Lat+Lng+TzStr, or
// City (+ optional Nation) for geocoding.
type BirthInput struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Name   string

	Lat   *float64
	Lng   *float64
	TzStr string

	City   string
	Nation string
}

// ResolvedLocation is the normalized coordinate triple every chart is
// computed from. Immutable once produced.
type ResolvedLocation struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	TzStr string  `json:"tz_str"`
}

// PlanetPosition is one body's place in the chart.
type PlanetPosition struct {
	Name       string  `json:"name"`
	Sign       string  `json:"sign"`
	SignNum    int     `json:"sign_num"`
	Degree     float64 `json:"degree"`     // degrees within the sign
	AbsDegree  float64 `json:"abs_degree"` // ecliptic longitude 0-360
	House      int     `json:"house"`
	Retrograde bool    `json:"retrograde"`
	Speed      float64 `json:"speed,omitempty"`
}

// HouseCusp is one of the 12 ordered house boundaries.
type HouseCusp struct {
	Number    int     `json:"number"`
	Sign      string  `json:"sign"`
	Degree    float64 `json:"degree"`
	AbsDegree float64 `json:"abs_degree"`
}

// LunarPhase describes the Sun-Moon elongation at birth.
type LunarPhase struct {
	DegreesBetween float64 `json:"degrees_between"`
	PhaseName      string  `json:"phase_name"`
	Emoji          string  `json:"emoji"`
}

// Snapshot is the ephemeris output for one birth moment. Produced once per
// request and read-only downstream.
type Snapshot struct {
	Planets    []PlanetPosition
	Houses     []HouseCusp
	LunarPhase LunarPhase
}

// Planet returns the position for the named body, if present.
func (s Snapshot) Planet(name string) (PlanetPosition, bool) {
	for _, p := range s.Planets {
		if p.Name == name {
			return p, true
		}
	}
	return PlanetPosition{}, false
}

// Aspect is a realized angular relationship between two bodies. The pair is
// unordered; derivation emits at most one aspect per pair.
type Aspect struct {
	Planet1       string  `json:"planet1"`
	Planet2       string  `json:"planet2"`
	Name          string  `json:"aspect"`
	AspectDegrees int     `json:"aspect_degrees"`
	Orb           float64 `json:"orbit"` // deviation from the exact angle
}

// Distribution holds raw planet counts per hemisphere and quadrant.
type Distribution struct {
	HemisphereNorthern int `json:"hemisphere_northern"`
	HemisphereSouthern int `json:"hemisphere_southern"`
	HemisphereEastern  int `json:"hemisphere_eastern"`
	HemisphereWestern  int `json:"hemisphere_western"`
	Quadrant1          int `json:"quadrant_1"`
	Quadrant2          int `json:"quadrant_2"`
	Quadrant3          int `json:"quadrant_3"`
	Quadrant4          int `json:"quadrant_4"`
}

// Facts are the high-level conclusions derived from a snapshot.
type Facts struct {
	SunSign      string
	MoonSign     string
	RisingSign   string
	Shape        string
	Distribution Distribution
	Emphasized   []string // distribution buckets holding more than half the planets
	Aspects      []Aspect
}

// Interpretations maps derived facts to resolved (or fallback) text.
type Interpretations struct {
	PlanetInSign  map[string]string `json:"planet_in_sign"`
	PlanetInHouse map[string]string `json:"planet_in_house"`
	Aspects       map[string]string `json:"aspects"`
	ChartShape    string            `json:"chart_shape"`
	Distribution  map[string]string `json:"distribution"`
}

// Response is the full assembled chart. Created fresh per request, never
// persisted.
type Response struct {
	Name          string `json:"name,omitempty"`
	BirthDatetime string `json:"birth_datetime"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"tz_str"`

	SunSign    string `json:"sun_sign"`
	MoonSign   string `json:"moon_sign"`
	RisingSign string `json:"rising_sign"`

	LunarPhase LunarPhase       `json:"lunar_phase"`
	Planets    []PlanetPosition `json:"planets"`
	Houses     []HouseCusp      `json:"houses"`
	Aspects    []Aspect         `json:"aspects"`

	ChartShape   string       `json:"chart_shape"`
	Distribution Distribution `json:"distribution"`

	Interpretations Interpretations `json:"interpretations"`
}
