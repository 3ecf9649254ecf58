package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/astrilabs/natal-chart-api/internal/chart"
)

var errNoMatch = errors.New("no match found")

// GeoNames resolves city/nation through the GeoNames web services: searchJSON
// for coordinates, then timezoneJSON for the IANA zone at those coordinates.
// Requires a registered username as the credential.
type GeoNames struct {
	username string
	baseURL  string
	httpCfg  httpClientConfig
	circuit  *gobreaker.CircuitBreaker
}

func NewGeoNames(client *http.Client, username string) *GeoNames {
	return &GeoNames{
		username: username,
		baseURL:  "http://api.geonames.org",
		httpCfg:  defaultHTTPConfig(client),
		circuit:  newBreaker("geonames"),
	}
}

func (g *GeoNames) Name() string { return "geonames" }

func (g *GeoNames) Resolve(ctx context.Context, city, nation string) (chart.ResolvedLocation, error) {
	lat, lng, err := g.search(ctx, city, nation)
	if err != nil {
		return chart.ResolvedLocation{}, &chart.GeocodingError{Query: city, Err: err}
	}

	tz, err := g.timezone(ctx, lat, lng)
	if err != nil {
		return chart.ResolvedLocation{}, &chart.GeocodingError{Query: city, Err: err}
	}

	return chart.ResolvedLocation{Lat: lat, Lng: lng, TzStr: tz}, nil
}

func (g *GeoNames) search(ctx context.Context, city, nation string) (float64, float64, error) {
	values := url.Values{}
	values.Set("q", city)
	if nation != "" {
		values.Set("country", nation)
	}
	values.Set("maxRows", "1")
	values.Set("featureClass", "P")
	values.Set("username", g.username)

	var payload struct {
		Geonames []struct {
			Lat string `json:"lat"`
			Lng string `json:"lng"`
		} `json:"geonames"`
		Status *struct {
			Message string `json:"message"`
		} `json:"status"`
	}

	u := fmt.Sprintf("%s/searchJSON?%s", g.baseURL, values.Encode())
	if err := getJSON(ctx, g.httpCfg, g.circuit, u, &payload); err != nil {
		return 0, 0, err
	}
	if payload.Status != nil {
		return 0, 0, fmt.Errorf("geonames rejected the lookup: %s", payload.Status.Message)
	}
	if len(payload.Geonames) == 0 {
		return 0, 0, errNoMatch
	}

	lat, err := strconv.ParseFloat(payload.Geonames[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed latitude %q", payload.Geonames[0].Lat)
	}
	lng, err := strconv.ParseFloat(payload.Geonames[0].Lng, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed longitude %q", payload.Geonames[0].Lng)
	}
	return lat, lng, nil
}

func (g *GeoNames) timezone(ctx context.Context, lat, lng float64) (string, error) {
	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	values.Set("username", g.username)

	var payload struct {
		TimezoneID string `json:"timezoneId"`
	}

	u := fmt.Sprintf("%s/timezoneJSON?%s", g.baseURL, values.Encode())
	if err := getJSON(ctx, g.httpCfg, g.circuit, u, &payload); err != nil {
		return "", err
	}
	if payload.TimezoneID == "" {
		return "", errors.New("no timezone for resolved coordinates")
	}
	return payload.TimezoneID, nil
}
