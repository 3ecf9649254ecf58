package chart

import (
	"context"
	"fmt"
	"time"
)

// Validate checks the calendar and location fields before any external call
// is made. It returns a ValidationError naming the first offending field.
func (in BirthInput) Validate() error {
	if in.Year == 0 {
		return &ValidationError{Field: "year", Reason: "is required"}
	}
	if in.Month < 1 || in.Month > 12 {
		return &ValidationError{Field: "month", Reason: "must be between 1 and 12"}
	}
	if in.Day < 1 || in.Day > 31 {
		return &ValidationError{Field: "day", Reason: "must be between 1 and 31"}
	}
	// Reject days that do not exist in the given month (e.g. Feb 30).
	d := time.Date(in.Year, time.Month(in.Month), in.Day, 0, 0, 0, 0, time.UTC)
	if d.Day() != in.Day || int(d.Month()) != in.Month {
		return &ValidationError{Field: "day", Reason: fmt.Sprintf("does not exist in month %d", in.Month)}
	}
	if in.Hour < 0 || in.Hour > 23 {
		return &ValidationError{Field: "hour", Reason: "must be between 0 and 23"}
	}
	if in.Minute < 0 || in.Minute > 59 {
		return &ValidationError{Field: "minute", Reason: "must be between 0 and 59"}
	}

	if !in.hasCoordinates() && in.City == "" {
		return &ValidationError{
			Field:  "location",
			Reason: "provide either lat+lng+tz_str or city+nation",
		}
	}
	return nil
}

func (in BirthInput) hasCoordinates() bool {
	return in.Lat != nil && in.Lng != nil && in.TzStr != ""
}

// resolveLocation produces the normalized coordinate triple. Direct
// coordinates take precedence over city/nation even when both are present,
// so no network call happens unless it has to.
func (s *Service) resolveLocation(ctx context.Context, in BirthInput) (ResolvedLocation, error) {
	if in.hasCoordinates() {
		if *in.Lat < -90 || *in.Lat > 90 {
			return ResolvedLocation{}, &ValidationError{Field: "lat", Reason: "must be between -90 and 90"}
		}
		if *in.Lng < -180 || *in.Lng > 180 {
			return ResolvedLocation{}, &ValidationError{Field: "lng", Reason: "must be between -180 and 180"}
		}
		if _, err := time.LoadLocation(in.TzStr); err != nil {
			return ResolvedLocation{}, &ValidationError{Field: "tz_str", Reason: "must be a valid IANA zone identifier"}
		}
		return ResolvedLocation{Lat: *in.Lat, Lng: *in.Lng, TzStr: in.TzStr}, nil
	}

	if s.geocoder == nil {
		return ResolvedLocation{}, &ConfigurationError{
			Reason: "no geocoding credential configured; only lat+lng+tz_str requests are supported",
		}
	}

	loc, err := s.geocoder.Resolve(ctx, in.City, in.Nation)
	if err != nil {
		return ResolvedLocation{}, err
	}
	if _, lerr := time.LoadLocation(loc.TzStr); lerr != nil {
		return ResolvedLocation{}, &GeocodingError{
			Query: in.City,
			Err:   fmt.Errorf("resolved timezone %q is not a valid IANA zone", loc.TzStr),
		}
	}
	return loc, nil
}

// civilToUTC converts the local civil birth time to UTC using the resolved
// timezone.
func civilToUTC(in BirthInput, loc ResolvedLocation) (time.Time, error) {
	zone, err := time.LoadLocation(loc.TzStr)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "tz_str", Reason: "must be a valid IANA zone identifier"}
	}
	local := time.Date(in.Year, time.Month(in.Month), in.Day, in.Hour, in.Minute, 0, 0, zone)
	return local.UTC(), nil
}
