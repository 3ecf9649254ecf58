package httpapi

import (
	"errors"
	"log"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/astrilabs/natal-chart-api/internal/chart"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields under their wire names so validation messages cite the
	// parameter the caller actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// chartRequest is the shared parameter set for GET (query string) and POST
// (JSON body). Hour and minute are pointers so an omitted value can default
// to noon, the convention when the birth time is unknown.
type chartRequest struct {
	Year   int      `json:"year" validate:"required"`
	Month  int      `json:"month" validate:"required,min=1,max=12"`
	Day    int      `json:"day" validate:"required,min=1,max=31"`
	Hour   *int     `json:"hour" validate:"omitempty,min=0,max=23"`
	Minute *int     `json:"minute" validate:"omitempty,min=0,max=59"`
	Lat    *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lng    *float64 `json:"lng" validate:"omitempty,gte=-180,lte=180"`
	TzStr  string   `json:"tz_str"`
	City   string   `json:"city"`
	Nation string   `json:"nation"`
	Name   string   `json:"name"`
}

func (r chartRequest) toBirthInput() chart.BirthInput {
	hour, minute := 12, 0
	if r.Hour != nil {
		hour = *r.Hour
	}
	if r.Minute != nil {
		minute = *r.Minute
	}
	return chart.BirthInput{
		Year:   r.Year,
		Month:  r.Month,
		Day:    r.Day,
		Hour:   hour,
		Minute: minute,
		Name:   r.Name,
		Lat:    r.Lat,
		Lng:    r.Lng,
		TzStr:  r.TzStr,
		City:   r.City,
		Nation: r.Nation,
	}
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *chart.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/chart", func(c *fiber.Ctx) error {
		req, err := parseChartQuery(c)
		if err != nil {
			return mapError(c, err)
		}
		return handleChart(c, service, req)
	})

	v1.Post("/chart", func(c *fiber.Ctx) error {
		var req chartRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "malformed request body")
		}
		return handleChart(c, service, req)
	})
}

func handleChart(c *fiber.Ctx, service *chart.Service, req chartRequest) error {
	if err := validateRequest(req); err != nil {
		return mapError(c, err)
	}

	resp, err := service.BuildChart(c.UserContext(), req.toBirthInput())
	if err != nil {
		return mapError(c, err)
	}
	return c.JSON(resp)
}

// validateRequest runs the struct tags and converts the first failure into
// the pipeline's field-level error kind.
func validateRequest(req chartRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &chart.ValidationError{
			Field:  fe.Field(),
			Reason: "failed " + fe.Tag() + " validation",
		}
	}
	return &chart.ValidationError{Field: "request", Reason: err.Error()}
}

func parseChartQuery(c *fiber.Ctx) (chartRequest, error) {
	var req chartRequest
	var err error

	if req.Year, err = queryInt(c, "year"); err != nil {
		return req, err
	}
	if req.Month, err = queryInt(c, "month"); err != nil {
		return req, err
	}
	if req.Day, err = queryInt(c, "day"); err != nil {
		return req, err
	}
	if req.Hour, err = queryIntPtr(c, "hour"); err != nil {
		return req, err
	}
	if req.Minute, err = queryIntPtr(c, "minute"); err != nil {
		return req, err
	}
	if req.Lat, err = queryFloatPtr(c, "lat"); err != nil {
		return req, err
	}
	if req.Lng, err = queryFloatPtr(c, "lng"); err != nil {
		return req, err
	}

	req.TzStr = c.Query("tz_str")
	req.City = c.Query("city")
	req.Nation = c.Query("nation")
	req.Name = c.Query("name")
	return req, nil
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &chart.ValidationError{Field: key, Reason: "must be an integer"}
	}
	return n, nil
}

func queryIntPtr(c *fiber.Ctx, key string) (*int, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &chart.ValidationError{Field: key, Reason: "must be an integer"}
	}
	return &n, nil
}

func queryFloatPtr(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &chart.ValidationError{Field: key, Reason: "must be a number"}
	}
	return &f, nil
}

// mapError translates pipeline error kinds to HTTP statuses. Configuration
// and integrity failures stay generic; the detail is logged, not leaked.
func mapError(c *fiber.Ctx, err error) error {
	var (
		ve *chart.ValidationError
		ce *chart.ConfigurationError
		ge *chart.GeocodingError
		ee *chart.EphemerisError
		de *chart.DataIntegrityError
	)

	switch {
	case errors.As(err, &ve):
		return fiber.NewError(fiber.StatusBadRequest, ve.Error())
	case errors.As(err, &ce):
		log.Printf("configuration error: %v", ce)
		return fiber.NewError(fiber.StatusServiceUnavailable,
			"service is not configured for city/nation lookups")
	case errors.As(err, &ge):
		return fiber.NewError(fiber.StatusBadGateway, ge.Error())
	case errors.As(err, &ee):
		return fiber.NewError(fiber.StatusUnprocessableEntity, ee.Error())
	case errors.As(err, &de):
		log.Printf("data integrity error: %v", de)
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	default:
		log.Printf("chart request failed: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "internal error")
	}
}
