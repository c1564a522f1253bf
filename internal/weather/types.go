package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable covers transport failures and non-200 responses.
	ErrUnavailable = errors.New("weather service unavailable")
	// ErrMalformedResponse means a 200 body was missing a required field or had the wrong shape.
	ErrMalformedResponse = errors.New("malformed weather response")
)

// Observation is the current weather for one city as reported by the API.
type Observation struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// APIError is a non-200 answer from OpenWeatherMap.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("OpenWeatherMap API error: %d", e.StatusCode)
	}
	return fmt.Sprintf("OpenWeatherMap API error: %d %s", e.StatusCode, e.Message)
}

// Is lets callers match any APIError with errors.Is(err, ErrUnavailable).
func (e *APIError) Is(target error) bool {
	return target == ErrUnavailable
}

// currentResponse is the subset of /data/2.5/weather we read. Pointer fields
// let validation tell an absent value from a zero one.
type currentResponse struct {
	Name *string `json:"name" validate:"required"`
	Sys  *struct {
		Country *string `json:"country" validate:"required"`
	} `json:"sys" validate:"required"`
	Main *struct {
		Temp      *float64 `json:"temp" validate:"required"`
		FeelsLike *float64 `json:"feels_like" validate:"required"`
	} `json:"main" validate:"required"`
	Weather []conditionEntry `json:"weather" validate:"required,min=1,dive"`
}

type conditionEntry struct {
	Description *string `json:"description" validate:"required"`
	Icon        *string `json:"icon" validate:"required"`
}

// errorResponse is the body OpenWeatherMap sends with 4xx codes. cod is
// sometimes a number and sometimes a string.
type errorResponse struct {
	Cod     any    `json:"cod"`
	Message string `json:"message"`
}

func (r *currentResponse) observation() *Observation {
	return &Observation{
		City:        *r.Name,
		Country:     *r.Sys.Country,
		Temperature: *r.Main.Temp,
		FeelsLike:   *r.Main.FeelsLike,
		Description: *r.Weather[0].Description,
		Icon:        *r.Weather[0].Icon,
	}
}
