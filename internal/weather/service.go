package weather

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/swelljoe/wthr/internal/db"
)

// Fetcher retrieves current conditions for a city.
type Fetcher interface {
	Fetch(ctx context.Context, city string) (*Observation, error)
}

// Store defines the database operations the service needs
type Store interface {
	FindCity(name, country string) (int64, error)
	AddCity(name, country string) (int64, error)
	AddWeatherRecord(cityID int64, temperature, feelsLike float64, description, icon string) error
	GetWeatherHistory(cityID int64) ([]db.WeatherRecord, error)
	CitiesNamed(name string) ([]db.City, error)
}

// CityHistory is a city with the records stored for it.
type CityHistory struct {
	City    db.City
	Records []db.WeatherRecord
}

// Service fetches weather and records it in the store
type Service struct {
	client Fetcher
	db     Store
}

// NewService creates a new weather service
func NewService(client Fetcher, store Store) *Service {
	return &Service{
		client: client,
		db:     store,
	}
}

// Run performs one lookup: fetch, resolve or create the city, append a
// history row, and build the report. Nothing is written if the fetch fails.
func (s *Service) Run(ctx context.Context, city string) (*Report, error) {
	runID := uuid.NewString()
	log.Printf("run %s: fetching weather for %q", runID, city)

	obs, err := s.client.Fetch(ctx, city)
	if err != nil {
		return nil, fmt.Errorf("fetch weather for %q: %w", city, err)
	}
	log.Printf("run %s: got %s, %s %.2f°C %q", runID, obs.City, obs.Country, obs.Temperature, obs.Icon)

	cityID, err := s.resolveCity(obs.City, obs.Country)
	if err != nil {
		return nil, err
	}

	if err := s.db.AddWeatherRecord(cityID, obs.Temperature, obs.FeelsLike, obs.Description, obs.Icon); err != nil {
		return nil, err
	}
	log.Printf("run %s: stored weather record for city %d", runID, cityID)

	return &Report{
		Observation: *obs,
		CityID:      cityID,
		Glyph:       Glyph(obs.Icon),
	}, nil
}

func (s *Service) resolveCity(name, country string) (int64, error) {
	id, err := s.db.FindCity(name, country)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, db.ErrCityNotFound) {
		return 0, err
	}

	id, err = s.db.AddCity(name, country)
	if err != nil {
		return 0, err
	}
	log.Printf("added city %s, %s as %d", name, country, id)
	return id, nil
}

// History returns the stored records for a city. An empty country matches
// every stored city with that name.
func (s *Service) History(name, country string) ([]CityHistory, error) {
	var cities []db.City
	if country != "" {
		id, err := s.db.FindCity(name, country)
		if err != nil {
			return nil, err
		}
		cities = []db.City{{ID: id, Name: name, Country: country}}
	} else {
		found, err := s.db.CitiesNamed(name)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			return nil, db.ErrCityNotFound
		}
		cities = found
	}

	out := make([]CityHistory, 0, len(cities))
	for _, c := range cities {
		records, err := s.db.GetWeatherHistory(c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, CityHistory{City: c, Records: records})
	}
	return out, nil
}
