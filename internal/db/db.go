package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/mattn/go-sqlite3"
)

var (
	// ErrStorageUnavailable is returned when the database file cannot be opened or prepared.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrStorageWrite is returned when an insert fails.
	ErrStorageWrite = errors.New("storage write failed")
	// ErrCityNotFound is returned by FindCity when no row matches.
	ErrCityNotFound = errors.New("city not found")

	errNotInitialized = errors.New("database not initialized")
)

// DB wraps a database connection
type DB struct {
	*sql.DB
}

// City is a stored (name, country) pair.
type City struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// WeatherRecord is one stored observation for a city.
type WeatherRecord struct {
	ID          int64   `json:"id"`
	CityID      int64   `json:"city_id"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// Open opens or creates the SQLite file at path and makes sure the schema exists.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %v", ErrStorageUnavailable, err)
	}

	// sql.Open is lazy; ping so a bad path fails here and not on the first insert.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrStorageUnavailable, path, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return &DB{db}, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cities (
			id INTEGER PRIMARY KEY,
			name TEXT,
			country TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS weather_data (
			id INTEGER PRIMARY KEY,
			city_id INTEGER,
			temperature REAL,
			feels_like REAL,
			description TEXT,
			icon TEXT,
			FOREIGN KEY(city_id) REFERENCES cities(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_weather_data_city_id ON weather_data(city_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}

	// Older files may already hold duplicate cities, in which case the index
	// can't be built. Lookups still work; AddCity just can't dedupe on conflict.
	if _, err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_cities_name_country ON cities(name, country)`); err != nil {
		log.Printf("Warning: could not create unique index on cities: %v", err)
	}

	return nil
}

// FindCity returns the id of the city with exactly this name and country.
func (db *DB) FindCity(name, country string) (int64, error) {
	if db == nil || db.DB == nil {
		return 0, errNotInitialized
	}

	var id int64
	err := db.QueryRow(
		"SELECT id FROM cities WHERE name = ? AND country = ? ORDER BY id LIMIT 1",
		name, country,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrCityNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to look up city %q (%s): %w", name, country, err)
	}
	return id, nil
}

// AddCity inserts a city and returns its id. It does not look for an existing
// row first; if the unique index rejects the insert the existing id is returned.
func (db *DB) AddCity(name, country string) (int64, error) {
	if db == nil || db.DB == nil {
		return 0, errNotInitialized
	}

	res, err := db.Exec(
		"INSERT INTO cities (name, country) VALUES (?, ?) ON CONFLICT(name, country) DO NOTHING",
		name, country,
	)
	if err != nil {
		// Without the unique index the ON CONFLICT target doesn't resolve.
		res, err = db.Exec("INSERT INTO cities (name, country) VALUES (?, ?)", name, country)
		if err != nil {
			return 0, fmt.Errorf("%w: insert city %q: %v", ErrStorageWrite, name, err)
		}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: insert city %q: %v", ErrStorageWrite, name, err)
	}
	if n == 0 {
		return db.FindCity(name, country)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: insert city %q: %v", ErrStorageWrite, name, err)
	}
	return id, nil
}

// AddWeatherRecord appends one history row for cityID. cityID is not checked.
func (db *DB) AddWeatherRecord(cityID int64, temperature, feelsLike float64, description, icon string) error {
	if db == nil || db.DB == nil {
		return errNotInitialized
	}

	_, err := db.Exec(
		"INSERT INTO weather_data (city_id, temperature, feels_like, description, icon) VALUES (?, ?, ?, ?, ?)",
		cityID, temperature, feelsLike, description, icon,
	)
	if err != nil {
		return fmt.Errorf("%w: insert weather data for city %d: %v", ErrStorageWrite, cityID, err)
	}
	return nil
}

// GetWeatherHistory returns every record for cityID in insertion order.
func (db *DB) GetWeatherHistory(cityID int64) ([]WeatherRecord, error) {
	if db == nil || db.DB == nil {
		return nil, errNotInitialized
	}

	rows, err := db.Query(
		"SELECT id, city_id, temperature, feels_like, description, icon FROM weather_data WHERE city_id = ? ORDER BY id",
		cityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query weather history for city %d: %w", cityID, err)
	}
	defer rows.Close()

	var records []WeatherRecord
	for rows.Next() {
		var r WeatherRecord
		if err := rows.Scan(&r.ID, &r.CityID, &r.Temperature, &r.FeelsLike, &r.Description, &r.Icon); err != nil {
			return nil, fmt.Errorf("failed to scan weather record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// CitiesNamed returns all stored cities with exactly this name, oldest first.
func (db *DB) CitiesNamed(name string) ([]City, error) {
	if db == nil || db.DB == nil {
		return nil, errNotInitialized
	}

	rows, err := db.Query("SELECT id, name, country FROM cities WHERE name = ? ORDER BY id", name)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities named %q: %w", name, err)
	}
	defer rows.Close()

	var cities []City
	for rows.Next() {
		var c City
		if err := rows.Scan(&c.ID, &c.Name, &c.Country); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}
