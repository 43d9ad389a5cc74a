// Package config loads the booking tool's configuration: hotel identity,
// seed catalog/ledger data and the admin server address. Configuration is
// a YAML file next to the binary, with a handful of environment overrides
// (loaded from .env when present).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file consulted when BOOKING_CONFIG is unset.
const DefaultPath = "booking.yaml"

type Apartment struct {
	Rate     float64 `yaml:"rate"`
	Capacity int     `yaml:"capacity"`
}

type Server struct {
	Host              string `yaml:"host"`
	Port              string `yaml:"port"`
	LivenessEndpoint  string `yaml:"liveness_endpoint"`
	ReadHeaderTimeout int    `yaml:"read_header_timeout_seconds"`
}

type Config struct {
	HotelName   string               `yaml:"hotel_name"`
	Currency    string               `yaml:"currency"`
	LogFile     string               `yaml:"log_file"`
	Server      Server               `yaml:"server"`
	Apartments  map[string]Apartment `yaml:"apartments"`
	Items       map[string]float64   `yaml:"items"`
	GuestPoints map[string]int       `yaml:"guest_points"`
}

// Default returns the built-in configuration: the stock apartments, item
// catalog and returning guests the business opens with.
func Default() *Config {
	return &Config{
		HotelName: "Debuggers Hut Serviced Apartments",
		Currency:  "AUD",
		LogFile:   "hotel_booking.log",
		Server: Server{
			Host:              "localhost",
			Port:              "8092",
			LivenessEndpoint:  "/liveness",
			ReadHeaderTimeout: 20,
		},
		Apartments: map[string]Apartment{
			"U12swan":  {Rate: 95.0, Capacity: 2},
			"U209duck": {Rate: 106.7, Capacity: 2},
			"U49goose": {Rate: 145.2, Capacity: 2},
		},
		Items: map[string]float64{
			"car_park":   25.0,
			"breakfast":  18.0,
			"toothpaste": 5.2,
			"extra_bed":  30.0,
		},
		GuestPoints: map[string]int{
			"Alyssa": 20,
			"Luigi":  32,
		},
	}
}

// Load reads the config from BOOKING_CONFIG or DefaultPath, falling back to
// Default when the file does not exist. BOOKING_HTTP_HOST and
// BOOKING_HTTP_PORT override the admin server address.
func Load() (*Config, error) {
	path := os.Getenv("BOOKING_CONFIG")
	if path == "" {
		path = DefaultPath
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		return nil, err
	}

	if host := os.Getenv("BOOKING_HTTP_HOST"); host != "" {
		cfg.Server.Host = host
	}

	if port := os.Getenv("BOOKING_HTTP_PORT"); port != "" {
		cfg.Server.Port = port
	}

	return cfg, nil
}

// LoadFrom reads the config from an explicit path. A missing file yields
// the default config; a malformed one is an error. Values in the file
// override the defaults, and the seed maps extend them.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := Default()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
