package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "booking.yaml")
	content := `
hotel_name: Test Hut
currency: NZD
apartments:
  U1test:
    rate: 50.5
    capacity: 3
items:
  minibar: 12.0
guest_points:
  Sam: 150
`

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.HotelName != "Test Hut" || cfg.Currency != "NZD" {
		t.Errorf("unexpected identity: %q %q", cfg.HotelName, cfg.Currency)
	}

	apt := cfg.Apartments["U1test"]
	if apt.Rate != 50.5 || apt.Capacity != 3 {
		t.Errorf("unexpected apartment: %+v", apt)
	}

	if cfg.Items["minibar"] != 12.0 {
		t.Errorf("unexpected items: %v", cfg.Items)
	}

	if cfg.GuestPoints["Sam"] != 150 {
		t.Errorf("unexpected guest points: %v", cfg.GuestPoints)
	}

	// Unset fields keep their defaults.
	if cfg.Server.Port != "8092" {
		t.Errorf("server port = %q, want default 8092", cfg.Server.Port)
	}
}

func TestLoadFromMissingFileReturnsDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFrom(filepath.Join(dir, "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.HotelName != "Debuggers Hut Serviced Apartments" {
		t.Errorf("hotel name = %q", cfg.HotelName)
	}

	if apt := cfg.Apartments["U12swan"]; apt.Rate != 95.0 || apt.Capacity != 2 {
		t.Errorf("default U12swan = %+v", apt)
	}

	if cfg.Items["extra_bed"] != 30.0 {
		t.Errorf("default items = %v", cfg.Items)
	}
}

func TestLoadFromMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "booking.yaml")

	if err := os.WriteFile(path, []byte("hotel_name: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("LoadFrom() accepted malformed YAML")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("BOOKING_CONFIG", filepath.Join(dir, "nonexistent.yaml"))
	t.Setenv("BOOKING_HTTP_HOST", "0.0.0.0")
	t.Setenv("BOOKING_HTTP_PORT", "9000")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != "9000" {
		t.Errorf("server = %+v, env overrides not applied", cfg.Server)
	}
}
