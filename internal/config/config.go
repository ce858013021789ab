package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"toilet-finder/internal/types"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Maps      MapsConfig
	Search    SearchConfig
	Providers ProvidersConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           int
	GinMode        string   // debug, release, test
	AllowedOrigins []string // CORS origins allowed to drive the map session
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// MapsConfig holds the fixed map constants handed to the map surface at construction.
type MapsConfig struct {
	APIKey          string   // maps-display credential, TOILET_FINDER_MAPS_APIKEY
	Libraries       []string // enabled maps capabilities
	CenterLatitude  float64
	CenterLongitude float64
	DefaultZoom     int
	MarkerIconURL   string
	MarkerIconSize  int // logical units, square
	OverlayOffsetY  int // pixels, negative lifts the overlay above the marker
}

// SearchConfig holds address search configuration
type SearchConfig struct {
	RadiusMeters float64 // bias radius around the map center
	Limit        int     // max suggestions per query
	NavigateZoom int     // zoom used when panning to a resolved suggestion
}

// ProvidersConfig holds external provider settings
type ProvidersConfig struct {
	NominatimURL      string
	UserAgent         string
	RequestsPerSecond float64
	Timeout           time.Duration
	IPAPIURL          string
}

// Center returns the configured map center.
func (m MapsConfig) Center() types.MapPoint {
	return types.MapPoint{Latitude: m.CenterLatitude, Longitude: m.CenterLongitude}
}

// HasLibrary reports whether the named maps capability is enabled.
func (m MapsConfig) HasLibrary(name string) bool {
	for _, lib := range m.Libraries {
		if strings.EqualFold(lib, name) {
			return true
		}
	}
	return false
}

// Load reads configuration from a .env file, a config file and environment variables
func Load() (*Config, error) {
	// A missing .env is normal outside local development
	_ = godotenv.Load()

	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	// Set config file name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.toilet-finder")

	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("TOILET_FINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if _, err := types.NewMapPoint(cfg.Maps.CenterLatitude, cfg.Maps.CenterLongitude); err != nil {
		return nil, fmt.Errorf("invalid map center: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.ginmode", "release")
	v.SetDefault("server.allowedorigins", []string{"http://localhost:3000"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// The credential has no default; a blank key becomes a map load failure
	v.SetDefault("maps.apikey", "")
	v.SetDefault("maps.libraries", []string{"places"})
	v.SetDefault("maps.centerlatitude", 51.449580)
	v.SetDefault("maps.centerlongitude", -0.004190)
	v.SetDefault("maps.defaultzoom", 15)
	v.SetDefault("maps.markericonurl", "/img/toilet-marker.svg")
	v.SetDefault("maps.markericonsize", 45)
	v.SetDefault("maps.overlayoffsety", -45)

	// approx 2 miles, a 20 minute walk
	v.SetDefault("search.radiusmeters", 3200.0)
	v.SetDefault("search.limit", 5)
	v.SetDefault("search.navigatezoom", 17)

	v.SetDefault("providers.nominatimurl", "https://nominatim.openstreetmap.org")
	v.SetDefault("providers.useragent", "toilet-finder/1.0")
	v.SetDefault("providers.requestspersecond", 1.0)
	v.SetDefault("providers.timeout", 10*time.Second)
	v.SetDefault("providers.ipapiurl", "http://ip-api.com")
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	// Parse log level
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	// Create handler options
	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
