package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	OpenAI  OpenAIConfig
	Events  EventsConfig
	Places  PlacesConfig
	Geocode GeocodeConfig
	Phone   PhoneConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type OpenAIConfig struct {
	APIKey      string
	Model       string
	SearchModel string
}

type EventsConfig struct {
	APIToken string
	// PlaceScope is the Geonames id bounding every events search.
	PlaceScope string
	Limit      int
}

type PlacesConfig struct {
	APIKey           string
	Limit            int
	IncludeOfferings bool
}

type GeocodeConfig struct {
	APIKey string
}

type PhoneConfig struct {
	Country string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("IDLE_TIMEOUT", 60*time.Second),
		},
		OpenAI: OpenAIConfig{
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			Model:       getEnv("LLM_MODEL", "gpt-4o-mini"),
			SearchModel: getEnv("LLM_SEARCH_MODEL", "gpt-4o-mini-search-preview"),
		},
		Events: EventsConfig{
			APIToken:   getEnv("PREDICTHQ_API_TOKEN", ""),
			PlaceScope: getEnv("EVENTS_PLACE_SCOPE", "1880252"), // Singapore
			Limit:      getEnvAsInt("EVENTS_LIMIT", 5),
		},
		Places: PlacesConfig{
			APIKey:           getEnv("GOOGLE_PLACES_API_KEY", ""),
			Limit:            getEnvAsInt("PLACES_LIMIT", 5),
			IncludeOfferings: getEnvAsBool("INCLUDE_OFFERINGS", false),
		},
		Geocode: GeocodeConfig{
			APIKey: getEnv("GEOCODING_API_KEY", ""),
		},
		Phone: PhoneConfig{
			Country: getEnv("PHONE_COUNTRY", "SG"),
		},
	}

	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if cfg.Events.APIToken == "" {
		return nil, fmt.Errorf("PREDICTHQ_API_TOKEN is required")
	}
	if cfg.Places.APIKey == "" {
		return nil, fmt.Errorf("GOOGLE_PLACES_API_KEY is required")
	}
	if cfg.Geocode.APIKey == "" {
		return nil, fmt.Errorf("GEOCODING_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
