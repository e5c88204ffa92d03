package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

type Environment struct {
	Environment    string
	ServerAddress  string
	SecretKey      string
	DatabaseURL    string
	MigrationsPath string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	// Upstream station endpoints.
	StationAPIBaseURL string
	ShoutcastURL      string
	StreamPlaylistURL string
	MediaBaseURL      string

	// PublicBaseURL is where this server is reachable; locally stored
	// presenter photos are served under it.
	PublicBaseURL string

	SpotifyClientID     string
	SpotifyClientSecret string

	MQTTBrokerURL string

	// Bootstrap staff account, created on startup if absent.
	AdminEmail    string
	AdminPassword string

	UseSpaces       bool
	SpacesEndpoint  string
	SpacesRegion    string
	SpacesBucket    string
	SpacesCDNURL    string
	SpacesAccessKey string
	SpacesSecretKey string
}

// LoadEnvironment reads and validates env vars.
func LoadEnvironment() Environment {
	env := Environment{
		Environment:    os.Getenv("APP_ENV"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SecretKey:      os.Getenv("JWT_SECRET"),
		ServerAddress:  os.Getenv("SERVER_ADDRESS"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		StationAPIBaseURL: os.Getenv("STATION_API_BASE_URL"),
		ShoutcastURL:      os.Getenv("SHOUTCAST_URL"),
		StreamPlaylistURL: os.Getenv("STREAM_PLAYLIST_URL"),
		MediaBaseURL:      os.Getenv("MEDIA_BASE_URL"),
		PublicBaseURL:     os.Getenv("PUBLIC_BASE_URL"),

		SpotifyClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
		SpotifyClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),

		MQTTBrokerURL: os.Getenv("MQTT_BROKER_URL"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		UseSpaces:       os.Getenv("USE_SPACES") == "true",
		SpacesEndpoint:  os.Getenv("SPACES_ENDPOINT"),
		SpacesRegion:    os.Getenv("SPACES_REGION"),
		SpacesBucket:    os.Getenv("SPACES_BUCKET"),
		SpacesCDNURL:    os.Getenv("SPACES_CDN_URL"),
		SpacesAccessKey: os.Getenv("SPACES_ACCESS_KEY"),
		SpacesSecretKey: os.Getenv("SPACES_SECRET_KEY"),
	}

	if env.DatabaseURL == "" || env.SecretKey == "" || env.ServerAddress == "" {
		log.Fatal().Msg("missing required environment variables (DATABASE_URL, JWT_SECRET, SERVER_ADDRESS)")
	}
	if env.StationAPIBaseURL == "" || env.ShoutcastURL == "" {
		log.Fatal().Msg("missing required environment variables (STATION_API_BASE_URL, SHOUTCAST_URL)")
	}

	if env.MigrationsPath == "" {
		env.MigrationsPath = "./migrations"
	}
	if env.MediaBaseURL == "" {
		env.MediaBaseURL = env.StationAPIBaseURL
	}

	return env
}
