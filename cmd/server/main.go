package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/trucksimfm/companion/internal/db"
	"github.com/trucksimfm/companion/internal/http/middleware"
	"github.com/trucksimfm/companion/internal/mqtt"
	"github.com/trucksimfm/companion/internal/poller"
	"github.com/trucksimfm/companion/internal/presenter"
	"github.com/trucksimfm/companion/internal/redis"
	"github.com/trucksimfm/companion/internal/spotify"
	"github.com/trucksimfm/companion/internal/station"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, relying on process environment")
	}

	env := LoadEnvironment()

	if env.Environment != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	store := db.NewStore()

	ensureAdminUser(store, env)

	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	storageSystem := InitStorage(env)

	upstream := station.NewClient(env.StationAPIBaseURL, env.ShoutcastURL, env.StreamPlaylistURL)
	catalog := spotify.NewClient(env.SpotifyClientID, env.SpotifyClientSecret)

	overrides := presenter.NewRedisOverrides()
	resolver := presenter.NewResolver(presenter.DefaultFallback, env.MediaBaseURL)
	presenters := presenter.NewService(upstream, overrides, resolver)

	var pub *mqtt.Publisher
	if env.MQTTBrokerURL != "" {
		var err error
		pub, err = mqtt.NewPublisher(env.MQTTBrokerURL, "companion-server")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MQTT broker")
		}
		defer pub.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	refresher := poller.New(presenters, upstream, catalog, publisherOrNil(pub))
	refresher.Start(ctx)

	if env.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	RegisterRoutes(r, env, store, storageSystem, presenters, overrides, upstream, catalog)

	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// ensureAdminUser bootstraps the first staff account so a fresh deploy can
// log into the dashboard without touching the database by hand.
func ensureAdminUser(store db.Store, env Environment) {
	if env.AdminEmail == "" || env.AdminPassword == "" {
		return
	}

	if existing, _ := store.GetUserByEmail(env.AdminEmail); existing != nil {
		return
	}

	hashed, err := middleware.HashPassword(env.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to hash admin password")
	}

	name := "Station Admin"
	if _, err := store.CreateUser(env.AdminEmail, hashed, &name); err != nil {
		log.Fatal().Err(err).Msg("failed to create admin account")
	}
	log.Info().Str("email", env.AdminEmail).Msg("bootstrapped admin account")
}

// publisherOrNil keeps the poller's publisher interface nil when MQTT is
// not configured; a typed nil pointer in the interface would not be nil.
func publisherOrNil(pub *mqtt.Publisher) poller.DisplayPublisher {
	if pub == nil {
		return nil
	}
	return pub
}
