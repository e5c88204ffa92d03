package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/trucksimfm/companion/internal/db"
	"github.com/trucksimfm/companion/internal/http/api"
	adminapi "github.com/trucksimfm/companion/internal/http/api/admin/endpoints"
	radioapi "github.com/trucksimfm/companion/internal/http/api/radio/endpoints"
	"github.com/trucksimfm/companion/internal/presenter"
	"github.com/trucksimfm/companion/internal/spotify"
	"github.com/trucksimfm/companion/internal/station"
	"github.com/trucksimfm/companion/internal/storage"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(
	r *gin.Engine,
	env Environment,
	store db.Store,
	storageSystem storage.Storage,
	presenters *presenter.Service,
	overrides *presenter.RedisOverrides,
	upstream *station.Client,
	catalog *spotify.Client,
) {
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	},
		radioapi.PresenterModule(presenters),
		radioapi.StationModule(upstream),
		radioapi.SpotifyModule(catalog),
		radioapi.StatusModule(store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/admin",
		Auth:   false,
	},
		adminapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: env.SecretKey,
	},
		adminapi.AuthSessionModule(env.SecretKey, store),
		adminapi.OverrideModule(overrides),
		adminapi.PhotoModule(storageSystem),
	)

	// Presenter photos when running on local storage.
	if !env.UseSpaces {
		r.Static("/uploads", "./uploads")
	}
}
