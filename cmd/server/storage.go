package main

import (
	"github.com/rs/zerolog/log"

	"github.com/trucksimfm/companion/internal/storage"
)

// InitStorage selects the photo storage backend from the environment.
func InitStorage(env Environment) storage.Storage {
	if env.UseSpaces {
		spacesStorage, err := storage.NewSpacesStorage(
			env.SpacesEndpoint,
			env.SpacesRegion,
			env.SpacesBucket,
			env.SpacesCDNURL,
			env.SpacesAccessKey,
			env.SpacesSecretKey,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize Spaces storage")
		}
		log.Info().Str("cdn", env.SpacesCDNURL).Msg("using DigitalOcean Spaces storage")
		return spacesStorage
	}

	log.Info().Msg("using local file storage in ./uploads")
	return storage.NewLocalStorage("./uploads", env.PublicBaseURL)
}
