package endpoints

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/trucksimfm/companion/internal/http/api"
	"github.com/trucksimfm/companion/internal/http/api/radio/packets"
	"github.com/trucksimfm/companion/internal/model"
)

// TrackSearcher looks a song up in the catalog. A nil track with a nil
// error means no match.
type TrackSearcher interface {
	SearchTrack(ctx context.Context, artist, title string) (*model.SpotifyTrack, error)
}

// SpotifyModule mounts the catalog search endpoint.
func SpotifyModule(searcher TrackSearcher) api.Module {
	ctl := &spotifyProxy{searcher: searcher}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/spotify/search", ctl.searchTrack)
	})
}

type spotifyProxy struct {
	searcher TrackSearcher
}

// POST /api/spotify/search
func (s *spotifyProxy) searchTrack(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SpotifySearchRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	track, err := s.searcher.SearchTrack(ctx.Request.Context(), request.Artist, request.Title)
	if err != nil {
		log.Error().Err(err).Str("artist", request.Artist).Str("title", request.Title).Msg("catalog search failed")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "catalog lookup failed"}
	}
	if track == nil {
		return packets.ProxyResponse{Success: false, Error: "no match found"}, nil
	}
	return packets.ProxyResponse{Success: true, Data: track}, nil
}
