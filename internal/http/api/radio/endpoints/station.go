package endpoints

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/trucksimfm/companion/internal/http/api"
	"github.com/trucksimfm/companion/internal/http/api/radio/packets"
	"github.com/trucksimfm/companion/internal/model"
	"github.com/trucksimfm/companion/internal/poller"
	"github.com/trucksimfm/companion/internal/redis"
)

// fallbackSongText is what the player header shows when the feed is down.
const fallbackSongText = "TruckSimFM - Live Radio"

const defaultRecentLimit = 5

// StationAPI is the slice of the upstream client these proxies need.
type StationAPI interface {
	CurrentSong(ctx context.Context) (string, error)
	Schedule(ctx context.Context) ([]model.ScheduleEntry, error)
	RecentlyPlayed(ctx context.Context, limit int) ([]model.RecentlyPlayedTrack, error)
	LikeSong(ctx context.Context, documentID string) (int, error)
	StreamURLs(ctx context.Context) ([]string, error)
}

// StationModule mounts the station proxy endpoints.
func StationModule(upstream StationAPI) api.Module {
	ctl := &stationProxy{upstream: upstream}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/current-song", ctl.getCurrentSong)
		c.PUBLIC_GET("/schedule", ctl.getSchedule)
		c.PUBLIC_GET("/recently-played", ctl.getRecentlyPlayed)
		c.PUBLIC_POST("/like-song/:documentId", ctl.likeSong)
		c.PUBLIC_GET("/stream", ctl.getStream)
	})
}

type stationProxy struct {
	upstream StationAPI
}

// GET /api/current-song
//
// Served from the poller snapshot when one exists so the app's 10 second
// poll never reaches the Shoutcast server directly.
func (s *stationProxy) getCurrentSong(ctx *gin.Context) (any, *api.APIError) {
	var np poller.NowPlaying
	if snapshotJSON(ctx.Request.Context(), poller.KeyNowPlaying, &np) && np.Song.Raw != "" {
		return packets.ProxyResponse{Success: true, Data: np.Song.Raw}, nil
	}

	raw, err := s.upstream.CurrentSong(ctx.Request.Context())
	if err != nil {
		log.Warn().Err(err).Msg("current song proxy degraded")
		return packets.ProxyResponse{Success: false, Data: fallbackSongText}, nil
	}
	return packets.ProxyResponse{Success: true, Data: raw}, nil
}

// GET /api/schedule
func (s *stationProxy) getSchedule(ctx *gin.Context) (any, *api.APIError) {
	entries, err := s.upstream.Schedule(ctx.Request.Context())
	if err != nil {
		log.Warn().Err(err).Msg("schedule proxy degraded")
		return packets.ProxyResponse{Success: false, Data: []model.ScheduleEntry{}}, nil
	}
	return packets.ProxyResponse{Success: true, Data: entries}, nil
}

// GET /api/recently-played?limit=N
func (s *stationProxy) getRecentlyPlayed(ctx *gin.Context) (any, *api.APIError) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultRecentLimit)))
	if err != nil || limit < 1 {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "limit must be a positive integer"}
	}

	// The poller snapshots the default page; bigger requests go upstream.
	if limit == defaultRecentLimit {
		var tracks []model.RecentlyPlayedTrack
		if snapshotJSON(ctx.Request.Context(), poller.KeyRecentlyPlayed, &tracks) {
			return packets.ProxyResponse{Success: true, Data: tracks}, nil
		}
	}

	tracks, err := s.upstream.RecentlyPlayed(ctx.Request.Context(), limit)
	if err != nil {
		log.Warn().Err(err).Msg("recently played proxy degraded")
		return packets.ProxyResponse{Success: false, Data: []model.RecentlyPlayedTrack{}}, nil
	}
	return packets.ProxyResponse{Success: true, Data: tracks}, nil
}

// POST /api/like-song/:documentId
func (s *stationProxy) likeSong(ctx *gin.Context) (any, *api.APIError) {
	documentID := ctx.Param("documentId")
	if documentID == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "missing document id"}
	}

	likes, err := s.upstream.LikeSong(ctx.Request.Context(), documentID)
	if err != nil {
		log.Error().Err(err).Str("document_id", documentID).Msg("like song failed")
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "could not register like"}
	}
	return packets.LikeResponse{Success: true, Likes: likes}, nil
}

// GET /api/stream
func (s *stationProxy) getStream(ctx *gin.Context) (any, *api.APIError) {
	urls, err := s.upstream.StreamURLs(ctx.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("stream playlist fetch failed")
		return nil, &api.APIError{Code: http.StatusBadGateway, Message: "stream playlist unavailable"}
	}
	return packets.ProxyResponse{Success: true, Data: urls}, nil
}

// snapshotJSON loads a poller snapshot into out. A miss, a connection
// problem, or stale JSON all just mean "go upstream".
func snapshotJSON(ctx context.Context, key string, out any) bool {
	if redis.Rdb == nil {
		return false
	}
	raw, err := redis.Get(ctx, key)
	if err != nil {
		if !redis.IsMissing(err) {
			log.Warn().Err(err).Str("key", key).Msg("snapshot read failed")
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("snapshot unmarshal failed")
		return false
	}
	return true
}
