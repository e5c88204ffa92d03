package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/trucksimfm/companion/internal/db"
	"github.com/trucksimfm/companion/internal/http/api"
	"github.com/trucksimfm/companion/internal/http/api/radio/packets"
)

// StatusModule mounts the client heartbeat endpoints.
func StatusModule(store db.Store) api.Module {
	ctl := &statusManager{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/status", ctl.createStatusCheck)
		c.PUBLIC_GET("/status", ctl.listStatusChecks)
	})
}

type statusManager struct {
	store db.Store
}

// POST /api/status
func (s *statusManager) createStatusCheck(ctx *gin.Context) (any, *api.APIError) {
	var request packets.StatusCheckRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	check, err := s.store.CreateStatusCheck(request.ClientName)
	if err != nil {
		log.Error().Err(err).Str("client_name", request.ClientName).Msg("could not record status check")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not record status check"}
	}
	return check, nil
}

// GET /api/status?limit=N
func (s *statusManager) listStatusChecks(ctx *gin.Context) (any, *api.APIError) {
	limit, err := strconv.Atoi(ctx.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "limit must be a positive integer"}
	}

	checks, err := s.store.ListStatusChecks(limit)
	if err != nil {
		log.Error().Err(err).Msg("could not list status checks")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list status checks"}
	}
	return checks, nil
}
