package endpoints

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/trucksimfm/companion/internal/http/api"
	"github.com/trucksimfm/companion/internal/http/api/admin/packets"
	"github.com/trucksimfm/companion/internal/model"
)

// Overrides without an explicit duration lapse after a typical show length.
const defaultOverrideTTL = 3 * time.Hour

// OverrideStore persists the forced-presenter state.
type OverrideStore interface {
	SetOverride(ctx context.Context, lp model.LivePresenter, ttl time.Duration) error
	ClearOverride(ctx context.Context)
}

// OverrideModule mounts the on-air override endpoints (JWT required).
func OverrideModule(overrides OverrideStore) api.Module {
	ctl := &overrideManager{overrides: overrides}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUT("/override", ctl.setOverride)
		c.DELETE("/override", ctl.clearOverride)
	})
}

type overrideManager struct {
	overrides OverrideStore
}

// PUT /api/admin/override
func (o *overrideManager) setOverride(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var request packets.OverrideRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	ttl := defaultOverrideTTL
	if request.DurationMinutes > 0 {
		ttl = time.Duration(request.DurationMinutes) * time.Minute
	}

	end := time.Now().UTC().Add(ttl)
	lp := model.LivePresenter{
		Name:        request.Name,
		Description: request.Description,
		ShowName:    request.ShowName,
		PhotoURL:    request.PhotoURL,
		EndTime:     &end,
	}
	if lp.ShowName == "" {
		lp.ShowName = "Live with " + lp.Name
	}

	if err := o.overrides.SetOverride(ctx.Request.Context(), lp, ttl); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not store override"}
	}

	log.Info().Str("presenter", lp.Name).Dur("ttl", ttl).Int("staff_id", user.ID).Msg("presenter override set")
	return lp, nil
}

// DELETE /api/admin/override
func (o *overrideManager) clearOverride(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	o.overrides.ClearOverride(ctx.Request.Context())
	log.Info().Int("staff_id", user.ID).Msg("presenter override cleared")
	return gin.H{"cleared": true}, nil
}
