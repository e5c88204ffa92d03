package endpoints

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/trucksimfm/companion/internal/http/api"
	"github.com/trucksimfm/companion/internal/model"
)

// PresenterSource yields the presenter currently on air. Resolution is
// total, so the endpoint never errors outward.
type PresenterSource interface {
	Current(ctx context.Context) model.LivePresenter
}

// PresenterModule mounts the live presenter endpoint.
func PresenterModule(presenters PresenterSource) api.Module {
	ctl := &presenterProxy{presenters: presenters}
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_GET("/live-presenter", ctl.getLivePresenter)
	})
}

type presenterProxy struct {
	presenters PresenterSource
}

// GET /api/live-presenter
func (p *presenterProxy) getLivePresenter(ctx *gin.Context) (any, *api.APIError) {
	return p.presenters.Current(ctx.Request.Context()), nil
}
