package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/trucksimfm/companion/internal/http/api"
	"github.com/trucksimfm/companion/internal/http/api/admin/packets"
	"github.com/trucksimfm/companion/internal/model"
	"github.com/trucksimfm/companion/internal/storage"
)

// PhotoModule mounts the presenter photo upload endpoint (JWT required).
func PhotoModule(store storage.Storage) api.Module {
	ctl := &photoManager{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/presenters/photo", ctl.uploadPhoto)
	})
}

type photoManager struct {
	store storage.Storage
}

// POST /api/admin/presenters/photo
func (p *photoManager) uploadPhoto(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	fileHeader, err := ctx.FormFile("photo")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "missing photo file"}
	}

	url, err := p.store.SavePhoto(fileHeader, fileHeader.Filename)
	if err != nil {
		log.Error().Err(err).Str("filename", fileHeader.Filename).Msg("photo upload failed")
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	log.Info().Str("url", url).Int("staff_id", user.ID).Msg("presenter photo uploaded")
	return packets.PhotoUploadResponse{URL: url}, nil
}
