package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trucksimfm/companion/internal/http/middleware"
	"github.com/trucksimfm/companion/internal/model"
)

// APIError is the failure half of a typed handler result.
type APIError struct {
	Code    int
	Message string
}

// HandlerFunc is a typed endpoint handler: return a payload or an APIError,
// and the resolver turns it into JSON.
type HandlerFunc func(ctx *gin.Context) (any, *APIError)

// HandlerFuncWithAuth additionally receives the authenticated staff user.
type HandlerFuncWithAuth func(ctx *gin.Context, user *model.User) (any, *APIError)

// ResolveEndpoint adapts a typed handler to gin.
func ResolveEndpoint(h HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		result, apiErr := h(ctx)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}

// ResolveEndpointWithAuth adapts a typed handler that requires a logged-in
// staff user. JWTMiddleware must have run on the group.
func ResolveEndpointWithAuth(h HandlerFuncWithAuth) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		user, ok := middleware.GetCurrentUser(ctx)
		if !ok {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		result, apiErr := h(ctx, user)
		if apiErr != nil {
			ctx.JSON(apiErr.Code, gin.H{"error": apiErr.Message})
			return
		}
		ctx.JSON(http.StatusOK, result)
	}
}
