package routes

import (
	"github.com/gin-gonic/gin"

	"heritage_routes/internal/controllers"
	"heritage_routes/internal/middleware"
)

// ObjectRoutes exposes the heritage-object catalog. Listing and detail are
// public; the story endpoint triggers generation, so it requires a login.
func ObjectRoutes(r *gin.Engine, oc *controllers.ObjectController, tokens *middleware.TokenIssuer) {
	api := r.Group("/api")
	{
		api.GET("/districts", oc.ListDistricts)
		api.GET("/object-types", oc.ListObjectTypes)
	}

	objects := api.Group("/objects")
	{
		objects.GET("", oc.ListObjects)
		objects.GET("/:id", oc.GetObject)
		objects.GET("/:id/story", tokens.RequireAuth(), oc.GetObjectStory)
	}
}
