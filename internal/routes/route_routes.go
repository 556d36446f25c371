package routes

import (
	"github.com/gin-gonic/gin"

	"heritage_routes/internal/controllers"
	"heritage_routes/internal/middleware"
)

func RouteRoutes(r *gin.Engine, rc *controllers.RouteController, tokens *middleware.TokenIssuer) {
	routes := r.Group("/api/routes")
	routes.Use(tokens.RequireAuth())
	{
		routes.POST("", rc.CreateRoute)
		routes.GET("", rc.ListRoutes)
		routes.GET("/:id", rc.GetRoute)
		routes.PUT("/:id/favorite", rc.SetFavorite)
	}
}
