package routes

import (
	"github.com/gin-gonic/gin"

	"heritage_routes/internal/controllers"
)

func GeocodeRoutes(r *gin.Engine, gc *controllers.GeocodeController) {
	geocode := r.Group("/api/geocode")
	{
		geocode.GET("/reverse", gc.ReverseGeocode)
	}
}
