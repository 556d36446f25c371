package routes

import (
	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"

	"heritage_routes/internal/controllers"
	"heritage_routes/internal/middleware"
)

// Controllers bundles the handler sets the router wires up.
type Controllers struct {
	Auth    *controllers.AuthController
	Objects *controllers.ObjectController
	Routes  *controllers.RouteController
	Geocode *controllers.GeocodeController
}

func SetupRouter(ctl Controllers, tokens *middleware.TokenIssuer) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(ginlog.SetLogger())

	AuthRoutes(r, ctl.Auth, tokens)
	ObjectRoutes(r, ctl.Objects, tokens)
	RouteRoutes(r, ctl.Routes, tokens)
	GeocodeRoutes(r, ctl.Geocode)

	return r
}
