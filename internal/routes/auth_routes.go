package routes

import (
	"github.com/gin-gonic/gin"

	"heritage_routes/internal/controllers"
	"heritage_routes/internal/middleware"
)

func AuthRoutes(r *gin.Engine, ac *controllers.AuthController, tokens *middleware.TokenIssuer) {
	auth := r.Group("/auth")
	{
		auth.POST("/signup", ac.Signup)
		auth.POST("/login", ac.Login)
		auth.GET("/me", tokens.RequireAuth(), ac.Me)
	}
}
