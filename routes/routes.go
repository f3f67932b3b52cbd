package routes

import (
	"github.com/gin-gonic/gin"

	"linkfolio/backend/config"
	"linkfolio/backend/controllers"
	"linkfolio/backend/database"
	"linkfolio/backend/middlewares"
	"linkfolio/backend/services"
)

func Register(r *gin.Engine, cfg config.Config, store database.Storage, profiles *services.ProfileService, enhancer *services.Enhancer) {
	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/register", controllers.RegisterUser(cfg, store))
		auth.POST("/login", controllers.Login(cfg, store))
		api.GET("/me", middlewares.Auth(cfg.JWTSecret), controllers.Me(store))

		api.POST("/waitlist", controllers.JoinWaitlist(store))
		api.GET("/waitlist/export", controllers.ExportWaitlist(store))

		api.POST("/profiles", controllers.CreateProfile(store))
		api.GET("/profiles/:id", controllers.GetProfile(store))
		api.POST("/profiles/:id/fetch", controllers.FetchProfileData(store, profiles))
		api.POST("/profiles/:id/settings", controllers.SaveSettings(store))
		api.POST("/profiles/:id/enhance", controllers.EnhanceProfile(store, enhancer))
		api.GET("/profiles/:id/recommendations", controllers.Recommendations(store, enhancer))

		api.POST("/websites", controllers.CreateWebsite(store))
		api.PATCH("/websites/:id", controllers.UpdateWebsite(store))
		api.GET("/users/:id/websites", controllers.ListUserWebsites(store))
	}
}
