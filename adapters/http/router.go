package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/khoahotran/profile-directory/pkg/logger"
	"github.com/khoahotran/profile-directory/pkg/metrics"
)

type RouterDeps struct {
	ProfileHandler *ProfileHandler
	SkillHandler   *SkillHandler
	Logger         logger.Logger
	CORSOrigins    []string
	// ExposeErrorDetails adds the underlying cause to error responses.
	ExposeErrorDetails bool
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "accept", "origin", "Cache-Control", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(deps.Logger))
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))
	router.Use(ErrorMiddleware(deps.Logger, deps.ExposeErrorDetails))

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		// legacy create path
		api.POST("/create", deps.ProfileHandler.CreateProfile)

		profiles := api.Group("/profiles")
		{
			profiles.POST("", deps.ProfileHandler.CreateProfile)
			profiles.GET("", deps.ProfileHandler.ListProfiles)
			profiles.GET("/list", deps.ProfileHandler.ListProfiles)
			profiles.GET("/search", deps.ProfileHandler.SearchBySkills)
			profiles.GET("/:id", deps.ProfileHandler.GetProfile)
			profiles.PUT("/:id", deps.ProfileHandler.UpdateProfile)
			profiles.PATCH("/:id", deps.ProfileHandler.UpdateProfile)
		}

		api.GET("/skills/popular", deps.SkillHandler.PopularSkills)
	}

	return router
}
