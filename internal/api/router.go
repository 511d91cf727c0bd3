// backend/internal/api/router.go
package api

import (
	"github.com/casaplan/casaplan/backend/internal/api/handlers"
	"github.com/casaplan/casaplan/backend/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the request handlers wired into the router.
type Handlers struct {
	FloorPlans    *handlers.FloorPlanHandler
	Conversations *handlers.ConversationHandler
	Chat          *handlers.ChatHandler
	Preferences   *handlers.PreferencesHandler
	Feedback      *handlers.FeedbackHandler
	Render        *handlers.RenderHandler
	Health        *handlers.HealthHandler
}

// NewRouter builds the gin engine with middleware and all API routes.
func NewRouter(h *Handlers, corsOrigins []string, limiter *middleware.RateLimiter) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(corsOrigins) == 1 && corsOrigins[0] == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = corsOrigins
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Request-ID")
	router.Use(cors.New(corsConfig))

	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestID())
	if limiter != nil {
		router.Use(limiter.RateLimit())
	}

	apiGroup := router.Group("/api")
	{
		apiGroup.GET("/", h.Health.HandleInfo)
		apiGroup.GET("/health", h.Health.HandleHealth)

		apiGroup.POST("/floorplans", h.FloorPlans.HandleCreate)
		apiGroup.GET("/floorplans", h.FloorPlans.HandleList)
		apiGroup.GET("/floorplans/:id", h.FloorPlans.HandleGet)
		apiGroup.PATCH("/floorplans/:id", h.FloorPlans.HandleUpdate)
		apiGroup.DELETE("/floorplans/:id", h.FloorPlans.HandleDelete)
		apiGroup.POST("/floorplans/:id/upload", h.FloorPlans.HandleUpload)
		apiGroup.POST("/floorplans/:id/convert-3d", h.FloorPlans.HandleConvert3D)

		apiGroup.POST("/conversations", h.Conversations.HandleCreate)
		apiGroup.GET("/conversations", h.Conversations.HandleList)
		apiGroup.GET("/conversations/:id/messages", h.Conversations.HandleListMessages)

		apiGroup.POST("/chat", h.Chat.HandleChat)

		apiGroup.GET("/preferences/:user_id", h.Preferences.HandleGet)
		apiGroup.PATCH("/preferences/:user_id", h.Preferences.HandleUpdate)

		apiGroup.POST("/feedback", h.Feedback.HandleCreate)
		apiGroup.GET("/feedback", h.Feedback.HandleList)

		apiGroup.POST("/render", h.Render.HandleRender)
	}

	return router
}
