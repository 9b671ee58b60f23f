package api

import (
	"net/http"

	waitlistHandler "waitlist-service/internal/waitlist/handler"

	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether the service's backing stores are reachable
type HealthChecker func(c *gin.Context) error

type API struct {
	router          *gin.RouterGroup
	waitlistHandler waitlistHandler.Handler
	metricsHandler  http.Handler
	health          HealthChecker
}

func New(router *gin.RouterGroup, waitlistHandler waitlistHandler.Handler, metricsHandler http.Handler, health HealthChecker) API {
	return API{
		router:          router,
		waitlistHandler: waitlistHandler,
		metricsHandler:  metricsHandler,
		health:          health,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	if a.metricsHandler != nil {
		a.router.GET("/metrics", gin.WrapH(a.metricsHandler))
	}

	apiGroup := a.router.Group("/api")
	{
		waitlistGroup := apiGroup.Group("/waitlist")
		waitlistGroup.POST("/signup", a.waitlistHandler.HandleSignup)
		waitlistGroup.GET("/status", a.waitlistHandler.HandleGetStatus)
		waitlistGroup.POST("/otp/request", a.waitlistHandler.HandleRequestCode)
		waitlistGroup.POST("/otp/verify", a.waitlistHandler.HandleVerifyCode)
	}
	adminGroup := apiGroup.Group("/admin", a.waitlistHandler.HandleAdminAuth)
	{
		adminGroup.GET("/entries", a.waitlistHandler.HandleListEntries)
		adminGroup.GET("/entries/export", a.waitlistHandler.HandleExportEntries)
		adminGroup.GET("/entries/:id", a.waitlistHandler.HandleGetEntry)
		adminGroup.PATCH("/entries/:id", a.waitlistHandler.HandleUpdateEntry)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		if a.health != nil {
			if err := a.health(c); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"message": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
}
