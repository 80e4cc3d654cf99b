package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"socialsync-platform/internal/trends"
)

// SetupTrendsRoutes exposes the trending-topics feed for the dashboard.
func SetupTrendsRoutes(router *gin.Engine, trendsService *trends.Service) {
	router.GET("/api/trends", func(c *gin.Context) {
		c.JSON(http.StatusOK, trendsService.Trending(c.Request.Context()))
	})
}
