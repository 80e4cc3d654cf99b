package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"socialsync-platform/internal/ai"
	"socialsync-platform/internal/analytics"
	"socialsync-platform/internal/config"
	"socialsync-platform/internal/scheduler"
	"socialsync-platform/internal/store"
	"socialsync-platform/internal/telemetry"
	"socialsync-platform/middleware"
	"socialsync-platform/models"
	"socialsync-platform/services"
	"socialsync-platform/utils"
)

// SetupPostRoutes wires the post lifecycle endpoints: analysis, CRUD,
// analytics, export, and the on-demand scheduler tick.
func SetupPostRoutes(
	router *gin.Engine,
	cfg *config.Config,
	posts store.PostStore,
	classifier *ai.Classifier,
	sched *scheduler.Scheduler,
	metrics *telemetry.Metrics,
	authMiddleware *middleware.AuthMiddleware,
) {
	// Analysis needs no identity; the result is transient.
	router.POST("/api/analyze", func(c *gin.Context) {
		var req models.AnalyzeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Text is required", gin.H{"error": err.Error()})
			return
		}

		// Classify never fails; upstream model failures degrade to neutral.
		analysis := classifier.Classify(c.Request.Context(), req.Text)
		c.JSON(http.StatusOK, analysis)
	})

	api := router.Group("/api")
	api.Use(authMiddleware.RequireAuth())

	api.GET("/posts", func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		result, err := posts.ListByUser(c.Request.Context(), userID)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to fetch posts", nil)
			return
		}

		c.JSON(http.StatusOK, result)
	})

	api.POST("/posts", func(c *gin.Context) {
		var req models.CreatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid post data", gin.H{"error": err.Error()})
			return
		}

		now := time.Now().UnixMilli()

		// A past-dated scheduled post is born posted so it never sits in
		// scheduled state waiting for the next sweep.
		status := req.Status
		if status == "" {
			status = models.PostStatusScheduled
		}
		if status == models.PostStatusScheduled && req.ScheduledFor <= now {
			status = models.PostStatusPosted
		}

		post := models.Post{
			UserID:         middleware.GetUserID(c),
			Content:        req.Content,
			Hashtags:       req.Hashtags,
			Sentiment:      req.Sentiment,
			SentimentScore: req.SentimentScore,
			ScheduledFor:   req.ScheduledFor,
			Status:         status,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if post.Hashtags == nil {
			post.Hashtags = []string{}
		}

		if err := posts.Create(c.Request.Context(), &post); err != nil {
			utils.RespondWithInternalError(c, "Failed to create post", nil)
			return
		}

		if metrics != nil {
			metrics.RecordPostCreated(post.Status)
		}

		c.JSON(http.StatusCreated, post)
	})

	api.DELETE("/posts/:id", func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		postID := c.Param("id")

		// Not-found is checked before ownership so absent and foreign posts
		// are distinguishable.
		post, err := posts.Get(c.Request.Context(), postID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				utils.RespondWithNotFound(c, "Post not found")
				return
			}
			utils.RespondWithInternalError(c, "Failed to fetch post", nil)
			return
		}

		if post.UserID != userID {
			utils.RespondWithForbidden(c, "Post belongs to a different user")
			return
		}

		if err := posts.Delete(c.Request.Context(), postID); err != nil {
			utils.RespondWithInternalError(c, "Failed to delete post", nil)
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	api.GET("/analytics", func(c *gin.Context) {
		userID := middleware.GetUserID(c)

		result, err := posts.ListByUser(c.Request.Context(), userID)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to fetch posts", nil)
			return
		}

		c.JSON(http.StatusOK, analytics.Aggregate(result, time.Now(), cfg.AnalyticsTimezone))
	})

	api.GET("/posts/export", func(c *gin.Context) {
		userID := middleware.GetUserID(c)
		format := c.DefaultQuery("format", "excel")

		result, err := posts.ListByUser(c.Request.Context(), userID)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to fetch posts", nil)
			return
		}

		switch format {
		case "json":
			c.Header("Content-Disposition", `attachment; filename="posts.json"`)
			c.JSON(http.StatusOK, result)
		case "excel":
			buf, err := services.PostsWorkbook(result, cfg.AnalyticsTimezone)
			if err != nil {
				utils.RespondWithInternalError(c, "Failed to build export", nil)
				return
			}
			c.Header("Content-Disposition", `attachment; filename="posts.xlsx"`)
			c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
		default:
			utils.RespondWithBadRequest(c, "Unknown export format", gin.H{"format": format})
		}
	})

	// Timer-driven in production; exposed for on-demand sweeps. Safe to call
	// repeatedly.
	api.POST("/scheduler/tick", func(c *gin.Context) {
		count, err := sched.Sweep(c.Request.Context())
		if err != nil {
			utils.RespondWithInternalError(c, "Sweep failed", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"published": count})
	})
}
