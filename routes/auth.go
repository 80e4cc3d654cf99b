package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"socialsync-platform/internal/config"
	"socialsync-platform/models"
	"socialsync-platform/utils"
)

// SetupAuthRoutes wires the identity endpoints. The rest of the API only ever
// sees the user id carried in the issued token.
func SetupAuthRoutes(router *gin.Engine, cfg *config.Config, mongoClient *mongo.Client) {
	auth := router.Group("/auth")

	db := mongoClient.Database(cfg.DBName)
	usersCollection := db.Collection("users")

	auth.POST("/register", func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		// Check if email already registered
		var existingUser models.User
		if err := usersCollection.FindOne(context.Background(), bson.M{"email": req.Email}).Decode(&existingUser); err == nil {
			utils.RespondWithError(c, http.StatusConflict, "email_exists", "Email already registered", nil)
			return
		}

		hashedPassword, err := utils.HashPassword(req.Password, cfg.BcryptCost)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to process password", nil)
			return
		}

		user := models.User{
			Email:        req.Email,
			DisplayName:  req.DisplayName,
			PasswordHash: hashedPassword,
			CreatedAt:    time.Now(),
			UpdatedAt:    time.Now(),
		}

		result, err := usersCollection.InsertOne(context.Background(), user)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to create user", nil)
			return
		}

		userID := result.InsertedID.(primitive.ObjectID).Hex()

		duration, _ := time.ParseDuration(cfg.JWTExpiresIn)
		token, err := utils.GenerateJWT(userID, req.Email, cfg.JWTSecret, duration)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to generate token", nil)
			return
		}

		c.JSON(http.StatusCreated, models.LoginResponse{
			Token:     token,
			ExpiresAt: time.Now().Add(duration),
			User: models.UserInfo{
				ID:          userID,
				Email:       req.Email,
				DisplayName: req.DisplayName,
			},
		})
	})

	auth.POST("/login", func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Invalid request data", gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := usersCollection.FindOne(context.Background(), bson.M{"email": req.Email}).Decode(&user); err != nil {
			utils.RespondWithUnauthorized(c, "Invalid email or password")
			return
		}

		if !utils.CheckPassword(req.Password, user.PasswordHash) {
			utils.RespondWithUnauthorized(c, "Invalid email or password")
			return
		}

		duration, _ := time.ParseDuration(cfg.JWTExpiresIn)
		token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, cfg.JWTSecret, duration)
		if err != nil {
			utils.RespondWithInternalError(c, "Failed to generate token", nil)
			return
		}

		c.JSON(http.StatusOK, models.LoginResponse{
			Token:     token,
			ExpiresAt: time.Now().Add(duration),
			User: models.UserInfo{
				ID:          user.ID.Hex(),
				Email:       user.Email,
				DisplayName: user.DisplayName,
			},
		})
	})
}
