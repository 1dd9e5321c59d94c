package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"vidquest/db"
	"vidquest/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func likeKey(videoID, userID string) string {
	return "video:" + videoID + ":liked:" + userID
}

// LikeVideo records a like for the authenticated user. Redis holds a
// fast duplicate flag in front of the authoritative Mongo relation; a
// cold or down Redis just means the validator does the work.
func LikeVideo(c *gin.Context) {
	videoID := c.Param("id")
	if videoID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Video ID is required"})
		return
	}

	userID := c.MustGet("userID").(primitive.ObjectID)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if db.RedisClient != nil {
		exists, err := db.RedisClient.Exists(ctx, likeKey(videoID, userID.Hex())).Result()
		if err == nil && exists > 0 {
			c.JSON(http.StatusConflict, gin.H{
				"liked":   true,
				"message": "You've already liked this video!",
			})
			return
		}
	}

	outcome, err := gamification.ProcessAction(ctx, models.UserAction{
		UserID:  userID,
		Action:  models.ActionVideoLike,
		VideoID: videoID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process like"})
		return
	}
	if !outcome.Result.Valid {
		c.JSON(http.StatusTooManyRequests, outcome)
		return
	}

	if err := stores.InsertLike(ctx, userID, videoID, time.Now()); err != nil {
		if errors.Is(err, db.ErrAlreadyLiked) {
			// Lost a race with a concurrent request for the same pair.
			c.JSON(http.StatusConflict, gin.H{
				"liked":   true,
				"message": "You've already liked this video!",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record like"})
		return
	}

	if db.RedisClient != nil {
		db.RedisClient.SetNX(ctx, likeKey(videoID, userID.Hex()), "1", 0)
	}

	c.JSON(http.StatusOK, gin.H{
		"liked":   true,
		"outcome": outcome,
	})
}

// GetVideoLike reports whether the authenticated user has liked a video.
func GetVideoLike(c *gin.Context) {
	videoID := c.Param("id")
	userID := c.MustGet("userID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if db.RedisClient != nil {
		exists, err := db.RedisClient.Exists(ctx, likeKey(videoID, userID.Hex())).Result()
		if err == nil && exists > 0 {
			c.JSON(http.StatusOK, gin.H{"liked": true})
			return
		}
	}

	liked, err := stores.HasLiked(ctx, userID, videoID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read like status"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}
