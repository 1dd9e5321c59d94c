package controllers

import (
	"context"
	"net/http"
	"time"

	"vidquest/achievements"
	"vidquest/xp"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetProgress returns the authenticated user's level state, stats, and
// streak.
func GetProgress(c *gin.Context) {
	userID := c.MustGet("userID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := stores.GetUserByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	level := xp.CalculateLevel(user.Stats.TotalXP)

	c.JSON(http.StatusOK, gin.H{
		"totalXp":       user.Stats.TotalXP,
		"level":         level,
		"currentStreak": user.Stats.CurrentStreak,
		"bestStreak":    user.Stats.BestStreak,
		"stats":         user.Stats,
	})
}

// GetAchievements returns the full catalog with the user's per-entry
// progress and unlock state.
func GetAchievements(c *gin.Context) {
	userID := c.MustGet("userID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := stores.GetUserByID(ctx, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	statuses := achievements.Progress(user.Stats)
	unlocked := 0
	for _, s := range statuses {
		if s.IsUnlocked {
			unlocked++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"achievements": statuses,
		"unlocked":     unlocked,
		"total":        len(statuses),
	})
}
