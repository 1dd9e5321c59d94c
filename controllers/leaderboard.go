package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"vidquest/xp"

	"github.com/gin-gonic/gin"
)

const defaultLeaderboardSize = 20
const maxLeaderboardSize = 100

// GetLeaderboard returns the top users by cumulative XP.
func GetLeaderboard(c *gin.Context) {
	limit := defaultLeaderboardSize
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLeaderboardSize {
		limit = maxLeaderboardSize
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, err := stores.TopUsersByXP(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leaderboard"})
		return
	}

	entries := make([]gin.H, 0, len(users))
	for i, u := range users {
		level := xp.CalculateLevel(u.Stats.TotalXP)
		entries = append(entries, gin.H{
			"rank":          i + 1,
			"displayName":   u.DisplayName,
			"avatarUrl":     u.AvatarURL,
			"totalXp":       u.Stats.TotalXP,
			"level":         level.Level,
			"currentStreak": u.Stats.CurrentStreak,
		})
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}
