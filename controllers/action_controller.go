package controllers

import (
	"context"
	"net/http"
	"time"

	"vidquest/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReportActionRequest is the client's report of one completed action.
type ReportActionRequest struct {
	Action      string                 `json:"action" binding:"required"`
	VideoID     string                 `json:"videoId,omitempty"`
	QuizID      string                 `json:"quizId,omitempty"`
	ChallengeID string                 `json:"challengeId,omitempty"`
	ModuleID    string                 `json:"moduleId,omitempty"`
	CourseID    string                 `json:"courseId,omitempty"`
	Metadata    *models.ActionMetadata `json:"metadata,omitempty"`
}

var validActionKinds = map[models.ActionKind]bool{
	models.ActionVideoLike:         true,
	models.ActionVideoWatch:        true,
	models.ActionQuizComplete:      true,
	models.ActionChallengeComplete: true,
	models.ActionNotesRead:         true,
	models.ActionCourseComplete:    true,
	models.ActionWatchBonus:        true,
}

// ReportAction validates and scores one user action, returning the
// award, level state, and any freshly unlocked achievements.
func ReportAction(c *gin.Context) {
	var req ReportActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	kind := models.ActionKind(req.Action)
	if !validActionKinds[kind] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown action type"})
		return
	}
	if kind == models.ActionWatchBonus && (req.Metadata == nil || req.Metadata.WatchBonus == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Watch bonus requires watch time metadata"})
		return
	}

	userID := c.MustGet("userID").(primitive.ObjectID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	outcome, err := gamification.ProcessAction(ctx, models.UserAction{
		UserID:      userID,
		Action:      kind,
		VideoID:     req.VideoID,
		QuizID:      req.QuizID,
		ChallengeID: req.ChallengeID,
		ModuleID:    req.ModuleID,
		CourseID:    req.CourseID,
		Metadata:    req.Metadata,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process action"})
		return
	}
	if !outcome.Result.Valid {
		c.JSON(http.StatusTooManyRequests, outcome)
		return
	}

	c.JSON(http.StatusOK, outcome)
}
