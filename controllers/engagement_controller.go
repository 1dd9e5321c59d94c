package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"vidquest/engagement"
	"vidquest/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type StartSessionRequest struct {
	VideoID string `json:"videoId" binding:"required"`
}

type HeartbeatRequest struct {
	SessionID string  `json:"sessionId" binding:"required"`
	Visible   bool    `json:"visible"`
	Playing   bool    `json:"playing"`
	Progress  float64 `json:"progress"`
}

type EndSessionRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// StartWatchSession opens a server-side tracker for one video view.
func StartWatchSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	userID := c.MustGet("userID").(primitive.ObjectID)
	sessionID := sessions.StartSession(userID, req.VideoID)

	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID})
}

// WatchSessionHeartbeat applies elapsed watch time and visibility state,
// returning the current engagement snapshot.
func WatchSessionHeartbeat(c *gin.Context) {
	var req HeartbeatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	userID := c.MustGet("userID").(primitive.ObjectID)
	if s, ok := sessions.Lookup(req.SessionID); !ok || s.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	metrics, err := sessions.Heartbeat(req.SessionID, req.Visible, req.Playing, req.Progress)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"metrics": metrics})
}

// EndWatchSession closes the tracker and, if the view qualifies, reports
// a watch action on the user's behalf with the server-observed metrics.
func EndWatchSession(c *gin.Context) {
	var req EndSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	userID := c.MustGet("userID").(primitive.ObjectID)
	if s, ok := sessions.Lookup(req.SessionID); !ok || s.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	session, metrics, err := sessions.EndSession(req.SessionID)
	if err != nil {
		if errors.Is(err, engagement.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end session"})
		return
	}

	response := gin.H{"metrics": metrics}

	// A view only counts as a watch once meaningful progress was made.
	if metrics.VideoProgress >= 50 {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		outcome, err := gamification.ProcessAction(ctx, models.UserAction{
			UserID:  session.UserID,
			Action:  models.ActionVideoWatch,
			VideoID: session.VideoID,
			Metadata: &models.ActionMetadata{
				Completion: &models.CompletionMetadata{
					CompletionRate: metrics.VideoProgress,
					StudyDuration:  int(metrics.ActualWatchTime),
				},
			},
		})
		if err == nil {
			response["outcome"] = outcome
		}
	}

	c.JSON(http.StatusOK, response)
}

// ClaimWatchBonus awards the milestone bonus for the minutes the server
// has tracked in a live session. The session stays open.
func ClaimWatchBonus(c *gin.Context) {
	var req EndSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	userID := c.MustGet("userID").(primitive.ObjectID)
	session, ok := sessions.Lookup(req.SessionID)
	if !ok || session.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	minutes := int(session.Tracker.Metrics().ActualWatchTime) / 60

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	outcome, err := gamification.ProcessAction(ctx, models.UserAction{
		UserID:  session.UserID,
		Action:  models.ActionWatchBonus,
		VideoID: session.VideoID,
		Metadata: &models.ActionMetadata{
			WatchBonus: &models.WatchBonusMetadata{WatchTimeMinutes: minutes},
		},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process watch bonus"})
		return
	}
	if !outcome.Result.Valid {
		c.JSON(http.StatusTooManyRequests, outcome)
		return
	}

	c.JSON(http.StatusOK, outcome)
}
