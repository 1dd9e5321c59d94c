package controllers

import (
	"context"
	"net/http"
	"time"

	"vidquest/services"

	"github.com/gin-gonic/gin"
)

// GetLearningMaterial returns AI-generated study material for a video,
// generating it on first request.
func GetLearningMaterial(c *gin.Context) {
	videoID := c.Param("id")
	kind := c.Param("kind")
	switch kind {
	case services.MaterialNotes, services.MaterialQuiz, services.MaterialFlashcards:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown material kind"})
		return
	}

	title := c.Query("title")
	if title == "" {
		title = videoID
	}

	// Generation can take a while on a cold cache.
	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	material, err := materials.GetOrGenerate(ctx, videoID, kind, title)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Failed to generate material"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"videoId":     material.VideoID,
		"kind":        material.Kind,
		"content":     material.Content,
		"generatedAt": material.GeneratedAt,
	})
}
