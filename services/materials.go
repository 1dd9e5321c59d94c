package services

import (
	"context"
	"fmt"
	"time"

	"vidquest/db"
	"vidquest/models"
)

// Valid material kinds.
const (
	MaterialNotes      = "notes"
	MaterialQuiz       = "quiz"
	MaterialFlashcards = "flashcards"
)

// MaterialsService generates per-video study materials with Gemini and
// caches them in Mongo so each video is only generated once per kind.
type MaterialsService struct {
	stores *db.Stores
}

func NewMaterialsService(stores *db.Stores) *MaterialsService {
	return &MaterialsService{stores: stores}
}

// GetOrGenerate returns the cached material for a video, generating and
// caching it on first request.
func (m *MaterialsService) GetOrGenerate(ctx context.Context, videoID, kind, videoTitle string) (*models.LearningMaterial, error) {
	cached, err := m.stores.GetMaterial(ctx, videoID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to read cached material: %w", err)
	}
	if cached != nil {
		return cached, nil
	}

	prompt, err := materialPrompt(kind, videoTitle)
	if err != nil {
		return nil, err
	}

	content, err := generateModelText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", kind, err)
	}

	material := models.LearningMaterial{
		VideoID:     videoID,
		Kind:        kind,
		Content:     content,
		GeneratedAt: time.Now(),
	}
	if err := m.stores.SaveMaterial(ctx, material); err != nil {
		return nil, fmt.Errorf("failed to cache material: %w", err)
	}
	return &material, nil
}

func materialPrompt(kind, videoTitle string) (string, error) {
	switch kind {
	case MaterialNotes:
		return fmt.Sprintf(
			`Write concise study notes for a learner who just watched a video titled "%s". The notes must:
- Cover the key concepts a beginner should retain.
- Use short bullet points grouped under 3-5 headings.
- End with a two-sentence summary.
Return plain markdown only.`, videoTitle), nil

	case MaterialQuiz:
		return fmt.Sprintf(
			`Create a 5-question multiple-choice quiz about the topic of a video titled "%s". Return only JSON with this shape:
{"questions":[{"question":"...","options":["...","...","...","..."],"answerIndex":0,"explanation":"..."}]}
Questions should test understanding, not trivia. Exactly one correct option per question.`, videoTitle), nil

	case MaterialFlashcards:
		return fmt.Sprintf(
			`Create 8 flashcards for the topic of a video titled "%s". Return only JSON with this shape:
{"cards":[{"front":"...","back":"..."}]}
Fronts are questions or terms; backs are short, precise answers.`, videoTitle), nil
	}
	return "", fmt.Errorf("unknown material kind: %s", kind)
}
