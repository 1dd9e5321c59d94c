package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActionKind identifies a reward-bearing user action.
type ActionKind string

const (
	ActionVideoLike         ActionKind = "video_like"
	ActionVideoWatch        ActionKind = "video_watch"
	ActionQuizComplete      ActionKind = "quiz_complete"
	ActionChallengeComplete ActionKind = "challenge_complete"
	ActionNotesRead         ActionKind = "notes_read"
	ActionCourseComplete    ActionKind = "course_complete"
	ActionWatchBonus        ActionKind = "watch_bonus"
)

// QuizMetadata carries the fields quiz validation and XP logic read.
type QuizMetadata struct {
	Score          *int `bson:"score,omitempty" json:"score,omitempty"`
	TimeSpent      *int `bson:"timeSpent,omitempty" json:"timeSpent,omitempty"` // seconds
	QuestionsCount int  `bson:"questionsCount,omitempty" json:"questionsCount,omitempty"`
}

// WatchBonusMetadata carries the fields a watch-bonus claim reads.
type WatchBonusMetadata struct {
	WatchTimeMinutes int `bson:"watchTimeMinutes" json:"watchTimeMinutes"`
}

// CompletionMetadata carries optional completion details for video/course actions.
type CompletionMetadata struct {
	CompletionRate float64 `bson:"completionRate,omitempty" json:"completionRate,omitempty"` // percent 0-100
	StudyDuration  int     `bson:"studyDuration,omitempty" json:"studyDuration,omitempty"`   // seconds
}

// ActionMetadata is keyed by action kind: each variant carries only the
// fields that kind's checks actually read. Absent variants mean the kind
// has nothing extra to report.
type ActionMetadata struct {
	Quiz       *QuizMetadata       `bson:"quiz,omitempty" json:"quiz,omitempty"`
	WatchBonus *WatchBonusMetadata `bson:"watchBonus,omitempty" json:"watchBonus,omitempty"`
	Completion *CompletionMetadata `bson:"completion,omitempty" json:"completion,omitempty"`
}

// UserAction is one immutable entry in the append-only action log.
type UserAction struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Action      ActionKind         `bson:"action" json:"action"`
	VideoID     string             `bson:"videoId,omitempty" json:"videoId,omitempty"`
	QuizID      string             `bson:"quizId,omitempty" json:"quizId,omitempty"`
	ChallengeID string             `bson:"challengeId,omitempty" json:"challengeId,omitempty"`
	ModuleID    string             `bson:"moduleId,omitempty" json:"moduleId,omitempty"`
	CourseID    string             `bson:"courseId,omitempty" json:"courseId,omitempty"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
	Metadata    *ActionMetadata    `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

// ValidationResult is the anti-cheat verdict for a reported action.
// Rejections are expected policy outcomes, not errors; Reason is safe to
// show to the user directly.
type ValidationResult struct {
	Valid             bool   `json:"valid"`
	Reason            string `json:"reason,omitempty"`
	CooldownRemaining int64  `json:"cooldownRemaining,omitempty"` // milliseconds
}
