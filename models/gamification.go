package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bonus is one applied XP bonus, in application order.
type Bonus struct {
	Type        string `json:"type"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
}

// XPAward is the result of an XP calculation. The caller persists TotalXP
// onto the user's cumulative total; the award itself is never stored.
type XPAward struct {
	BaseXP        int     `json:"baseXP"`
	BonusXP       int     `json:"bonusXP"`
	TotalXP       int     `json:"totalXP"`
	Bonuses       []Bonus `json:"bonuses"`
	Encouragement string  `json:"encouragement,omitempty"`
}

// EngagementMetrics is the per-session snapshot produced by the engagement
// tracker. Ephemeral: it lives only as long as the viewing session.
type EngagementMetrics struct {
	ActualWatchTime float64 `json:"actualWatchTime"` // seconds
	VideoProgress   float64 `json:"videoProgress"`   // percent 0-100
	EngagementScore float64 `json:"engagementScore"` // 0-100
	TabSwitches     int     `json:"tabSwitches"`
}

// VideoLike is the persisted like relation. A unique index on
// (userId, videoId) is the final backstop against concurrent duplicates.
type VideoLike struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID  primitive.ObjectID `bson:"userId" json:"userId"`
	VideoID string             `bson:"videoId" json:"videoId"`
	LikedAt time.Time          `bson:"likedAt" json:"likedAt"`
}

// WatchReward records the highest watch-time minute mark already rewarded
// for a user on one video. Bonuses are granted once per 2-minute band.
type WatchReward struct {
	UserID           primitive.ObjectID `bson:"userId" json:"userId"`
	VideoID          string             `bson:"videoId" json:"videoId"`
	WatchTimeMinutes int                `bson:"watchTimeMinutes" json:"watchTimeMinutes"`
	RewardedAt       time.Time          `bson:"rewardedAt" json:"rewardedAt"`
}

// DailyActionCount aggregates one user's actions of one kind on one
// server-local calendar day.
type DailyActionCount struct {
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	Action ActionKind         `bson:"action" json:"action"`
	Date   string             `bson:"date" json:"date"` // "2006-01-02"
	Count  int                `bson:"count" json:"count"`
}

// GamificationEvent is broadcast to connected clients over WebSocket.
type GamificationEvent struct {
	Type          string    `json:"type"` // "xp_awarded", "level_up", "achievement_unlocked"
	UserID        string    `json:"userId"`
	Action        string    `json:"action,omitempty"`
	Points        int       `json:"points,omitempty"`
	NewTotalXP    int       `json:"newTotalXp,omitempty"`
	Level         int       `json:"level,omitempty"`
	AchievementID string    `json:"achievementId,omitempty"`
	Badge         string    `json:"badge,omitempty"`
	Message       string    `json:"message,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// LearningMaterial is an AI-generated study artifact for one video.
type LearningMaterial struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	VideoID     string             `bson:"videoId" json:"videoId"`
	Kind        string             `bson:"kind" json:"kind"` // "notes", "quiz", "flashcards"
	Content     string             `bson:"content" json:"content"`
	GeneratedAt time.Time          `bson:"generatedAt" json:"generatedAt"`
}
