package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStats is a read-only snapshot of the counters the pure calculators
// consume. The authoritative copy lives embedded in the user document;
// calculations never mutate it.
type UserStats struct {
	TotalXP             int `bson:"totalXp" json:"totalXp"`
	VideosWatched       int `bson:"videosWatched" json:"videosWatched"`
	VideosLiked         int `bson:"videosLiked" json:"videosLiked"`
	QuizzesCompleted    int `bson:"quizzesCompleted" json:"quizzesCompleted"`
	ChallengesCompleted int `bson:"challengesCompleted" json:"challengesCompleted"`
	CoursesCompleted    int `bson:"coursesCompleted" json:"coursesCompleted"`
	CurrentStreak       int `bson:"currentStreak" json:"currentStreak"`
	BestStreak          int `bson:"bestStreak" json:"bestStreak"`
	TimeSpent           int `bson:"timeSpent" json:"timeSpent"` // seconds
	EarlyBirdSessions   int `bson:"earlyBirdSessions" json:"earlyBirdSessions"`
	NightOwlSessions    int `bson:"nightOwlSessions" json:"nightOwlSessions"`
	WeekendSessions     int `bson:"weekendSessions" json:"weekendSessions"`
}

// User defines a learner entity.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email                string             `bson:"email" json:"email"`
	DisplayName          string             `bson:"displayName" json:"displayName"`
	PasswordHash         string             `bson:"passwordHash" json:"-"`
	Bio                  string             `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL            string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Stats                UserStats          `bson:"stats" json:"stats"`
	UnlockedAchievements []string           `bson:"unlockedAchievements,omitempty" json:"unlockedAchievements,omitempty"`
	LastActivityDate     time.Time          `bson:"lastActivityDate,omitempty" json:"lastActivityDate,omitempty"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}
