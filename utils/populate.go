package utils

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidquest/db"
	"vidquest/models"
)

// PopulateTestUsers inserts sample learners for local development. Skips
// anyone already present so restarts stay idempotent.
func PopulateTestUsers() {
	collection := db.MongoDatabase.Collection(db.UsersCollection)

	users := []models.User{
		{
			ID:          primitive.NewObjectID(),
			Email:       "alice@example.com",
			DisplayName: "Alice Johnson",
			Bio:         "Learning a little every day",
			Stats: models.UserStats{
				TotalXP:       2150,
				VideosWatched: 24,
				VideosLiked:   11,
				CurrentStreak: 6,
				BestStreak:    12,
				TimeSpent:     14400,
			},
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		{
			ID:          primitive.NewObjectID(),
			Email:       "bob@example.com",
			DisplayName: "Bob Smith",
			Bio:         "Weekend study sessions",
			Stats: models.UserStats{
				TotalXP:         870,
				VideosWatched:   9,
				VideosLiked:     3,
				CurrentStreak:   2,
				BestStreak:      4,
				TimeSpent:       5200,
				WeekendSessions: 6,
			},
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		{
			ID:          primitive.NewObjectID(),
			Email:       "carol@example.com",
			DisplayName: "Carol Davis",
			Bio:         "Night owl learner",
			Stats: models.UserStats{
				TotalXP:          5430,
				VideosWatched:    51,
				VideosLiked:      27,
				CurrentStreak:    15,
				BestStreak:       15,
				TimeSpent:        39800,
				NightOwlSessions: 12,
			},
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}

	for _, user := range users {
		err := collection.FindOne(context.Background(), bson.M{"email": user.Email}).Err()
		if err == nil {
			continue
		}
		if _, err := collection.InsertOne(context.Background(), user); err != nil {
			log.Printf("failed to seed user %s: %v", user.Email, err)
		}
	}
}
