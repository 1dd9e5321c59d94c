package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"vidquest/models"
)

// ErrAlreadyLiked surfaces the unique-index rejection on the like
// relation. Concurrent duplicate likes that slip past the validator's
// read both race into the insert; exactly one wins.
var ErrAlreadyLiked = errors.New("video already liked")

// Stores exposes the persistence reads and writes the gamification path
// needs. The validator only sees the read methods, via its interfaces.
type Stores struct {
	database *mongo.Database
}

// NewStores wraps the connected database.
func NewStores(database *mongo.Database) *Stores {
	return &Stores{database: database}
}

// ─── Likes ──────────────────────────────────────────────────────────────

// HasLiked reports whether the (user, video) like relation exists. This
// is the authoritative duplicate check the validator consults.
func (s *Stores) HasLiked(ctx context.Context, userID primitive.ObjectID, videoID string) (bool, error) {
	err := s.database.Collection(LikesCollection).
		FindOne(ctx, bson.M{"userId": userID, "videoId": videoID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// InsertLike persists the like relation. The unique index turns a
// concurrent duplicate into ErrAlreadyLiked.
func (s *Stores) InsertLike(ctx context.Context, userID primitive.ObjectID, videoID string, at time.Time) error {
	_, err := s.database.Collection(LikesCollection).InsertOne(ctx, models.VideoLike{
		UserID:  userID,
		VideoID: videoID,
		LikedAt: at,
	})
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyLiked
	}
	return err
}

// ─── Action log ─────────────────────────────────────────────────────────

// InsertAction appends one immutable entry to the action log.
func (s *Stores) InsertAction(ctx context.Context, action models.UserAction) error {
	_, err := s.database.Collection(ActionsCollection).InsertOne(ctx, action)
	return err
}

// RecentActions returns this user's actions of one kind since the cutoff,
// newest first. This is the history window handed to the validator.
func (s *Stores) RecentActions(ctx context.Context, userID primitive.ObjectID, kind models.ActionKind, since time.Time) ([]models.UserAction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cursor, err := s.database.Collection(ActionsCollection).Find(ctx, bson.M{
		"userId":    userID,
		"action":    kind,
		"timestamp": bson.M{"$gte": since},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var actions []models.UserAction
	if err := cursor.All(ctx, &actions); err != nil {
		return nil, err
	}
	return actions, nil
}

// ─── Daily counters ─────────────────────────────────────────────────────

// DailyCount reads the per-day counter for one user and kind.
func (s *Stores) DailyCount(ctx context.Context, userID primitive.ObjectID, kind models.ActionKind, date string) (int, error) {
	var entry models.DailyActionCount
	err := s.database.Collection(DailyCountsCollection).
		FindOne(ctx, bson.M{"userId": userID, "action": kind, "date": date}).Decode(&entry)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return entry.Count, nil
}

// IncrementDailyCount bumps the per-day counter, creating it on first use.
func (s *Stores) IncrementDailyCount(ctx context.Context, userID primitive.ObjectID, kind models.ActionKind, date string) error {
	_, err := s.database.Collection(DailyCountsCollection).UpdateOne(ctx,
		bson.M{"userId": userID, "action": kind, "date": date},
		bson.M{"$inc": bson.M{"count": 1}},
		options.Update().SetUpsert(true),
	)
	return err
}

// ─── Watch rewards ──────────────────────────────────────────────────────

// LastRewardedMinutes returns the highest watch-time minute mark already
// rewarded for this user on this video, 0 if none.
func (s *Stores) LastRewardedMinutes(ctx context.Context, userID primitive.ObjectID, videoID string) (int, error) {
	var reward models.WatchReward
	err := s.database.Collection(WatchRewardsCollection).
		FindOne(ctx, bson.M{"userId": userID, "videoId": videoID}).Decode(&reward)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return reward.WatchTimeMinutes, nil
}

// RecordWatchReward advances the rewarded minute mark. $max keeps the
// mark monotone even if requests land out of order.
func (s *Stores) RecordWatchReward(ctx context.Context, userID primitive.ObjectID, videoID string, minutes int, at time.Time) error {
	_, err := s.database.Collection(WatchRewardsCollection).UpdateOne(ctx,
		bson.M{"userId": userID, "videoId": videoID},
		bson.M{
			"$max": bson.M{"watchTimeMinutes": minutes},
			"$set": bson.M{"rewardedAt": at},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// ─── Users ──────────────────────────────────────────────────────────────

// GetUserByID loads one user document.
func (s *Stores) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.database.Collection(UsersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail loads one user document by email.
func (s *Stores) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.database.Collection(UsersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// InsertUser creates a user document.
func (s *Stores) InsertUser(ctx context.Context, user models.User) (primitive.ObjectID, error) {
	res, err := s.database.Collection(UsersCollection).InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// AddXP atomically increments the user's cumulative XP and returns the
// updated document. FindOneAndUpdate with ReturnDocument After so the
// caller sees the post-award total.
func (s *Stores) AddXP(ctx context.Context, userID primitive.ObjectID, amount int) (*models.User, error) {
	res := s.database.Collection(UsersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$inc": bson.M{"stats.totalXp": amount},
			"$set": bson.M{"updatedAt": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	var user models.User
	if err := res.Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// IncStats applies counter deltas to the embedded stats document.
func (s *Stores) IncStats(ctx context.Context, userID primitive.ObjectID, deltas bson.M) error {
	inc := bson.M{}
	for field, delta := range deltas {
		inc["stats."+field] = delta
	}
	_, err := s.database.Collection(UsersCollection).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$inc": inc, "$set": bson.M{"updatedAt": time.Now()}},
	)
	return err
}

// UpdateStreak persists the streak counters and the qualifying-activity date.
func (s *Stores) UpdateStreak(ctx context.Context, userID primitive.ObjectID, current, best int, lastActivity time.Time) error {
	_, err := s.database.Collection(UsersCollection).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{
			"stats.currentStreak": current,
			"stats.bestStreak":    best,
			"lastActivityDate":    lastActivity,
			"updatedAt":           time.Now(),
		}},
	)
	return err
}

// CacheUnlocks records achievement ids as unlocked. A cache only: the
// condition function over stats stays the ground truth.
func (s *Stores) CacheUnlocks(ctx context.Context, userID primitive.ObjectID, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := s.database.Collection(UsersCollection).UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"unlockedAchievements": bson.M{"$each": ids}}},
	)
	return err
}

// TopUsersByXP returns users sorted by cumulative XP for the leaderboard.
func (s *Stores) TopUsersByXP(ctx context.Context, limit int) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "stats.totalXp", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.database.Collection(UsersCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ─── Learning materials ─────────────────────────────────────────────────

// GetMaterial returns the cached AI material for a video, if generated.
func (s *Stores) GetMaterial(ctx context.Context, videoID, kind string) (*models.LearningMaterial, error) {
	var material models.LearningMaterial
	err := s.database.Collection(MaterialsCollection).
		FindOne(ctx, bson.M{"videoId": videoID, "kind": kind}).Decode(&material)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &material, nil
}

// SaveMaterial upserts the generated material for a video.
func (s *Stores) SaveMaterial(ctx context.Context, material models.LearningMaterial) error {
	_, err := s.database.Collection(MaterialsCollection).UpdateOne(ctx,
		bson.M{"videoId": material.VideoID, "kind": material.Kind},
		bson.M{"$set": bson.M{
			"content":     material.Content,
			"generatedAt": material.GeneratedAt,
		}},
		options.Update().SetUpsert(true),
	)
	return err
}
