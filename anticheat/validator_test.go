package anticheat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"vidquest/models"
)

var testNow = time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)

type fakeStores struct {
	liked        bool
	likedErr     error
	dailyCount   int
	dailyErr     error
	lastRewarded int
	rewardErr    error
}

func (f *fakeStores) HasLiked(ctx context.Context, userID primitive.ObjectID, videoID string) (bool, error) {
	return f.liked, f.likedErr
}

func (f *fakeStores) DailyCount(ctx context.Context, userID primitive.ObjectID, kind models.ActionKind, date string) (int, error) {
	return f.dailyCount, f.dailyErr
}

func (f *fakeStores) LastRewardedMinutes(ctx context.Context, userID primitive.ObjectID, videoID string) (int, error) {
	return f.lastRewarded, f.rewardErr
}

func newTestValidator(f *fakeStores) *Validator {
	return New(f, f, f, func() time.Time { return testNow })
}

func action(userID primitive.ObjectID, kind models.ActionKind, ago time.Duration) models.UserAction {
	return models.UserAction{
		UserID:    userID,
		Action:    kind,
		VideoID:   "video-1",
		Timestamp: testNow.Add(-ago),
	}
}

func TestVideoWatchIsNeverThrottled(t *testing.T) {
	v := newTestValidator(&fakeStores{dailyCount: 100000})
	userID := primitive.NewObjectID()

	// Even a huge burst of prior watches must not block a new one.
	var history []models.UserAction
	for i := 0; i < 500; i++ {
		history = append(history, action(userID, models.ActionVideoWatch, time.Duration(i)*time.Millisecond))
	}

	res := v.Validate(context.Background(), action(userID, models.ActionVideoWatch, 0), history)
	if !res.Valid {
		t.Errorf("video_watch should always validate, got rejection: %s", res.Reason)
	}
}

func TestDuplicateLikeRejected(t *testing.T) {
	v := newTestValidator(&fakeStores{liked: true})
	userID := primitive.NewObjectID()

	res := v.Validate(context.Background(), action(userID, models.ActionVideoLike, 0), nil)
	if res.Valid {
		t.Fatal("a duplicate like must be rejected")
	}
	if res.Reason != "You've already liked this video!" {
		t.Errorf("unexpected rejection reason: %q", res.Reason)
	}
}

func TestDuplicateLikeFailsOpen(t *testing.T) {
	v := newTestValidator(&fakeStores{likedErr: errors.New("mongo down")})
	userID := primitive.NewObjectID()

	res := v.Validate(context.Background(), action(userID, models.ActionVideoLike, 0), nil)
	if !res.Valid {
		t.Errorf("a failed duplicate read must not block the like: %s", res.Reason)
	}
}

func TestQuizCooldownRemaining(t *testing.T) {
	v := newTestValidator(&fakeStores{})
	userID := primitive.NewObjectID()

	// Previous quiz one second ago; the 2-minute cooldown leaves 119s.
	history := []models.UserAction{action(userID, models.ActionQuizComplete, time.Second)}
	next := action(userID, models.ActionQuizComplete, 0)

	res := v.Validate(context.Background(), next, history)
	if res.Valid {
		t.Fatal("a quiz one second after the previous one must hit the cooldown")
	}
	if res.CooldownRemaining != 119000 {
		t.Errorf("expected 119000ms remaining, got %d", res.CooldownRemaining)
	}
	if !strings.Contains(res.Reason, "120 seconds") {
		t.Errorf("reason should round the wait up to whole seconds: %q", res.Reason)
	}
}

func TestCooldownExpires(t *testing.T) {
	v := newTestValidator(&fakeStores{})
	userID := primitive.NewObjectID()

	history := []models.UserAction{action(userID, models.ActionVideoLike, 3 * time.Second)}
	res := v.Validate(context.Background(), action(userID, models.ActionVideoLike, 0), history)
	if !res.Valid {
		t.Errorf("a like exactly at the 3s cooldown boundary should pass: %s", res.Reason)
	}
}

func TestCooldownIgnoresOtherUsersAndKinds(t *testing.T) {
	v := newTestValidator(&fakeStores{})
	userID := primitive.NewObjectID()
	other := primitive.NewObjectID()

	history := []models.UserAction{
		action(other, models.ActionQuizComplete, time.Second),
		action(userID, models.ActionChallengeComplete, time.Second),
	}
	quiz := action(userID, models.ActionQuizComplete, 0)
	quiz.Metadata = &models.ActionMetadata{
		Quiz: &models.QuizMetadata{Score: intPtr(80), TimeSpent: intPtr(120), QuestionsCount: 5},
	}

	res := v.Validate(context.Background(), quiz, history)
	if !res.Valid {
		t.Errorf("history of other users and kinds must not trip the cooldown: %s", res.Reason)
	}
}

func TestHourlyLimit(t *testing.T) {
	v := newTestValidator(&fakeStores{})
	userID := primitive.NewObjectID()

	// 30 likes spread over the last hour, all outside cooldown and burst
	// windows.
	var history []models.UserAction
	for i := 0; i < 30; i++ {
		history = append(history, action(userID, models.ActionVideoLike, time.Minute+time.Duration(i)*time.Minute))
	}

	res := v.Validate(context.Background(), action(userID, models.ActionVideoLike, 0), history)
	if res.Valid {
		t.Fatal("the 31st like in an hour must be rejected")
	}
	if !strings.Contains(res.Reason, "hourly limit") {
		t.Errorf("unexpected rejection reason: %q", res.Reason)
	}
}

func TestDailyLimit(t *testing.T) {
	v := newTestValidator(&fakeStores{dailyCount: 100})
	userID := primitive.NewObjectID()

	res := v.Validate(context.Background(), action(userID, models.ActionVideoLike, 0), nil)
	if res.Valid {
		t.Fatal("the 101st like of the day must be rejected")
	}
	if !strings.Contains(res.Reason, "today's limit") {
		t.Errorf("unexpected rejection reason: %q", res.Reason)
	}
}

func TestDailyLimitFailsOpen(t *testing.T) {
	v := newTestValidator(&fakeStores{dailyErr: errors.New("mongo down")})
	userID := primitive.NewObjectID()

	res := v.Validate(context.Background(), action(userID, models.ActionVideoLike, 0), nil)
	if !res.Valid {
		t.Errorf("a failed daily-count read must not block the action: %s", res.Reason)
	}
}

func TestLikeBurstRejected(t *testing.T) {
	v := newTestValidator(&fakeStores{})
	userID := primitive.NewObjectID()

	// Six likes inside the 10-second window, the newest 4 seconds old so
	// the cooldown passes and only the burst count trips.
	var history []models.UserAction
	for i := 0; i < 6; i++ {
		history = append(history, action(userID, models.ActionVideoLike, 4*time.Second+time.Duration(i)*time.Second))
	}

	res := v.Validate(context.Background(), action(userID, models.ActionVideoLike, 0), history)
	if res.Valid {
		t.Fatal("a burst of likes must be rejected")
	}
	if res.Reason != "You're going too fast! Slow down a little." {
		t.Errorf("unexpected rejection reason: %q", res.Reason)
	}
}

func TestWatchBonusBands(t *testing.T) {
	userID := primitive.NewObjectID()

	claim := func(minutes, lastRewarded int) models.ValidationResult {
		v := newTestValidator(&fakeStores{lastRewarded: lastRewarded})
		a := action(userID, models.ActionWatchBonus, 0)
		a.Metadata = &models.ActionMetadata{
			WatchBonus: &models.WatchBonusMetadata{WatchTimeMinutes: minutes},
		}
		return v.Validate(context.Background(), a, nil)
	}

	if res := claim(1, 0); res.Valid {
		t.Error("under 2 minutes should not qualify for a bonus")
	}
	if res := claim(2, 0); !res.Valid {
		t.Errorf("first claim at 2 minutes should pass: %s", res.Reason)
	}
	if res := claim(3, 2); res.Valid {
		t.Error("3 minutes after a reward at 2 is inside the same band")
	}
	if res := claim(4, 2); !res.Valid {
		t.Errorf("4 minutes after a reward at 2 opens a new band: %s", res.Reason)
	}
}

func TestQuizTooFast(t *testing.T) {
	v := newTestValidator(&fakeStores{})
	userID := primitive.NewObjectID()

	quiz := action(userID, models.ActionQuizComplete, 0)
	quiz.Metadata = &models.ActionMetadata{
		Quiz: &models.QuizMetadata{Score: intPtr(90), TimeSpent: intPtr(30), QuestionsCount: 5},
	}
	res := v.Validate(context.Background(), quiz, nil)
	if res.Valid {
		t.Fatal("a 5-question quiz in 30 seconds must be rejected")
	}
	if res.Reason != "That quiz was completed too quickly to count" {
		t.Errorf("unexpected rejection reason: %q", res.Reason)
	}

	quiz.Metadata.Quiz.TimeSpent = intPtr(50)
	res = v.Validate(context.Background(), quiz, nil)
	if !res.Valid {
		t.Errorf("50 seconds for 5 questions is the minimum and should pass: %s", res.Reason)
	}
}

func TestQuizMissingMetadata(t *testing.T) {
	v := newTestValidator(&fakeStores{})
	userID := primitive.NewObjectID()

	quiz := action(userID, models.ActionQuizComplete, 0)
	res := v.Validate(context.Background(), quiz, nil)
	if res.Valid {
		t.Fatal("a quiz without results must be rejected")
	}
	if res.Reason != "Quiz results are incomplete" {
		t.Errorf("unexpected rejection reason: %q", res.Reason)
	}
}

func intPtr(n int) *int { return &n }
