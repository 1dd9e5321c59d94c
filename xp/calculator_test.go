package xp

import (
	"testing"
	"time"

	"vidquest/models"
)

// A Tuesday at 10:00: no early-bird, night-owl, or weekend bonus.
var neutralTime = time.Date(2025, 3, 11, 10, 0, 0, 0, time.UTC)

func neutralClock() time.Time { return neutralTime }

func intPtr(n int) *int { return &n }

func TestCalculateBaseValues(t *testing.T) {
	calc := New(neutralClock)

	cases := []struct {
		kind models.ActionKind
		want int
	}{
		{models.ActionVideoWatch, 50},
		{models.ActionVideoLike, 15},
		{models.ActionQuizComplete, 100},
		{models.ActionChallengeComplete, 200},
		{models.ActionNotesRead, 15},
		{models.ActionCourseComplete, 500},
		{models.ActionWatchBonus, 25},
	}
	for _, tc := range cases {
		award := calc.Calculate(tc.kind, Metadata{})
		if award.TotalXP != tc.want {
			t.Errorf("%s: expected %d XP with no qualifiers, got %d", tc.kind, tc.want, award.TotalXP)
		}
		if len(award.Bonuses) != 0 {
			t.Errorf("%s: expected no bonuses, got %v", tc.kind, award.Bonuses)
		}
	}
}

func TestCalculateUnknownKindIsZero(t *testing.T) {
	calc := New(neutralClock)
	award := calc.Calculate(models.ActionKind("future_action"), Metadata{IsFirstTime: true, CurrentStreak: 30})
	if award.TotalXP != 0 || award.BaseXP != 0 || len(award.Bonuses) != 0 {
		t.Errorf("unknown kind should yield a zero award, got %+v", award)
	}
}

func TestPerfectQuizScore(t *testing.T) {
	calc := New(neutralClock)
	award := calc.Calculate(models.ActionQuizComplete, Metadata{Score: intPtr(100)})
	// 100 base + 100 perfect score
	if award.TotalXP != 200 {
		t.Errorf("expected 200 XP for a perfect quiz, got %d", award.TotalXP)
	}

	award = calc.Calculate(models.ActionQuizComplete, Metadata{Score: intPtr(99)})
	if award.TotalXP != 100 {
		t.Errorf("expected no perfect bonus at 99, got %d", award.TotalXP)
	}

	// A perfect "score" on a video watch means nothing.
	award = calc.Calculate(models.ActionVideoWatch, Metadata{Score: intPtr(100)})
	if award.TotalXP != 50 {
		t.Errorf("perfect-score bonus should only apply to scored kinds, got %d", award.TotalXP)
	}
}

func TestFirstTimeBonus(t *testing.T) {
	calc := New(neutralClock)
	award := calc.Calculate(models.ActionVideoWatch, Metadata{IsFirstTime: true})
	if award.TotalXP != 100 {
		t.Errorf("expected 50 base + 50 first-time = 100, got %d", award.TotalXP)
	}
	if len(award.Bonuses) != 1 || award.Bonuses[0].Type != "first_time" {
		t.Errorf("expected a single first_time bonus, got %v", award.Bonuses)
	}
}

func TestCompletionRateBonus(t *testing.T) {
	calc := New(neutralClock)

	award := calc.Calculate(models.ActionVideoWatch, Metadata{CompletionRate: 97})
	if award.TotalXP != 80 {
		t.Errorf("expected 50+30 at 97%% completion, got %d", award.TotalXP)
	}
	award = calc.Calculate(models.ActionVideoWatch, Metadata{CompletionRate: 85})
	if award.TotalXP != 65 {
		t.Errorf("expected 50+15 at 85%% completion, got %d", award.TotalXP)
	}
	award = calc.Calculate(models.ActionVideoWatch, Metadata{CompletionRate: 60})
	if award.TotalXP != 50 {
		t.Errorf("expected no completion bonus at 60%%, got %d", award.TotalXP)
	}
}

func TestTimeOfDayBonuses(t *testing.T) {
	early := time.Date(2025, 3, 11, 6, 30, 0, 0, time.UTC)
	calc := New(func() time.Time { return early })
	award := calc.Calculate(models.ActionVideoLike, Metadata{})
	if award.TotalXP != 35 {
		t.Errorf("expected 15+20 early-bird at 6:30, got %d", award.TotalXP)
	}

	// Night owl wraps midnight: 23:00 and 01:00 both qualify.
	for _, hour := range []int{23, 1} {
		late := time.Date(2025, 3, 11, hour, 0, 0, 0, time.UTC)
		calc = New(func() time.Time { return late })
		award = calc.Calculate(models.ActionVideoLike, Metadata{})
		if award.TotalXP != 30 {
			t.Errorf("hour %d: expected 15+15 night-owl, got %d", hour, award.TotalXP)
		}
	}

	three := time.Date(2025, 3, 11, 3, 0, 0, 0, time.UTC)
	calc = New(func() time.Time { return three })
	award = calc.Calculate(models.ActionVideoLike, Metadata{})
	if award.TotalXP != 15 {
		t.Errorf("3am should earn no time-of-day bonus, got %d", award.TotalXP)
	}

	calc = New(neutralClock)
	award = calc.Calculate(models.ActionVideoLike, Metadata{IsWeekend: true})
	if award.TotalXP != 40 {
		t.Errorf("expected 15+25 weekend bonus, got %d", award.TotalXP)
	}
}

func TestStudyDurationBonus(t *testing.T) {
	calc := New(neutralClock)
	award := calc.Calculate(models.ActionCourseComplete, Metadata{StudyDuration: 7200})
	if award.TotalXP != 600 {
		t.Errorf("expected 500+100 for a 2-hour session, got %d", award.TotalXP)
	}
	award = calc.Calculate(models.ActionCourseComplete, Metadata{StudyDuration: 7199})
	if award.TotalXP != 500 {
		t.Errorf("expected no duration bonus just under 2 hours, got %d", award.TotalXP)
	}
}

func TestStreakMultiplier(t *testing.T) {
	calc := New(neutralClock)

	// 7-day streak on a plain video watch: 50 + floor(50*0.75) = 87.
	award := calc.Calculate(models.ActionVideoWatch, Metadata{CurrentStreak: 7})
	if award.TotalXP != 87 {
		t.Errorf("expected 87 XP for a watch on a 7-day streak, got %d", award.TotalXP)
	}

	// The multiplier covers base plus earlier bonuses.
	award = calc.Calculate(models.ActionQuizComplete, Metadata{Score: intPtr(100), CurrentStreak: 14})
	// (100+100) + floor(200*1.0) = 400
	if award.TotalXP != 400 {
		t.Errorf("expected 400 XP for a perfect quiz on a 14-day streak, got %d", award.TotalXP)
	}

	// Below 3 days there is no tier.
	award = calc.Calculate(models.ActionVideoWatch, Metadata{CurrentStreak: 2})
	if award.TotalXP != 50 {
		t.Errorf("expected no multiplier at a 2-day streak, got %d", award.TotalXP)
	}
}

func TestStreakBonusFor(t *testing.T) {
	cases := []struct {
		streak     int
		wantMult   float64
		wantBadge  string
		expectTier bool
	}{
		{0, 0, "", false},
		{2, 0, "", false},
		{3, 1.5, "Streak Starter", true},
		{6, 1.5, "Streak Starter", true},
		{7, 1.75, "Week Warrior", true},
		{14, 2.0, "Fortnight Fighter", true},
		{30, 2.5, "Month Master", true},
		{100, 3.0, "Century Champion", true},
		{365, 3.0, "Century Champion", true},
	}
	for _, tc := range cases {
		tier := StreakBonusFor(tc.streak)
		if !tc.expectTier {
			if tier != nil {
				t.Errorf("streak %d: expected no tier, got %+v", tc.streak, tier)
			}
			continue
		}
		if tier == nil {
			t.Errorf("streak %d: expected a tier", tc.streak)
			continue
		}
		if tier.Multiplier != tc.wantMult || tier.Badge != tc.wantBadge {
			t.Errorf("streak %d: expected %v %q, got %v %q", tc.streak, tc.wantMult, tc.wantBadge, tier.Multiplier, tier.Badge)
		}
	}
}

func TestWatchBonusMilestones(t *testing.T) {
	calc := New(neutralClock)

	cases := []struct {
		minutes int
		want    int
	}{
		{0, 0},
		{1, 0},
		{2, 10},
		{3, 10},
		{4, 15},
		{6, 20},
		{8, 25},
		{10, 30},
		{15, 40},
		{20, 50},
		{30, 75},
		{45, 100},
		{60, 150},
		{90, 150},
	}
	for _, tc := range cases {
		award := calc.WatchBonus(tc.minutes, Metadata{})
		if award.TotalXP != tc.want {
			t.Errorf("%d minutes: expected %d XP, got %d", tc.minutes, tc.want, award.TotalXP)
		}
		if tc.want > 0 && award.Encouragement == "" {
			t.Errorf("%d minutes: expected an encouragement message", tc.minutes)
		}
	}
}

func TestWatchBonusWithStreak(t *testing.T) {
	calc := New(neutralClock)
	// 30 minutes on a 7-day streak: 75 + floor(75*0.75) = 131.
	award := calc.WatchBonus(30, Metadata{CurrentStreak: 7})
	if award.TotalXP != 131 {
		t.Errorf("expected 131 XP, got %d", award.TotalXP)
	}
}

func TestRequirementFor(t *testing.T) {
	cases := []struct {
		level int
		want  int
	}{
		{1, 100},
		{2, 140},
		{3, 195}, // floor(100*1.96) with float64 rounding
		{4, 274},
	}
	for _, tc := range cases {
		if got := RequirementFor(tc.level); got != tc.want {
			t.Errorf("level %d: expected requirement %d, got %d", tc.level, tc.want, got)
		}
	}
}

func TestCalculateLevelBoundaries(t *testing.T) {
	info := CalculateLevel(0)
	if info.Level != 1 || info.CurrentLevelXP != 0 || info.NextLevelXP != 100 {
		t.Errorf("0 XP: expected level 1 at 0/100, got %+v", info)
	}

	info = CalculateLevel(99)
	if info.Level != 1 || info.CurrentLevelXP != 99 {
		t.Errorf("99 XP: expected level 1 at 99/100, got %+v", info)
	}

	// Exactly clearing level 1 lands at the bottom of level 2.
	info = CalculateLevel(100)
	if info.Level != 2 || info.CurrentLevelXP != 0 || info.NextLevelXP != 140 {
		t.Errorf("100 XP: expected level 2 at 0/140, got %+v", info)
	}
	if info.Progress != 0 {
		t.Errorf("progress should read 0 at a boundary, got %f", info.Progress)
	}

	info = CalculateLevel(-50)
	if info.Level != 1 || info.CurrentLevelXP != 0 {
		t.Errorf("negative XP should clamp to level 1, got %+v", info)
	}
}

func TestCalculateLevelMonotonic(t *testing.T) {
	prevLevel := 0
	for total := 0; total <= 20000; total += 7 {
		info := CalculateLevel(total)
		if info.Level < prevLevel {
			t.Fatalf("level decreased from %d to %d at %d XP", prevLevel, info.Level, total)
		}
		if info.CurrentLevelXP < 0 || info.CurrentLevelXP >= info.NextLevelXP {
			t.Fatalf("current level XP out of range at %d XP: %+v", total, info)
		}
		if info.Progress < 0 || info.Progress >= 100 {
			t.Fatalf("progress out of [0,100) at %d XP: %f", total, info.Progress)
		}
		prevLevel = info.Level
	}
}

func TestCalculateLevelRoundTrip(t *testing.T) {
	// Summing the requirements of levels 1..n-1 must land exactly at the
	// bottom of level n.
	total := 0
	for level := 1; level <= 25; level++ {
		info := CalculateLevel(total)
		if info.Level != level || info.CurrentLevelXP != 0 {
			t.Fatalf("sum of requirements through level %d: expected bottom of level %d, got %+v", level-1, level, info)
		}
		total += RequirementFor(level)
	}
}

func TestShouldShowLevelUp(t *testing.T) {
	if !ShouldShowLevelUp(99, 100) {
		t.Error("crossing the level 1 boundary should trigger a level up")
	}
	if ShouldShowLevelUp(50, 99) {
		t.Error("staying within level 1 should not trigger a level up")
	}
	if ShouldShowLevelUp(100, 100) {
		t.Error("no XP change should not trigger a level up")
	}
}
