package achievements

import "vidquest/models"

// Catalog returns the full static achievement catalog. Definitions are
// data only: a stat field compared against a threshold. Unlock state is
// always recomputed from a UserStats snapshot, never read back from
// storage as ground truth.
func Catalog() []models.Achievement {
	return []models.Achievement{
		// ── Learning volume ─────────────────────────────────────────
		{
			ID: "first_steps", Title: "First Steps", Description: "Watch your first video",
			Icon: "🎬", Category: "learning", Stat: models.StatVideosWatched, Requirement: 1,
			XPReward: 50, Rarity: "common",
		},
		{
			ID: "video_explorer", Title: "Video Explorer", Description: "Watch 10 videos",
			Icon: "🧭", Category: "learning", Stat: models.StatVideosWatched, Requirement: 10,
			XPReward: 100, Rarity: "common",
		},
		{
			ID: "video_veteran", Title: "Video Veteran", Description: "Watch 50 videos",
			Icon: "🎓", Category: "learning", Stat: models.StatVideosWatched, Requirement: 50,
			XPReward: 300, Rarity: "rare",
		},
		{
			ID: "century_watcher", Title: "Century Watcher", Description: "Watch 100 videos",
			Icon: "💯", Category: "learning", Stat: models.StatVideosWatched, Requirement: 100,
			XPReward: 750, Rarity: "epic",
		},
		{
			ID: "quiz_rookie", Title: "Quiz Rookie", Description: "Complete 5 quizzes",
			Icon: "📝", Category: "learning", Stat: models.StatQuizzesCompleted, Requirement: 5,
			XPReward: 100, Rarity: "common",
		},
		{
			ID: "quiz_master", Title: "Quiz Master", Description: "Complete 25 quizzes",
			Icon: "🧠", Category: "learning", Stat: models.StatQuizzesCompleted, Requirement: 25,
			XPReward: 400, Rarity: "rare",
		},
		{
			ID: "challenge_seeker", Title: "Challenge Seeker", Description: "Complete 10 challenges",
			Icon: "⚔️", Category: "learning", Stat: models.StatChallengesCompleted, Requirement: 10,
			XPReward: 500, Rarity: "rare",
		},
		{
			ID: "course_conqueror", Title: "Course Conqueror", Description: "Finish your first course",
			Icon: "🏆", Category: "learning", Stat: models.StatCoursesCompleted, Requirement: 1,
			XPReward: 250, Rarity: "common",
		},
		{
			ID: "curriculum_crusher", Title: "Curriculum Crusher", Description: "Finish 5 courses",
			Icon: "👑", Category: "learning", Stat: models.StatCoursesCompleted, Requirement: 5,
			XPReward: 1000, Rarity: "epic",
		},

		// ── XP milestones ───────────────────────────────────────────
		{
			ID: "xp_500", Title: "Getting Going", Description: "Earn 500 total XP",
			Icon: "⭐", Category: "xp", Stat: models.StatTotalXP, Requirement: 500,
			XPReward: 50, Rarity: "common",
		},
		{
			ID: "xp_2500", Title: "Rising Star", Description: "Earn 2,500 total XP",
			Icon: "🌟", Category: "xp", Stat: models.StatTotalXP, Requirement: 2500,
			XPReward: 150, Rarity: "rare",
		},
		{
			ID: "xp_10000", Title: "Powerhouse", Description: "Earn 10,000 total XP",
			Icon: "⚡", Category: "xp", Stat: models.StatTotalXP, Requirement: 10000,
			XPReward: 500, Rarity: "epic",
		},
		{
			ID: "xp_50000", Title: "Living Legend", Description: "Earn 50,000 total XP",
			Icon: "🔱", Category: "xp", Stat: models.StatTotalXP, Requirement: 50000,
			XPReward: 2000, Rarity: "legendary",
		},

		// ── Streaks ─────────────────────────────────────────────────
		{
			ID: "streak_starter", Title: "Streak Starter", Description: "Learn 3 days in a row",
			Icon: "🔥", Category: "streak", Stat: models.StatCurrentStreak, Requirement: 3,
			XPReward: 75, Rarity: "common",
		},
		{
			ID: "week_warrior", Title: "Week Warrior", Description: "Learn 7 days in a row",
			Icon: "🗓️", Category: "streak", Stat: models.StatCurrentStreak, Requirement: 7,
			XPReward: 150, Rarity: "rare",
		},
		{
			ID: "month_master", Title: "Month Master", Description: "Learn 30 days in a row",
			Icon: "📅", Category: "streak", Stat: models.StatCurrentStreak, Requirement: 30,
			XPReward: 1000, Rarity: "epic",
		},
		{
			ID: "century_champion", Title: "Century Champion", Description: "Learn 100 days in a row",
			Icon: "🏛️", Category: "streak", Stat: models.StatBestStreak, Requirement: 100,
			XPReward: 5000, Rarity: "legendary",
		},

		// ── Social ──────────────────────────────────────────────────
		{
			ID: "first_like", Title: "Show Some Love", Description: "Like your first video",
			Icon: "❤️", Category: "social", Stat: models.StatVideosLiked, Requirement: 1,
			XPReward: 25, Rarity: "common",
		},
		{
			ID: "supportive_fan", Title: "Supportive Fan", Description: "Like 25 videos",
			Icon: "💖", Category: "social", Stat: models.StatVideosLiked, Requirement: 25,
			XPReward: 150, Rarity: "rare",
		},

		// ── Time spent ──────────────────────────────────────────────
		{
			ID: "hour_hero", Title: "Hour Hero", Description: "Spend an hour learning",
			Icon: "⏱️", Category: "time", Stat: models.StatTimeSpent, Requirement: 3600,
			XPReward: 100, Rarity: "common",
		},
		{
			ID: "marathon_learner", Title: "Marathon Learner", Description: "Spend 10 hours learning",
			Icon: "🏃", Category: "time", Stat: models.StatTimeSpent, Requirement: 36000,
			XPReward: 500, Rarity: "epic",
		},

		// ── Special sessions ────────────────────────────────────────
		{
			ID: "early_bird", Title: "Early Bird", Description: "Study before 8am five times",
			Icon: "🌅", Category: "special", Stat: models.StatEarlyBirdSessions, Requirement: 5,
			XPReward: 200, Rarity: "rare",
		},
		{
			ID: "night_owl", Title: "Night Owl", Description: "Study after 10pm ten times",
			Icon: "🦉", Category: "special", Stat: models.StatNightOwlSessions, Requirement: 10,
			XPReward: 200, Rarity: "rare",
		},
		{
			ID: "weekend_warrior", Title: "Weekend Warrior", Description: "Study on ten weekend days",
			Icon: "🛋️", Category: "special", Stat: models.StatWeekendSessions, Requirement: 10,
			XPReward: 250, Rarity: "rare",
		},
	}
}
