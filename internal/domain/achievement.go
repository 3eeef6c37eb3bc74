package domain

import "time"

type AchievementCategory string

const (
	AchievementStreak  AchievementCategory = "STREAK"
	AchievementDemos   AchievementCategory = "DEMOS"
	AchievementSocial  AchievementCategory = "SOCIAL"
	AchievementSpecial AchievementCategory = "SPECIAL"
)

type AchievementTier string

const (
	TierBronze   AchievementTier = "BRONZE"
	TierSilver   AchievementTier = "SILVER"
	TierGold     AchievementTier = "GOLD"
	TierPlatinum AchievementTier = "PLATINUM"
)

// Achievement is a catalog entry. Requirement is the counter threshold
// that unlocks it (streak days for STREAK, demo count for DEMOS).
type Achievement struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Category    AchievementCategory `json:"category"`
	Tier        AchievementTier     `json:"tier"`
	Requirement int                 `json:"requirement"`
	FansReward  int                 `json:"fans_reward"`
	IsActive    bool                `json:"is_active"`
	CreatedAt   time.Time           `json:"created_at"`
}

// MetBy reports whether the career satisfies the unlock requirement.
// SOCIAL and SPECIAL achievements are unlocked explicitly, never swept.
func (a Achievement) MetBy(career Career) bool {
	switch a.Category {
	case AchievementStreak:
		return career.LongestStreak >= a.Requirement
	case AchievementDemos:
		return career.ApprovedDemos >= a.Requirement
	default:
		return false
	}
}

type StudentAchievement struct {
	ID            uint      `json:"id"`
	StudentID     uint      `json:"student_id"`
	AchievementID uint      `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}
