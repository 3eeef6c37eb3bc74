package response

import (
	"time"

	"github.com/clavedesales/clave-api/internal/domain"
)

// CareerSnapshotResponse is the career state plus the derived
// progress-to-next-level breakdown.
type CareerSnapshotResponse struct {
	Career   domain.Career        `json:"career"`
	Progress domain.LevelProgress `json:"progress"`
}

func NewCareerSnapshot(career domain.Career) CareerSnapshotResponse {
	return CareerSnapshotResponse{
		Career:   career,
		Progress: domain.ProgressForFans(career.Fans),
	}
}

type FanHistoryResponse struct {
	Transactions []domain.FanTransaction `json:"transactions"`
}

type LeaderboardResponse struct {
	SeasonID string                    `json:"season_id"`
	Entries  []domain.LeaderboardEntry `json:"entries"`
}

// AchievementResponse is a catalog entry decorated with the requesting
// student's unlock state.
type AchievementResponse struct {
	Achievement domain.Achievement `json:"achievement"`
	Unlocked    bool               `json:"unlocked"`
	UnlockedAt  *time.Time         `json:"unlocked_at,omitempty"`
}

func NewAchievements(catalog []domain.Achievement, unlocked []domain.StudentAchievement) []AchievementResponse {
	unlockedAt := make(map[uint]time.Time, len(unlocked))
	for _, u := range unlocked {
		unlockedAt[u.AchievementID] = u.UnlockedAt
	}

	result := make([]AchievementResponse, 0, len(catalog))
	for _, a := range catalog {
		entry := AchievementResponse{Achievement: a}
		if at, ok := unlockedAt[a.ID]; ok {
			entry.Unlocked = true
			entry.UnlockedAt = &at
		}
		result = append(result, entry)
	}

	return result
}
