package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/clavedesales/clave-api/internal/domain"
	"github.com/clavedesales/clave-api/internal/repository/dao"
)

var ErrAchievementAlreadyUnlocked = dao.ErrAchievementAlreadyUnlocked

type AchievementDAO interface {
	ListActive(ctx context.Context) ([]dao.Achievement, error)
	ListUnlocked(ctx context.Context, studentID uint) ([]dao.StudentAchievement, error)
	InsertUnlock(ctx context.Context, unlock dao.StudentAchievement) (dao.StudentAchievement, error)
}

type AchievementRepository struct {
	dao AchievementDAO
}

func NewAchievementRepository(dao AchievementDAO) *AchievementRepository {
	return &AchievementRepository{
		dao: dao,
	}
}

func (r *AchievementRepository) ListActive(ctx context.Context) ([]domain.Achievement, error) {
	achievements, err := r.dao.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListActive -> %w", err)
	}

	result := make([]domain.Achievement, 0, len(achievements))
	for _, a := range achievements {
		result = append(result, domain.Achievement{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Category:    domain.AchievementCategory(a.Category),
			Tier:        domain.AchievementTier(a.Tier),
			Requirement: a.Requirement,
			FansReward:  a.FansReward,
			IsActive:    a.IsActive,
			CreatedAt:   a.CreatedAt,
		})
	}

	return result, nil
}

func (r *AchievementRepository) ListUnlocked(ctx context.Context, studentID uint) ([]domain.StudentAchievement, error) {
	unlocked, err := r.dao.ListUnlocked(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListUnlocked -> %w", err)
	}

	result := make([]domain.StudentAchievement, 0, len(unlocked))
	for _, u := range unlocked {
		result = append(result, domain.StudentAchievement{
			ID:            u.ID,
			StudentID:     u.StudentID,
			AchievementID: u.AchievementID,
			UnlockedAt:    u.UnlockedAt,
		})
	}

	return result, nil
}

func (r *AchievementRepository) Unlock(ctx context.Context, studentID, achievementID uint, at time.Time) error {
	_, err := r.dao.InsertUnlock(ctx, dao.StudentAchievement{
		StudentID:     studentID,
		AchievementID: achievementID,
		UnlockedAt:    at,
	})
	if err != nil {
		return fmt.Errorf("r.dao.InsertUnlock -> %w", err)
	}

	return nil
}
