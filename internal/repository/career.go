package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/clavedesales/clave-api/internal/domain"
	"github.com/clavedesales/clave-api/internal/repository/dao"
)

var ErrCareerNotFound = dao.ErrCareerNotFound

type CareerDAO interface {
	GetOrCreate(ctx context.Context, studentID uint, seasonID string) (dao.Career, error)
	Find(ctx context.Context, studentID uint, seasonID string) (dao.Career, error)
	SaveWithTransactions(ctx context.Context, career dao.Career, txns []dao.FanTransaction, historyCap int) (dao.Career, error)
	ListTransactions(ctx context.Context, studentID uint, seasonID string, limit int) ([]dao.FanTransaction, error)
	ListLapsed(ctx context.Context, seasonID string, cutoff time.Time) ([]dao.Career, error)
	ListTop(ctx context.Context, seasonID string, limit int) ([]dao.Career, error)
}

type CareerRepository struct {
	dao CareerDAO
}

func NewCareerRepository(dao CareerDAO) *CareerRepository {
	return &CareerRepository{
		dao: dao,
	}
}

func (r *CareerRepository) GetOrCreate(ctx context.Context, studentID uint, seasonID string) (domain.Career, error) {
	career, err := r.dao.GetOrCreate(ctx, studentID, seasonID)
	if err != nil {
		return domain.Career{}, fmt.Errorf("r.dao.GetOrCreate -> %w", err)
	}

	return r.daoToDomain(career), nil
}

// SaveWithTransactions persists the career state and its new ledger
// entries atomically, keeping the ledger capped.
func (r *CareerRepository) SaveWithTransactions(ctx context.Context, career domain.Career, txns []domain.FanTransaction) (domain.Career, error) {
	daoTxns := make([]dao.FanTransaction, 0, len(txns))
	for _, t := range txns {
		daoTxns = append(daoTxns, dao.FanTransaction{
			EventID:   t.EventID,
			StudentID: t.StudentID,
			SeasonID:  t.SeasonID,
			Amount:    t.Amount,
			Reason:    t.Reason,
			CreatedAt: t.CreatedAt,
		})
	}

	saved, err := r.dao.SaveWithTransactions(ctx, r.domainToDAO(career), daoTxns, domain.FanHistoryCap)
	if err != nil {
		return domain.Career{}, fmt.Errorf("r.dao.SaveWithTransactions -> %w", err)
	}

	return r.daoToDomain(saved), nil
}

func (r *CareerRepository) ListTransactions(ctx context.Context, studentID uint, seasonID string, limit int) ([]domain.FanTransaction, error) {
	if limit <= 0 || limit > domain.FanHistoryCap {
		limit = domain.FanHistoryCap
	}

	txns, err := r.dao.ListTransactions(ctx, studentID, seasonID, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListTransactions -> %w", err)
	}

	result := make([]domain.FanTransaction, 0, len(txns))
	for _, t := range txns {
		result = append(result, domain.FanTransaction{
			ID:        t.ID,
			EventID:   t.EventID,
			StudentID: t.StudentID,
			SeasonID:  t.SeasonID,
			Amount:    t.Amount,
			Reason:    t.Reason,
			CreatedAt: t.CreatedAt,
		})
	}

	return result, nil
}

func (r *CareerRepository) ListLapsed(ctx context.Context, seasonID string, cutoff time.Time) ([]domain.Career, error) {
	careers, err := r.dao.ListLapsed(ctx, seasonID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListLapsed -> %w", err)
	}

	result := make([]domain.Career, 0, len(careers))
	for _, c := range careers {
		result = append(result, r.daoToDomain(c))
	}

	return result, nil
}

func (r *CareerRepository) ListTop(ctx context.Context, seasonID string, limit int) ([]domain.Career, error) {
	careers, err := r.dao.ListTop(ctx, seasonID, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListTop -> %w", err)
	}

	result := make([]domain.Career, 0, len(careers))
	for _, c := range careers {
		result = append(result, r.daoToDomain(c))
	}

	return result, nil
}

func (r *CareerRepository) daoToDomain(c dao.Career) domain.Career {
	return domain.Career{
		ID:                c.ID,
		StudentID:         c.StudentID,
		SeasonID:          c.SeasonID,
		Fans:              c.Fans,
		Level:             domain.LevelForFans(c.Fans),
		CurrentStreak:     c.CurrentStreak,
		LongestStreak:     c.LongestStreak,
		TotalDemos:        c.TotalDemos,
		ApprovedDemos:     c.ApprovedDemos,
		TotalAchievements: c.TotalAchievements,
		ToursCompleted:    c.ToursCompleted,
		LastActiveDate:    c.LastActiveDate,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}

func (r *CareerRepository) domainToDAO(c domain.Career) dao.Career {
	return dao.Career{
		ID:                c.ID,
		StudentID:         c.StudentID,
		SeasonID:          c.SeasonID,
		Fans:              c.Fans,
		CurrentStreak:     c.CurrentStreak,
		LongestStreak:     c.LongestStreak,
		TotalDemos:        c.TotalDemos,
		ApprovedDemos:     c.ApprovedDemos,
		TotalAchievements: c.TotalAchievements,
		ToursCompleted:    c.ToursCompleted,
		LastActiveDate:    c.LastActiveDate,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
