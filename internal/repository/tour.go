package repository

import (
	"context"
	"fmt"

	"github.com/clavedesales/clave-api/internal/domain"
	"github.com/clavedesales/clave-api/internal/repository/dao"
)

var (
	ErrTourNotFound     = dao.ErrTourNotFound
	ErrTourShowNotFound = dao.ErrTourShowNotFound
)

type TourDAO interface {
	FindByID(ctx context.Context, id uint) (dao.Tour, error)
	FindActive(ctx context.Context, studentID uint, seasonID string) (dao.Tour, error)
	Save(ctx context.Context, tour dao.Tour) (dao.Tour, error)
	FindShow(ctx context.Context, id uint) (dao.TourShow, error)
	ListShows(ctx context.Context, tourID uint) ([]dao.TourShow, error)
	SaveShow(ctx context.Context, show dao.TourShow) (dao.TourShow, error)
}

type TourRepository struct {
	dao TourDAO
}

func NewTourRepository(dao TourDAO) *TourRepository {
	return &TourRepository{
		dao: dao,
	}
}

func (r *TourRepository) FindByID(ctx context.Context, id uint) (domain.Tour, error) {
	tour, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.tourDAOToDomain(tour), nil
}

func (r *TourRepository) FindActive(ctx context.Context, studentID uint, seasonID string) (domain.Tour, error) {
	tour, err := r.dao.FindActive(ctx, studentID, seasonID)
	if err != nil {
		return domain.Tour{}, fmt.Errorf("r.dao.FindActive -> %w", err)
	}

	return r.tourDAOToDomain(tour), nil
}

func (r *TourRepository) Save(ctx context.Context, tour domain.Tour) (domain.Tour, error) {
	saved, err := r.dao.Save(ctx, dao.Tour{
		ID:             tour.ID,
		StudentID:      tour.StudentID,
		SeasonID:       tour.SeasonID,
		Name:           tour.Name,
		RequiredStreak: tour.RequiredStreak,
		Status:         string(tour.Status),
		Completed:      tour.Completed,
		StartedAt:      tour.StartedAt,
		EndedAt:        tour.EndedAt,
		CreatedAt:      tour.CreatedAt,
		UpdatedAt:      tour.UpdatedAt,
	})
	if err != nil {
		return domain.Tour{}, fmt.Errorf("r.dao.Save -> %w", err)
	}

	return r.tourDAOToDomain(saved), nil
}

func (r *TourRepository) FindShow(ctx context.Context, id uint) (domain.TourShow, error) {
	show, err := r.dao.FindShow(ctx, id)
	if err != nil {
		return domain.TourShow{}, fmt.Errorf("r.dao.FindShow -> %w", err)
	}

	return r.showDAOToDomain(show), nil
}

func (r *TourRepository) ListShows(ctx context.Context, tourID uint) ([]domain.TourShow, error) {
	shows, err := r.dao.ListShows(ctx, tourID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListShows -> %w", err)
	}

	result := make([]domain.TourShow, 0, len(shows))
	for _, s := range shows {
		result = append(result, r.showDAOToDomain(s))
	}

	return result, nil
}

func (r *TourRepository) SaveShow(ctx context.Context, show domain.TourShow) (domain.TourShow, error) {
	saved, err := r.dao.SaveShow(ctx, dao.TourShow{
		ID:        show.ID,
		TourID:    show.TourID,
		City:      show.City,
		Venue:     show.Venue,
		Date:      show.Date,
		CheckedIn: show.CheckedIn,
		CreatedAt: show.CreatedAt,
		UpdatedAt: show.UpdatedAt,
	})
	if err != nil {
		return domain.TourShow{}, fmt.Errorf("r.dao.SaveShow -> %w", err)
	}

	return r.showDAOToDomain(saved), nil
}

func (r *TourRepository) tourDAOToDomain(t dao.Tour) domain.Tour {
	return domain.Tour{
		ID:             t.ID,
		StudentID:      t.StudentID,
		SeasonID:       t.SeasonID,
		Name:           t.Name,
		RequiredStreak: t.RequiredStreak,
		Status:         domain.TourStatus(t.Status),
		Completed:      t.Completed,
		StartedAt:      t.StartedAt,
		EndedAt:        t.EndedAt,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
}

func (r *TourRepository) showDAOToDomain(s dao.TourShow) domain.TourShow {
	return domain.TourShow{
		ID:        s.ID,
		TourID:    s.TourID,
		City:      s.City,
		Venue:     s.Venue,
		Date:      s.Date,
		CheckedIn: s.CheckedIn,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
