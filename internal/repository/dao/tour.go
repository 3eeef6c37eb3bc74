package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrTourNotFound     = errors.New("tour not found")
	ErrTourShowNotFound = errors.New("tour show not found")
)

type Tour struct {
	ID uint `gorm:"primaryKey"`

	StudentID uint   `gorm:"not null;index:idx_tours_student_season"`
	SeasonID  string `gorm:"not null;index:idx_tours_student_season"`

	Name           string `gorm:"not null"`
	RequiredStreak int    `gorm:"not null;default:7"`
	Status         string `gorm:"not null"`
	Completed      bool   `gorm:"not null;default:false"`

	StartedAt time.Time `gorm:"not null"`
	EndedAt   *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TourShow struct {
	ID uint `gorm:"primaryKey"`

	TourID uint `gorm:"not null;index"`

	City      string    `gorm:"not null"`
	Venue     string    `gorm:"not null"`
	Date      time.Time `gorm:"not null"`
	CheckedIn bool      `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type TourDAO struct {
	db *gorm.DB
}

func NewTourDAO(db *gorm.DB) *TourDAO {
	return &TourDAO{
		db: db,
	}
}

func (d *TourDAO) FindByID(ctx context.Context, id uint) (Tour, error) {
	var tour Tour
	err := d.db.WithContext(ctx).First(&tour, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Tour{}, ErrTourNotFound
		}

		return Tour{}, err
	}

	return tour, nil
}

func (d *TourDAO) FindActive(ctx context.Context, studentID uint, seasonID string) (Tour, error) {
	var tour Tour
	err := d.db.WithContext(ctx).
		Where("student_id = ? AND season_id = ? AND completed = ?", studentID, seasonID, false).
		Order("id DESC").
		First(&tour).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Tour{}, ErrTourNotFound
		}

		return Tour{}, err
	}

	return tour, nil
}

func (d *TourDAO) Save(ctx context.Context, tour Tour) (Tour, error) {
	if err := d.db.WithContext(ctx).Save(&tour).Error; err != nil {
		return Tour{}, err
	}

	return tour, nil
}

func (d *TourDAO) FindShow(ctx context.Context, id uint) (TourShow, error) {
	var show TourShow
	err := d.db.WithContext(ctx).First(&show, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TourShow{}, ErrTourShowNotFound
		}

		return TourShow{}, err
	}

	return show, nil
}

func (d *TourDAO) ListShows(ctx context.Context, tourID uint) ([]TourShow, error) {
	var shows []TourShow
	err := d.db.WithContext(ctx).
		Where("tour_id = ?", tourID).
		Order("date ASC").
		Find(&shows).Error
	if err != nil {
		return nil, err
	}

	return shows, nil
}

func (d *TourDAO) SaveShow(ctx context.Context, show TourShow) (TourShow, error) {
	if err := d.db.WithContext(ctx).Save(&show).Error; err != nil {
		return TourShow{}, err
	}

	return show, nil
}
