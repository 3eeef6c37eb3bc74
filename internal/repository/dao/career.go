package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrCareerNotFound = errors.New("career not found")

type Career struct {
	ID uint `gorm:"primaryKey"`

	StudentID uint   `gorm:"not null;uniqueIndex:idx_careers_student_season"`
	SeasonID  string `gorm:"not null;uniqueIndex:idx_careers_student_season"`

	Fans              int `gorm:"not null;default:0"`
	CurrentStreak     int `gorm:"not null;default:0"`
	LongestStreak     int `gorm:"not null;default:0"`
	TotalDemos        int `gorm:"not null;default:0"`
	ApprovedDemos     int `gorm:"not null;default:0"`
	TotalAchievements int `gorm:"not null;default:0"`
	ToursCompleted    int `gorm:"not null;default:0"`

	LastActiveDate *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type FanTransaction struct {
	ID uint `gorm:"primaryKey"`

	EventID   string `gorm:"not null;unique"`
	StudentID uint   `gorm:"not null;index:idx_fan_transactions_student_season"`
	SeasonID  string `gorm:"not null;index:idx_fan_transactions_student_season"`
	Amount    int    `gorm:"not null"`
	Reason    string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type CareerDAO struct {
	db *gorm.DB
}

func NewCareerDAO(db *gorm.DB) *CareerDAO {
	return &CareerDAO{
		db: db,
	}
}

func (d *CareerDAO) GetOrCreate(ctx context.Context, studentID uint, seasonID string) (Career, error) {
	var career Career
	err := d.db.WithContext(ctx).
		Where("student_id = ? AND season_id = ?", studentID, seasonID).
		First(&career).Error
	if err == nil {
		return career, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return Career{}, err
	}

	career = Career{StudentID: studentID, SeasonID: seasonID}
	if err := d.db.WithContext(ctx).Create(&career).Error; err != nil {
		return Career{}, err
	}

	return career, nil
}

func (d *CareerDAO) Find(ctx context.Context, studentID uint, seasonID string) (Career, error) {
	var career Career
	err := d.db.WithContext(ctx).
		Where("student_id = ? AND season_id = ?", studentID, seasonID).
		First(&career).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Career{}, ErrCareerNotFound
		}

		return Career{}, err
	}

	return career, nil
}

// SaveWithTransactions persists the career and appends its new ledger
// entries in one database transaction, then trims the ledger to the
// most recent historyCap rows.
func (d *CareerDAO) SaveWithTransactions(ctx context.Context, career Career, txns []FanTransaction, historyCap int) (Career, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&career).Error; err != nil {
			return err
		}

		for i := range txns {
			if err := tx.Create(&txns[i]).Error; err != nil {
				return err
			}
		}

		if len(txns) == 0 {
			return nil
		}

		return tx.Exec(`
			DELETE FROM fan_transactions
			WHERE student_id = ? AND season_id = ?
			AND id NOT IN (
				SELECT id FROM fan_transactions
				WHERE student_id = ? AND season_id = ?
				ORDER BY id DESC
				LIMIT ?
			)`,
			career.StudentID, career.SeasonID,
			career.StudentID, career.SeasonID,
			historyCap,
		).Error
	})
	if err != nil {
		return Career{}, err
	}

	return career, nil
}

func (d *CareerDAO) ListTransactions(ctx context.Context, studentID uint, seasonID string, limit int) ([]FanTransaction, error) {
	var txns []FanTransaction
	err := d.db.WithContext(ctx).
		Where("student_id = ? AND season_id = ?", studentID, seasonID).
		Order("id DESC").
		Limit(limit).
		Find(&txns).Error
	if err != nil {
		return nil, err
	}

	return txns, nil
}

// ListLapsed returns careers with a live streak whose last activity
// predates the cutoff. Used by the streak watchdog.
func (d *CareerDAO) ListLapsed(ctx context.Context, seasonID string, cutoff time.Time) ([]Career, error) {
	var careers []Career
	err := d.db.WithContext(ctx).
		Where("season_id = ? AND current_streak > 0 AND (last_active_date IS NULL OR last_active_date < ?)", seasonID, cutoff).
		Find(&careers).Error
	if err != nil {
		return nil, err
	}

	return careers, nil
}

func (d *CareerDAO) ListTop(ctx context.Context, seasonID string, limit int) ([]Career, error) {
	var careers []Career
	err := d.db.WithContext(ctx).
		Where("season_id = ?", seasonID).
		Order("fans DESC").
		Limit(limit).
		Find(&careers).Error
	if err != nil {
		return nil, err
	}

	return careers, nil
}
