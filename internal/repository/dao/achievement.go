package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrAchievementAlreadyUnlocked = errors.New("achievement already unlocked")

type Achievement struct {
	ID uint `gorm:"primaryKey"`

	Title       string `gorm:"not null"`
	Description string
	Category    string `gorm:"not null"`
	Tier        string `gorm:"not null"`
	Requirement int    `gorm:"not null;default:0"`
	FansReward  int    `gorm:"not null;default:0"`
	IsActive    bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type StudentAchievement struct {
	ID uint `gorm:"primaryKey"`

	StudentID     uint `gorm:"not null;uniqueIndex:idx_student_achievements"`
	AchievementID uint `gorm:"not null;uniqueIndex:idx_student_achievements"`

	UnlockedAt time.Time `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null"`
}

type AchievementDAO struct {
	db *gorm.DB
}

func NewAchievementDAO(db *gorm.DB) *AchievementDAO {
	return &AchievementDAO{
		db: db,
	}
}

func (d *AchievementDAO) ListActive(ctx context.Context) ([]Achievement, error) {
	var achievements []Achievement
	err := d.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&achievements).Error
	if err != nil {
		return nil, err
	}

	return achievements, nil
}

func (d *AchievementDAO) ListUnlocked(ctx context.Context, studentID uint) ([]StudentAchievement, error) {
	var unlocked []StudentAchievement
	err := d.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&unlocked).Error
	if err != nil {
		return nil, err
	}

	return unlocked, nil
}

func (d *AchievementDAO) InsertUnlock(ctx context.Context, unlock StudentAchievement) (StudentAchievement, error) {
	result := d.db.WithContext(ctx).Create(&unlock)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return StudentAchievement{}, ErrAchievementAlreadyUnlocked
		}

		return StudentAchievement{}, result.Error
	}

	return unlock, nil
}
