package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrPressQuizNotFound = errors.New("press quiz not found")

type PressQuiz struct {
	ID uint `gorm:"primaryKey"`

	TrackSceneID uint   `gorm:"not null;index"`
	SeasonID     string `gorm:"not null"`

	// QuestionsJSON holds the serialized question list; the repository
	// layer owns the encoding.
	QuestionsJSON string `gorm:"type:jsonb;not null"`
	PassingScore  int    `gorm:"not null"`
	MaxAttempts   int    `gorm:"not null;default:0"`
	IsActive      bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PressAttempt struct {
	ID uint `gorm:"primaryKey"`

	StudentID     uint `gorm:"not null;index:idx_press_attempts_student_quiz"`
	PressQuizID   uint `gorm:"not null;index:idx_press_attempts_student_quiz"`
	AttemptNumber int  `gorm:"not null"`

	AnswersJSON string `gorm:"type:jsonb;not null"`
	Score       int    `gorm:"not null"`
	Result      string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type PressDAO struct {
	db *gorm.DB
}

func NewPressDAO(db *gorm.DB) *PressDAO {
	return &PressDAO{
		db: db,
	}
}

func (d *PressDAO) FindQuiz(ctx context.Context, id uint) (PressQuiz, error) {
	var quiz PressQuiz
	err := d.db.WithContext(ctx).First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PressQuiz{}, ErrPressQuizNotFound
		}

		return PressQuiz{}, err
	}

	return quiz, nil
}

func (d *PressDAO) CountAttempts(ctx context.Context, studentID, quizID uint) (int, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&PressAttempt{}).
		Where("student_id = ? AND press_quiz_id = ?", studentID, quizID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

func (d *PressDAO) InsertAttempt(ctx context.Context, attempt PressAttempt) (PressAttempt, error) {
	if err := d.db.WithContext(ctx).Create(&attempt).Error; err != nil {
		return PressAttempt{}, err
	}

	return attempt, nil
}
