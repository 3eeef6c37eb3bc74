package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSubmissionNotFound = errors.New("submission not found")

type Submission struct {
	ID uint `gorm:"primaryKey"`

	StudentID     uint `gorm:"not null;index:idx_submissions_student_scene"`
	TrackSceneID  uint `gorm:"not null;index:idx_submissions_student_scene"`
	AttemptNumber int  `gorm:"not null;default:1"`

	MediaURL string
	Notes    string
	Status   string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Review struct {
	ID uint `gorm:"primaryKey"`

	SubmissionID uint   `gorm:"not null;index"`
	TeacherID    uint   `gorm:"not null"`
	Type         string `gorm:"not null"`
	Rating       int
	Comment      string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SubmissionDAO struct {
	db *gorm.DB
}

func NewSubmissionDAO(db *gorm.DB) *SubmissionDAO {
	return &SubmissionDAO{
		db: db,
	}
}

// Insert creates the submission, numbering it after the student's
// earlier attempts on the same scene.
func (d *SubmissionDAO) Insert(ctx context.Context, submission Submission) (Submission, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&Submission{}).
			Where("student_id = ? AND track_scene_id = ?", submission.StudentID, submission.TrackSceneID).
			Count(&count).Error
		if err != nil {
			return err
		}

		submission.AttemptNumber = int(count) + 1

		return tx.Create(&submission).Error
	})
	if err != nil {
		return Submission{}, err
	}

	return submission, nil
}

func (d *SubmissionDAO) FindByID(ctx context.Context, id uint) (Submission, error) {
	var submission Submission
	err := d.db.WithContext(ctx).First(&submission, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Submission{}, ErrSubmissionNotFound
		}

		return Submission{}, err
	}

	return submission, nil
}

func (d *SubmissionDAO) ListByStudent(ctx context.Context, studentID uint) ([]Submission, error) {
	var submissions []Submission
	err := d.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("id DESC").
		Find(&submissions).Error
	if err != nil {
		return nil, err
	}

	return submissions, nil
}

func (d *SubmissionDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&Submission{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSubmissionNotFound
	}

	return nil
}

func (d *SubmissionDAO) InsertReview(ctx context.Context, review Review) (Review, error) {
	if err := d.db.WithContext(ctx).Create(&review).Error; err != nil {
		return Review{}, err
	}

	return review, nil
}
