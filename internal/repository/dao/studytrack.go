package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrStudyTrackNotFound    = errors.New("study track not found")
	ErrTrackSceneNotFound    = errors.New("track scene not found")
	ErrProgressNotFound      = errors.New("study track progress not found")
	ErrSceneProgressNotFound = errors.New("track scene progress not found")
)

type TrackScene struct {
	ID uint `gorm:"primaryKey"`

	ProjectID   uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Artist      string
	Description string
	TrackOrder  int `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type StudyTrack struct {
	ID uint `gorm:"primaryKey"`

	TrackSceneID     uint   `gorm:"not null;index"`
	CategoryKey      string `gorm:"not null"`
	Title            string `gorm:"not null"`
	Description      string
	TrackOrder       int  `gorm:"not null"`
	EstimatedMinutes int  `gorm:"not null"`
	IsRequired       bool `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type StudentStudyTrack struct {
	ID uint `gorm:"primaryKey"`

	StudentID    uint `gorm:"not null;uniqueIndex:idx_student_study_tracks"`
	StudyTrackID uint `gorm:"not null;uniqueIndex:idx_student_study_tracks"`

	Completed    bool `gorm:"not null;default:false"`
	CompletedAt  *time.Time
	PracticeTime int `gorm:"not null;default:0"`
	Notes        string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type StudentTrackScene struct {
	ID uint `gorm:"primaryKey"`

	StudentID    uint   `gorm:"not null;uniqueIndex:idx_student_track_scenes"`
	TrackSceneID uint   `gorm:"not null;uniqueIndex:idx_student_track_scenes"`
	Status       string `gorm:"not null"`
	CompletedAt  *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type StudyTrackDAO struct {
	db *gorm.DB
}

func NewStudyTrackDAO(db *gorm.DB) *StudyTrackDAO {
	return &StudyTrackDAO{
		db: db,
	}
}

func (d *StudyTrackDAO) FindStudyTrack(ctx context.Context, id uint) (StudyTrack, error) {
	var track StudyTrack
	err := d.db.WithContext(ctx).First(&track, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StudyTrack{}, ErrStudyTrackNotFound
		}

		return StudyTrack{}, err
	}

	return track, nil
}

func (d *StudyTrackDAO) ListByTrackScene(ctx context.Context, trackSceneID uint) ([]StudyTrack, error) {
	var tracks []StudyTrack
	err := d.db.WithContext(ctx).
		Where("track_scene_id = ?", trackSceneID).
		Order("track_order ASC").
		Find(&tracks).Error
	if err != nil {
		return nil, err
	}

	return tracks, nil
}

func (d *StudyTrackDAO) FindProgress(ctx context.Context, studentID, studyTrackID uint) (StudentStudyTrack, error) {
	var record StudentStudyTrack
	err := d.db.WithContext(ctx).
		Where("student_id = ? AND study_track_id = ?", studentID, studyTrackID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StudentStudyTrack{}, ErrProgressNotFound
		}

		return StudentStudyTrack{}, err
	}

	return record, nil
}

func (d *StudyTrackDAO) SaveProgress(ctx context.Context, record StudentStudyTrack) (StudentStudyTrack, error) {
	if err := d.db.WithContext(ctx).Save(&record).Error; err != nil {
		return StudentStudyTrack{}, err
	}

	return record, nil
}

func (d *StudyTrackDAO) ListProgress(ctx context.Context, studentID uint, studyTrackIDs []uint) ([]StudentStudyTrack, error) {
	if len(studyTrackIDs) == 0 {
		return nil, nil
	}

	var records []StudentStudyTrack
	err := d.db.WithContext(ctx).
		Where("student_id = ? AND study_track_id IN ?", studentID, studyTrackIDs).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (d *StudyTrackDAO) FindTrackScene(ctx context.Context, id uint) (TrackScene, error) {
	var scene TrackScene
	err := d.db.WithContext(ctx).First(&scene, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TrackScene{}, ErrTrackSceneNotFound
		}

		return TrackScene{}, err
	}

	return scene, nil
}

// FindNextTrackScene returns the scene directly after the given order
// within a project, if any. Unlock propagation looks ahead one step only.
func (d *StudyTrackDAO) FindNextTrackScene(ctx context.Context, projectID uint, order int) (TrackScene, error) {
	var scene TrackScene
	err := d.db.WithContext(ctx).
		Where("project_id = ? AND track_order = ?", projectID, order+1).
		First(&scene).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TrackScene{}, ErrTrackSceneNotFound
		}

		return TrackScene{}, err
	}

	return scene, nil
}

func (d *StudyTrackDAO) FindSceneProgress(ctx context.Context, studentID, trackSceneID uint) (StudentTrackScene, error) {
	var record StudentTrackScene
	err := d.db.WithContext(ctx).
		Where("student_id = ? AND track_scene_id = ?", studentID, trackSceneID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StudentTrackScene{}, ErrSceneProgressNotFound
		}

		return StudentTrackScene{}, err
	}

	return record, nil
}

func (d *StudyTrackDAO) SaveSceneProgress(ctx context.Context, record StudentTrackScene) (StudentTrackScene, error) {
	if err := d.db.WithContext(ctx).Save(&record).Error; err != nil {
		return StudentTrackScene{}, err
	}

	return record, nil
}
