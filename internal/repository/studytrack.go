package repository

import (
	"context"
	"fmt"

	"github.com/clavedesales/clave-api/internal/domain"
	"github.com/clavedesales/clave-api/internal/repository/dao"
)

var (
	ErrStudyTrackNotFound    = dao.ErrStudyTrackNotFound
	ErrTrackSceneNotFound    = dao.ErrTrackSceneNotFound
	ErrProgressNotFound      = dao.ErrProgressNotFound
	ErrSceneProgressNotFound = dao.ErrSceneProgressNotFound
)

type StudyTrackDAO interface {
	FindStudyTrack(ctx context.Context, id uint) (dao.StudyTrack, error)
	ListByTrackScene(ctx context.Context, trackSceneID uint) ([]dao.StudyTrack, error)
	FindProgress(ctx context.Context, studentID, studyTrackID uint) (dao.StudentStudyTrack, error)
	SaveProgress(ctx context.Context, record dao.StudentStudyTrack) (dao.StudentStudyTrack, error)
	ListProgress(ctx context.Context, studentID uint, studyTrackIDs []uint) ([]dao.StudentStudyTrack, error)
	FindTrackScene(ctx context.Context, id uint) (dao.TrackScene, error)
	FindNextTrackScene(ctx context.Context, projectID uint, order int) (dao.TrackScene, error)
	FindSceneProgress(ctx context.Context, studentID, trackSceneID uint) (dao.StudentTrackScene, error)
	SaveSceneProgress(ctx context.Context, record dao.StudentTrackScene) (dao.StudentTrackScene, error)
}

type StudyTrackRepository struct {
	dao StudyTrackDAO
}

func NewStudyTrackRepository(dao StudyTrackDAO) *StudyTrackRepository {
	return &StudyTrackRepository{
		dao: dao,
	}
}

func (r *StudyTrackRepository) FindStudyTrack(ctx context.Context, id uint) (domain.StudyTrack, error) {
	track, err := r.dao.FindStudyTrack(ctx, id)
	if err != nil {
		return domain.StudyTrack{}, fmt.Errorf("r.dao.FindStudyTrack -> %w", err)
	}

	return r.trackDAOToDomain(track), nil
}

func (r *StudyTrackRepository) ListRequiredByTrackScene(ctx context.Context, trackSceneID uint) ([]domain.StudyTrack, error) {
	tracks, err := r.dao.ListByTrackScene(ctx, trackSceneID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByTrackScene -> %w", err)
	}

	var required []domain.StudyTrack
	for _, t := range tracks {
		if t.IsRequired {
			required = append(required, r.trackDAOToDomain(t))
		}
	}

	return required, nil
}

func (r *StudyTrackRepository) FindProgress(ctx context.Context, studentID, studyTrackID uint) (domain.StudentStudyTrack, error) {
	record, err := r.dao.FindProgress(ctx, studentID, studyTrackID)
	if err != nil {
		return domain.StudentStudyTrack{}, fmt.Errorf("r.dao.FindProgress -> %w", err)
	}

	return r.progressDAOToDomain(record), nil
}

func (r *StudyTrackRepository) SaveProgress(ctx context.Context, record domain.StudentStudyTrack) (domain.StudentStudyTrack, error) {
	saved, err := r.dao.SaveProgress(ctx, dao.StudentStudyTrack{
		ID:           record.ID,
		StudentID:    record.StudentID,
		StudyTrackID: record.StudyTrackID,
		Completed:    record.Completed,
		CompletedAt:  record.CompletedAt,
		PracticeTime: record.PracticeTime,
		Notes:        record.Notes,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	})
	if err != nil {
		return domain.StudentStudyTrack{}, fmt.Errorf("r.dao.SaveProgress -> %w", err)
	}

	return r.progressDAOToDomain(saved), nil
}

func (r *StudyTrackRepository) ListProgress(ctx context.Context, studentID uint, studyTrackIDs []uint) ([]domain.StudentStudyTrack, error) {
	records, err := r.dao.ListProgress(ctx, studentID, studyTrackIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListProgress -> %w", err)
	}

	result := make([]domain.StudentStudyTrack, 0, len(records))
	for _, record := range records {
		result = append(result, r.progressDAOToDomain(record))
	}

	return result, nil
}

func (r *StudyTrackRepository) FindTrackScene(ctx context.Context, id uint) (domain.TrackScene, error) {
	scene, err := r.dao.FindTrackScene(ctx, id)
	if err != nil {
		return domain.TrackScene{}, fmt.Errorf("r.dao.FindTrackScene -> %w", err)
	}

	return r.sceneDAOToDomain(scene), nil
}

func (r *StudyTrackRepository) FindNextTrackScene(ctx context.Context, projectID uint, order int) (domain.TrackScene, error) {
	scene, err := r.dao.FindNextTrackScene(ctx, projectID, order)
	if err != nil {
		return domain.TrackScene{}, fmt.Errorf("r.dao.FindNextTrackScene -> %w", err)
	}

	return r.sceneDAOToDomain(scene), nil
}

func (r *StudyTrackRepository) FindSceneProgress(ctx context.Context, studentID, trackSceneID uint) (domain.StudentTrackScene, error) {
	record, err := r.dao.FindSceneProgress(ctx, studentID, trackSceneID)
	if err != nil {
		return domain.StudentTrackScene{}, fmt.Errorf("r.dao.FindSceneProgress -> %w", err)
	}

	return r.sceneProgressDAOToDomain(record), nil
}

func (r *StudyTrackRepository) SaveSceneProgress(ctx context.Context, record domain.StudentTrackScene) (domain.StudentTrackScene, error) {
	saved, err := r.dao.SaveSceneProgress(ctx, dao.StudentTrackScene{
		ID:           record.ID,
		StudentID:    record.StudentID,
		TrackSceneID: record.TrackSceneID,
		Status:       string(record.Status),
		CompletedAt:  record.CompletedAt,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	})
	if err != nil {
		return domain.StudentTrackScene{}, fmt.Errorf("r.dao.SaveSceneProgress -> %w", err)
	}

	return r.sceneProgressDAOToDomain(saved), nil
}

func (r *StudyTrackRepository) trackDAOToDomain(t dao.StudyTrack) domain.StudyTrack {
	return domain.StudyTrack{
		ID:               t.ID,
		TrackSceneID:     t.TrackSceneID,
		CategoryKey:      t.CategoryKey,
		Title:            t.Title,
		Description:      t.Description,
		Order:            t.TrackOrder,
		EstimatedMinutes: t.EstimatedMinutes,
		IsRequired:       t.IsRequired,
		CreatedAt:        t.CreatedAt,
	}
}

func (r *StudyTrackRepository) progressDAOToDomain(record dao.StudentStudyTrack) domain.StudentStudyTrack {
	return domain.StudentStudyTrack{
		ID:           record.ID,
		StudentID:    record.StudentID,
		StudyTrackID: record.StudyTrackID,
		Completed:    record.Completed,
		CompletedAt:  record.CompletedAt,
		PracticeTime: record.PracticeTime,
		Notes:        record.Notes,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}

func (r *StudyTrackRepository) sceneDAOToDomain(s dao.TrackScene) domain.TrackScene {
	return domain.TrackScene{
		ID:          s.ID,
		ProjectID:   s.ProjectID,
		Title:       s.Title,
		Artist:      s.Artist,
		Description: s.Description,
		Order:       s.TrackOrder,
		CreatedAt:   s.CreatedAt,
	}
}

func (r *StudyTrackRepository) sceneProgressDAOToDomain(record dao.StudentTrackScene) domain.StudentTrackScene {
	return domain.StudentTrackScene{
		ID:           record.ID,
		StudentID:    record.StudentID,
		TrackSceneID: record.TrackSceneID,
		Status:       domain.TrackSceneStatus(record.Status),
		CompletedAt:  record.CompletedAt,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
	}
}
