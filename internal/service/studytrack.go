package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/clavedesales/clave-api/internal/domain"
	"github.com/clavedesales/clave-api/internal/repository"
)

var (
	ErrStudyTrackNotFound = repository.ErrStudyTrackNotFound
	ErrTrackSceneNotFound = repository.ErrTrackSceneNotFound
)

type StudyTrackRepository interface {
	FindStudyTrack(ctx context.Context, id uint) (domain.StudyTrack, error)
	ListRequiredByTrackScene(ctx context.Context, trackSceneID uint) ([]domain.StudyTrack, error)
	FindProgress(ctx context.Context, studentID, studyTrackID uint) (domain.StudentStudyTrack, error)
	SaveProgress(ctx context.Context, record domain.StudentStudyTrack) (domain.StudentStudyTrack, error)
	ListProgress(ctx context.Context, studentID uint, studyTrackIDs []uint) ([]domain.StudentStudyTrack, error)
	FindTrackScene(ctx context.Context, id uint) (domain.TrackScene, error)
	FindNextTrackScene(ctx context.Context, projectID uint, order int) (domain.TrackScene, error)
	FindSceneProgress(ctx context.Context, studentID, trackSceneID uint) (domain.StudentTrackScene, error)
	SaveSceneProgress(ctx context.Context, record domain.StudentTrackScene) (domain.StudentTrackScene, error)
}

// Progression is the façade the study-track flow reports outcomes to.
type Progression interface {
	ApplyEvent(ctx context.Context, studentID uint, kind domain.EventKind) (domain.Career, error)
}

type StudyTrackService struct {
	repo        StudyTrackRepository
	progression Progression

	now func() time.Time
}

func NewStudyTrackService(repo StudyTrackRepository, progression Progression) *StudyTrackService {
	return &StudyTrackService{
		repo:        repo,
		progression: progression,
		now:         time.Now,
	}
}

// Toggle flips the student's completion record for one study track,
// creating it completed on first use. Completing the last required
// track of a scene marks the scene COMPLETED, unlocks the next scene
// in order and awards the scene reward, all exactly once.
func (s *StudyTrackService) Toggle(ctx context.Context, studentID, studyTrackID uint, notes string) (domain.StudentStudyTrack, error) {
	track, err := s.repo.FindStudyTrack(ctx, studyTrackID)
	if err != nil {
		return domain.StudentStudyTrack{}, fmt.Errorf("s.repo.FindStudyTrack -> %w", err)
	}

	record, err := s.repo.FindProgress(ctx, studentID, studyTrackID)
	if err != nil {
		if !errors.Is(err, repository.ErrProgressNotFound) {
			return domain.StudentStudyTrack{}, fmt.Errorf("s.repo.FindProgress -> %w", err)
		}

		record = domain.StudentStudyTrack{
			StudentID:    studentID,
			StudyTrackID: studyTrackID,
		}
	}

	record.Toggle(s.now())
	if notes != "" {
		record.Notes = notes
	}

	saved, err := s.repo.SaveProgress(ctx, record)
	if err != nil {
		return domain.StudentStudyTrack{}, fmt.Errorf("s.repo.SaveProgress -> %w", err)
	}

	if saved.Completed {
		if err = s.completeSceneIfDone(ctx, studentID, track.TrackSceneID); err != nil {
			return domain.StudentStudyTrack{}, err
		}
	}

	return saved, nil
}

func (s *StudyTrackService) completeSceneIfDone(ctx context.Context, studentID, trackSceneID uint) error {
	progress, err := s.Progress(ctx, studentID, trackSceneID)
	if err != nil {
		return err
	}
	if !progress.AllRequiredComplete() {
		return nil
	}

	record, err := s.repo.FindSceneProgress(ctx, studentID, trackSceneID)
	if err != nil {
		if !errors.Is(err, repository.ErrSceneProgressNotFound) {
			return fmt.Errorf("s.repo.FindSceneProgress -> %w", err)
		}

		record = domain.StudentTrackScene{
			StudentID:    studentID,
			TrackSceneID: trackSceneID,
			Status:       domain.TrackSceneStudying,
		}
	}

	// Already completed: re-studying never re-fires the unlock or reward.
	if record.Status == domain.TrackSceneCompleted {
		return nil
	}

	now := s.now()
	record.Status = domain.TrackSceneCompleted
	record.CompletedAt = &now
	if _, err = s.repo.SaveSceneProgress(ctx, record); err != nil {
		return fmt.Errorf("s.repo.SaveSceneProgress -> %w", err)
	}

	if err = s.unlockNextScene(ctx, studentID, trackSceneID); err != nil {
		return err
	}

	if _, err = s.progression.ApplyEvent(ctx, studentID, domain.EventTrackSceneCompleted); err != nil {
		return fmt.Errorf("s.progression.ApplyEvent -> %w", err)
	}

	return nil
}

// unlockNextScene moves the immediately following scene of the same
// project from LOCKED to STUDYING. One look-ahead only.
func (s *StudyTrackService) unlockNextScene(ctx context.Context, studentID, trackSceneID uint) error {
	scene, err := s.repo.FindTrackScene(ctx, trackSceneID)
	if err != nil {
		return fmt.Errorf("s.repo.FindTrackScene -> %w", err)
	}

	next, err := s.repo.FindNextTrackScene(ctx, scene.ProjectID, scene.Order)
	if err != nil {
		if errors.Is(err, repository.ErrTrackSceneNotFound) {
			return nil
		}

		return fmt.Errorf("s.repo.FindNextTrackScene -> %w", err)
	}

	record, err := s.repo.FindSceneProgress(ctx, studentID, next.ID)
	if err != nil {
		if !errors.Is(err, repository.ErrSceneProgressNotFound) {
			return fmt.Errorf("s.repo.FindSceneProgress -> %w", err)
		}

		record = domain.StudentTrackScene{
			StudentID:    studentID,
			TrackSceneID: next.ID,
			Status:       domain.TrackSceneLocked,
		}
	}

	if record.Status != domain.TrackSceneLocked {
		return nil
	}

	record.Status = domain.TrackSceneStudying
	if _, err = s.repo.SaveSceneProgress(ctx, record); err != nil {
		return fmt.Errorf("s.repo.SaveSceneProgress -> %w", err)
	}

	zap.L().Info("track scene unlocked",
		zap.Uint("student_id", studentID),
		zap.Uint("track_scene_id", next.ID),
	)

	return nil
}

// Progress summarizes required-track completion for one track scene.
func (s *StudyTrackService) Progress(ctx context.Context, studentID, trackSceneID uint) (domain.StudyProgress, error) {
	required, err := s.repo.ListRequiredByTrackScene(ctx, trackSceneID)
	if err != nil {
		return domain.StudyProgress{}, fmt.Errorf("s.repo.ListRequiredByTrackScene -> %w", err)
	}

	ids := make([]uint, 0, len(required))
	for _, track := range required {
		ids = append(ids, track.ID)
	}

	records, err := s.repo.ListProgress(ctx, studentID, ids)
	if err != nil {
		return domain.StudyProgress{}, fmt.Errorf("s.repo.ListProgress -> %w", err)
	}

	return domain.ComputeStudyProgress(required, records), nil
}

// IsUnlocked reports whether the student may study the scene. Without a
// progress record only the first scene of a project is open.
func (s *StudyTrackService) IsUnlocked(ctx context.Context, studentID, trackSceneID uint) (bool, error) {
	record, err := s.repo.FindSceneProgress(ctx, studentID, trackSceneID)
	if err == nil {
		return record.Status != domain.TrackSceneLocked, nil
	}
	if !errors.Is(err, repository.ErrSceneProgressNotFound) {
		return false, fmt.Errorf("s.repo.FindSceneProgress -> %w", err)
	}

	scene, err := s.repo.FindTrackScene(ctx, trackSceneID)
	if err != nil {
		return false, fmt.Errorf("s.repo.FindTrackScene -> %w", err)
	}

	return scene.Order == 1, nil
}
