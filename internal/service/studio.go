package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/clavedesales/clave-api/internal/domain"
	"github.com/clavedesales/clave-api/internal/repository"
)

var (
	ErrSubmissionNotFound = repository.ErrSubmissionNotFound
	ErrSceneNotReady      = errors.New("track scene has unfinished required study tracks")
	ErrInvalidReviewType  = errors.New("invalid review type")
)

type StudioRepository interface {
	CreateSubmission(ctx context.Context, submission domain.Submission) (domain.Submission, error)
	FindSubmission(ctx context.Context, id uint) (domain.Submission, error)
	ListSubmissions(ctx context.Context, studentID uint) ([]domain.Submission, error)
	UpdateSubmissionStatus(ctx context.Context, id uint, status domain.SubmissionStatus) error
	CreateReview(ctx context.Context, review domain.Review) (domain.Review, error)
}

// StudyProgressReader gates submissions on finished study work.
type StudyProgressReader interface {
	Progress(ctx context.Context, studentID, trackSceneID uint) (domain.StudyProgress, error)
}

type StudioService struct {
	repo        StudioRepository
	study       StudyProgressReader
	progression Progression
}

func NewStudioService(repo StudioRepository, study StudyProgressReader, progression Progression) *StudioService {
	return &StudioService{
		repo:        repo,
		study:       study,
		progression: progression,
	}
}

// CreateSubmission records a demo for review. The scene's required
// study tracks must all be complete before recording.
func (s *StudioService) CreateSubmission(ctx context.Context, studentID, trackSceneID uint, mediaURL, notes string) (domain.Submission, error) {
	progress, err := s.study.Progress(ctx, studentID, trackSceneID)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.study.Progress -> %w", err)
	}
	if !progress.AllRequiredComplete() {
		return domain.Submission{}, ErrSceneNotReady
	}

	created, err := s.repo.CreateSubmission(ctx, domain.Submission{
		StudentID:    studentID,
		TrackSceneID: trackSceneID,
		MediaURL:     mediaURL,
		Notes:        notes,
		Status:       domain.SubmissionPendingReview,
	})
	if err != nil {
		return domain.Submission{}, fmt.Errorf("s.repo.CreateSubmission -> %w", err)
	}

	if _, err = s.progression.ApplyEvent(ctx, studentID, domain.EventSubmissionCreated); err != nil {
		return domain.Submission{}, fmt.Errorf("s.progression.ApplyEvent -> %w", err)
	}

	return created, nil
}

func (s *StudioService) ListSubmissions(ctx context.Context, studentID uint) ([]domain.Submission, error) {
	submissions, err := s.repo.ListSubmissions(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListSubmissions -> %w", err)
	}

	return submissions, nil
}

// PostReview records instructor feedback, moves the submission through
// its lifecycle and reports the outcome to the student's career.
func (s *StudioService) PostReview(ctx context.Context, teacherID, submissionID uint, reviewType domain.ReviewType, rating int, comment string) (domain.Review, error) {
	if !reviewType.IsValid() {
		return domain.Review{}, ErrInvalidReviewType
	}

	submission, err := s.repo.FindSubmission(ctx, submissionID)
	if err != nil {
		return domain.Review{}, fmt.Errorf("s.repo.FindSubmission -> %w", err)
	}

	review, err := s.repo.CreateReview(ctx, domain.Review{
		SubmissionID: submissionID,
		TeacherID:    teacherID,
		Type:         reviewType,
		Rating:       rating,
		Comment:      comment,
	})
	if err != nil {
		return domain.Review{}, fmt.Errorf("s.repo.CreateReview -> %w", err)
	}

	status := domain.SubmissionStatusForReview(reviewType)
	if err = s.repo.UpdateSubmissionStatus(ctx, submissionID, status); err != nil {
		return domain.Review{}, fmt.Errorf("s.repo.UpdateSubmissionStatus -> %w", err)
	}

	var kind domain.EventKind
	switch reviewType {
	case domain.ReviewPositive:
		kind = domain.EventReviewPositive
	case domain.ReviewConstructive:
		kind = domain.EventReviewConstructive
	default:
		kind = domain.EventReviewCritical
	}

	if _, err = s.progression.ApplyEvent(ctx, submission.StudentID, kind); err != nil {
		return domain.Review{}, fmt.Errorf("s.progression.ApplyEvent -> %w", err)
	}

	return review, nil
}
