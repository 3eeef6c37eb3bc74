package repository

import (
	"context"
	"fmt"

	"github.com/clavedesales/clave-api/internal/domain"
	"github.com/clavedesales/clave-api/internal/repository/dao"
)

var ErrSubmissionNotFound = dao.ErrSubmissionNotFound

type SubmissionDAO interface {
	Insert(ctx context.Context, submission dao.Submission) (dao.Submission, error)
	FindByID(ctx context.Context, id uint) (dao.Submission, error)
	ListByStudent(ctx context.Context, studentID uint) ([]dao.Submission, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	InsertReview(ctx context.Context, review dao.Review) (dao.Review, error)
}

type StudioRepository struct {
	dao SubmissionDAO
}

func NewStudioRepository(dao SubmissionDAO) *StudioRepository {
	return &StudioRepository{
		dao: dao,
	}
}

func (r *StudioRepository) CreateSubmission(ctx context.Context, submission domain.Submission) (domain.Submission, error) {
	created, err := r.dao.Insert(ctx, dao.Submission{
		StudentID:    submission.StudentID,
		TrackSceneID: submission.TrackSceneID,
		MediaURL:     submission.MediaURL,
		Notes:        submission.Notes,
		Status:       string(submission.Status),
		CreatedAt:    submission.CreatedAt,
		UpdatedAt:    submission.UpdatedAt,
	})
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.submissionDAOToDomain(created), nil
}

func (r *StudioRepository) FindSubmission(ctx context.Context, id uint) (domain.Submission, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.submissionDAOToDomain(found), nil
}

func (r *StudioRepository) ListSubmissions(ctx context.Context, studentID uint) ([]domain.Submission, error) {
	found, err := r.dao.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByStudent -> %w", err)
	}

	submissions := make([]domain.Submission, 0, len(found))
	for _, s := range found {
		submissions = append(submissions, r.submissionDAOToDomain(s))
	}

	return submissions, nil
}

func (r *StudioRepository) UpdateSubmissionStatus(ctx context.Context, id uint, status domain.SubmissionStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *StudioRepository) CreateReview(ctx context.Context, review domain.Review) (domain.Review, error) {
	created, err := r.dao.InsertReview(ctx, dao.Review{
		SubmissionID: review.SubmissionID,
		TeacherID:    review.TeacherID,
		Type:         string(review.Type),
		Rating:       review.Rating,
		Comment:      review.Comment,
		CreatedAt:    review.CreatedAt,
	})
	if err != nil {
		return domain.Review{}, fmt.Errorf("r.dao.InsertReview -> %w", err)
	}

	return domain.Review{
		ID:           created.ID,
		SubmissionID: created.SubmissionID,
		TeacherID:    created.TeacherID,
		Type:         domain.ReviewType(created.Type),
		Rating:       created.Rating,
		Comment:      created.Comment,
		CreatedAt:    created.CreatedAt,
	}, nil
}

func (r *StudioRepository) submissionDAOToDomain(s dao.Submission) domain.Submission {
	return domain.Submission{
		ID:            s.ID,
		StudentID:     s.StudentID,
		TrackSceneID:  s.TrackSceneID,
		AttemptNumber: s.AttemptNumber,
		MediaURL:      s.MediaURL,
		Notes:         s.Notes,
		Status:        domain.SubmissionStatus(s.Status),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
