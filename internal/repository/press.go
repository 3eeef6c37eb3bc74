package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/clavedesales/clave-api/internal/domain"
	"github.com/clavedesales/clave-api/internal/repository/dao"
)

var ErrPressQuizNotFound = dao.ErrPressQuizNotFound

type PressDAO interface {
	FindQuiz(ctx context.Context, id uint) (dao.PressQuiz, error)
	CountAttempts(ctx context.Context, studentID, quizID uint) (int, error)
	InsertAttempt(ctx context.Context, attempt dao.PressAttempt) (dao.PressAttempt, error)
}

type PressRepository struct {
	dao PressDAO
}

func NewPressRepository(dao PressDAO) *PressRepository {
	return &PressRepository{
		dao: dao,
	}
}

func (r *PressRepository) FindQuiz(ctx context.Context, id uint) (domain.PressQuiz, error) {
	quiz, err := r.dao.FindQuiz(ctx, id)
	if err != nil {
		return domain.PressQuiz{}, fmt.Errorf("r.dao.FindQuiz -> %w", err)
	}

	var questions []domain.QuizQuestion
	if err := json.Unmarshal([]byte(quiz.QuestionsJSON), &questions); err != nil {
		return domain.PressQuiz{}, fmt.Errorf("json.Unmarshal questions -> %w", err)
	}

	return domain.PressQuiz{
		ID:           quiz.ID,
		TrackSceneID: quiz.TrackSceneID,
		SeasonID:     quiz.SeasonID,
		Questions:    questions,
		PassingScore: quiz.PassingScore,
		MaxAttempts:  quiz.MaxAttempts,
		IsActive:     quiz.IsActive,
		CreatedAt:    quiz.CreatedAt,
	}, nil
}

func (r *PressRepository) CountAttempts(ctx context.Context, studentID, quizID uint) (int, error) {
	count, err := r.dao.CountAttempts(ctx, studentID, quizID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountAttempts -> %w", err)
	}

	return count, nil
}

func (r *PressRepository) CreateAttempt(ctx context.Context, attempt domain.PressAttempt) (domain.PressAttempt, error) {
	answers, err := json.Marshal(attempt.Answers)
	if err != nil {
		return domain.PressAttempt{}, fmt.Errorf("json.Marshal answers -> %w", err)
	}

	created, err := r.dao.InsertAttempt(ctx, dao.PressAttempt{
		StudentID:     attempt.StudentID,
		PressQuizID:   attempt.PressQuizID,
		AttemptNumber: attempt.AttemptNumber,
		AnswersJSON:   string(answers),
		Score:         attempt.Score,
		Result:        string(attempt.Result),
		CreatedAt:     attempt.CreatedAt,
	})
	if err != nil {
		return domain.PressAttempt{}, fmt.Errorf("r.dao.InsertAttempt -> %w", err)
	}

	attempt.ID = created.ID

	return attempt, nil
}
