package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clavedesales/clave-api/internal/domain"
	"github.com/clavedesales/clave-api/internal/repository"
)

var (
	ErrPressQuizNotFound  = repository.ErrPressQuizNotFound
	ErrPressQuizInactive  = errors.New("press quiz is not active")
	ErrMaxAttemptsReached = errors.New("press quiz attempt limit reached")
	ErrNoAnswersSubmitted = errors.New("no answers submitted")
)

type PressRepository interface {
	FindQuiz(ctx context.Context, id uint) (domain.PressQuiz, error)
	CountAttempts(ctx context.Context, studentID, quizID uint) (int, error)
	CreateAttempt(ctx context.Context, attempt domain.PressAttempt) (domain.PressAttempt, error)
}

type PressService struct {
	repo        PressRepository
	progression Progression

	now func() time.Time
}

func NewPressService(repo PressRepository, progression Progression) *PressService {
	return &PressService{
		repo:        repo,
		progression: progression,
		now:         time.Now,
	}
}

// SubmitAttempt grades an answer sheet against the quiz, records the
// attempt and reports the pass/fail outcome to the student's career.
func (s *PressService) SubmitAttempt(ctx context.Context, studentID, quizID uint, answers []int) (domain.PressAttempt, error) {
	if len(answers) == 0 {
		return domain.PressAttempt{}, ErrNoAnswersSubmitted
	}

	quiz, err := s.repo.FindQuiz(ctx, quizID)
	if err != nil {
		return domain.PressAttempt{}, fmt.Errorf("s.repo.FindQuiz -> %w", err)
	}
	if !quiz.IsActive {
		return domain.PressAttempt{}, ErrPressQuizInactive
	}

	attempts, err := s.repo.CountAttempts(ctx, studentID, quizID)
	if err != nil {
		return domain.PressAttempt{}, fmt.Errorf("s.repo.CountAttempts -> %w", err)
	}
	if quiz.MaxAttempts > 0 && attempts >= quiz.MaxAttempts {
		return domain.PressAttempt{}, ErrMaxAttemptsReached
	}

	grade := domain.GradeQuiz(quiz, answers)

	result := domain.PressFail
	if grade.Passed {
		result = domain.PressPass
	}

	created, err := s.repo.CreateAttempt(ctx, domain.PressAttempt{
		StudentID:     studentID,
		PressQuizID:   quizID,
		AttemptNumber: attempts + 1,
		Answers:       answers,
		Score:         grade.Score,
		Result:        result,
		CreatedAt:     s.now(),
	})
	if err != nil {
		return domain.PressAttempt{}, fmt.Errorf("s.repo.CreateAttempt -> %w", err)
	}

	kind := domain.EventPressQuizFailed
	if grade.Passed {
		kind = domain.EventPressQuizPassed
	}

	if _, err = s.progression.ApplyEvent(ctx, studentID, kind); err != nil {
		return domain.PressAttempt{}, fmt.Errorf("s.progression.ApplyEvent -> %w", err)
	}

	return created, nil
}
