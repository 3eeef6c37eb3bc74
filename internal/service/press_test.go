package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clavedesales/clave-api/internal/domain"
	"github.com/clavedesales/clave-api/internal/repository"
)

type fakePressRepo struct {
	quizzes  map[uint]domain.PressQuiz
	attempts []domain.PressAttempt
}

func newFakePressRepo(quizzes ...domain.PressQuiz) *fakePressRepo {
	repo := &fakePressRepo{
		quizzes: make(map[uint]domain.PressQuiz),
	}
	for _, quiz := range quizzes {
		repo.quizzes[quiz.ID] = quiz
	}

	return repo
}

func (f *fakePressRepo) FindQuiz(_ context.Context, id uint) (domain.PressQuiz, error) {
	quiz, ok := f.quizzes[id]
	if !ok {
		return domain.PressQuiz{}, repository.ErrPressQuizNotFound
	}

	return quiz, nil
}

func (f *fakePressRepo) CountAttempts(_ context.Context, studentID, quizID uint) (int, error) {
	count := 0
	for _, attempt := range f.attempts {
		if attempt.StudentID == studentID && attempt.PressQuizID == quizID {
			count++
		}
	}

	return count, nil
}

func (f *fakePressRepo) CreateAttempt(_ context.Context, attempt domain.PressAttempt) (domain.PressAttempt, error) {
	attempt.ID = uint(len(f.attempts) + 1)
	f.attempts = append(f.attempts, attempt)

	return attempt, nil
}

func testQuiz() domain.PressQuiz {
	return domain.PressQuiz{
		ID:           1,
		TrackSceneID: 1,
		SeasonID:     testSeason,
		Questions: []domain.QuizQuestion{
			{Prompt: "Who wrote it?", Options: []string{"A", "B", "C"}, CorrectAnswer: 0},
			{Prompt: "What key?", Options: []string{"A", "B", "C"}, CorrectAnswer: 1},
			{Prompt: "What year?", Options: []string{"A", "B", "C"}, CorrectAnswer: 2},
		},
		PassingScore: 60,
		MaxAttempts:  2,
		IsActive:     true,
	}
}

func newTestPressService(repo *fakePressRepo, progression *fakeProgression) *PressService {
	svc := NewPressService(repo, progression)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	}

	return svc
}

func TestPressService_SubmitAttempt_Pass(t *testing.T) {
	repo := newFakePressRepo(testQuiz())
	progression := &fakeProgression{}
	svc := newTestPressService(repo, progression)

	attempt, err := svc.SubmitAttempt(context.Background(), 1, 1, []int{0, 1, 0})
	require.NoError(t, err)

	assert.Equal(t, 67, attempt.Score)
	assert.Equal(t, domain.PressPass, attempt.Result)
	assert.Equal(t, 1, attempt.AttemptNumber)
	assert.Equal(t, []domain.EventKind{domain.EventPressQuizPassed}, progression.events)
}

func TestPressService_SubmitAttempt_Fail(t *testing.T) {
	repo := newFakePressRepo(testQuiz())
	progression := &fakeProgression{}
	svc := newTestPressService(repo, progression)

	attempt, err := svc.SubmitAttempt(context.Background(), 1, 1, []int{2, 0, 0})
	require.NoError(t, err)

	assert.Equal(t, 0, attempt.Score)
	assert.Equal(t, domain.PressFail, attempt.Result)
	assert.Equal(t, []domain.EventKind{domain.EventPressQuizFailed}, progression.events)
}

func TestPressService_SubmitAttempt_MaxAttempts(t *testing.T) {
	repo := newFakePressRepo(testQuiz())
	svc := newTestPressService(repo, &fakeProgression{})

	_, err := svc.SubmitAttempt(context.Background(), 1, 1, []int{0, 0, 0})
	require.NoError(t, err)
	_, err = svc.SubmitAttempt(context.Background(), 1, 1, []int{0, 1, 0})
	require.NoError(t, err)

	_, err = svc.SubmitAttempt(context.Background(), 1, 1, []int{0, 1, 2})
	assert.ErrorIs(t, err, ErrMaxAttemptsReached)
}

func TestPressService_SubmitAttempt_Inactive(t *testing.T) {
	quiz := testQuiz()
	quiz.IsActive = false
	svc := newTestPressService(newFakePressRepo(quiz), &fakeProgression{})

	_, err := svc.SubmitAttempt(context.Background(), 1, 1, []int{0})
	assert.ErrorIs(t, err, ErrPressQuizInactive)
}

func TestPressService_SubmitAttempt_NoAnswers(t *testing.T) {
	svc := newTestPressService(newFakePressRepo(testQuiz()), &fakeProgression{})

	_, err := svc.SubmitAttempt(context.Background(), 1, 1, nil)
	assert.ErrorIs(t, err, ErrNoAnswersSubmitted)
}

func TestPressService_SubmitAttempt_UnknownQuiz(t *testing.T) {
	svc := newTestPressService(newFakePressRepo(), &fakeProgression{})

	_, err := svc.SubmitAttempt(context.Background(), 1, 9, []int{0})
	assert.ErrorIs(t, err, ErrPressQuizNotFound)
}
