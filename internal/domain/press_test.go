package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pressQuiz(passingScore int) PressQuiz {
	return PressQuiz{
		PassingScore: passingScore,
		Questions: []QuizQuestion{
			{CorrectAnswer: 0},
			{CorrectAnswer: 2},
			{CorrectAnswer: 1},
			{CorrectAnswer: 3},
		},
	}
}

func TestGradeQuiz(t *testing.T) {
	tests := []struct {
		name    string
		answers []int
		score   int
		correct int
		passed  bool
	}{
		{"all correct", []int{0, 2, 1, 3}, 100, 4, true},
		{"three of four", []int{0, 2, 1, 0}, 75, 3, true},
		{"half", []int{0, 2, 0, 0}, 50, 2, false},
		{"none", []int{1, 1, 0, 0}, 0, 0, false},
		{"short answer sheet counts missing as wrong", []int{0, 2}, 50, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grade := GradeQuiz(pressQuiz(70), tt.answers)

			assert.Equal(t, tt.score, grade.Score)
			assert.Equal(t, tt.correct, grade.CorrectAnswers)
			assert.Equal(t, 4, grade.TotalQuestions)
			assert.Equal(t, tt.passed, grade.Passed)
		})
	}
}

func TestGradeQuiz_RoundsToNearestPercent(t *testing.T) {
	quiz := PressQuiz{
		PassingScore: 67,
		Questions: []QuizQuestion{
			{CorrectAnswer: 0},
			{CorrectAnswer: 1},
			{CorrectAnswer: 2},
		},
	}

	// 2/3 is 66.67; a floor here would fail a 67 passing score.
	grade := GradeQuiz(quiz, []int{0, 1, 0})

	assert.Equal(t, 67, grade.Score)
	assert.True(t, grade.Passed)

	grade = GradeQuiz(quiz, []int{0, 0, 0})

	assert.Equal(t, 33, grade.Score)
	assert.False(t, grade.Passed)
}

func TestGradeQuiz_EmptyQuiz(t *testing.T) {
	grade := GradeQuiz(PressQuiz{PassingScore: 70}, []int{1, 2})

	assert.Equal(t, 0, grade.Score)
	assert.False(t, grade.Passed)
}

func TestGradeQuiz_PassingBoundary(t *testing.T) {
	grade := GradeQuiz(pressQuiz(75), []int{0, 2, 1, 0})

	assert.Equal(t, 75, grade.Score)
	assert.True(t, grade.Passed)
}
