package domain

import (
	"math"
	"time"
)

// PressQuiz is the press-conference mini-game attached to a track scene.
type PressQuiz struct {
	ID           uint           `json:"id"`
	TrackSceneID uint           `json:"track_scene_id"`
	SeasonID     string         `json:"season_id"`
	Questions    []QuizQuestion `json:"questions"`
	PassingScore int            `json:"passing_score"`
	MaxAttempts  int            `json:"max_attempts"`
	IsActive     bool           `json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
}

type QuizQuestion struct {
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

type PressResult string

const (
	PressPass PressResult = "PASS"
	PressFail PressResult = "FAIL"
)

// PressAttempt records one graded answer sheet.
type PressAttempt struct {
	ID            uint        `json:"id"`
	StudentID     uint        `json:"student_id"`
	PressQuizID   uint        `json:"press_quiz_id"`
	AttemptNumber int         `json:"attempt_number"`
	Answers       []int       `json:"answers"`
	Score         int         `json:"score"`
	Result        PressResult `json:"result"`
	CreatedAt     time.Time   `json:"created_at"`
}

// QuizGrade is the outcome of grading an answer sheet.
type QuizGrade struct {
	Score          int  `json:"score"`
	CorrectAnswers int  `json:"correct_answers"`
	TotalQuestions int  `json:"total_questions"`
	Passed         bool `json:"passed"`
}

// GradeQuiz scores answers against the quiz. Score is the percentage of
// correct answers rounded to the nearest whole percent; missing answers
// count as wrong.
func GradeQuiz(quiz PressQuiz, answers []int) QuizGrade {
	grade := QuizGrade{TotalQuestions: len(quiz.Questions)}
	if grade.TotalQuestions == 0 {
		return grade
	}

	for i, q := range quiz.Questions {
		if i < len(answers) && answers[i] == q.CorrectAnswer {
			grade.CorrectAnswers++
		}
	}

	grade.Score = int(math.Round(float64(grade.CorrectAnswers) / float64(grade.TotalQuestions) * 100))
	grade.Passed = grade.Score >= quiz.PassingScore

	return grade
}
