package dto

import "github.com/quixjob/backend/api-svc/internal/domain"

type QuizQuestionInput struct {
	Question      string   `json:"question" validate:"required"`
	Options       []string `json:"options" validate:"required,min=2,dive,required"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required"`
}

type CreateJobRequest struct {
	Title         string              `json:"title" validate:"required"`
	Description   string              `json:"description" validate:"required"`
	Location      string              `json:"location" validate:"required"`
	Company       string              `json:"company" validate:"required"`
	Salary        float64             `json:"salary" validate:"gte=0"`
	QuizQuestions []QuizQuestionInput `json:"quizQuestions" validate:"dive"`
}

type UpdateJobRequest struct {
	Title         *string              `json:"title,omitempty" validate:"omitempty,min=1"`
	Description   *string              `json:"description,omitempty" validate:"omitempty,min=1"`
	Location      *string              `json:"location,omitempty" validate:"omitempty,min=1"`
	Company       *string              `json:"company,omitempty" validate:"omitempty,min=1"`
	Salary        *float64             `json:"salary,omitempty" validate:"omitempty,gte=0"`
	QuizQuestions *[]QuizQuestionInput `json:"quizQuestions,omitempty" validate:"omitempty,dive"`
}

func ToQuizQuestions(in []QuizQuestionInput) []domain.QuizQuestion {
	out := make([]domain.QuizQuestion, len(in))
	for i, q := range in {
		out[i] = domain.QuizQuestion{Question: q.Question, Options: q.Options, CorrectAnswer: q.CorrectAnswer}
	}
	return out
}

type QuizSubmission struct {
	Answers []string `json:"answers"`
}

type QuizResult struct {
	Score  float64 `json:"score"`
	Passed bool    `json:"passed"`
	Status string  `json:"status"`
}
