package domain

type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer,omitempty"`
}

type Job struct {
	Base
	Title         string         `gorm:"not null" json:"title"`
	Description   string         `gorm:"not null" json:"description"`
	Location      string         `gorm:"not null" json:"location"`
	Company       string         `gorm:"not null" json:"company"`
	Salary        float64        `gorm:"not null" json:"salary"`
	EmployerID    string         `gorm:"type:varchar(36);not null;index" json:"employer"`
	QuizQuestions []QuizQuestion `gorm:"serializer:json;type:text" json:"quizQuestions"`
}

// WithoutAnswers returns a copy whose quiz questions omit the correct answer.
func (j Job) WithoutAnswers() Job {
	qs := make([]QuizQuestion, len(j.QuizQuestions))
	for i, q := range j.QuizQuestions {
		qs[i] = QuizQuestion{Question: q.Question, Options: q.Options}
	}
	j.QuizQuestions = qs
	return j
}
