package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixjob/backend/api-svc/internal/domain"
	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
)

var fourQuestions = []domain.QuizQuestion{
	{Question: "q1", Options: []string{"a", "b"}, CorrectAnswer: "a"},
	{Question: "q2", Options: []string{"a", "b"}, CorrectAnswer: "b"},
	{Question: "q3", Options: []string{"a", "b"}, CorrectAnswer: "a"},
	{Question: "q4", Options: []string{"a", "b"}, CorrectAnswer: "b"},
}

func TestScoreQuiz(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		want    float64
	}{
		{"all correct", []string{"a", "b", "a", "b"}, 100},
		{"three of four", []string{"a", "b", "a", "a"}, 75},
		{"missing answers", []string{"a"}, 25},
		{"none", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreQuiz(fourQuestions, tt.answers))
		})
	}
	assert.Equal(t, float64(100), ScoreQuiz(nil, nil))
}

func TestSubmitQuiz_PassThenBlocked(t *testing.T) {
	f := newFixture(t)
	svc := NewJobService(f.jobs, f.statuses, 75)
	emp := f.user(t, "emp")
	x := f.user(t, "x")
	job := f.job(t, emp.ID, fourQuestions...)

	res, err := svc.SubmitQuiz(context.Background(), x.ID, job.ID, dto.QuizSubmission{Answers: []string{"a", "b", "a", "a"}})
	require.NoError(t, err)
	assert.True(t, res.Passed)
	assert.Equal(t, domain.JobStatusApplied, res.Status)

	_, err = svc.SubmitQuiz(context.Background(), x.ID, job.ID, dto.QuizSubmission{Answers: []string{"a", "b", "a", "b"}})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))

	rows, err := f.statuses.FindByJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestSubmitQuiz_Fail(t *testing.T) {
	f := newFixture(t)
	svc := NewJobService(f.jobs, f.statuses, 75)
	emp := f.user(t, "emp")
	x := f.user(t, "x")
	job := f.job(t, emp.ID, fourQuestions...)

	res, err := svc.SubmitQuiz(context.Background(), x.ID, job.ID, dto.QuizSubmission{Answers: []string{"b", "b", "a", "a"}})
	require.NoError(t, err)
	assert.False(t, res.Passed)
	assert.Equal(t, domain.JobStatusNotEligible, res.Status)
}

func TestListJobs_HidesAnswersFromOthers(t *testing.T) {
	f := newFixture(t)
	svc := NewJobService(f.jobs, f.statuses, 75)
	emp := f.user(t, "emp")
	other := f.user(t, "other")
	f.job(t, emp.ID, fourQuestions...)

	jobs, err := svc.ListJobs(context.Background(), other.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Empty(t, jobs[0].QuizQuestions[0].CorrectAnswer)

	jobs, err = svc.ListEmployerJobs(context.Background(), emp.ID, emp.ID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "a", jobs[0].QuizQuestions[0].CorrectAnswer)
}

func TestUpdateAndDeleteJob_OwnerOnly(t *testing.T) {
	f := newFixture(t)
	svc := NewJobService(f.jobs, f.statuses, 75)
	emp := f.user(t, "emp")
	other := f.user(t, "other")
	job := f.job(t, emp.ID)

	title := "Staff Engineer"
	_, err := svc.UpdateJob(context.Background(), other.ID, job.ID, dto.UpdateJobRequest{Title: &title})
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))

	updated, err := svc.UpdateJob(context.Background(), emp.ID, job.ID, dto.UpdateJobRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)

	err = svc.DeleteJob(context.Background(), other.ID, job.ID)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))

	require.NoError(t, svc.DeleteJob(context.Background(), emp.ID, job.ID))
	err = svc.DeleteJob(context.Background(), emp.ID, job.ID)
	assert.Equal(t, http.StatusNotFound, utils.StatusOf(err))
}

func TestCreateJob_RejectsUnmatchedAnswer(t *testing.T) {
	f := newFixture(t)
	svc := NewJobService(f.jobs, f.statuses, 75)

	_, err := svc.CreateJob(context.Background(), "emp", dto.CreateJobRequest{
		Title: "t", Description: "d", Location: "l", Company: "c",
		QuizQuestions: []dto.QuizQuestionInput{{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: "z"}},
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))
}
