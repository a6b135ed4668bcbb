package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixjob/backend/api-svc/internal/domain"
	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/repository"
	"github.com/quixjob/backend/pkg/mailer"
)

func newApplicantService(f *fixture) ApplicantService {
	return NewApplicantService(f.applicants, f.jobs, f.statuses, f.users, f.uploader, f.notifier)
}

func applyForm(jobID string) dto.AddApplicantRequest {
	return dto.AddApplicantRequest{
		Name: "X", Email: "x@example.com", Location: "Remote", JobTitle: "Backend Engineer", JobID: jobID,
	}
}

var resume = dto.ResumeFile{Filename: "cv.pdf", Data: []byte("%PDF-1.4")}

func TestApply_AfterPassingQuiz(t *testing.T) {
	f := newFixture(t)
	jobs := NewJobService(f.jobs, f.statuses, 75)
	svc := newApplicantService(f)
	emp := f.user(t, "emp")
	x := f.user(t, "x")
	job := f.job(t, emp.ID, fourQuestions...)

	res, err := jobs.SubmitQuiz(context.Background(), x.ID, job.ID, dto.QuizSubmission{Answers: []string{"a", "b", "a", "b"}})
	require.NoError(t, err)
	require.True(t, res.Passed)

	a, created, err := svc.Apply(context.Background(), x.ID, applyForm(job.ID), resume)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, domain.ApplicantApplied, a.Status)
	assert.Contains(t, f.uploader.files, a.Resume)

	mine, err := svc.MyApplications(context.Background(), x.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, a.ID, mine[0].ID)

	again, created, err := svc.Apply(context.Background(), x.ID, applyForm(job.ID), resume)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, a.ID, again.ID)
	assert.Len(t, f.uploader.files, 1)

	js, err := f.statuses.FindByUserAndJob(context.Background(), x.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusApplied, js.Status)
}

func TestApply_RejectsIneligibleAndBadFiles(t *testing.T) {
	f := newFixture(t)
	svc := newApplicantService(f)
	emp := f.user(t, "emp")
	x := f.user(t, "x")
	job := f.job(t, emp.ID)

	_, _, err := svc.Apply(context.Background(), x.ID, applyForm(job.ID), dto.ResumeFile{Filename: "cv.exe", Data: []byte("MZ")})
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))

	_, _, err = svc.Apply(context.Background(), x.ID, applyForm(job.ID), dto.ResumeFile{Filename: "cv.pdf"})
	assert.Equal(t, http.StatusBadRequest, utils.StatusOf(err))

	_, _, err = f.statuses.Upsert(context.Background(), x.ID, job.ID, domain.JobStatusRejected)
	require.NoError(t, err)
	_, _, err = svc.Apply(context.Background(), x.ID, applyForm(job.ID), resume)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))
}

func TestApply_QuizJobRequiresPassingScore(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	jobs := NewJobService(f.jobs, f.statuses, 75)
	statuses := NewJobStatusService(f.statuses, f.jobs)
	svc := newApplicantService(f)
	emp := f.user(t, "emp")
	x := f.user(t, "x")
	job := f.job(t, emp.ID, fourQuestions...)

	_, created, err := svc.Apply(ctx, x.ID, applyForm(job.ID), resume)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))
	assert.False(t, created)
	_, err = f.statuses.FindByUserAndJob(ctx, x.ID, job.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = jobs.SubmitQuiz(ctx, x.ID, job.ID, dto.QuizSubmission{Answers: []string{"z", "z", "z", "z"}})
	require.NoError(t, err)
	_, _, err = statuses.SaveStatus(ctx, x.ID, dto.SaveJobStatusRequest{UserID: x.ID, JobID: job.ID, Status: domain.JobStatusApplied})
	require.Error(t, err)

	_, created, err = svc.Apply(ctx, x.ID, applyForm(job.ID), resume)
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))
	assert.False(t, created)
	assert.Empty(t, f.uploader.files)
}

type failingApplicantRepo struct {
	repository.ApplicantRepository
}

func (failingApplicantRepo) CreateApplicant(context.Context, *domain.Applicant) error {
	return errors.New("disk full")
}

func TestApply_StoreFailureRemovesResume(t *testing.T) {
	f := newFixture(t)
	svc := NewApplicantService(failingApplicantRepo{f.applicants}, f.jobs, f.statuses, f.users, f.uploader, f.notifier)
	emp := f.user(t, "emp")
	x := f.user(t, "x")
	job := f.job(t, emp.ID)

	_, _, err := svc.Apply(context.Background(), x.ID, applyForm(job.ID), resume)
	assert.Equal(t, http.StatusInternalServerError, utils.StatusOf(err))
	assert.Empty(t, f.uploader.files)
}

func TestUpdateStatus_RejectDeletesAndNotifies(t *testing.T) {
	f := newFixture(t)
	svc := newApplicantService(f)
	emp := f.user(t, "emp")
	x := f.user(t, "x")
	job := f.job(t, emp.ID)

	a, _, err := svc.Apply(context.Background(), x.ID, applyForm(job.ID), resume)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), x.ID, dto.UpdateApplicantStatusRequest{ApplicantID: a.ID, Status: domain.ApplicantRejected})
	assert.Equal(t, http.StatusForbidden, utils.StatusOf(err))

	_, err = svc.UpdateStatus(context.Background(), emp.ID, dto.UpdateApplicantStatusRequest{ApplicantID: a.ID, Status: domain.ApplicantRejected})
	require.NoError(t, err)

	_, err = f.applicants.FindApplicantByID(context.Background(), a.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	sent := f.notifier.last()
	assert.Equal(t, mailer.KindNotShortlisted, sent.Kind)
	assert.Equal(t, "x@example.com", sent.To)
	assert.Equal(t, "Backend Engineer", sent.Data["JobTitle"])
}

func TestUpdateStatus_ShortlistKeepsRecordWhenMailFails(t *testing.T) {
	f := newFixture(t)
	svc := newApplicantService(f)
	emp := f.user(t, "emp")
	x := f.user(t, "x")
	job := f.job(t, emp.ID)

	a, _, err := svc.Apply(context.Background(), x.ID, applyForm(job.ID), resume)
	require.NoError(t, err)

	f.notifier.err = errors.New("mail down")
	updated, err := svc.UpdateStatus(context.Background(), emp.ID, dto.UpdateApplicantStatusRequest{ApplicantID: a.ID, Status: domain.ApplicantShortlisted})
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicantShortlisted, updated.Status)

	stored, err := f.applicants.FindApplicantByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ApplicantShortlisted, stored.Status)
	assert.Equal(t, 1, f.notifier.count(mailer.KindShortlisted))
}

func TestApplicationsForMyJobs(t *testing.T) {
	f := newFixture(t)
	svc := newApplicantService(f)
	emp := f.user(t, "emp")
	x := f.user(t, "x")
	job := f.job(t, emp.ID)

	_, _, err := svc.Apply(context.Background(), x.ID, applyForm(job.ID), resume)
	require.NoError(t, err)

	list, err := svc.ApplicationsForMyJobs(context.Background(), emp.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, x.Name, list[0].ApplicantName)

	list, err = svc.ApplicationsForMyJobs(context.Background(), x.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
