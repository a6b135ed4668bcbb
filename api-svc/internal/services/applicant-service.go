package services

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/quixjob/backend/api-svc/internal/domain"
	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/interfaces"
	"github.com/quixjob/backend/api-svc/internal/repository"
	"github.com/quixjob/backend/pkg/logger"
	"github.com/quixjob/backend/pkg/mailer"
)

const (
	MaxResumeSize = 5 << 20
	resumeFolder  = "resumes"
)

var resumeExtensions = map[string]bool{".pdf": true, ".doc": true, ".docx": true}

type ApplicantService interface {
	// Apply records the caller's application. A repeat application for the
	// same job returns the existing record with created=false.
	Apply(ctx context.Context, userID string, input dto.AddApplicantRequest, resume dto.ResumeFile) (a *domain.Applicant, created bool, err error)
	UpdateStatus(ctx context.Context, employerID string, input dto.UpdateApplicantStatusRequest) (*domain.Applicant, error)
	MyApplications(ctx context.Context, userID string) ([]domain.Applicant, error)
	ApplicationsForMyJobs(ctx context.Context, employerID string) ([]dto.EmployerApplicationView, error)
}

type applicantService struct {
	repo     repository.ApplicantRepository
	jobs     repository.JobRepository
	statuses repository.JobStatusRepository
	users    repository.UserRepository
	uploader interfaces.Uploader
	notifier Notifier
}

func NewApplicantService(
	repo repository.ApplicantRepository,
	jobs repository.JobRepository,
	statuses repository.JobStatusRepository,
	users repository.UserRepository,
	uploader interfaces.Uploader,
	notifier Notifier,
) ApplicantService {
	return &applicantService{
		repo:     repo,
		jobs:     jobs,
		statuses: statuses,
		users:    users,
		uploader: uploader,
		notifier: notifier,
	}
}

func (s *applicantService) Apply(ctx context.Context, userID string, input dto.AddApplicantRequest, resume dto.ResumeFile) (*domain.Applicant, bool, error) {
	ext := strings.ToLower(filepath.Ext(resume.Filename))
	if len(resume.Data) == 0 {
		return nil, false, utils.BadRequest("Resume file is required")
	}
	if !resumeExtensions[ext] {
		return nil, false, utils.BadRequest("Resume must be a PDF or Word document")
	}
	if len(resume.Data) > MaxResumeSize {
		return nil, false, utils.BadRequest("Resume must be 5MB or smaller")
	}

	job, err := s.jobs.FindJobByID(ctx, input.JobID)
	if err != nil {
		return nil, false, storageErr(err, "Job not found")
	}
	if job.EmployerID == userID {
		return nil, false, utils.BadRequest("You cannot apply to your own job")
	}

	if existing, err := s.repo.FindApplicantByUserAndJob(ctx, userID, job.ID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, utils.Internal(err)
	}

	status, err := s.statuses.FindByUserAndJob(ctx, userID, job.ID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		if len(job.QuizQuestions) > 0 {
			return nil, false, utils.Forbidden("Please pass the job quiz before applying")
		}
		// a job without a quiz is applied to directly
		if _, _, err := s.statuses.Upsert(ctx, userID, job.ID, domain.JobStatusApplied); err != nil {
			return nil, false, utils.Internal(err)
		}
	case err != nil:
		return nil, false, utils.Internal(err)
	case status.Status != domain.JobStatusApplied:
		return nil, false, utils.Forbidden("You are not eligible to apply for this job")
	}

	filename := uuid.NewString() + ext
	ref, err := s.uploader.UploadBytes(ctx, resumeFolder, filename, resume.Data)
	if err != nil {
		return nil, false, utils.Internal(err)
	}

	applicant := &domain.Applicant{
		Name:     strings.TrimSpace(input.Name),
		Email:    utils.NormalizeEmail(input.Email),
		JobTitle: strings.TrimSpace(input.JobTitle),
		Location: strings.TrimSpace(input.Location),
		Resume:   ref,
		Status:   domain.ApplicantApplied,
		JobID:    job.ID,
		UserID:   userID,
	}
	if err := s.repo.CreateApplicant(ctx, applicant); err != nil {
		s.discardResume(ctx, filename)
		if helper.IsDuplicateKey(err) {
			existing, ferr := s.repo.FindApplicantByUserAndJob(ctx, userID, job.ID)
			if ferr != nil {
				return nil, false, utils.Internal(ferr)
			}
			return existing, false, nil
		}
		return nil, false, utils.Internal(err)
	}
	return applicant, true, nil
}

// discardResume removes a stored resume that no application references.
func (s *applicantService) discardResume(ctx context.Context, filename string) {
	if err := s.uploader.Remove(ctx, resumeFolder, filename); err != nil {
		logger.FromContext(ctx).Warn("orphaned resume left in storage",
			zap.String("folder", resumeFolder),
			zap.String("file", filename),
			zap.Error(err),
		)
	}
}

func (s *applicantService) UpdateStatus(ctx context.Context, employerID string, input dto.UpdateApplicantStatusRequest) (*domain.Applicant, error) {
	applicant, err := s.repo.FindApplicantByID(ctx, input.ApplicantID)
	if err != nil {
		return nil, storageErr(err, "Applicant not found")
	}
	job, err := s.jobs.FindJobByID(ctx, applicant.JobID)
	if err != nil {
		return nil, storageErr(err, "Job not found")
	}
	if job.EmployerID != employerID {
		return nil, utils.Forbidden("Only the employer can update this application")
	}

	if err := s.repo.UpdateStatus(ctx, applicant.ID, input.Status); err != nil {
		return nil, storageErr(err, "Applicant not found")
	}
	applicant.Status = input.Status

	data := map[string]string{"Name": applicant.Name, "JobTitle": applicant.JobTitle}
	switch input.Status {
	case domain.ApplicantShortlisted:
		notifyLogged(ctx, s.notifier, mailer.Notification{Kind: mailer.KindShortlisted, To: applicant.Email, Data: data})
	case domain.ApplicantRejected:
		notifyLogged(ctx, s.notifier, mailer.Notification{Kind: mailer.KindNotShortlisted, To: applicant.Email, Data: data})
		// rejected applications are removed once the applicant is told
		if err := s.repo.DeleteApplicant(ctx, applicant.ID); err != nil {
			return nil, utils.Internal(err)
		}
		logger.FromContext(ctx).Info("applicant removed after rejection",
			zap.String("applicant_id", applicant.ID),
			zap.String("job_id", applicant.JobID),
		)
	}
	return applicant, nil
}

func (s *applicantService) MyApplications(ctx context.Context, userID string) ([]domain.Applicant, error) {
	list, err := s.repo.FindApplicantsByUser(ctx, userID)
	if err != nil {
		return nil, utils.Internal(err)
	}
	return list, nil
}

func (s *applicantService) ApplicationsForMyJobs(ctx context.Context, employerID string) ([]dto.EmployerApplicationView, error) {
	jobs, err := s.jobs.FindJobsByEmployer(ctx, employerID)
	if err != nil {
		return nil, utils.Internal(err)
	}
	titles := make(map[string]string, len(jobs))
	jobIDs := make([]string, 0, len(jobs))
	for _, j := range jobs {
		titles[j.ID] = j.Title
		jobIDs = append(jobIDs, j.ID)
	}

	list, err := s.repo.FindApplicantsByJobs(ctx, jobIDs)
	if err != nil {
		return nil, utils.Internal(err)
	}

	userIDs := make([]string, 0, len(list))
	for _, a := range list {
		userIDs = append(userIDs, a.UserID)
	}
	users, err := s.users.FindUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, utils.Internal(err)
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	out := make([]dto.EmployerApplicationView, 0, len(list))
	for _, a := range list {
		if title, ok := titles[a.JobID]; ok {
			a.JobTitle = title
		}
		name, ok := names[a.UserID]
		if !ok {
			name = "Unknown Applicant"
		}
		out = append(out, dto.EmployerApplicationView{Applicant: a, ApplicantName: name})
	}
	return out, nil
}
