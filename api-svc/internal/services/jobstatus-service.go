package services

import (
	"context"
	"errors"

	"github.com/quixjob/backend/api-svc/internal/domain"
	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/repository"
)

type JobStatusService interface {
	SaveStatus(ctx context.Context, callerID string, input dto.SaveJobStatusRequest) (js *domain.JobStatus, created bool, err error)
	ListStatuses(ctx context.Context, callerID, userID string) ([]dto.JobStatusView, error)
}

type jobStatusService struct {
	repo repository.JobStatusRepository
	jobs repository.JobRepository
}

func NewJobStatusService(repo repository.JobStatusRepository, jobs repository.JobRepository) JobStatusService {
	return &jobStatusService{repo: repo, jobs: jobs}
}

func (s *jobStatusService) SaveStatus(ctx context.Context, callerID string, input dto.SaveJobStatusRequest) (*domain.JobStatus, bool, error) {
	if input.UserID != callerID {
		return nil, false, utils.Forbidden("You can only report your own job status")
	}
	if input.Status == domain.JobStatusApplied {
		return nil, false, utils.Forbidden("The applied status is granted by passing the job quiz")
	}
	if _, err := s.jobs.FindJobByID(ctx, input.JobID); err != nil {
		return nil, false, storageErr(err, "Job not found")
	}

	current, err := s.repo.FindByUserAndJob(ctx, input.UserID, input.JobID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return nil, false, utils.Internal(err)
	case domain.JobStatusFinal(current.Status) && current.Status != input.Status:
		return nil, false, utils.BadRequest("Job status is already final")
	}

	js, created, err := s.repo.Upsert(ctx, input.UserID, input.JobID, input.Status)
	if err != nil {
		return nil, false, utils.Internal(err)
	}
	return js, created, nil
}

func (s *jobStatusService) ListStatuses(ctx context.Context, callerID, userID string) ([]dto.JobStatusView, error) {
	if callerID != userID {
		return nil, utils.Forbidden("You can only view your own job statuses")
	}

	list, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, utils.Internal(err)
	}
	ids := make([]string, 0, len(list))
	for _, js := range list {
		ids = append(ids, js.JobID)
	}
	jobs, err := s.jobs.FindJobsByIDs(ctx, ids)
	if err != nil {
		return nil, utils.Internal(err)
	}
	byID := make(map[string]domain.Job, len(jobs))
	for _, j := range hideAnswers(jobs, callerID) {
		byID[j.ID] = j
	}

	out := make([]dto.JobStatusView, 0, len(list))
	for _, js := range list {
		view := dto.JobStatusView{
			ID:        js.ID,
			UserID:    js.UserID,
			JobID:     js.JobID,
			Status:    js.Status,
			UpdatedAt: js.UpdatedAt,
		}
		if j, ok := byID[js.JobID]; ok {
			view.Job = &j
		}
		out = append(out, view)
	}
	return out, nil
}
