package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/quixjob/backend/api-svc/internal/domain"
	"github.com/quixjob/backend/api-svc/internal/dto"
	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/repository"
)

type JobService interface {
	CreateJob(ctx context.Context, employerID string, input dto.CreateJobRequest) (*domain.Job, error)
	ListJobs(ctx context.Context, viewerID string) ([]domain.Job, error)
	ListEmployerJobs(ctx context.Context, viewerID, employerID string) ([]domain.Job, error)
	UpdateJob(ctx context.Context, userID, jobID string, input dto.UpdateJobRequest) (*domain.Job, error)
	DeleteJob(ctx context.Context, userID, jobID string) error
	// SubmitQuiz scores answers server side and records the outcome as the
	// caller's single JobStatus for the job.
	SubmitQuiz(ctx context.Context, userID, jobID string, input dto.QuizSubmission) (*dto.QuizResult, error)
}

type jobService struct {
	repo        repository.JobRepository
	statuses    repository.JobStatusRepository
	passPercent float64
}

func NewJobService(repo repository.JobRepository, statuses repository.JobStatusRepository, passPercent float64) JobService {
	return &jobService{repo: repo, statuses: statuses, passPercent: passPercent}
}

func (s *jobService) CreateJob(ctx context.Context, employerID string, input dto.CreateJobRequest) (*domain.Job, error) {
	questions := dto.ToQuizQuestions(input.QuizQuestions)
	if err := checkQuiz(questions); err != nil {
		return nil, err
	}

	job := &domain.Job{
		Title:         strings.TrimSpace(input.Title),
		Description:   input.Description,
		Location:      strings.TrimSpace(input.Location),
		Company:       strings.TrimSpace(input.Company),
		Salary:        input.Salary,
		EmployerID:    employerID,
		QuizQuestions: questions,
	}
	if err := s.repo.CreateJob(ctx, job); err != nil {
		return nil, utils.Internal(err)
	}
	return job, nil
}

func (s *jobService) ListJobs(ctx context.Context, viewerID string) ([]domain.Job, error) {
	jobs, err := s.repo.FindAllJobs(ctx)
	if err != nil {
		return nil, utils.Internal(err)
	}
	return hideAnswers(jobs, viewerID), nil
}

func (s *jobService) ListEmployerJobs(ctx context.Context, viewerID, employerID string) ([]domain.Job, error) {
	jobs, err := s.repo.FindJobsByEmployer(ctx, employerID)
	if err != nil {
		return nil, utils.Internal(err)
	}
	return hideAnswers(jobs, viewerID), nil
}

func (s *jobService) ownedJob(ctx context.Context, userID, jobID string) (*domain.Job, error) {
	job, err := s.repo.FindJobByID(ctx, jobID)
	if err != nil {
		return nil, storageErr(err, "Job not found")
	}
	if job.EmployerID != userID {
		return nil, utils.Forbidden("You are not allowed to modify this job")
	}
	return job, nil
}

func (s *jobService) UpdateJob(ctx context.Context, userID, jobID string, input dto.UpdateJobRequest) (*domain.Job, error) {
	job, err := s.ownedJob(ctx, userID, jobID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		job.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		job.Description = *input.Description
	}
	if input.Location != nil {
		job.Location = strings.TrimSpace(*input.Location)
	}
	if input.Company != nil {
		job.Company = strings.TrimSpace(*input.Company)
	}
	if input.Salary != nil {
		job.Salary = *input.Salary
	}
	if input.QuizQuestions != nil {
		questions := dto.ToQuizQuestions(*input.QuizQuestions)
		if err := checkQuiz(questions); err != nil {
			return nil, err
		}
		job.QuizQuestions = questions
	}

	if err := s.repo.SaveJob(ctx, job); err != nil {
		return nil, utils.Internal(err)
	}
	return job, nil
}

func (s *jobService) DeleteJob(ctx context.Context, userID, jobID string) error {
	if _, err := s.ownedJob(ctx, userID, jobID); err != nil {
		return err
	}
	if err := s.repo.DeleteJob(ctx, jobID); err != nil {
		return storageErr(err, "Job not found")
	}
	return nil
}

func (s *jobService) SubmitQuiz(ctx context.Context, userID, jobID string, input dto.QuizSubmission) (*dto.QuizResult, error) {
	job, err := s.repo.FindJobByID(ctx, jobID)
	if err != nil {
		return nil, storageErr(err, "Job not found")
	}
	if job.EmployerID == userID {
		return nil, utils.BadRequest("You cannot apply to your own job")
	}

	if _, err := s.statuses.FindByUserAndJob(ctx, userID, jobID); err == nil {
		return nil, utils.BadRequest("You have already attempted this quiz")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, utils.Internal(err)
	}

	score := ScoreQuiz(job.QuizQuestions, input.Answers)
	result := &dto.QuizResult{Score: score, Passed: score >= s.passPercent}
	result.Status = domain.JobStatusNotEligible
	if result.Passed {
		result.Status = domain.JobStatusApplied
	}

	if _, _, err := s.statuses.Upsert(ctx, userID, jobID, result.Status); err != nil {
		return nil, utils.Internal(err)
	}
	return result, nil
}

// ScoreQuiz returns the percentage of questions answered correctly, rounded
// to two decimals. Missing answers count as wrong; a job without questions
// scores 100.
func ScoreQuiz(questions []domain.QuizQuestion, answers []string) float64 {
	if len(questions) == 0 {
		return 100
	}
	correct := 0
	for i, q := range questions {
		if i < len(answers) && strings.TrimSpace(answers[i]) == q.CorrectAnswer {
			correct++
		}
	}
	pct := float64(correct) / float64(len(questions)) * 100
	return math.Round(pct*100) / 100
}

func checkQuiz(questions []domain.QuizQuestion) error {
	for i, q := range questions {
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return utils.BadRequest(fmt.Sprintf("quiz question %d has no matching correct answer", i+1))
		}
	}
	return nil
}

func hideAnswers(jobs []domain.Job, viewerID string) []domain.Job {
	for i := range jobs {
		if jobs[i].EmployerID != viewerID {
			jobs[i] = jobs[i].WithoutAnswers()
		}
	}
	return jobs
}
