package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quixjob/backend/api-svc/internal/domain"
)

type JobRepository interface {
	CreateJob(ctx context.Context, job *domain.Job) error
	SaveJob(ctx context.Context, job *domain.Job) error
	FindJobByID(ctx context.Context, id string) (*domain.Job, error)
	FindJobsByIDs(ctx context.Context, ids []string) ([]domain.Job, error)
	FindAllJobs(ctx context.Context) ([]domain.Job, error)
	FindJobsByEmployer(ctx context.Context, employerID string) ([]domain.Job, error)
	// DeleteJob removes the job together with its applicants and job
	// statuses.
	DeleteJob(ctx context.Context, id string) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) CreateJob(ctx context.Context, job *domain.Job) error {
	return wrap("create job", r.db.WithContext(ctx).Create(job).Error)
}

func (r *jobRepository) SaveJob(ctx context.Context, job *domain.Job) error {
	return wrap("save job", r.db.WithContext(ctx).Save(job).Error)
}

func (r *jobRepository) FindJobByID(ctx context.Context, id string) (*domain.Job, error) {
	job := &domain.Job{}
	if err := r.db.WithContext(ctx).First(job, "id = ?", id).Error; err != nil {
		return nil, wrap("find job", err)
	}
	return job, nil
}

func (r *jobRepository) FindJobsByIDs(ctx context.Context, ids []string) ([]domain.Job, error) {
	var jobs []domain.Job
	if len(ids) == 0 {
		return jobs, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&jobs).Error
	return jobs, wrap("find jobs by ids", err)
}

func (r *jobRepository) FindAllJobs(ctx context.Context) ([]domain.Job, error) {
	var jobs []domain.Job
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&jobs).Error
	return jobs, wrap("find jobs", err)
}

func (r *jobRepository) FindJobsByEmployer(ctx context.Context, employerID string) ([]domain.Job, error) {
	var jobs []domain.Job
	err := r.db.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("created_at DESC").
		Find(&jobs).Error
	return jobs, wrap("find jobs by employer", err)
}

func (r *jobRepository) DeleteJob(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&domain.Applicant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("job_id = ?", id).Delete(&domain.JobStatus{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Job{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return wrap("delete job", err)
}
