package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/quixjob/backend/api-svc/internal/domain"
)

type JobStatusRepository interface {
	// Upsert keeps a single row per (user, job). created reports whether the
	// row was inserted rather than updated.
	Upsert(ctx context.Context, userID, jobID, status string) (js *domain.JobStatus, created bool, err error)
	FindByUserAndJob(ctx context.Context, userID, jobID string) (*domain.JobStatus, error)
	FindByUser(ctx context.Context, userID string) ([]domain.JobStatus, error)
	FindByJob(ctx context.Context, jobID string) ([]domain.JobStatus, error)
}

type jobStatusRepository struct {
	db *gorm.DB
}

func NewJobStatusRepository(db *gorm.DB) JobStatusRepository {
	return &jobStatusRepository{db: db}
}

func (r *jobStatusRepository) Upsert(ctx context.Context, userID, jobID, status string) (*domain.JobStatus, bool, error) {
	db := r.db.WithContext(ctx)

	existing := &domain.JobStatus{}
	err := db.First(existing, "user_id = ? AND job_id = ?", userID, jobID).Error
	switch {
	case err == nil:
		existing.Status = status
		if err := db.Model(existing).Update("status", status).Error; err != nil {
			return nil, false, wrap("update job status", err)
		}
		return existing, false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, wrap("find job status", err)
	}

	js := &domain.JobStatus{UserID: userID, JobID: jobID, Status: status}
	// A concurrent insert for the same pair turns into an update.
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "job_id"}},
		DoUpdates: clause.Assignments(map[string]any{"status": status}),
	}).Create(js).Error
	if err != nil {
		return nil, false, wrap("create job status", err)
	}
	return js, true, nil
}

func (r *jobStatusRepository) FindByUserAndJob(ctx context.Context, userID, jobID string) (*domain.JobStatus, error) {
	js := &domain.JobStatus{}
	err := r.db.WithContext(ctx).First(js, "user_id = ? AND job_id = ?", userID, jobID).Error
	if err != nil {
		return nil, wrap("find job status", err)
	}
	return js, nil
}

func (r *jobStatusRepository) FindByUser(ctx context.Context, userID string) ([]domain.JobStatus, error) {
	var list []domain.JobStatus
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&list).Error
	return list, wrap("find job statuses by user", err)
}

func (r *jobStatusRepository) FindByJob(ctx context.Context, jobID string) ([]domain.JobStatus, error) {
	var list []domain.JobStatus
	err := r.db.WithContext(ctx).Where("job_id = ?", jobID).Find(&list).Error
	return list, wrap("find job statuses by job", err)
}
