package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/quixjob/backend/api-svc/internal/domain"
)

type ApplicantRepository interface {
	CreateApplicant(ctx context.Context, a *domain.Applicant) error
	FindApplicantByID(ctx context.Context, id string) (*domain.Applicant, error)
	FindApplicantByUserAndJob(ctx context.Context, userID, jobID string) (*domain.Applicant, error)
	FindApplicantsByUser(ctx context.Context, userID string) ([]domain.Applicant, error)
	FindApplicantsByJobs(ctx context.Context, jobIDs []string) ([]domain.Applicant, error)
	UpdateStatus(ctx context.Context, id, status string) error
	DeleteApplicant(ctx context.Context, id string) error
}

type applicantRepository struct {
	db *gorm.DB
}

func NewApplicantRepository(db *gorm.DB) ApplicantRepository {
	return &applicantRepository{db: db}
}

func (r *applicantRepository) CreateApplicant(ctx context.Context, a *domain.Applicant) error {
	return wrap("create applicant", r.db.WithContext(ctx).Create(a).Error)
}

func (r *applicantRepository) FindApplicantByID(ctx context.Context, id string) (*domain.Applicant, error) {
	a := &domain.Applicant{}
	if err := r.db.WithContext(ctx).First(a, "id = ?", id).Error; err != nil {
		return nil, wrap("find applicant", err)
	}
	return a, nil
}

func (r *applicantRepository) FindApplicantByUserAndJob(ctx context.Context, userID, jobID string) (*domain.Applicant, error) {
	a := &domain.Applicant{}
	err := r.db.WithContext(ctx).First(a, "user_id = ? AND job_id = ?", userID, jobID).Error
	if err != nil {
		return nil, wrap("find applicant by user and job", err)
	}
	return a, nil
}

func (r *applicantRepository) FindApplicantsByUser(ctx context.Context, userID string) ([]domain.Applicant, error) {
	var list []domain.Applicant
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, wrap("find applicants by user", err)
}

func (r *applicantRepository) FindApplicantsByJobs(ctx context.Context, jobIDs []string) ([]domain.Applicant, error) {
	var list []domain.Applicant
	if len(jobIDs) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).
		Where("job_id IN ?", jobIDs).
		Order("created_at DESC").
		Find(&list).Error
	return list, wrap("find applicants by jobs", err)
}

func (r *applicantRepository) UpdateStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).Model(&domain.Applicant{}).Where("id = ?", id).Update("status", status)
	if res.Error == nil && res.RowsAffected == 0 {
		return ErrNotFound
	}
	return wrap("update applicant status", res.Error)
}

func (r *applicantRepository) DeleteApplicant(ctx context.Context, id string) error {
	return wrap("delete applicant", r.db.WithContext(ctx).Delete(&domain.Applicant{}, "id = ?", id).Error)
}
