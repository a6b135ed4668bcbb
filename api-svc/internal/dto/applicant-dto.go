package dto

import "github.com/quixjob/backend/api-svc/internal/domain"

// AddApplicantRequest is the multipart form accompanying the resume file.
type AddApplicantRequest struct {
	Name     string `json:"name" form:"name" validate:"required,nocontrol"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Location string `json:"location" form:"location" validate:"required"`
	JobTitle string `json:"jobTitle" form:"jobTitle" validate:"required"`
	JobID    string `json:"jobId" form:"jobId" validate:"required"`
}

type UpdateApplicantStatusRequest struct {
	ApplicantID string `json:"applicantId" validate:"required"`
	Status      string `json:"status" validate:"required,oneof=applied Pending Shortlisted Rejected"`
}

// EmployerApplicationView is an applicant to one of the caller's jobs.
type EmployerApplicationView struct {
	domain.Applicant
	ApplicantName string `json:"applicantName"`
}

// ResumeFile is an uploaded resume already read into memory.
type ResumeFile struct {
	Filename string
	Data     []byte
}
