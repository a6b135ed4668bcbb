package domain

const (
	ApplicantApplied     = "applied"
	ApplicantPending     = "Pending"
	ApplicantShortlisted = "Shortlisted"
	ApplicantRejected    = "Rejected"
)

// Applicant is a denormalized snapshot taken when the application form is
// submitted. One row per (user, job).
type Applicant struct {
	Base
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"not null" json:"email"`
	JobTitle string `gorm:"not null" json:"jobTitle"`
	Location string `gorm:"not null" json:"location"`
	Resume   string `gorm:"not null" json:"resume"`
	Status   string `gorm:"type:varchar(20);not null;default:applied" json:"status"`
	JobID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_applicant_user_job" json:"job"`
	UserID   string `gorm:"type:varchar(36);not null;uniqueIndex:idx_applicant_user_job;index" json:"user"`
}
