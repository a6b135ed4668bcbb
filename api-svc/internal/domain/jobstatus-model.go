package domain

const (
	JobStatusApplied     = "applied"
	JobStatusRejected    = "rejected"
	JobStatusNotEligible = "not eligible"
)

// JobStatusFinal reports whether status is an outcome a user cannot leave.
func JobStatusFinal(status string) bool {
	return status == JobStatusRejected || status == JobStatusNotEligible
}

type JobStatus struct {
	Base
	UserID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_job_status_user_job;index" json:"userId"`
	JobID  string `gorm:"type:varchar(36);not null;uniqueIndex:idx_job_status_user_job" json:"jobId"`
	Status string `gorm:"type:varchar(30);not null" json:"status"`
}
