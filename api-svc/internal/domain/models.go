package domain

// Models lists every table for AutoMigrate.
func Models() []any {
	return []any{
		&User{},
		&ConnectionRequest{},
		&Post{},
		&Job{},
		&Applicant{},
		&JobStatus{},
		&Rating{},
		&Message{},
		&Notification{},
	}
}
