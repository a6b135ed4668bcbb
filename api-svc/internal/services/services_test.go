package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/quixjob/backend/api-svc/internal/domain"
	"github.com/quixjob/backend/api-svc/internal/helper"
	"github.com/quixjob/backend/api-svc/internal/repository"
	"github.com/quixjob/backend/pkg/mailer"
)

type fakeNotifier struct {
	mu   sync.Mutex
	sent []mailer.Notification
	err  error
}

func (f *fakeNotifier) Notify(_ context.Context, n mailer.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return f.err
}

func (f *fakeNotifier) last() mailer.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return mailer.Notification{}
	}
	return f.sent[len(f.sent)-1]
}

func (f *fakeNotifier) count(kind mailer.Kind) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.sent {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

type memUploader struct {
	files map[string][]byte
	err   error
}

func (u *memUploader) Remove(_ context.Context, folder, filename string) error {
	delete(u.files, "/uploads/"+folder+"/"+filename)
	return nil
}

func (u *memUploader) UploadBytes(_ context.Context, folder, filename string, b []byte) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	if u.files == nil {
		u.files = map[string][]byte{}
	}
	ref := "/uploads/" + folder + "/" + filename
	u.files[ref] = b
	return ref, nil
}

type fixture struct {
	db         *gorm.DB
	users      repository.UserRepository
	conns      repository.ConnectionRepository
	posts      repository.PostRepository
	jobs       repository.JobRepository
	applicants repository.ApplicantRepository
	statuses   repository.JobStatusRepository
	ratings    repository.RatingRepository
	messages   repository.MessageRepository
	notes      repository.NotificationRepository
	notifier   *fakeNotifier
	uploader   *memUploader
	auth       helper.Auth
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(domain.Models()...))

	return &fixture{
		db:         db,
		users:      repository.NewUserRepository(db),
		conns:      repository.NewConnectionRepository(db),
		posts:      repository.NewPostRepository(db),
		jobs:       repository.NewJobRepository(db),
		applicants: repository.NewApplicantRepository(db),
		statuses:   repository.NewJobStatusRepository(db),
		ratings:    repository.NewRatingRepository(db),
		messages:   repository.NewMessageRepository(db),
		notes:      repository.NewNotificationRepository(db),
		notifier:   &fakeNotifier{},
		uploader:   &memUploader{},
		auth:       helper.SetupAuth("test-secret", time.Hour),
	}
}

func (f *fixture) user(t *testing.T, username string) *domain.User {
	t.Helper()
	u := &domain.User{
		Name:         "User " + username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Verified:     true,
	}
	require.NoError(t, f.users.CreateUser(context.Background(), u))
	return u
}

func (f *fixture) job(t *testing.T, employerID string, questions ...domain.QuizQuestion) *domain.Job {
	t.Helper()
	j := &domain.Job{
		Title:         "Backend Engineer",
		Description:   "Build APIs",
		Location:      "Remote",
		Company:       "QuiX",
		Salary:        1000,
		EmployerID:    employerID,
		QuizQuestions: questions,
	}
	require.NoError(t, f.jobs.CreateJob(context.Background(), j))
	return j
}
