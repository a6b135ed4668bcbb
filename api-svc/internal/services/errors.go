package services

import (
	"errors"

	"github.com/quixjob/backend/api-svc/internal/helper/utils"
	"github.com/quixjob/backend/api-svc/internal/repository"
)

var ErrUserNotFound = errors.New("user not found")

// storageErr maps a repository failure onto a 404 with notFound as message,
// or a generic 500.
func storageErr(err error, notFound string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.NotFound(notFound)
	}
	return utils.Internal(err)
}
