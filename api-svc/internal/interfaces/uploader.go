package interfaces

import "context"

// Uploader stores a file and returns the reference clients use to fetch it.
// Remove deletes a file stored under the same folder and filename; a missing
// file is not an error.
type Uploader interface {
	UploadBytes(ctx context.Context, folder string, filename string, b []byte) (string, error)
	Remove(ctx context.Context, folder string, filename string) error
}
