package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadBytes(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "/uploads/")
	require.NoError(t, err)

	ref, err := s.UploadBytes(context.Background(), "resumes", "abc.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/resumes/abc.pdf", ref)

	b, err := os.ReadFile(filepath.Join(dir, "resumes", "abc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(b))
}

func TestLocalStorage_RejectsTraversal(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir(), "/uploads")
	require.NoError(t, err)

	_, err = s.UploadBytes(context.Background(), "resumes", "../evil.pdf", []byte("x"))
	assert.Error(t, err)

	_, err = s.UploadBytes(context.Background(), "../..", "evil.pdf", []byte("x"))
	assert.Error(t, err)
}

func TestLocalStorage_Remove(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)

	_, err = s.UploadBytes(context.Background(), "resumes", "abc.pdf", []byte("x"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(context.Background(), "resumes", "abc.pdf"))
	_, err = os.Stat(filepath.Join(dir, "resumes", "abc.pdf"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.NoError(t, s.Remove(context.Background(), "resumes", "abc.pdf"))
	assert.Error(t, s.Remove(context.Background(), "resumes", "../abc.pdf"))
}
