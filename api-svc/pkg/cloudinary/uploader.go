package cloudinary

import (
	"bytes"
	"context"
	"path"
	"strings"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type CloudinaryUploader struct {
	cld *cld.Cloudinary
}

func NewCloudinaryUploader(cloud *cld.Cloudinary) *CloudinaryUploader {
	return &CloudinaryUploader{cld: cloud}
}

func (u *CloudinaryUploader) UploadBytes(ctx context.Context, folder string, filename string, b []byte) (string, error) {
	params := uploader.UploadParams{
		Folder:   folder,
		PublicID: strings.TrimSuffix(filename, path.Ext(filename)),
		// images are transformed, resumes are kept as raw documents
		ResourceType: resourceType(filename),
	}

	res, err := u.cld.Upload.Upload(ctx, bytes.NewReader(b), params)
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}

func (u *CloudinaryUploader) Remove(ctx context.Context, folder string, filename string) error {
	_, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     path.Join(folder, strings.TrimSuffix(filename, path.Ext(filename))),
		ResourceType: resourceType(filename),
	})
	return err
}

func resourceType(filename string) string {
	switch strings.ToLower(path.Ext(filename)) {
	case ".jpg", ".jpeg", ".png", ".webp":
		return "image"
	default:
		return "raw"
	}
}
