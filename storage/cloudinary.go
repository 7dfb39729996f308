package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const cloudinaryPrefix = "cloudinary"

type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(cloudName, apiKey, apiSecret, folder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	cld.Config.URL.Secure = true
	return &Cloudinary{cld: cld, folder: folder}, nil
}

func (c *Cloudinary) Name() string { return cloudinaryPrefix }

// Save uploads with resource_type auto; the key keeps the resource type
// Cloudinary assigned since Destroy needs it.
func (c *Cloudinary) Save(ctx context.Context, folder, filename string, r io.Reader, size int64, mimeType string) (*Object, error) {
	res, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       path.Join(c.folder, folder),
		PublicID:     strings.TrimSuffix(filename, path.Ext(filename)),
		ResourceType: "auto",
	})
	if err != nil {
		return nil, err
	}
	if res.Error.Message != "" {
		return nil, errors.New(res.Error.Message)
	}

	return &Object{
		URL:  res.SecureURL,
		Key:  fmt.Sprintf("%s:%s:%s", cloudinaryPrefix, res.ResourceType, res.PublicID),
		Size: int64(res.Bytes),
	}, nil
}

func (c *Cloudinary) Delete(ctx context.Context, key string) error {
	parts := strings.SplitN(key, ":", 3)
	if len(parts) != 3 || parts[0] != cloudinaryPrefix {
		return fmt.Errorf("invalid cloudinary key %q", key)
	}
	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     parts[2],
		ResourceType: parts[1],
	})
	if err != nil {
		return err
	}
	if res.Error.Message != "" {
		return errors.New(res.Error.Message)
	}
	return nil
}
