package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const localPrefix = "local"

// Local writes under Root and serves files from URLPrefix (normally /uploads).
type Local struct {
	Root      string
	URLPrefix string
}

func NewLocal(root, urlPrefix string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Local{Root: root, URLPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (l *Local) Name() string { return localPrefix }

func (l *Local) Save(ctx context.Context, folder, filename string, r io.Reader, size int64, mimeType string) (*Object, error) {
	dir := filepath.Join(l.Root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	full := filepath.Join(dir, filename)
	out, err := os.OpenFile(full, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	written, err := io.Copy(out, r)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(full)
		return nil, err
	}

	rel := path.Join(folder, filename)
	return &Object{
		URL:  l.URLPrefix + "/" + rel,
		Key:  localPrefix + ":" + rel,
		Size: written,
	}, nil
}

func (l *Local) Delete(ctx context.Context, key string) error {
	rel := strings.TrimPrefix(key, localPrefix+":")
	clean := filepath.Clean(filepath.FromSlash(rel))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid local key %q", key)
	}
	err := os.Remove(filepath.Join(l.Root, clean))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
