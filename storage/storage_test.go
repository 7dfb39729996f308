package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ipss-cms/models"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func newLocalManager(t *testing.T, maxSize int64) (*Manager, string) {
	t.Helper()
	root := t.TempDir()
	local, err := NewLocal(root, "/uploads/")
	require.NoError(t, err)
	return NewManager(local, maxSize, zap.NewNop()), root
}

func TestClassify(t *testing.T) {
	cases := map[string][2]string{
		"image/png":          {string(models.MediaImage), "imagens"},
		"video/mp4":          {string(models.MediaVideo), "videos"},
		"application/pdf":    {string(models.MediaPDF), "pdfs"},
		"application/msword": {string(models.MediaDocument), "outros"},
		"IMAGE/JPEG; q=1":    {string(models.MediaImage), "imagens"},
	}
	for in, want := range cases {
		kind, folder := Classify(in)
		assert.Equal(t, want[0], string(kind), in)
		assert.Equal(t, want[1], folder, in)
	}
}

func TestFileName(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^\d{13}-\d+\.jpg$`), FileName(".JPG"))
}

func TestStoreLocalImage(t *testing.T) {
	m, root := newLocalManager(t, 1<<20)
	body := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{1}, 100)...)

	file, err := m.StoreReader(context.Background(), "foto.png", "image/png", bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)

	assert.Equal(t, models.MediaImage, file.Type)
	assert.Equal(t, "image/png", file.MimeType)
	assert.Equal(t, int64(len(body)), file.Size)
	assert.True(t, strings.HasPrefix(file.URL, "/uploads/imagens/"), file.URL)
	assert.True(t, strings.HasPrefix(file.Key, "local:imagens/"), file.Key)

	onDisk, err := os.ReadFile(filepath.Join(root, strings.TrimPrefix(file.Key, "local:")))
	require.NoError(t, err)
	assert.Equal(t, body, onDisk)

	m.Remove(context.Background(), file.Key)
	_, err = os.Stat(filepath.Join(root, strings.TrimPrefix(file.Key, "local:")))
	assert.True(t, os.IsNotExist(err))
}

func TestStoredExtensionFollowsSniffedType(t *testing.T) {
	m, root := newLocalManager(t, 1<<20)
	body := append(append([]byte{}, pngHeader...), bytes.Repeat([]byte{1}, 100)...)

	file, err := m.StoreReader(context.Background(), "evil.html", "text/html", bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.Equal(t, "image/png", file.MimeType)
	assert.Equal(t, ".png", filepath.Ext(file.Key))
	assert.Equal(t, ".png", filepath.Ext(file.URL))
	assert.Equal(t, "evil.html", file.OriginalName)
	assert.FileExists(t, filepath.Join(root, strings.TrimPrefix(file.Key, "local:")))
}

func TestStoredExtensionForDeclaredType(t *testing.T) {
	m, _ := newLocalManager(t, 1<<20)
	body := []byte("plain text that claims to be a pdf")

	file, err := m.StoreReader(context.Background(), "notas.html", "application/pdf", bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.MimeType)
	assert.Equal(t, ".pdf", filepath.Ext(file.Key))
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, ".jpg", extensionFor("image/jpeg"))
	assert.Equal(t, ".pdf", extensionFor("application/pdf"))
	assert.Equal(t, ".docx", extensionFor("application/vnd.openxmlformats-officedocument.wordprocessingml.document"))
	assert.Equal(t, ".bin", extensionFor("application/x-unknown"))
}

func TestStorePDFGoesToPdfs(t *testing.T) {
	m, _ := newLocalManager(t, 1<<20)
	body := []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n")
	file, err := m.StoreReader(context.Background(), "relatorio.pdf", "", bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.Equal(t, models.MediaPDF, file.Type)
	assert.Contains(t, file.URL, "/uploads/pdfs/")
}

func TestStoreRejectsUnsupported(t *testing.T) {
	m, _ := newLocalManager(t, 1<<20)
	body := []byte("#!/bin/sh\nrm -rf /\n")
	_, err := m.StoreReader(context.Background(), "x.sh", "application/x-sh", bytes.NewReader(body), int64(len(body)))
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestStoreTrustsDeclaredTypeForGenericContainers(t *testing.T) {
	m, _ := newLocalManager(t, 1<<20)
	body := []byte("texto simples")
	file, err := m.StoreReader(context.Background(), "ata.docx",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document", bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.Equal(t, models.MediaDocument, file.Type)
	assert.Contains(t, file.URL, "/uploads/outros/")
}

type failingStorage struct{}

func (failingStorage) Name() string { return "broken" }
func (failingStorage) Save(context.Context, string, string, io.Reader, int64, string) (*Object, error) {
	return nil, errors.New("disk full")
}
func (failingStorage) Delete(context.Context, string) error { return errors.New("nope") }

func TestStoreBackendFailure(t *testing.T) {
	m := NewManager(failingStorage{}, 0, zap.NewNop())
	_, err := m.StoreReader(context.Background(), "a.png", "", bytes.NewReader(pngHeader), int64(len(pngHeader)))
	assert.EqualError(t, err, "disk full")

	m.Remove(context.Background(), "broken:x")
	m.Remove(context.Background(), "cloudinary:image:abc")
	m.Remove(context.Background(), "nokey")
}

func TestLocalDeleteRejectsTraversal(t *testing.T) {
	local, err := NewLocal(t.TempDir(), "/uploads")
	require.NoError(t, err)
	assert.Error(t, local.Delete(context.Background(), "local:../../etc/passwd"))
	assert.NoError(t, local.Delete(context.Background(), "local:imagens/missing.png"))
}
