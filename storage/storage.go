// Package storage persists uploaded files on local disk or Cloudinary.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ipss-cms/models"
)

var (
	ErrFileTooLarge    = errors.New("ficheiro demasiado grande")
	ErrUnsupportedType = errors.New("tipo de ficheiro não suportado")
	ErrUnknownBackend  = errors.New("storage key with unknown backend")
)

// Object is what a backend reports after a successful write.
type Object struct {
	URL  string
	Key  string
	Size int64
}

type Storage interface {
	// Name prefixes every key the backend issues.
	Name() string
	Save(ctx context.Context, folder, filename string, r io.Reader, size int64, mimeType string) (*Object, error)
	Delete(ctx context.Context, key string) error
}

// StoredFile describes an ingested upload.
type StoredFile struct {
	URL          string
	Key          string
	Size         int64
	MimeType     string
	Type         models.MediaType
	OriginalName string
}

var allowedMIME = setOf(
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"video/mp4",
	"video/webm",
	"video/quicktime",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/vnd.ms-excel",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.ms-powerpoint",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"application/vnd.oasis.opendocument.text",
	"application/vnd.oasis.opendocument.spreadsheet",
)

// containers whose sniffed type is too generic to trust over the declared one.
var genericMIME = setOf(
	"application/zip",
	"application/octet-stream",
	"application/x-ole-storage",
	"text/plain",
)

func setOf(values ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func baseMIME(m string) string {
	return strings.ToLower(strings.TrimSpace(strings.SplitN(m, ";", 2)[0]))
}

// Classify derives the media tag and the local subfolder from a MIME type.
func Classify(mimeType string) (models.MediaType, string) {
	m := baseMIME(mimeType)
	switch {
	case strings.HasPrefix(m, "image/"):
		return models.MediaImage, "imagens"
	case strings.HasPrefix(m, "video/"):
		return models.MediaVideo, "videos"
	case m == "application/pdf":
		return models.MediaPDF, "pdfs"
	default:
		return models.MediaDocument, "outros"
	}
}

// FileName builds "<unix-ms>-<random><ext>".
func FileName(ext string) string {
	return fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), uuid.New().ID(), strings.ToLower(ext))
}

// Manager validates uploads and routes them to the configured backend.
// Deletes are routed by key prefix so files written by a previous backend
// can still be removed.
type Manager struct {
	primary  Storage
	backends map[string]Storage
	maxSize  int64
	log      *zap.Logger
}

func NewManager(primary Storage, maxSize int64, log *zap.Logger, others ...Storage) *Manager {
	m := &Manager{
		primary:  primary,
		backends: map[string]Storage{primary.Name(): primary},
		maxSize:  maxSize,
		log:      log,
	}
	for _, s := range others {
		m.backends[s.Name()] = s
	}
	return m
}

func (m *Manager) Backend() string { return m.primary.Name() }

func (m *Manager) MaxSize() int64 { return m.maxSize }

// Store sniffs, validates and writes a multipart file.
func (m *Manager) Store(ctx context.Context, fh *multipart.FileHeader) (*StoredFile, error) {
	if m.maxSize > 0 && fh.Size > m.maxSize {
		return nil, ErrFileTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return m.StoreReader(ctx, fh.Filename, fh.Header.Get("Content-Type"), f, fh.Size)
}

// StoreReader is Store for an already opened stream.
func (m *Manager) StoreReader(ctx context.Context, filename, declared string, r io.Reader, size int64) (*StoredFile, error) {
	head := make([]byte, 3072)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	head = head[:n]

	mimeType, ok := resolveMIME(head, declared)
	if !ok {
		return nil, ErrUnsupportedType
	}

	mediaType, folder := Classify(mimeType)
	ext := extensionFor(mimeType)

	obj, err := m.primary.Save(ctx, folder, FileName(ext), io.MultiReader(bytes.NewReader(head), r), size, mimeType)
	if err != nil {
		return nil, err
	}
	if obj.Size == 0 {
		obj.Size = size
	}

	return &StoredFile{
		URL:          obj.URL,
		Key:          obj.Key,
		Size:         obj.Size,
		MimeType:     mimeType,
		Type:         mediaType,
		OriginalName: filepath.Base(filename),
	}, nil
}

// extensionFor picks the stored extension from the validated type, never
// from the client's filename, so static serving cannot change the type.
func extensionFor(mimeType string) string {
	if m := mimetype.Lookup(mimeType); m != nil && m.Extension() != "" {
		return m.Extension()
	}
	return ".bin"
}

func resolveMIME(head []byte, declared string) (string, bool) {
	detected := baseMIME(mimetype.Detect(head).String())
	if _, ok := allowedMIME[detected]; ok {
		return detected, true
	}
	declared = baseMIME(declared)
	if _, generic := genericMIME[detected]; generic {
		if _, ok := allowedMIME[declared]; ok {
			return declared, true
		}
	}
	return "", false
}

// Remove deletes a stored file. Failures are logged, never returned,
// since the owning row is already gone.
func (m *Manager) Remove(ctx context.Context, key string) {
	if key == "" {
		return
	}
	backendName, _, ok := strings.Cut(key, ":")
	if !ok {
		m.log.Warn("storage key without backend", zap.String("key", key))
		return
	}
	backend, found := m.backends[backendName]
	if !found {
		m.log.Warn("storage delete skipped", zap.String("key", key), zap.Error(ErrUnknownBackend))
		return
	}
	if err := backend.Delete(ctx, key); err != nil {
		m.log.Warn("storage delete failed", zap.String("key", key), zap.Error(err))
	}
}
