package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"go.uber.org/zap"

	"ipss-cms/models"
	"ipss-cms/repositories"
	"ipss-cms/storage"
	"ipss-cms/updates"
)

const (
	msgMediaNotFound = "Media não encontrada"
	msgOwnerNotFound = "Registo de referência não encontrado"
	msgUploadFailed  = "Erro ao carregar o ficheiro"
)

// Uploads is the part of storage.Manager the services need.
type Uploads interface {
	Store(ctx context.Context, fh *multipart.FileHeader) (*storage.StoredFile, error)
	Remove(ctx context.Context, key string)
	MaxSize() int64
}

type MediaService interface {
	List(ctx context.Context, owner models.MediaOwner) ([]models.Media, error)
	Upload(ctx context.Context, form models.MediaUploadForm, fh *multipart.FileHeader, actor uint) (*models.Media, error)
	AddLink(ctx context.Context, req models.MediaLinkRequest, actor uint) (*models.Media, error)
	Update(ctx context.Context, id uint, payload updates.Payload) (*models.Media, error)
	Delete(ctx context.Context, id uint) error
	// RemoveFiles deletes the stored files of media rows that are already gone.
	RemoveFiles(ctx context.Context, items []models.Media)
}

type mediaService struct {
	mediaRepo repositories.MediaRepository
	files     Uploads
	updater   *Updater
	log       *zap.Logger
}

func NewMediaService(mediaRepo repositories.MediaRepository, files Uploads, updater *Updater, log *zap.Logger) MediaService {
	return &mediaService{mediaRepo: mediaRepo, files: files, updater: updater, log: log}
}

// ParseOwner validates an owner reference coming from a request.
func ParseOwner(kind string, id uint) (models.MediaOwner, error) {
	k, err := models.ParseOwnerKind(kind)
	if err != nil {
		return models.MediaOwner{}, models.NewValidationError("Dados inválidos",
			models.FieldError{Field: "tabela_referencia", Message: err.Error()})
	}
	if id == 0 {
		return models.MediaOwner{}, models.NewValidationError("Dados inválidos",
			models.FieldError{Field: "id_referencia", Message: "id_referencia é obrigatório"})
	}
	return models.MediaOwner{Kind: k, ID: id}, nil
}

func (s *mediaService) List(ctx context.Context, owner models.MediaOwner) ([]models.Media, error) {
	items, err := s.mediaRepo.ListByOwner(ctx, owner)
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return items, nil
}

func (s *mediaService) checkOwner(ctx context.Context, owner models.MediaOwner) error {
	ok, err := s.mediaRepo.OwnerExists(ctx, owner)
	if err != nil {
		return models.NewServerError(err)
	}
	if !ok {
		return models.NewNotFoundError(msgOwnerNotFound)
	}
	return nil
}

func (s *mediaService) Upload(ctx context.Context, form models.MediaUploadForm, fh *multipart.FileHeader, actor uint) (*models.Media, error) {
	owner, err := ParseOwner(form.OwnerKind, form.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, owner); err != nil {
		return nil, err
	}

	file, err := storeUpload(ctx, s.files, fh)
	if err != nil {
		return nil, err
	}

	media := &models.Media{
		OwnerKind:    owner.Kind,
		OwnerID:      owner.ID,
		Type:         file.Type,
		URL:          file.URL,
		StorageKey:   file.Key,
		OriginalName: &file.OriginalName,
		Title:        form.Title,
		Size:         file.Size,
		MimeType:     &file.MimeType,
		Order:        form.Order,
		CreatedBy:    &actor,
	}
	if err := s.mediaRepo.Create(ctx, media); err != nil {
		s.files.Remove(ctx, file.Key)
		return nil, models.NewServerError(err)
	}
	return media, nil
}

func (s *mediaService) AddLink(ctx context.Context, req models.MediaLinkRequest, actor uint) (*models.Media, error) {
	owner, err := ParseOwner(req.OwnerKind, req.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(ctx, owner); err != nil {
		return nil, err
	}

	media := &models.Media{
		OwnerKind: owner.Kind,
		OwnerID:   owner.ID,
		Type:      models.MediaLink,
		URL:       req.URL,
		Title:     req.Title,
		Order:     req.Order,
		CreatedBy: &actor,
	}
	if err := s.mediaRepo.Create(ctx, media); err != nil {
		return nil, models.NewServerError(err)
	}
	return media, nil
}

func (s *mediaService) Update(ctx context.Context, id uint, payload updates.Payload) (*models.Media, error) {
	if _, err := s.mediaRepo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, msgMediaNotFound)
	}
	if err := s.updater.Apply(ctx, mediaSchema, id, payload, 0, ""); err != nil {
		return nil, err
	}
	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, msgMediaNotFound)
	}
	return media, nil
}

func (s *mediaService) Delete(ctx context.Context, id uint) error {
	media, err := s.mediaRepo.GetByID(ctx, id)
	if err != nil {
		return lookupError(err, msgMediaNotFound)
	}
	if err := s.mediaRepo.Delete(ctx, id); err != nil {
		return models.NewServerError(err)
	}
	s.files.Remove(ctx, media.StorageKey)
	return nil
}

func (s *mediaService) RemoveFiles(ctx context.Context, items []models.Media) {
	for _, m := range items {
		s.files.Remove(ctx, m.StorageKey)
	}
	if len(items) > 0 {
		s.log.Debug("removed media files", zap.Int("count", len(items)))
	}
}

// storeUpload maps storage failures onto client-facing errors.
func storeUpload(ctx context.Context, files Uploads, fh *multipart.FileHeader) (*storage.StoredFile, error) {
	if fh == nil {
		return nil, models.NewValidationError("Nenhum ficheiro enviado",
			models.FieldError{Field: "ficheiro", Message: "ficheiro é obrigatório"})
	}
	file, err := files.Store(ctx, fh)
	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		return nil, models.NewValidationError(
			fmt.Sprintf("O ficheiro excede o tamanho máximo de %d MB", files.MaxSize()/(1<<20)),
			models.FieldError{Field: "ficheiro", Message: "ficheiro demasiado grande"})
	case errors.Is(err, storage.ErrUnsupportedType):
		return nil, models.NewValidationError("Tipo de ficheiro não suportado",
			models.FieldError{Field: "ficheiro", Message: "tipo de ficheiro não suportado"})
	case err != nil:
		return nil, &models.AppError{Kind: models.KindServer, Message: msgUploadFailed, Err: err}
	}
	return file, nil
}
