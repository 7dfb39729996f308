package services

import (
	"context"
	"encoding/json"

	"gorm.io/datatypes"

	"ipss-cms/models"
	"ipss-cms/repositories"
	"ipss-cms/updates"
)

const msgContentNotFound = "Conteúdo não encontrado"

type ContentService interface {
	List(ctx context.Context, section string, includeInactive bool) ([]models.InstitutionalContent, error)
	Get(ctx context.Context, id uint, includeInactive bool) (*models.InstitutionalContent, error)
	Create(ctx context.Context, req models.CreateContentRequest, actor uint) (*models.InstitutionalContent, error)
	Update(ctx context.Context, id uint, payload updates.Payload, actor uint) (*models.InstitutionalContent, error)
	Delete(ctx context.Context, id uint) error
}

type contentService struct {
	contentRepo repositories.ContentRepository
	media       MediaService
	updater     *Updater
}

func NewContentService(contentRepo repositories.ContentRepository, media MediaService, updater *Updater) ContentService {
	return &contentService{contentRepo: contentRepo, media: media, updater: updater}
}

func (s *contentService) List(ctx context.Context, section string, includeInactive bool) ([]models.InstitutionalContent, error) {
	items, err := s.contentRepo.List(ctx, section, !includeInactive)
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return items, nil
}

func (s *contentService) Get(ctx context.Context, id uint, includeInactive bool) (*models.InstitutionalContent, error) {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, msgContentNotFound)
	}
	if !content.Active && !includeInactive {
		return nil, models.NewNotFoundError(msgContentNotFound)
	}
	content.Media, err = s.media.List(ctx, models.MediaOwner{Kind: models.OwnerContent, ID: content.ID})
	if err != nil {
		return nil, err
	}
	return content, nil
}

func (s *contentService) Create(ctx context.Context, req models.CreateContentRequest, actor uint) (*models.InstitutionalContent, error) {
	data, err := jsonColumn("dados", req.Data)
	if err != nil {
		return nil, err
	}

	content := &models.InstitutionalContent{
		Section:  req.Section,
		Title:    req.Title,
		Subtitle: req.Subtitle,
		Content:  sanitizeText(req.Content),
		ImageURL: req.ImageURL,
		Data:     data,
		Order:    req.Order,
		Active:   boolOr(req.Active, true),
		Audit:    models.NewAudit(actor),
	}
	if err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, models.NewServerError(err)
	}
	return content, nil
}

func (s *contentService) Update(ctx context.Context, id uint, payload updates.Payload, actor uint) (*models.InstitutionalContent, error) {
	if _, err := s.contentRepo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, msgContentNotFound)
	}
	if err := s.updater.Apply(ctx, contentSchema, id, payload, actor, ""); err != nil {
		return nil, err
	}
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, msgContentNotFound)
	}
	return content, nil
}

func (s *contentService) Delete(ctx context.Context, id uint) error {
	if _, err := s.contentRepo.GetByID(ctx, id); err != nil {
		return lookupError(err, msgContentNotFound)
	}
	attached, err := s.media.List(ctx, models.MediaOwner{Kind: models.OwnerContent, ID: id})
	if err != nil {
		return err
	}
	if err := s.contentRepo.Delete(ctx, id); err != nil {
		return models.NewServerError(err)
	}
	s.media.RemoveFiles(ctx, attached)
	return nil
}

// jsonColumn validates an optional raw JSON value for a datatypes.JSON column.
func jsonColumn(field string, raw json.RawMessage) (datatypes.JSON, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, models.NewValidationError("Dados inválidos", models.FieldError{Field: field, Message: "JSON inválido"})
	}
	return datatypes.JSON(raw), nil
}
