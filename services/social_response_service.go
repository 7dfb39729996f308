package services

import (
	"context"

	"ipss-cms/models"
	"ipss-cms/repositories"
	"ipss-cms/updates"
)

const (
	msgSocialResponseNotFound  = "Resposta social não encontrada"
	msgSocialResponseSlugTaken = "Já existe uma resposta social com este slug."
)

type SocialResponseService interface {
	List(ctx context.Context, includeInactive bool) ([]models.SocialResponse, error)
	Get(ctx context.Context, ref string, includeInactive bool) (*models.SocialResponse, error)
	Create(ctx context.Context, req models.CreateSocialResponseRequest, actor uint) (*models.SocialResponse, error)
	Update(ctx context.Context, id uint, payload updates.Payload, actor uint) (*models.SocialResponse, error)
	Delete(ctx context.Context, id uint) error
}

type socialResponseService struct {
	repo    repositories.SocialResponseRepository
	media   MediaService
	updater *Updater
}

func NewSocialResponseService(repo repositories.SocialResponseRepository, media MediaService, updater *Updater) SocialResponseService {
	return &socialResponseService{repo: repo, media: media, updater: updater}
}

func (s *socialResponseService) List(ctx context.Context, includeInactive bool) ([]models.SocialResponse, error) {
	items, err := s.repo.List(ctx, !includeInactive)
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return items, nil
}

func (s *socialResponseService) Get(ctx context.Context, ref string, includeInactive bool) (*models.SocialResponse, error) {
	sr, err := lookupRef(ctx, ref, s.repo.GetByID, s.repo.GetBySlug)
	if err != nil {
		return nil, lookupError(err, msgSocialResponseNotFound)
	}
	if !sr.Active && !includeInactive {
		return nil, models.NewNotFoundError(msgSocialResponseNotFound)
	}

	sr.Media, err = s.media.List(ctx, models.MediaOwner{Kind: models.OwnerSocialResponse, ID: sr.ID})
	if err != nil {
		return nil, err
	}
	return sr, nil
}

func (s *socialResponseService) Create(ctx context.Context, req models.CreateSocialResponseRequest, actor uint) (*models.SocialResponse, error) {
	slug, err := uniqueSlug(ctx, s.repo.SlugExists, req.Slug, req.Title, 0)
	if err != nil {
		return nil, err
	}

	sr := &models.SocialResponse{
		Title:       req.Title,
		Slug:        slug,
		Description: sanitizeText(req.Description),
		Content:     sanitizeText(req.Content),
		ImageURL:    req.ImageURL,
		Icon:        req.Icon,
		Capacity:    req.Capacity,
		Schedule:    req.Schedule,
		Audience:    req.Audience,
		Order:       req.Order,
		Active:      boolOr(req.Active, true),
		Audit:       models.NewAudit(actor),
	}
	if err := s.repo.Create(ctx, sr); err != nil {
		return nil, writeError(err, msgSocialResponseSlugTaken)
	}
	return sr, nil
}

func (s *socialResponseService) Update(ctx context.Context, id uint, payload updates.Payload, actor uint) (*models.SocialResponse, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, msgSocialResponseNotFound)
	}
	if err := s.updater.Apply(ctx, socialResponseSchema, id, payload, actor, msgSocialResponseSlugTaken); err != nil {
		return nil, err
	}
	sr, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, msgSocialResponseNotFound)
	}
	return sr, nil
}

func (s *socialResponseService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return lookupError(err, msgSocialResponseNotFound)
	}
	attached, err := s.media.List(ctx, models.MediaOwner{Kind: models.OwnerSocialResponse, ID: id})
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return models.NewServerError(err)
	}
	s.media.RemoveFiles(ctx, attached)
	return nil
}
