package services

import (
	"context"
	"time"

	"ipss-cms/models"
	"ipss-cms/repositories"
	"ipss-cms/updates"
)

const (
	msgNewsNotFound  = "Notícia não encontrada"
	msgNewsSlugTaken = "Já existe uma notícia com este slug."
)

type NewsService interface {
	List(ctx context.Context, params models.NewsListParams, includeInactive bool) ([]models.News, int64, error)
	Get(ctx context.Context, ref string, includeInactive bool) (*models.News, error)
	Create(ctx context.Context, req models.CreateNewsRequest, actor uint) (*models.News, error)
	Update(ctx context.Context, id uint, payload updates.Payload, actor uint) (*models.News, error)
	Delete(ctx context.Context, id uint) error
}

type newsService struct {
	newsRepo repositories.NewsRepository
	media    MediaService
	updater  *Updater
}

func NewNewsService(newsRepo repositories.NewsRepository, media MediaService, updater *Updater) NewsService {
	return &newsService{newsRepo: newsRepo, media: media, updater: updater}
}

func (s *newsService) List(ctx context.Context, params models.NewsListParams, includeInactive bool) ([]models.News, int64, error) {
	params.Normalize()
	filter := repositories.NewsFilter{
		ActiveOnly: !includeInactive,
		Featured:   params.Featured,
		Page:       params.Page,
		Limit:      params.Limit,
	}
	switch models.NewsKind(params.Kind) {
	case "":
	case models.NewsKindArticle, models.NewsKindEvent:
		filter.Kind = models.NewsKind(params.Kind)
	default:
		return nil, 0, models.NewValidationError("Dados inválidos",
			models.FieldError{Field: "tipo", Message: "tipo deve ser noticia ou evento"})
	}

	news, total, err := s.newsRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, models.NewServerError(err)
	}
	return news, total, nil
}

func (s *newsService) Get(ctx context.Context, ref string, includeInactive bool) (*models.News, error) {
	news, err := lookupRef(ctx, ref, s.newsRepo.GetByID, s.newsRepo.GetBySlug)
	if err != nil {
		return nil, lookupError(err, msgNewsNotFound)
	}
	if !news.Active && !includeInactive {
		return nil, models.NewNotFoundError(msgNewsNotFound)
	}

	news.Media, err = s.media.List(ctx, models.MediaOwner{Kind: models.OwnerNews, ID: news.ID})
	if err != nil {
		return nil, err
	}
	return news, nil
}

func (s *newsService) Create(ctx context.Context, req models.CreateNewsRequest, actor uint) (*models.News, error) {
	published, err := parseDate("data_publicacao", req.PublishedAt)
	if err != nil {
		return nil, err
	}
	if published == nil {
		now := time.Now()
		published = &now
	}
	eventDate, err := parseDate("data_evento", req.EventDate)
	if err != nil {
		return nil, err
	}

	kind := req.Kind
	if kind == "" {
		kind = models.NewsKindArticle
	}
	if kind == models.NewsKindEvent && eventDate == nil {
		return nil, models.NewValidationError("Dados inválidos",
			models.FieldError{Field: "data_evento", Message: "data_evento é obrigatória para eventos"})
	}

	slug, err := uniqueSlug(ctx, s.newsRepo.SlugExists, req.Slug, req.Title, 0)
	if err != nil {
		return nil, err
	}

	news := &models.News{
		Title:         req.Title,
		Slug:          slug,
		Summary:       sanitizeText(req.Summary),
		Content:       sanitizeText(req.Content),
		ImageURL:      req.ImageURL,
		Kind:          kind,
		PublishedAt:   published,
		EventDate:     eventDate,
		EventLocation: req.EventLocation,
		Featured:      req.Featured,
		Active:        boolOr(req.Active, true),
		Audit:         models.NewAudit(actor),
	}
	if err := s.newsRepo.Create(ctx, news); err != nil {
		return nil, writeError(err, msgNewsSlugTaken)
	}
	return news, nil
}

func (s *newsService) Update(ctx context.Context, id uint, payload updates.Payload, actor uint) (*models.News, error) {
	if _, err := s.newsRepo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, msgNewsNotFound)
	}
	if err := s.updater.Apply(ctx, newsSchema, id, payload, actor, msgNewsSlugTaken); err != nil {
		return nil, err
	}
	news, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, msgNewsNotFound)
	}
	return news, nil
}

func (s *newsService) Delete(ctx context.Context, id uint) error {
	if _, err := s.newsRepo.GetByID(ctx, id); err != nil {
		return lookupError(err, msgNewsNotFound)
	}
	attached, err := s.media.List(ctx, models.MediaOwner{Kind: models.OwnerNews, ID: id})
	if err != nil {
		return err
	}
	if err := s.newsRepo.Delete(ctx, id); err != nil {
		return models.NewServerError(err)
	}
	s.media.RemoveFiles(ctx, attached)
	return nil
}
