package services

import (
	"context"

	"ipss-cms/database"
	"ipss-cms/models"
	"ipss-cms/repositories"
	"ipss-cms/updates"
)

const (
	msgSectionNotFound  = "Secção não encontrada"
	msgSectionSlugTaken = "Já existe uma secção com este slug."
	msgItemNotFound     = "Item não encontrado"
)

// SectionService manages custom sections and their items. Deleting either
// only deactivates the row.
type SectionService interface {
	List(ctx context.Context, page string, includeInactive bool) ([]models.CustomSection, error)
	Get(ctx context.Context, ref string, includeInactive bool) (*models.CustomSection, error)
	Create(ctx context.Context, req models.CreateSectionRequest, actor uint) (*models.CustomSection, error)
	Update(ctx context.Context, id uint, payload updates.Payload, actor uint) (*models.CustomSection, error)
	Delete(ctx context.Context, id uint, actor uint) error

	ListItems(ctx context.Context, sectionID uint, includeInactive bool) ([]models.SectionItem, error)
	CreateItem(ctx context.Context, sectionID uint, req models.CreateSectionItemRequest, actor uint) (*models.SectionItem, error)
	UpdateItem(ctx context.Context, sectionID, itemID uint, payload updates.Payload, actor uint) (*models.SectionItem, error)
	DeleteItem(ctx context.Context, sectionID, itemID uint, actor uint) error
	ReorderItems(ctx context.Context, sectionID uint, req models.ReorderItemsRequest, actor uint) ([]models.SectionItem, error)
}

type sectionService struct {
	sectionRepo repositories.SectionRepository
	updater     *Updater
}

func NewSectionService(sectionRepo repositories.SectionRepository, updater *Updater) SectionService {
	return &sectionService{sectionRepo: sectionRepo, updater: updater}
}

func (s *sectionService) List(ctx context.Context, page string, includeInactive bool) ([]models.CustomSection, error) {
	sections, err := s.sectionRepo.List(ctx, page, !includeInactive)
	if err != nil {
		return nil, models.NewServerError(err)
	}
	for i := range sections {
		sections[i].Items, err = s.sectionRepo.ListItems(ctx, sections[i].ID, !includeInactive)
		if err != nil {
			return nil, models.NewServerError(err)
		}
	}
	return sections, nil
}

func (s *sectionService) Get(ctx context.Context, ref string, includeInactive bool) (*models.CustomSection, error) {
	section, err := lookupRef(ctx, ref, s.sectionRepo.GetByID, s.sectionRepo.GetBySlug)
	if err != nil {
		return nil, lookupError(err, msgSectionNotFound)
	}
	if !section.Active && !includeInactive {
		return nil, models.NewNotFoundError(msgSectionNotFound)
	}

	section.Items, err = s.sectionRepo.ListItems(ctx, section.ID, !includeInactive)
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return section, nil
}

func (s *sectionService) Create(ctx context.Context, req models.CreateSectionRequest, actor uint) (*models.CustomSection, error) {
	slug, err := uniqueSlug(ctx, s.sectionRepo.SlugExists, req.Slug, req.Name, 0)
	if err != nil {
		return nil, err
	}
	layout := req.Layout
	if layout == "" {
		layout = models.LayoutCards
	}

	section := &models.CustomSection{
		Name:        req.Name,
		Slug:        slug,
		Title:       req.Title,
		Description: sanitizeOptional(req.Description),
		Layout:      layout,
		Page:        req.Page,
		Order:       req.Order,
		Active:      boolOr(req.Active, true),
		Audit:       models.NewAudit(actor),
	}
	if err := s.sectionRepo.Create(ctx, section); err != nil {
		return nil, writeError(err, msgSectionSlugTaken)
	}
	return section, nil
}

func (s *sectionService) Update(ctx context.Context, id uint, payload updates.Payload, actor uint) (*models.CustomSection, error) {
	if _, err := s.sectionRepo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, msgSectionNotFound)
	}
	if err := s.updater.Apply(ctx, sectionSchema, id, payload, actor, msgSectionSlugTaken); err != nil {
		return nil, err
	}
	section, err := s.sectionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, msgSectionNotFound)
	}
	return section, nil
}

func (s *sectionService) Delete(ctx context.Context, id uint, actor uint) error {
	if _, err := s.sectionRepo.GetByID(ctx, id); err != nil {
		return lookupError(err, msgSectionNotFound)
	}
	if err := s.sectionRepo.SetActive(ctx, id, false, actor); err != nil {
		return models.NewServerError(err)
	}
	return nil
}

func (s *sectionService) ListItems(ctx context.Context, sectionID uint, includeInactive bool) ([]models.SectionItem, error) {
	if _, err := s.sectionRepo.GetByID(ctx, sectionID); err != nil {
		return nil, lookupError(err, msgSectionNotFound)
	}
	items, err := s.sectionRepo.ListItems(ctx, sectionID, !includeInactive)
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return items, nil
}

func (s *sectionService) CreateItem(ctx context.Context, sectionID uint, req models.CreateSectionItemRequest, actor uint) (*models.SectionItem, error) {
	if _, err := s.sectionRepo.GetByID(ctx, sectionID); err != nil {
		return nil, lookupError(err, msgSectionNotFound)
	}
	data, err := jsonColumn("dados", req.Data)
	if err != nil {
		return nil, err
	}

	item := &models.SectionItem{
		SectionID: sectionID,
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Content:   sanitizeText(req.Content),
		ImageURL:  req.ImageURL,
		LinkURL:   req.LinkURL,
		LinkText:  req.LinkText,
		Data:      data,
		Order:     req.Order,
		Active:    boolOr(req.Active, true),
		Audit:     models.NewAudit(actor),
	}
	if err := s.sectionRepo.CreateItem(ctx, item); err != nil {
		return nil, models.NewServerError(err)
	}
	return item, nil
}

func (s *sectionService) UpdateItem(ctx context.Context, sectionID, itemID uint, payload updates.Payload, actor uint) (*models.SectionItem, error) {
	if _, err := s.sectionRepo.GetItem(ctx, sectionID, itemID); err != nil {
		return nil, lookupError(err, msgItemNotFound)
	}
	if err := s.updater.Apply(ctx, sectionItemSchema, itemID, payload, actor, ""); err != nil {
		return nil, err
	}
	item, err := s.sectionRepo.GetItem(ctx, sectionID, itemID)
	if err != nil {
		return nil, lookupError(err, msgItemNotFound)
	}
	return item, nil
}

func (s *sectionService) DeleteItem(ctx context.Context, sectionID, itemID uint, actor uint) error {
	if _, err := s.sectionRepo.GetItem(ctx, sectionID, itemID); err != nil {
		return lookupError(err, msgItemNotFound)
	}
	if err := s.sectionRepo.SetItemActive(ctx, itemID, false, actor); err != nil {
		return models.NewServerError(err)
	}
	return nil
}

func (s *sectionService) ReorderItems(ctx context.Context, sectionID uint, req models.ReorderItemsRequest, actor uint) ([]models.SectionItem, error) {
	if _, err := s.sectionRepo.GetByID(ctx, sectionID); err != nil {
		return nil, lookupError(err, msgSectionNotFound)
	}
	if err := s.sectionRepo.ReorderItems(ctx, sectionID, req.Items, actor); err != nil {
		if database.IsNotFound(err) {
			return nil, models.NewValidationError("Item não pertence a esta secção",
				models.FieldError{Field: "itens", Message: "item desconhecido"})
		}
		return nil, models.NewServerError(err)
	}
	items, err := s.sectionRepo.ListItems(ctx, sectionID, false)
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return items, nil
}
