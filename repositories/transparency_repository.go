package repositories

import (
	"context"

	"gorm.io/gorm"

	"ipss-cms/models"
)

type TransparencyRepository interface {
	Create(ctx context.Context, doc *models.TransparencyDocument) error
	GetByID(ctx context.Context, id uint) (*models.TransparencyDocument, error)
	List(ctx context.Context, category string, year int, activeOnly bool) ([]models.TransparencyDocument, error)
	ReplaceFile(ctx context.Context, id uint, url, key, mimeType string, size int64, actor uint) error
	Delete(ctx context.Context, id uint) error
}

type transparencyRepository struct {
	crud[models.TransparencyDocument]
}

func NewTransparencyRepository(db *gorm.DB) TransparencyRepository {
	return &transparencyRepository{crud[models.TransparencyDocument]{db: db}}
}

func (r *transparencyRepository) Create(ctx context.Context, doc *models.TransparencyDocument) error {
	return r.create(ctx, doc)
}

func (r *transparencyRepository) GetByID(ctx context.Context, id uint) (*models.TransparencyDocument, error) {
	return r.getByID(ctx, id)
}

func (r *transparencyRepository) List(ctx context.Context, category string, year int, activeOnly bool) ([]models.TransparencyDocument, error) {
	filters := map[string]interface{}{}
	if category != "" {
		filters["categoria"] = category
	}
	if year > 0 {
		filters["ano"] = year
	}
	docs, _, err := r.list(ctx, ListQuery{
		ActiveOnly: activeOnly,
		Filters:    filters,
		Order:      "ano desc, categoria asc, ordem asc",
	})
	return docs, err
}

func (r *transparencyRepository) ReplaceFile(ctx context.Context, id uint, url, key, mimeType string, size int64, actor uint) error {
	return r.db.WithContext(ctx).Model(&models.TransparencyDocument{}).Where("id = ?", id).Updates(map[string]interface{}{
		"ficheiro_url":   url,
		"storage_key":    key,
		"mime_type":      mimeType,
		"tamanho":        size,
		"atualizado_por": actor,
	}).Error
}

func (r *transparencyRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}
