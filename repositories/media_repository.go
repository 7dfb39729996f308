package repositories

import (
	"context"

	"gorm.io/gorm"

	"ipss-cms/models"
)

type MediaRepository interface {
	Create(ctx context.Context, media *models.Media) error
	GetByID(ctx context.Context, id uint) (*models.Media, error)
	ListByOwner(ctx context.Context, owner models.MediaOwner) ([]models.Media, error)
	ListByOwnerKind(ctx context.Context, kind models.OwnerKind) ([]models.Media, error)
	Delete(ctx context.Context, id uint) error
	DeleteByOwner(ctx context.Context, owner models.MediaOwner) error
	// OwnerExists checks that the referenced row is present in the owner's table.
	OwnerExists(ctx context.Context, owner models.MediaOwner) (bool, error)
}

type mediaRepository struct {
	crud[models.Media]
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{crud[models.Media]{db: db}}
}

func (r *mediaRepository) Create(ctx context.Context, media *models.Media) error {
	return r.create(ctx, media)
}

func (r *mediaRepository) GetByID(ctx context.Context, id uint) (*models.Media, error) {
	return r.getByID(ctx, id)
}

func (r *mediaRepository) ListByOwner(ctx context.Context, owner models.MediaOwner) ([]models.Media, error) {
	items, _, err := r.list(ctx, ListQuery{
		Filters: map[string]interface{}{"tabela_referencia": string(owner.Kind), "id_referencia": owner.ID},
		Order:   "ordem asc, id asc",
	})
	return items, err
}

func (r *mediaRepository) ListByOwnerKind(ctx context.Context, kind models.OwnerKind) ([]models.Media, error) {
	items, _, err := r.list(ctx, ListQuery{
		Filters: map[string]interface{}{"tabela_referencia": string(kind)},
		Order:   "id_referencia asc, ordem asc, id asc",
	})
	return items, err
}

func (r *mediaRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}

func (r *mediaRepository) DeleteByOwner(ctx context.Context, owner models.MediaOwner) error {
	return r.db.WithContext(ctx).
		Where("tabela_referencia = ? AND id_referencia = ?", string(owner.Kind), owner.ID).
		Delete(&models.Media{}).Error
}

func (r *mediaRepository) OwnerExists(ctx context.Context, owner models.MediaOwner) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Table(string(owner.Kind)).Where("id = ?", owner.ID).Count(&count).Error
	return count > 0, err
}
