package repositories

import (
	"context"

	"gorm.io/gorm"

	"ipss-cms/models"
)

type SectionRepository interface {
	Create(ctx context.Context, section *models.CustomSection) error
	GetByID(ctx context.Context, id uint) (*models.CustomSection, error)
	GetBySlug(ctx context.Context, slug string) (*models.CustomSection, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	List(ctx context.Context, page string, activeOnly bool) ([]models.CustomSection, error)
	SetActive(ctx context.Context, id uint, active bool, actor uint) error

	CreateItem(ctx context.Context, item *models.SectionItem) error
	GetItem(ctx context.Context, sectionID, itemID uint) (*models.SectionItem, error)
	ListItems(ctx context.Context, sectionID uint, activeOnly bool) ([]models.SectionItem, error)
	SetItemActive(ctx context.Context, itemID uint, active bool, actor uint) error
	ReorderItems(ctx context.Context, sectionID uint, order []models.ItemOrder, actor uint) error
}

type sectionRepository struct {
	crud[models.CustomSection]
	items crud[models.SectionItem]
}

func NewSectionRepository(db *gorm.DB) SectionRepository {
	return &sectionRepository{
		crud:  crud[models.CustomSection]{db: db},
		items: crud[models.SectionItem]{db: db},
	}
}

func (r *sectionRepository) Create(ctx context.Context, section *models.CustomSection) error {
	return r.create(ctx, section)
}

func (r *sectionRepository) GetByID(ctx context.Context, id uint) (*models.CustomSection, error) {
	return r.getByID(ctx, id)
}

func (r *sectionRepository) GetBySlug(ctx context.Context, slug string) (*models.CustomSection, error) {
	return r.getBy(ctx, "slug", slug)
}

func (r *sectionRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return r.exists(ctx, "slug", slug, excludeID)
}

func (r *sectionRepository) List(ctx context.Context, page string, activeOnly bool) ([]models.CustomSection, error) {
	lq := ListQuery{ActiveOnly: activeOnly, Order: "ordem asc, nome asc"}
	if page != "" {
		lq.Filters = map[string]interface{}{"pagina": page}
	}
	sections, _, err := r.list(ctx, lq)
	return sections, err
}

func (r *sectionRepository) SetActive(ctx context.Context, id uint, active bool, actor uint) error {
	return r.setActive(ctx, id, active, actor)
}

func (r *sectionRepository) CreateItem(ctx context.Context, item *models.SectionItem) error {
	return r.items.create(ctx, item)
}

func (r *sectionRepository) GetItem(ctx context.Context, sectionID, itemID uint) (*models.SectionItem, error) {
	var item models.SectionItem
	err := r.db.WithContext(ctx).Where("id = ? AND secao_id = ?", itemID, sectionID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *sectionRepository) ListItems(ctx context.Context, sectionID uint, activeOnly bool) ([]models.SectionItem, error) {
	items, _, err := r.items.list(ctx, ListQuery{
		ActiveOnly: activeOnly,
		Filters:    map[string]interface{}{"secao_id": sectionID},
		Order:      "ordem asc, id asc",
	})
	return items, err
}

func (r *sectionRepository) SetItemActive(ctx context.Context, itemID uint, active bool, actor uint) error {
	return r.items.setActive(ctx, itemID, active, actor)
}

// ReorderItems rewrites ordem for the given items in one transaction.
func (r *sectionRepository) ReorderItems(ctx context.Context, sectionID uint, order []models.ItemOrder, actor uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range order {
			res := tx.Model(&models.SectionItem{}).
				Where("id = ? AND secao_id = ?", o.ID, sectionID).
				Updates(map[string]interface{}{"ordem": o.Order, "atualizado_por": actor})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}
