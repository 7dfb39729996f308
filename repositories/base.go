package repositories

import (
	"context"

	"gorm.io/gorm"

	"ipss-cms/models"
)

// ListQuery narrows a list call. Limit 0 returns every row.
type ListQuery struct {
	ActiveOnly bool
	Filters    map[string]interface{}
	Order      string
	Page       int
	Limit      int
}

// crud holds the queries shared by every resource table.
type crud[T any] struct {
	db *gorm.DB
}

func (r crud[T]) create(ctx context.Context, m *T) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r crud[T]) getByID(ctx context.Context, id uint) (*T, error) {
	var m T
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r crud[T]) getBy(ctx context.Context, column string, value interface{}) (*T, error) {
	var m T
	if err := r.db.WithContext(ctx).Where(column+" = ?", value).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r crud[T]) exists(ctx context.Context, column string, value interface{}, excludeID uint) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(new(T)).Where(column+" = ?", value)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r crud[T]) list(ctx context.Context, lq ListQuery) ([]T, int64, error) {
	q := r.db.WithContext(ctx).Model(new(T))
	if lq.ActiveOnly {
		q = q.Where("ativo = ?", true)
	}
	if len(lq.Filters) > 0 {
		q = q.Where(lq.Filters)
	}

	var total int64
	if lq.Limit > 0 {
		if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			return nil, 0, err
		}
		page := lq.Page
		if page < 1 {
			page = 1
		}
		q = q.Offset((page - 1) * lq.Limit).Limit(lq.Limit)
	}
	if lq.Order != "" {
		q = q.Order(lq.Order)
	}

	items := make([]T, 0)
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	if lq.Limit <= 0 {
		total = int64(len(items))
	}
	return items, total, nil
}

func (r crud[T]) delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(new(T), id).Error
}

// deleteWithMedia removes the row and the media rows it owns in one
// transaction. Stored files are left to the caller.
func (r crud[T]) deleteWithMedia(ctx context.Context, id uint, kind models.OwnerKind) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tabela_referencia = ? AND id_referencia = ?", string(kind), id).
			Delete(&models.Media{}).Error; err != nil {
			return err
		}
		return tx.Delete(new(T), id).Error
	})
}

func (r crud[T]) setActive(ctx context.Context, id uint, active bool, actor uint) error {
	return r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).
		Updates(map[string]interface{}{"ativo": active, "atualizado_por": actor}).Error
}
