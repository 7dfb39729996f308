package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"ipss-cms/models"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	// ExistsSince reports an identical nome/email/assunto/mensagem row created after since.
	ExistsSince(ctx context.Context, msg *models.ContactMessage, since time.Time) (bool, error)
	GetByID(ctx context.Context, id uint) (*models.ContactMessage, error)
	List(ctx context.Context, read *bool, page, limit int) ([]models.ContactMessage, int64, error)
	CountUnread(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type messageRepository struct {
	crud[models.ContactMessage]
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{crud[models.ContactMessage]{db: db}}
}

func (r *messageRepository) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.create(ctx, msg)
}

func (r *messageRepository) ExistsSince(ctx context.Context, msg *models.ContactMessage, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).
		Where("nome = ? AND email = ? AND assunto = ? AND mensagem = ? AND data_criacao >= ?",
			msg.Name, msg.Email, msg.Subject, msg.Message, since).
		Count(&count).Error
	return count > 0, err
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	return r.getByID(ctx, id)
}

func (r *messageRepository) List(ctx context.Context, read *bool, page, limit int) ([]models.ContactMessage, int64, error) {
	lq := ListQuery{Order: "data_criacao desc", Page: page, Limit: limit}
	if read != nil {
		lq.Filters = map[string]interface{}{"lida": *read}
	}
	return r.list(ctx, lq)
}

func (r *messageRepository) CountUnread(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Where("lida = ?", false).Count(&count).Error
	return count, err
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	return r.delete(ctx, id)
}
