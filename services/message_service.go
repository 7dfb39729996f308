package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"ipss-cms/models"
	"ipss-cms/repositories"
	"ipss-cms/updates"
)

const msgMessageNotFound = "Mensagem não encontrada"

type MessageService interface {
	// Submit stores a contact form post. Identical posts inside the dedupe
	// window are dropped and reported as created=false.
	Submit(ctx context.Context, req models.ContactFormRequest) (bool, error)
	List(ctx context.Context, params models.MessageListParams) ([]models.ContactMessage, int64, int64, error)
	Get(ctx context.Context, id uint) (*models.ContactMessage, error)
	Update(ctx context.Context, id uint, payload updates.Payload) (*models.ContactMessage, error)
	Delete(ctx context.Context, id uint) error
}

type messageService struct {
	messageRepo repositories.MessageRepository
	updater     *Updater
	notifier    *Notifier
	window      time.Duration
	log         *zap.Logger
	now         func() time.Time
}

func NewMessageService(messageRepo repositories.MessageRepository, updater *Updater, notifier *Notifier, window time.Duration, log *zap.Logger) MessageService {
	return &messageService{
		messageRepo: messageRepo,
		updater:     updater,
		notifier:    notifier,
		window:      window,
		log:         log,
		now:         time.Now,
	}
}

func (s *messageService) Submit(ctx context.Context, req models.ContactFormRequest) (bool, error) {
	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   req.Phone,
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}

	if s.window > 0 {
		dup, err := s.messageRepo.ExistsSince(ctx, msg, s.now().Add(-s.window))
		if err != nil {
			// fail open: a broken check must not lose the message
			s.log.Warn("contact dedupe check failed", zap.Error(err))
		} else if dup {
			s.log.Info("duplicate contact message dropped", zap.String("email", msg.Email))
			return false, nil
		}
	}

	if err := s.messageRepo.Create(ctx, msg); err != nil {
		return false, models.NewServerError(err)
	}
	s.notifier.ContactMessage(msg)
	return true, nil
}

// List returns one page of messages, the total for the filter and the
// number of unread messages.
func (s *messageService) List(ctx context.Context, params models.MessageListParams) ([]models.ContactMessage, int64, int64, error) {
	params.Normalize()
	messages, total, err := s.messageRepo.List(ctx, params.Read, params.Page, params.Limit)
	if err != nil {
		return nil, 0, 0, models.NewServerError(err)
	}
	unread, err := s.messageRepo.CountUnread(ctx)
	if err != nil {
		return nil, 0, 0, models.NewServerError(err)
	}
	return messages, total, unread, nil
}

func (s *messageService) Get(ctx context.Context, id uint) (*models.ContactMessage, error) {
	msg, err := s.messageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, msgMessageNotFound)
	}
	return msg, nil
}

func (s *messageService) Update(ctx context.Context, id uint, payload updates.Payload) (*models.ContactMessage, error) {
	if _, err := s.messageRepo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, msgMessageNotFound)
	}
	if err := s.updater.Apply(ctx, messageSchema, id, payload, 0, ""); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *messageService) Delete(ctx context.Context, id uint) error {
	if _, err := s.messageRepo.GetByID(ctx, id); err != nil {
		return lookupError(err, msgMessageNotFound)
	}
	if err := s.messageRepo.Delete(ctx, id); err != nil {
		return models.NewServerError(err)
	}
	return nil
}
