package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ipss-cms/models"
	"ipss-cms/repositories"
)

type brokenDedupeRepo struct {
	repositories.MessageRepository
}

func (brokenDedupeRepo) ExistsSince(context.Context, *models.ContactMessage, time.Time) (bool, error) {
	return false, errors.New("database is locked")
}

func contactForm() models.ContactFormRequest {
	return models.ContactFormRequest{Name: "Maria", Email: "maria@mail.pt", Subject: "Visita", Message: "Olá"}
}

func TestContactDedupe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.messageSvc.Submit(ctx, contactForm())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.messageSvc.Submit(ctx, contactForm())
	require.NoError(t, err)
	assert.False(t, created)

	other := contactForm()
	other.Message = "Outra mensagem"
	created, err = f.messageSvc.Submit(ctx, other)
	require.NoError(t, err)
	assert.True(t, created)

	_, total, unread, err := f.messageSvc.List(ctx, models.MessageListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, int64(2), unread)
	assert.Len(t, f.mailer.subjects, 2)
}

func TestContactDedupeWindowExpires(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := f.messageSvc.(*messageService)

	_, err := svc.Submit(ctx, contactForm())
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	created, err := svc.Submit(ctx, contactForm())
	require.NoError(t, err)
	assert.True(t, created)
}

func TestContactDedupeFailsOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	repo := brokenDedupeRepo{repositories.NewMessageRepository(f.db.Gorm)}
	svc := NewMessageService(repo, f.updater, f.notify, time.Minute, zap.NewNop())

	for i := 0; i < 2; i++ {
		created, err := svc.Submit(ctx, contactForm())
		require.NoError(t, err)
		assert.True(t, created)
	}
	_, total, _, err := svc.List(ctx, models.MessageListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestMessageReadFlags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.messageSvc.Submit(ctx, contactForm())
	require.NoError(t, err)

	list, _, _, err := f.messageSvc.List(ctx, models.MessageListParams{})
	require.NoError(t, err)
	id := list[0].ID

	msg, err := f.messageSvc.Update(ctx, id, payload(t, map[string]any{"lida": true}))
	require.NoError(t, err)
	assert.True(t, msg.Read)
	assert.False(t, msg.Answered)

	_, err = f.messageSvc.Update(ctx, id, payload(t, map[string]any{"mensagem": "x"}))
	requireKind(t, err, models.KindValidation)

	read := false
	_, total, unread, err := f.messageSvc.List(ctx, models.MessageListParams{Read: &read})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Zero(t, unread)

	require.NoError(t, f.messageSvc.Delete(ctx, id))
	_, err = f.messageSvc.Get(ctx, id)
	requireKind(t, err, models.KindNotFound)
}
