package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ipss-cms/models"
)

func TestSectionSoftDeleteAndItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	page := "inicio"

	section, err := f.sectionSvc.Create(ctx, models.CreateSectionRequest{Name: "Parceiros", Page: &page}, 1)
	require.NoError(t, err)
	assert.Equal(t, models.LayoutCards, section.Layout)

	a, err := f.sectionSvc.CreateItem(ctx, section.ID, models.CreateSectionItemRequest{Title: "Câmara", Order: 1}, 1)
	require.NoError(t, err)
	b, err := f.sectionSvc.CreateItem(ctx, section.ID, models.CreateSectionItemRequest{Title: "Junta", Order: 2}, 1)
	require.NoError(t, err)

	items, err := f.sectionSvc.ReorderItems(ctx, section.ID, models.ReorderItemsRequest{Items: []models.ItemOrder{
		{ID: a.ID, Order: 2},
		{ID: b.ID, Order: 1},
	}}, 1)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, b.ID, items[0].ID)

	_, err = f.sectionSvc.ReorderItems(ctx, section.ID, models.ReorderItemsRequest{Items: []models.ItemOrder{{ID: 999, Order: 0}}}, 1)
	requireKind(t, err, models.KindValidation)

	require.NoError(t, f.sectionSvc.DeleteItem(ctx, section.ID, a.ID, 1))
	public, err := f.sectionSvc.Get(ctx, "parceiros", false)
	require.NoError(t, err)
	require.Len(t, public.Items, 1)
	assert.Equal(t, "Junta", public.Items[0].Title)

	list, err := f.sectionSvc.List(ctx, "inicio", false)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, f.sectionSvc.Delete(ctx, section.ID, 1))
	_, err = f.sectionSvc.Get(ctx, "parceiros", false)
	requireKind(t, err, models.KindNotFound)

	admin, err := f.sectionSvc.Get(ctx, "parceiros", true)
	require.NoError(t, err)
	assert.False(t, admin.Active)
	assert.Len(t, admin.Items, 2)
}

func TestSectionItemBelongsToSection(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	one, err := f.sectionSvc.Create(ctx, models.CreateSectionRequest{Name: "Um"}, 1)
	require.NoError(t, err)
	two, err := f.sectionSvc.Create(ctx, models.CreateSectionRequest{Name: "Dois"}, 1)
	require.NoError(t, err)
	item, err := f.sectionSvc.CreateItem(ctx, one.ID, models.CreateSectionItemRequest{Title: "A"}, 1)
	require.NoError(t, err)

	_, err = f.sectionSvc.UpdateItem(ctx, two.ID, item.ID, payload(t, map[string]any{"titulo": "B"}), 1)
	requireKind(t, err, models.KindNotFound)

	updated, err := f.sectionSvc.UpdateItem(ctx, one.ID, item.ID, payload(t, map[string]any{"titulo": "B", "link_url": nil}), 1)
	require.NoError(t, err)
	assert.Equal(t, "B", updated.Title)
	assert.Nil(t, updated.LinkURL)
}
