package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ipss-cms/models"
)

var pdfBody = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

func TestTransparencyLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	doc, err := f.transSvc.Create(ctx, models.TransparencyForm{Title: "Relatório 2024", Category: "relatorios", Year: 2024},
		fileHeader(t, "relatorio.pdf", "application/pdf", pdfBody), 1)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", doc.MimeType)
	assert.Contains(t, doc.FileURL, "/uploads/pdfs/")
	assert.True(t, doc.Active)

	list, err := f.transSvc.List(ctx, models.TransparencyListParams{Year: 2024}, false)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	list, err = f.transSvc.List(ctx, models.TransparencyListParams{Year: 2023}, false)
	require.NoError(t, err)
	assert.Empty(t, list)

	replaced, err := f.transSvc.ReplaceFile(ctx, doc.ID, fileHeader(t, "v2.pdf", "application/pdf", pdfBody), 2)
	require.NoError(t, err)
	assert.NotEqual(t, doc.FileURL, replaced.FileURL)

	updated, err := f.transSvc.Update(ctx, doc.ID, payload(t, map[string]any{"ano": "2023"}), 2)
	require.NoError(t, err)
	assert.Equal(t, 2023, updated.Year)

	require.NoError(t, f.transSvc.Delete(ctx, doc.ID))
	_, err = f.transSvc.Get(ctx, doc.ID, true)
	requireKind(t, err, models.KindNotFound)
}

func TestTransparencyRejectsFiles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	form := models.TransparencyForm{Title: "X", Category: "contas", Year: 2024}

	_, err := f.transSvc.Create(ctx, form, nil, 1)
	requireKind(t, err, models.KindValidation)

	_, err = f.transSvc.Create(ctx, form, fileHeader(t, "a.exe", "application/x-msdownload", []byte("MZ\x90\x00\x03")), 1)
	assert.Equal(t, "Tipo de ficheiro não suportado", requireKind(t, err, models.KindValidation).Message)

	big := append(append([]byte{}, pdfBody...), make([]byte, 2<<20)...)
	_, err = f.transSvc.Create(ctx, form, fileHeader(t, "big.pdf", "application/pdf", big), 1)
	requireKind(t, err, models.KindValidation)
}
