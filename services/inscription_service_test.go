package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ipss-cms/models"
)

func sadRequest(details string) models.InscriptionRequest {
	birth := "1940-03-12"
	nif := "123456789"
	return models.InscriptionRequest{
		Person:           models.PersonInput{Name: "Joaquim Silva", BirthDate: &birth, NIF: &nif},
		EmergencyContact: &models.EmergencyContactInput{Name: "Rita Silva", Phone: "912345678"},
		Details:          json.RawMessage(details),
		GDPRConsent:      true,
	}
}

func TestInscriptionSubmit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ins, err := f.inscriptions.Submit(ctx, models.InscriptionHomeCare,
		sadRequest(`{"servicos":["higiene","alimentacao"],"frequencia":"diaria"}`))
	require.NoError(t, err)
	assert.NotEmpty(t, ins.Reference)
	assert.Equal(t, models.StatusPending, ins.Status)
	require.NotNil(t, ins.EmergencyContactID)

	stored, err := f.inscriptions.Get(ctx, ins.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Person)
	assert.Equal(t, "Joaquim Silva", stored.Person.Name)
	require.NotNil(t, stored.EmergencyContact)
	assert.Equal(t, stored.Person.ID, stored.EmergencyContact.PersonID)

	var details models.HomeCareDetails
	require.NoError(t, json.Unmarshal(stored.Details, &details))
	assert.Equal(t, []string{"higiene", "alimentacao"}, details.Services)
	assert.Len(t, f.mailer.subjects, 1)
}

func TestInscriptionDetailsValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.inscriptions.Submit(ctx, models.InscriptionHomeCare, sadRequest(`{"servicos":["jardinagem"],"frequencia":"diaria"}`))
	appErr := requireKind(t, err, models.KindValidation)
	assert.Equal(t, "detalhes.servicos[0]", appErr.Fields[0].Field)

	_, err = f.inscriptions.Submit(ctx, models.InscriptionHomeCare, sadRequest(`{"servicos":["higiene"],"frequencia":"diaria","extra":1}`))
	appErr = requireKind(t, err, models.KindValidation)
	assert.Equal(t, "detalhes.extra", appErr.Fields[0].Field)

	_, err = f.inscriptions.Submit(ctx, models.InscriptionNursery, sadRequest(``))
	appErr = requireKind(t, err, models.KindValidation)
	assert.NotEmpty(t, appErr.Fields)

	_, err = f.inscriptions.Submit(ctx, models.InscriptionKind("lar"), sadRequest(`{}`))
	requireKind(t, err, models.KindNotFound)

	list, total, err := f.inscriptions.List(ctx, models.InscriptionListParams{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, list)
}

func TestInscriptionStatusAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ins, err := f.inscriptions.Submit(ctx, models.InscriptionERPI, sadRequest(`{"grau_dependencia":"dependente"}`))
	require.NoError(t, err)

	notes := "Visita marcada"
	updated, err := f.inscriptions.UpdateStatus(ctx, ins.ID, models.UpdateInscriptionStatusRequest{Status: models.StatusReview, Notes: &notes}, 3)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReview, updated.Status)
	assert.Equal(t, "Visita marcada", *updated.Notes)

	list, total, err := f.inscriptions.List(ctx, models.InscriptionListParams{Kind: "erpi", Status: "em_analise"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)

	_, _, err = f.inscriptions.List(ctx, models.InscriptionListParams{Kind: "lar"})
	requireKind(t, err, models.KindValidation)

	require.NoError(t, f.inscriptions.Delete(ctx, ins.ID))
	err = f.inscriptions.Delete(ctx, ins.ID)
	requireKind(t, err, models.KindNotFound)

	var people int64
	require.NoError(t, f.db.Gorm.Model(&models.Person{}).Count(&people).Error)
	assert.Zero(t, people)
}
