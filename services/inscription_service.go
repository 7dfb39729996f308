package services

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/bwmarrin/snowflake"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"

	"ipss-cms/helper"
	"ipss-cms/models"
	"ipss-cms/repositories"
)

const msgInscriptionNotFound = "Inscrição não encontrada"

type InscriptionService interface {
	Submit(ctx context.Context, kind models.InscriptionKind, req models.InscriptionRequest) (*models.Inscription, error)
	List(ctx context.Context, params models.InscriptionListParams) ([]models.Inscription, int64, error)
	Get(ctx context.Context, id uint) (*models.Inscription, error)
	UpdateStatus(ctx context.Context, id uint, req models.UpdateInscriptionStatusRequest, actor uint) (*models.Inscription, error)
	Delete(ctx context.Context, id uint) error
}

type inscriptionService struct {
	inscriptionRepo repositories.InscriptionRepository
	ids             *snowflake.Node
	validate        *validator.Validate
	trans           ut.Translator
	notifier        *Notifier
}

func NewInscriptionService(inscriptionRepo repositories.InscriptionRepository, ids *snowflake.Node, v *validator.Validate, trans ut.Translator, notifier *Notifier) InscriptionService {
	return &inscriptionService{
		inscriptionRepo: inscriptionRepo,
		ids:             ids,
		validate:        v,
		trans:           trans,
		notifier:        notifier,
	}
}

func (s *inscriptionService) Submit(ctx context.Context, kind models.InscriptionKind, req models.InscriptionRequest) (*models.Inscription, error) {
	if !kind.Valid() {
		return nil, models.NewNotFoundError("Formulário desconhecido")
	}
	details, err := s.details(kind, req.Details)
	if err != nil {
		return nil, err
	}
	birth, err := parseDate("pessoa.data_nascimento", req.Person.BirthDate)
	if err != nil {
		return nil, err
	}

	person := &models.Person{
		Name:       strings.TrimSpace(req.Person.Name),
		BirthDate:  birth,
		NIF:        req.Person.NIF,
		NISS:       req.Person.NISS,
		Address:    req.Person.Address,
		PostalCode: req.Person.PostalCode,
		Locality:   req.Person.Locality,
		Phone:      req.Person.Phone,
		Email:      req.Person.Email,
	}

	var contact *models.EmergencyContact
	if ec := req.EmergencyContact; ec != nil {
		contact = &models.EmergencyContact{
			Name:         strings.TrimSpace(ec.Name),
			Relationship: ec.Relationship,
			Phone:        ec.Phone,
			Email:        ec.Email,
		}
	}

	inscription := &models.Inscription{
		Kind:        kind,
		Reference:   s.ids.Generate().String(),
		Status:      models.StatusPending,
		Details:     details,
		Notes:       req.Notes,
		GDPRConsent: req.GDPRConsent,
	}
	if err := s.inscriptionRepo.Create(ctx, person, contact, inscription); err != nil {
		return nil, models.NewServerError(err)
	}
	inscription.Person = person
	inscription.EmergencyContact = contact

	s.notifier.Inscription(inscription, person)
	return inscription, nil
}

// details decodes the form-specific payload strictly and validates it.
func (s *inscriptionService) details(kind models.InscriptionKind, raw json.RawMessage) (datatypes.JSON, error) {
	target := kind.NewDetails()
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return nil, models.NewValidationError("Dados inválidos", helper.TranslateErrors(err, nil, "detalhes")...)
	}
	if err := s.validate.Struct(target); err != nil {
		return nil, models.NewValidationError("Dados inválidos", helper.TranslateErrors(err, s.trans, "detalhes")...)
	}

	normalized, err := json.Marshal(target)
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return datatypes.JSON(normalized), nil
}

func (s *inscriptionService) List(ctx context.Context, params models.InscriptionListParams) ([]models.Inscription, int64, error) {
	params.Normalize()
	filter := repositories.InscriptionFilter{
		Kind:   models.InscriptionKind(params.Kind),
		Status: models.InscriptionStatus(params.Status),
		Page:   params.Page,
		Limit:  params.Limit,
	}
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, 0, models.NewValidationError("Dados inválidos",
			models.FieldError{Field: "tipo", Message: "tipo de formulário inválido"})
	}

	inscriptions, total, err := s.inscriptionRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, models.NewServerError(err)
	}
	return inscriptions, total, nil
}

func (s *inscriptionService) Get(ctx context.Context, id uint) (*models.Inscription, error) {
	inscription, err := s.inscriptionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, msgInscriptionNotFound)
	}
	return inscription, nil
}

func (s *inscriptionService) UpdateStatus(ctx context.Context, id uint, req models.UpdateInscriptionStatusRequest, actor uint) (*models.Inscription, error) {
	if _, err := s.inscriptionRepo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, msgInscriptionNotFound)
	}
	if err := s.inscriptionRepo.UpdateStatus(ctx, id, req.Status, req.Notes, actor); err != nil {
		return nil, models.NewServerError(err)
	}
	return s.Get(ctx, id)
}

func (s *inscriptionService) Delete(ctx context.Context, id uint) error {
	if err := s.inscriptionRepo.Delete(ctx, id); err != nil {
		return lookupError(err, msgInscriptionNotFound)
	}
	return nil
}
