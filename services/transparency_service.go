package services

import (
	"context"
	"mime/multipart"

	"ipss-cms/models"
	"ipss-cms/repositories"
	"ipss-cms/updates"
)

const msgDocumentNotFound = "Documento não encontrado"

type TransparencyService interface {
	List(ctx context.Context, params models.TransparencyListParams, includeInactive bool) ([]models.TransparencyDocument, error)
	Get(ctx context.Context, id uint, includeInactive bool) (*models.TransparencyDocument, error)
	Create(ctx context.Context, form models.TransparencyForm, fh *multipart.FileHeader, actor uint) (*models.TransparencyDocument, error)
	Update(ctx context.Context, id uint, payload updates.Payload, actor uint) (*models.TransparencyDocument, error)
	ReplaceFile(ctx context.Context, id uint, fh *multipart.FileHeader, actor uint) (*models.TransparencyDocument, error)
	Delete(ctx context.Context, id uint) error
}

type transparencyService struct {
	docRepo repositories.TransparencyRepository
	files   Uploads
	updater *Updater
}

func NewTransparencyService(docRepo repositories.TransparencyRepository, files Uploads, updater *Updater) TransparencyService {
	return &transparencyService{docRepo: docRepo, files: files, updater: updater}
}

func (s *transparencyService) List(ctx context.Context, params models.TransparencyListParams, includeInactive bool) ([]models.TransparencyDocument, error) {
	docs, err := s.docRepo.List(ctx, params.Category, params.Year, !includeInactive)
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return docs, nil
}

func (s *transparencyService) Get(ctx context.Context, id uint, includeInactive bool) (*models.TransparencyDocument, error) {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, msgDocumentNotFound)
	}
	if !doc.Active && !includeInactive {
		return nil, models.NewNotFoundError(msgDocumentNotFound)
	}
	return doc, nil
}

func (s *transparencyService) Create(ctx context.Context, form models.TransparencyForm, fh *multipart.FileHeader, actor uint) (*models.TransparencyDocument, error) {
	file, err := storeUpload(ctx, s.files, fh)
	if err != nil {
		return nil, err
	}

	doc := &models.TransparencyDocument{
		Title:       form.Title,
		Description: form.Description,
		Category:    form.Category,
		Year:        form.Year,
		FileURL:     file.URL,
		StorageKey:  file.Key,
		Size:        file.Size,
		MimeType:    file.MimeType,
		Order:       form.Order,
		Active:      boolOr(form.Active, true),
		Audit:       models.NewAudit(actor),
	}
	if err := s.docRepo.Create(ctx, doc); err != nil {
		s.files.Remove(ctx, file.Key)
		return nil, models.NewServerError(err)
	}
	return doc, nil
}

func (s *transparencyService) Update(ctx context.Context, id uint, payload updates.Payload, actor uint) (*models.TransparencyDocument, error) {
	if _, err := s.docRepo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, msgDocumentNotFound)
	}
	if err := s.updater.Apply(ctx, transparencySchema, id, payload, actor, ""); err != nil {
		return nil, err
	}
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, msgDocumentNotFound)
	}
	return doc, nil
}

// ReplaceFile swaps the stored document and removes the previous file once
// the row points at the new one.
func (s *transparencyService) ReplaceFile(ctx context.Context, id uint, fh *multipart.FileHeader, actor uint) (*models.TransparencyDocument, error) {
	old, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, msgDocumentNotFound)
	}

	file, err := storeUpload(ctx, s.files, fh)
	if err != nil {
		return nil, err
	}
	if err := s.docRepo.ReplaceFile(ctx, id, file.URL, file.Key, file.MimeType, file.Size, actor); err != nil {
		s.files.Remove(ctx, file.Key)
		return nil, models.NewServerError(err)
	}
	s.files.Remove(ctx, old.StorageKey)

	return s.Get(ctx, id, true)
}

func (s *transparencyService) Delete(ctx context.Context, id uint) error {
	doc, err := s.docRepo.GetByID(ctx, id)
	if err != nil {
		return lookupError(err, msgDocumentNotFound)
	}
	if err := s.docRepo.Delete(ctx, id); err != nil {
		return models.NewServerError(err)
	}
	s.files.Remove(ctx, doc.StorageKey)
	return nil
}
