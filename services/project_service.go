package services

import (
	"context"
	"encoding/json"
	"time"

	"ipss-cms/models"
	"ipss-cms/repositories"
	"ipss-cms/updates"
)

const (
	msgProjectNotFound  = "Projeto não encontrado"
	msgProjectSlugTaken = "Já existe um projeto com este slug."
)

type ProjectService interface {
	List(ctx context.Context, includeInactive bool) ([]models.Project, error)
	// Get accepts a numeric id or a slug.
	Get(ctx context.Context, ref string, includeInactive bool) (*models.Project, error)
	Create(ctx context.Context, req models.CreateProjectRequest, actor uint) (*models.Project, error)
	Update(ctx context.Context, id uint, payload updates.Payload, actor uint) (*models.Project, error)
	Delete(ctx context.Context, id uint) error
}

type projectService struct {
	projectRepo repositories.ProjectRepository
	media       MediaService
	updater     *Updater
}

func NewProjectService(projectRepo repositories.ProjectRepository, media MediaService, updater *Updater) ProjectService {
	return &projectService{projectRepo: projectRepo, media: media, updater: updater}
}

func (s *projectService) List(ctx context.Context, includeInactive bool) ([]models.Project, error) {
	projects, err := s.projectRepo.List(ctx, !includeInactive)
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return projects, nil
}

func (s *projectService) Get(ctx context.Context, ref string, includeInactive bool) (*models.Project, error) {
	project, err := lookupRef(ctx, ref, s.projectRepo.GetByID, s.projectRepo.GetBySlug)
	if err != nil {
		return nil, lookupError(err, msgProjectNotFound)
	}
	if !project.Active && !includeInactive {
		return nil, models.NewNotFoundError(msgProjectNotFound)
	}

	project.Media, err = s.media.List(ctx, models.MediaOwner{Kind: models.OwnerProject, ID: project.ID})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) Create(ctx context.Context, req models.CreateProjectRequest, actor uint) (*models.Project, error) {
	start, err := parseDate("data_inicio", req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDate("data_fim", req.EndDate)
	if err != nil {
		return nil, err
	}
	if err := checkDateRange(start, end); err != nil {
		return nil, err
	}

	slug, err := uniqueSlug(ctx, s.projectRepo.SlugExists, req.Slug, req.Title, 0)
	if err != nil {
		return nil, err
	}

	project := &models.Project{
		Title:       req.Title,
		Slug:        slug,
		Description: sanitizeText(req.Description),
		Content:     sanitizeText(req.Content),
		ImageURL:    req.ImageURL,
		StartDate:   start,
		EndDate:     end,
		Order:       req.Order,
		Active:      boolOr(req.Active, true),
		Audit:       models.NewAudit(actor),
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, writeError(err, msgProjectSlugTaken)
	}
	return project, nil
}

func (s *projectService) Update(ctx context.Context, id uint, payload updates.Payload, actor uint) (*models.Project, error) {
	current, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, msgProjectNotFound)
	}
	start, okStart := mergedDate(payload, "data_inicio", current.StartDate)
	end, okEnd := mergedDate(payload, "data_fim", current.EndDate)
	if okStart && okEnd {
		if err := checkDateRange(start, end); err != nil {
			return nil, err
		}
	}
	if err := s.updater.Apply(ctx, projectSchema, id, payload, actor, msgProjectSlugTaken); err != nil {
		return nil, err
	}
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, msgProjectNotFound)
	}
	return project, nil
}

func checkDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return models.NewValidationError("Dados inválidos",
			models.FieldError{Field: "data_fim", Message: "data_fim deve ser posterior a data_inicio"})
	}
	return nil
}

// mergedDate returns the value key will hold once payload is applied. It
// reports false when the payload value is malformed; the builder rejects it.
func mergedDate(p updates.Payload, key string, current *time.Time) (*time.Time, bool) {
	raw, ok := p[key]
	if !ok {
		return current, true
	}
	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}
	t, err := updates.ParseOptionalTime(s)
	if err != nil {
		return nil, false
	}
	return t, true
}

func (s *projectService) Delete(ctx context.Context, id uint) error {
	if _, err := s.projectRepo.GetByID(ctx, id); err != nil {
		return lookupError(err, msgProjectNotFound)
	}
	attached, err := s.media.List(ctx, models.MediaOwner{Kind: models.OwnerProject, ID: id})
	if err != nil {
		return err
	}
	if err := s.projectRepo.Delete(ctx, id); err != nil {
		return models.NewServerError(err)
	}
	s.media.RemoveFiles(ctx, attached)
	return nil
}
