package repositories

import (
	"context"

	"gorm.io/gorm"

	"ipss-cms/models"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	List(ctx context.Context, activeOnly bool) ([]models.Project, error)
	Delete(ctx context.Context, id uint) error
}

type projectRepository struct {
	crud[models.Project]
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{crud[models.Project]{db: db}}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.create(ctx, project)
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	return r.getByID(ctx, id)
}

func (r *projectRepository) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	return r.getBy(ctx, "slug", slug)
}

func (r *projectRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return r.exists(ctx, "slug", slug, excludeID)
}

func (r *projectRepository) List(ctx context.Context, activeOnly bool) ([]models.Project, error) {
	items, _, err := r.list(ctx, ListQuery{ActiveOnly: activeOnly, Order: "ordem asc, data_criacao desc"})
	return items, err
}

// Delete also removes the media rows attached to the row.
func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return r.deleteWithMedia(ctx, id, models.OwnerProject)
}

type NewsFilter struct {
	ActiveOnly bool
	Kind       models.NewsKind
	Featured   *bool
	Page       int
	Limit      int
}

type NewsRepository interface {
	Create(ctx context.Context, news *models.News) error
	GetByID(ctx context.Context, id uint) (*models.News, error)
	GetBySlug(ctx context.Context, slug string) (*models.News, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	List(ctx context.Context, filter NewsFilter) ([]models.News, int64, error)
	Delete(ctx context.Context, id uint) error
}

type newsRepository struct {
	crud[models.News]
}

func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{crud[models.News]{db: db}}
}

func (r *newsRepository) Create(ctx context.Context, news *models.News) error {
	return r.create(ctx, news)
}

func (r *newsRepository) GetByID(ctx context.Context, id uint) (*models.News, error) {
	return r.getByID(ctx, id)
}

func (r *newsRepository) GetBySlug(ctx context.Context, slug string) (*models.News, error) {
	return r.getBy(ctx, "slug", slug)
}

func (r *newsRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return r.exists(ctx, "slug", slug, excludeID)
}

func (r *newsRepository) List(ctx context.Context, filter NewsFilter) ([]models.News, int64, error) {
	filters := map[string]interface{}{}
	if filter.Kind != "" {
		filters["tipo"] = string(filter.Kind)
	}
	if filter.Featured != nil {
		filters["destaque"] = *filter.Featured
	}
	return r.list(ctx, ListQuery{
		ActiveOnly: filter.ActiveOnly,
		Filters:    filters,
		Order:      "data_publicacao desc, data_criacao desc",
		Page:       filter.Page,
		Limit:      filter.Limit,
	})
}

// Delete also removes the media rows attached to the row.
func (r *newsRepository) Delete(ctx context.Context, id uint) error {
	return r.deleteWithMedia(ctx, id, models.OwnerNews)
}

type SocialResponseRepository interface {
	Create(ctx context.Context, sr *models.SocialResponse) error
	GetByID(ctx context.Context, id uint) (*models.SocialResponse, error)
	GetBySlug(ctx context.Context, slug string) (*models.SocialResponse, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	List(ctx context.Context, activeOnly bool) ([]models.SocialResponse, error)
	Delete(ctx context.Context, id uint) error
}

type socialResponseRepository struct {
	crud[models.SocialResponse]
}

func NewSocialResponseRepository(db *gorm.DB) SocialResponseRepository {
	return &socialResponseRepository{crud[models.SocialResponse]{db: db}}
}

func (r *socialResponseRepository) Create(ctx context.Context, sr *models.SocialResponse) error {
	return r.create(ctx, sr)
}

func (r *socialResponseRepository) GetByID(ctx context.Context, id uint) (*models.SocialResponse, error) {
	return r.getByID(ctx, id)
}

func (r *socialResponseRepository) GetBySlug(ctx context.Context, slug string) (*models.SocialResponse, error) {
	return r.getBy(ctx, "slug", slug)
}

func (r *socialResponseRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return r.exists(ctx, "slug", slug, excludeID)
}

func (r *socialResponseRepository) List(ctx context.Context, activeOnly bool) ([]models.SocialResponse, error) {
	items, _, err := r.list(ctx, ListQuery{ActiveOnly: activeOnly, Order: "ordem asc, titulo asc"})
	return items, err
}

// Delete also removes the media rows attached to the row.
func (r *socialResponseRepository) Delete(ctx context.Context, id uint) error {
	return r.deleteWithMedia(ctx, id, models.OwnerSocialResponse)
}

type ContentRepository interface {
	Create(ctx context.Context, content *models.InstitutionalContent) error
	GetByID(ctx context.Context, id uint) (*models.InstitutionalContent, error)
	List(ctx context.Context, section string, activeOnly bool) ([]models.InstitutionalContent, error)
	Delete(ctx context.Context, id uint) error
}

type contentRepository struct {
	crud[models.InstitutionalContent]
}

func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{crud[models.InstitutionalContent]{db: db}}
}

func (r *contentRepository) Create(ctx context.Context, content *models.InstitutionalContent) error {
	return r.create(ctx, content)
}

func (r *contentRepository) GetByID(ctx context.Context, id uint) (*models.InstitutionalContent, error) {
	return r.getByID(ctx, id)
}

func (r *contentRepository) List(ctx context.Context, section string, activeOnly bool) ([]models.InstitutionalContent, error) {
	lq := ListQuery{ActiveOnly: activeOnly, Order: "secao asc, ordem asc"}
	if section != "" {
		lq.Filters = map[string]interface{}{"secao": section}
	}
	items, _, err := r.list(ctx, lq)
	return items, err
}

// Delete also removes the media rows attached to the row.
func (r *contentRepository) Delete(ctx context.Context, id uint) error {
	return r.deleteWithMedia(ctx, id, models.OwnerContent)
}
