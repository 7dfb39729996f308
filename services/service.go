package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"ipss-cms/database"
	"ipss-cms/helper"
	"ipss-cms/models"
	"ipss-cms/updates"
)

// Updater runs partial updates built from a resource schema.
type Updater struct {
	db      *database.Database
	builder *updates.Builder
}

func NewUpdater(db *database.Database, builder *updates.Builder) *Updater {
	return &Updater{db: db, builder: builder}
}

// Apply builds and executes the UPDATE for one row. conflictMsg is returned
// when a unique constraint rejects the new values.
func (u *Updater) Apply(ctx context.Context, schema updates.Schema, id uint, payload updates.Payload, actor uint, conflictMsg string) error {
	st, err := u.builder.Build(schema, id, payload, actor)
	if err != nil {
		return updateError(err)
	}
	if _, err := st.Exec(ctx, u.db.SQLX); err != nil {
		if database.IsUniqueViolation(err) {
			return models.NewConflictError(conflictMsg, err)
		}
		return models.NewServerError(err)
	}
	return nil
}

func updateError(err error) error {
	var unknown *updates.UnknownFieldsError
	var invalid *updates.InvalidFieldsError

	switch {
	case errors.Is(err, updates.ErrNoFieldsToUpdate):
		return models.NewValidationError("Nenhum campo para atualizar")
	case errors.As(err, &unknown):
		fields := make([]models.FieldError, len(unknown.Fields))
		for i, name := range unknown.Fields {
			fields[i] = models.FieldError{Field: name, Message: "campo não permitido"}
		}
		return models.NewValidationError("Campos não permitidos", fields...)
	case errors.As(err, &invalid):
		fields := make([]models.FieldError, len(invalid.Fields))
		for i, f := range invalid.Fields {
			fields[i] = models.FieldError{Field: f.Field, Message: f.Message}
		}
		return models.NewValidationError("Dados inválidos", fields...)
	}
	return models.NewServerError(err)
}

// lookupRef resolves a route reference that is either a numeric id or a slug.
// A numeric ref with no matching id is retried as a slug, so all-digit slugs
// stay reachable.
func lookupRef[T any](ctx context.Context, ref string,
	byID func(context.Context, uint) (*T, error),
	bySlug func(context.Context, string) (*T, error),
) (*T, error) {
	if id, err := strconv.ParseUint(ref, 10, 32); err == nil && id > 0 {
		m, err := byID(ctx, uint(id))
		if err == nil || !database.IsNotFound(err) {
			return m, err
		}
	}
	return bySlug(ctx, ref)
}

func lookupError(err error, notFoundMsg string) error {
	if database.IsNotFound(err) {
		return models.NewNotFoundError(notFoundMsg)
	}
	return models.NewServerError(err)
}

func writeError(err error, conflictMsg string) error {
	if database.IsUniqueViolation(err) {
		return models.NewConflictError(conflictMsg, err)
	}
	return models.NewServerError(err)
}

type slugChecker func(ctx context.Context, slug string, excludeID uint) (bool, error)

// uniqueSlug slugifies source (or the explicit slug) and appends -2, -3, ...
// until no other row uses it.
func uniqueSlug(ctx context.Context, exists slugChecker, explicit, source string, excludeID uint) (string, error) {
	base := helper.Slugify(explicit)
	if base == "" {
		base = helper.Slugify(source)
	}
	if base == "" {
		base = "item"
	}

	candidate := base
	for i := 2; i < 100; i++ {
		taken, err := exists(ctx, candidate, excludeID)
		if err != nil {
			return "", models.NewServerError(err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", models.NewConflictError("Não foi possível gerar um slug único", nil)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func sanitizeText(s string) string {
	return helper.SanitizeHTML(s)
}

func sanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	clean := helper.SanitizeHTML(*s)
	return &clean
}

// parseDate converts an optional request date, reporting failures under field.
func parseDate(field string, s *string) (*time.Time, error) {
	t, err := updates.ParseOptionalTime(s)
	if err != nil {
		return nil, models.NewValidationError("Dados inválidos", models.FieldError{Field: field, Message: "data inválida"})
	}
	return t, nil
}
