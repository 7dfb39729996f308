package repositories

import (
	"context"

	"gorm.io/gorm"

	"ipss-cms/models"
)

type InscriptionFilter struct {
	Kind   models.InscriptionKind
	Status models.InscriptionStatus
	Page   int
	Limit  int
}

type InscriptionRepository interface {
	// Create writes person, emergency contact and inscription atomically.
	Create(ctx context.Context, person *models.Person, contact *models.EmergencyContact, inscription *models.Inscription) error
	GetByID(ctx context.Context, id uint) (*models.Inscription, error)
	List(ctx context.Context, filter InscriptionFilter) ([]models.Inscription, int64, error)
	UpdateStatus(ctx context.Context, id uint, status models.InscriptionStatus, notes *string, actor uint) error
	Delete(ctx context.Context, id uint) error
}

type inscriptionRepository struct {
	crud[models.Inscription]
}

func NewInscriptionRepository(db *gorm.DB) InscriptionRepository {
	return &inscriptionRepository{crud[models.Inscription]{db: db}}
}

func (r *inscriptionRepository) Create(ctx context.Context, person *models.Person, contact *models.EmergencyContact, inscription *models.Inscription) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(person).Error; err != nil {
			return err
		}
		inscription.PersonID = person.ID

		if contact != nil {
			contact.PersonID = person.ID
			if err := tx.Create(contact).Error; err != nil {
				return err
			}
			inscription.EmergencyContactID = &contact.ID
		}

		return tx.Omit("Person", "EmergencyContact").Create(inscription).Error
	})
}

func (r *inscriptionRepository) GetByID(ctx context.Context, id uint) (*models.Inscription, error) {
	var inscription models.Inscription
	err := r.db.WithContext(ctx).Preload("Person").Preload("EmergencyContact").First(&inscription, id).Error
	if err != nil {
		return nil, err
	}
	return &inscription, nil
}

func (r *inscriptionRepository) List(ctx context.Context, filter InscriptionFilter) ([]models.Inscription, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Inscription{})
	if filter.Kind != "" {
		q = q.Where("tipo = ?", filter.Kind)
	}
	if filter.Status != "" {
		q = q.Where("estado = ?", filter.Status)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	inscriptions := make([]models.Inscription, 0)
	err := q.Preload("Person").
		Order("data_criacao desc").
		Offset((page - 1) * filter.Limit).Limit(filter.Limit).
		Find(&inscriptions).Error
	return inscriptions, total, err
}

func (r *inscriptionRepository) UpdateStatus(ctx context.Context, id uint, status models.InscriptionStatus, notes *string, actor uint) error {
	fields := map[string]interface{}{"estado": status, "atualizado_por": actor}
	if notes != nil {
		fields["observacoes"] = *notes
	}
	return r.db.WithContext(ctx).Model(&models.Inscription{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes the inscription with the person and contact rows it owns.
func (r *inscriptionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inscription models.Inscription
		if err := tx.First(&inscription, id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Inscription{}, id).Error; err != nil {
			return err
		}
		if err := tx.Where("pessoa_id = ?", inscription.PersonID).Delete(&models.EmergencyContact{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Person{}, inscription.PersonID).Error
	})
}
