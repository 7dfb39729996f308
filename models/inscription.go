package models

import (
	"time"

	"gorm.io/datatypes"
)

type InscriptionKind string

const (
	InscriptionERPI     InscriptionKind = "erpi"
	InscriptionDayCare  InscriptionKind = "centro-de-dia"
	InscriptionHomeCare InscriptionKind = "sad"
	InscriptionNursery  InscriptionKind = "creche"
)

// InscriptionKinds lists the enrolment forms in route order.
var InscriptionKinds = []InscriptionKind{InscriptionERPI, InscriptionDayCare, InscriptionHomeCare, InscriptionNursery}

func (k InscriptionKind) Valid() bool {
	for _, known := range InscriptionKinds {
		if k == known {
			return true
		}
	}
	return false
}

type InscriptionStatus string

const (
	StatusPending  InscriptionStatus = "pendente"
	StatusReview   InscriptionStatus = "em_analise"
	StatusAccepted InscriptionStatus = "aceite"
	StatusRejected InscriptionStatus = "recusada"
)

type Person struct {
	ID         uint       `json:"id" gorm:"primarykey"`
	Name       string     `json:"nome" gorm:"column:nome;size:255;not null"`
	BirthDate  *time.Time `json:"data_nascimento" gorm:"column:data_nascimento"`
	NIF        *string    `json:"nif" gorm:"column:nif;size:9"`
	NISS       *string    `json:"niss" gorm:"column:niss;size:11"`
	Address    *string    `json:"morada" gorm:"column:morada;size:500"`
	PostalCode *string    `json:"codigo_postal" gorm:"column:codigo_postal;size:8"`
	Locality   *string    `json:"localidade" gorm:"column:localidade;size:255"`
	Phone      *string    `json:"telefone" gorm:"column:telefone;size:30"`
	Email      *string    `json:"email" gorm:"column:email;size:255"`
	CreatedAt  time.Time  `json:"data_criacao" gorm:"column:data_criacao;autoCreateTime"`
}

func (Person) TableName() string { return "pessoas" }

type EmergencyContact struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	PersonID     uint      `json:"pessoa_id" gorm:"column:pessoa_id;not null;index"`
	Name         string    `json:"nome" gorm:"column:nome;size:255;not null"`
	Relationship *string   `json:"parentesco" gorm:"column:parentesco;size:100"`
	Phone        string    `json:"telefone" gorm:"column:telefone;size:30;not null"`
	Email        *string   `json:"email" gorm:"column:email;size:255"`
	CreatedAt    time.Time `json:"data_criacao" gorm:"column:data_criacao;autoCreateTime"`
}

func (EmergencyContact) TableName() string { return "contactos_emergencia" }

type Inscription struct {
	ID                 uint              `json:"id" gorm:"primarykey"`
	Kind               InscriptionKind   `json:"tipo" gorm:"column:tipo;size:20;not null;index"`
	Reference          string            `json:"referencia" gorm:"column:referencia;size:32;uniqueIndex;not null"`
	PersonID           uint              `json:"pessoa_id" gorm:"column:pessoa_id;not null"`
	Person             *Person           `json:"pessoa,omitempty" gorm:"foreignKey:PersonID"`
	EmergencyContactID *uint             `json:"contacto_emergencia_id" gorm:"column:contacto_emergencia_id"`
	EmergencyContact   *EmergencyContact `json:"contacto_emergencia,omitempty" gorm:"foreignKey:EmergencyContactID"`
	Status             InscriptionStatus `json:"estado" gorm:"column:estado;size:20;not null;index"`
	Details            datatypes.JSON    `json:"detalhes" gorm:"column:detalhes"`
	Notes              *string           `json:"observacoes" gorm:"column:observacoes;type:text"`
	GDPRConsent        bool              `json:"consentimento_rgpd" gorm:"column:consentimento_rgpd;not null"`
	UpdatedBy          *uint             `json:"atualizado_por" gorm:"column:atualizado_por"`
	CreatedAt          time.Time         `json:"data_criacao" gorm:"column:data_criacao;autoCreateTime"`
	UpdatedAt          time.Time         `json:"data_atualizacao" gorm:"column:data_atualizacao;autoUpdateTime"`
}

func (Inscription) TableName() string { return "inscricoes" }
