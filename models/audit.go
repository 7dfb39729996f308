package models

import "time"

// Audit is embedded by every editable resource.
type Audit struct {
	CreatedBy *uint     `json:"criado_por" gorm:"column:criado_por"`
	UpdatedBy *uint     `json:"atualizado_por" gorm:"column:atualizado_por"`
	CreatedAt time.Time `json:"data_criacao" gorm:"column:data_criacao;autoCreateTime"`
	UpdatedAt time.Time `json:"data_atualizacao" gorm:"column:data_atualizacao;autoUpdateTime"`
}

// NewAudit stamps creator and last editor with the same user.
func NewAudit(userID uint) Audit {
	return Audit{CreatedBy: &userID, UpdatedBy: &userID}
}
