package models

import "time"

type UserRole string

const (
	RoleAdmin   UserRole = "Admin"
	RoleManager UserRole = "Manager"
)

func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleManager
}

type User struct {
	ID           uint       `json:"id" gorm:"primarykey"`
	Name         string     `json:"nome" gorm:"column:nome;size:255;not null"`
	Email        string     `json:"email" gorm:"column:email;size:255;uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"column:password_hash;size:255;not null"`
	Role         UserRole   `json:"tipo" gorm:"column:tipo;size:20;not null"`
	Active       bool       `json:"ativo" gorm:"column:ativo;not null"`
	LastLogin    *time.Time `json:"ultimo_login" gorm:"column:ultimo_login"`
	CreatedBy    *uint      `json:"criado_por" gorm:"column:criado_por"`
	CreatedAt    time.Time  `json:"data_criacao" gorm:"column:data_criacao;autoCreateTime"`
	UpdatedAt    time.Time  `json:"data_atualizacao" gorm:"column:data_atualizacao;autoUpdateTime"`
}

func (User) TableName() string { return "users" }

// Summary is the shape embedded in login responses.
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type UserSummary struct {
	ID    uint     `json:"id"`
	Name  string   `json:"nome"`
	Email string   `json:"email"`
	Role  UserRole `json:"tipo"`
}
