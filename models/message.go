package models

import "time"

type ContactMessage struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"nome" gorm:"column:nome;size:255;not null"`
	Email     string    `json:"email" gorm:"column:email;size:255;not null;index"`
	Phone     *string   `json:"telefone" gorm:"column:telefone;size:30"`
	Subject   string    `json:"assunto" gorm:"column:assunto;size:255;not null"`
	Message   string    `json:"mensagem" gorm:"column:mensagem;type:text;not null"`
	Read      bool      `json:"lida" gorm:"column:lida;not null;index"`
	Answered  bool      `json:"respondida" gorm:"column:respondida;not null"`
	CreatedAt time.Time `json:"data_criacao" gorm:"column:data_criacao;autoCreateTime;index"`
}

func (ContactMessage) TableName() string { return "mensagens" }
