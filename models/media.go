package models

import (
	"fmt"
	"strings"
	"time"
)

// OwnerKind is the closed set of resources media can be attached to.
type OwnerKind string

const (
	OwnerProject        OwnerKind = "projetos"
	OwnerNews           OwnerKind = "noticias"
	OwnerSocialResponse OwnerKind = "respostas_sociais"
	OwnerContent        OwnerKind = "conteudo_institucional"
	OwnerSectionItem    OwnerKind = "itens_secao"
)

var ownerKinds = map[OwnerKind]struct{}{
	OwnerProject:        {},
	OwnerNews:           {},
	OwnerSocialResponse: {},
	OwnerContent:        {},
	OwnerSectionItem:    {},
}

// ParseOwnerKind accepts table names and their route spelling
// ("respostas-sociais", "conteudo").
func ParseOwnerKind(s string) (OwnerKind, error) {
	s = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if s == "conteudo" {
		s = string(OwnerContent)
	}
	k := OwnerKind(s)
	if _, ok := ownerKinds[k]; !ok {
		return "", fmt.Errorf("tabela de referência desconhecida: %q", s)
	}
	return k, nil
}

type MediaOwner struct {
	Kind OwnerKind
	ID   uint
}

type MediaType string

const (
	MediaImage    MediaType = "imagem"
	MediaVideo    MediaType = "video"
	MediaPDF      MediaType = "pdf"
	MediaDocument MediaType = "documento"
	MediaLink     MediaType = "link"
)

type Media struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	OwnerKind    OwnerKind `json:"tabela_referencia" gorm:"column:tabela_referencia;size:50;not null;index:idx_media_owner"`
	OwnerID      uint      `json:"id_referencia" gorm:"column:id_referencia;not null;index:idx_media_owner"`
	Type         MediaType `json:"tipo" gorm:"column:tipo;size:20;not null"`
	URL          string    `json:"url" gorm:"column:url;size:500;not null"`
	StorageKey   string    `json:"-" gorm:"column:storage_key;size:500"`
	OriginalName *string   `json:"nome_original" gorm:"column:nome_original;size:255"`
	Title        *string   `json:"titulo" gorm:"column:titulo;size:255"`
	Size         int64     `json:"tamanho" gorm:"column:tamanho"`
	MimeType     *string   `json:"mime_type" gorm:"column:mime_type;size:100"`
	Order        int       `json:"ordem" gorm:"column:ordem;not null"`
	CreatedBy    *uint     `json:"criado_por" gorm:"column:criado_por"`
	CreatedAt    time.Time `json:"data_criacao" gorm:"column:data_criacao;autoCreateTime"`
}

func (Media) TableName() string { return "media" }

func (m Media) Owner() MediaOwner {
	return MediaOwner{Kind: m.OwnerKind, ID: m.OwnerID}
}
