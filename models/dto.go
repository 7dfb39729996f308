package models

import "encoding/json"

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"password_atual" binding:"required"`
	NewPassword     string `json:"nova_password" binding:"required,min=8,max=72"`
}

type CreateUserRequest struct {
	Name     string   `json:"nome" binding:"required,min=2,max=255"`
	Email    string   `json:"email" binding:"required,email,max=255"`
	Password string   `json:"password" binding:"required,min=8,max=72"`
	Role     UserRole `json:"tipo" binding:"required,oneof=Admin Manager"`
	Active   *bool    `json:"ativo"`
}

type CreateProjectRequest struct {
	Title       string  `json:"titulo" binding:"required,max=255"`
	Slug        string  `json:"slug" binding:"omitempty,max=255"`
	Description string  `json:"descricao"`
	Content     string  `json:"conteudo"`
	ImageURL    *string `json:"imagem_url" binding:"omitempty,max=500"`
	StartDate   *string `json:"data_inicio"`
	EndDate     *string `json:"data_fim"`
	Order       int     `json:"ordem" binding:"min=0"`
	Active      *bool   `json:"ativo"`
}

type CreateNewsRequest struct {
	Title         string   `json:"titulo" binding:"required,max=255"`
	Slug          string   `json:"slug" binding:"omitempty,max=255"`
	Summary       string   `json:"resumo"`
	Content       string   `json:"conteudo"`
	ImageURL      *string  `json:"imagem_url" binding:"omitempty,max=500"`
	Kind          NewsKind `json:"tipo" binding:"omitempty,oneof=noticia evento"`
	PublishedAt   *string  `json:"data_publicacao"`
	EventDate     *string  `json:"data_evento"`
	EventLocation *string  `json:"local_evento" binding:"omitempty,max=255"`
	Featured      bool     `json:"destaque"`
	Active        *bool    `json:"ativo"`
}

type CreateSocialResponseRequest struct {
	Title       string  `json:"titulo" binding:"required,max=255"`
	Slug        string  `json:"slug" binding:"omitempty,max=255"`
	Description string  `json:"descricao"`
	Content     string  `json:"conteudo"`
	ImageURL    *string `json:"imagem_url" binding:"omitempty,max=500"`
	Icon        *string `json:"icone" binding:"omitempty,max=100"`
	Capacity    *int    `json:"capacidade" binding:"omitempty,min=0"`
	Schedule    *string `json:"horario" binding:"omitempty,max=255"`
	Audience    *string `json:"publico_alvo" binding:"omitempty,max=255"`
	Order       int     `json:"ordem" binding:"min=0"`
	Active      *bool   `json:"ativo"`
}

type CreateContentRequest struct {
	Section  string          `json:"secao" binding:"required,max=100"`
	Title    *string         `json:"titulo" binding:"omitempty,max=255"`
	Subtitle *string         `json:"subtitulo" binding:"omitempty,max=255"`
	Content  string          `json:"conteudo"`
	ImageURL *string         `json:"imagem_url" binding:"omitempty,max=500"`
	Data     json.RawMessage `json:"dados"`
	Order    int             `json:"ordem" binding:"min=0"`
	Active   *bool           `json:"ativo"`
}

type CreateSectionRequest struct {
	Name        string        `json:"nome" binding:"required,max=255"`
	Slug        string        `json:"slug" binding:"omitempty,max=255"`
	Title       *string       `json:"titulo" binding:"omitempty,max=255"`
	Description *string       `json:"descricao"`
	Layout      SectionLayout `json:"tipo_layout" binding:"omitempty,oneof=cards lista galeria texto"`
	Page        *string       `json:"pagina" binding:"omitempty,max=100"`
	Order       int           `json:"ordem" binding:"min=0"`
	Active      *bool         `json:"ativo"`
}

type CreateSectionItemRequest struct {
	Title    string          `json:"titulo" binding:"required,max=255"`
	Subtitle *string         `json:"subtitulo" binding:"omitempty,max=255"`
	Content  string          `json:"conteudo"`
	ImageURL *string         `json:"imagem_url" binding:"omitempty,max=500"`
	LinkURL  *string         `json:"link_url" binding:"omitempty,max=500"`
	LinkText *string         `json:"link_texto" binding:"omitempty,max=255"`
	Data     json.RawMessage `json:"dados"`
	Order    int             `json:"ordem" binding:"min=0"`
	Active   *bool           `json:"ativo"`
}

type ItemOrder struct {
	ID    uint `json:"id" binding:"required"`
	Order int  `json:"ordem" binding:"min=0"`
}

type ReorderItemsRequest struct {
	Items []ItemOrder `json:"itens" binding:"required,min=1,dive"`
}

type ContactFormRequest struct {
	Name    string  `json:"nome" binding:"required,max=255"`
	Email   string  `json:"email" binding:"required,email,max=255"`
	Phone   *string `json:"telefone" binding:"omitempty,max=30"`
	Subject string  `json:"assunto" binding:"required,max=255"`
	Message string  `json:"mensagem" binding:"required,max=5000"`
}

type PersonInput struct {
	Name       string  `json:"nome" binding:"required,max=255"`
	BirthDate  *string `json:"data_nascimento"`
	NIF        *string `json:"nif" binding:"omitempty,len=9,numeric"`
	NISS       *string `json:"niss" binding:"omitempty,len=11,numeric"`
	Address    *string `json:"morada" binding:"omitempty,max=500"`
	PostalCode *string `json:"codigo_postal" binding:"omitempty,max=8"`
	Locality   *string `json:"localidade" binding:"omitempty,max=255"`
	Phone      *string `json:"telefone" binding:"omitempty,max=30"`
	Email      *string `json:"email" binding:"omitempty,email"`
}

type EmergencyContactInput struct {
	Name         string  `json:"nome" binding:"required,max=255"`
	Relationship *string `json:"parentesco" binding:"omitempty,max=100"`
	Phone        string  `json:"telefone" binding:"required,max=30"`
	Email        *string `json:"email" binding:"omitempty,email"`
}

type InscriptionRequest struct {
	Person           PersonInput            `json:"pessoa"`
	EmergencyContact *EmergencyContactInput `json:"contacto_emergencia"`
	Details          json.RawMessage        `json:"detalhes"`
	Notes            *string                `json:"observacoes" binding:"omitempty,max=5000"`
	GDPRConsent      bool                   `json:"consentimento_rgpd" binding:"required"`
}

type UpdateInscriptionStatusRequest struct {
	Status InscriptionStatus `json:"estado" binding:"required,oneof=pendente em_analise aceite recusada"`
	Notes  *string           `json:"observacoes" binding:"omitempty,max=5000"`
}

type TransparencyForm struct {
	Title       string  `form:"titulo" binding:"required,max=255"`
	Description *string `form:"descricao"`
	Category    string  `form:"categoria" binding:"required,max=100"`
	Year        int     `form:"ano" binding:"required,min=1900,max=2100"`
	Order       int     `form:"ordem" binding:"min=0"`
	Active      *bool   `form:"ativo"`
}

type MediaUploadForm struct {
	OwnerKind string  `form:"tabela_referencia" binding:"required"`
	OwnerID   uint    `form:"id_referencia" binding:"required,min=1"`
	Order     int     `form:"ordem" binding:"min=0"`
	Title     *string `form:"titulo" binding:"omitempty,max=255"`
}

type MediaLinkRequest struct {
	OwnerKind string  `json:"tabela_referencia" binding:"required"`
	OwnerID   uint    `json:"id_referencia" binding:"required,min=1"`
	URL       string  `json:"url" binding:"required,url,max=500"`
	Title     *string `json:"titulo" binding:"omitempty,max=255"`
	Order     int     `json:"ordem" binding:"min=0"`
}

type MediaListParams struct {
	OwnerKind string `form:"tabela_referencia" binding:"required"`
	OwnerID   uint   `form:"id_referencia" binding:"required,min=1"`
}

type ListParams struct {
	Page  int `form:"page,default=1"`
	Limit int `form:"limit,default=20"`
}

// Normalize clamps paging to sane bounds.
func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 || p.Limit > 100 {
		p.Limit = 20
	}
}

type NewsListParams struct {
	ListParams
	Kind     string `form:"tipo"`
	Featured *bool  `form:"destaque"`
}

type MessageListParams struct {
	ListParams
	Read *bool `form:"lida"`
}

type InscriptionListParams struct {
	ListParams
	Kind   string `form:"tipo"`
	Status string `form:"estado"`
}

type TransparencyListParams struct {
	Category string `form:"categoria"`
	Year     int    `form:"ano"`
}
