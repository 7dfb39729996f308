package models

import (
	"time"

	"gorm.io/datatypes"
)

type Project struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	Title       string     `json:"titulo" gorm:"column:titulo;size:255;not null"`
	Slug        string     `json:"slug" gorm:"column:slug;size:255;uniqueIndex;not null"`
	Description string     `json:"descricao" gorm:"column:descricao;type:text"`
	Content     string     `json:"conteudo" gorm:"column:conteudo;type:text"`
	ImageURL    *string    `json:"imagem_url" gorm:"column:imagem_url;size:500"`
	StartDate   *time.Time `json:"data_inicio" gorm:"column:data_inicio"`
	EndDate     *time.Time `json:"data_fim" gorm:"column:data_fim"`
	Order       int        `json:"ordem" gorm:"column:ordem;not null"`
	Active      bool       `json:"ativo" gorm:"column:ativo;not null;index"`
	Audit
	Media []Media `json:"media,omitempty" gorm:"-"`
}

func (Project) TableName() string { return "projetos" }

type NewsKind string

const (
	NewsKindArticle NewsKind = "noticia"
	NewsKindEvent   NewsKind = "evento"
)

type News struct {
	ID            uint       `json:"id" gorm:"primarykey"`
	Title         string     `json:"titulo" gorm:"column:titulo;size:255;not null"`
	Slug          string     `json:"slug" gorm:"column:slug;size:255;uniqueIndex;not null"`
	Summary       string     `json:"resumo" gorm:"column:resumo;type:text"`
	Content       string     `json:"conteudo" gorm:"column:conteudo;type:text"`
	ImageURL      *string    `json:"imagem_url" gorm:"column:imagem_url;size:500"`
	Kind          NewsKind   `json:"tipo" gorm:"column:tipo;size:20;not null"`
	PublishedAt   *time.Time `json:"data_publicacao" gorm:"column:data_publicacao;index"`
	EventDate     *time.Time `json:"data_evento" gorm:"column:data_evento"`
	EventLocation *string    `json:"local_evento" gorm:"column:local_evento;size:255"`
	Featured      bool       `json:"destaque" gorm:"column:destaque;not null"`
	Active        bool       `json:"ativo" gorm:"column:ativo;not null;index"`
	Audit
	Media []Media `json:"media,omitempty" gorm:"-"`
}

func (News) TableName() string { return "noticias" }

type SocialResponse struct {
	ID          uint    `json:"id" gorm:"primarykey"`
	Title       string  `json:"titulo" gorm:"column:titulo;size:255;not null"`
	Slug        string  `json:"slug" gorm:"column:slug;size:255;uniqueIndex;not null"`
	Description string  `json:"descricao" gorm:"column:descricao;type:text"`
	Content     string  `json:"conteudo" gorm:"column:conteudo;type:text"`
	ImageURL    *string `json:"imagem_url" gorm:"column:imagem_url;size:500"`
	Icon        *string `json:"icone" gorm:"column:icone;size:100"`
	Capacity    *int    `json:"capacidade" gorm:"column:capacidade"`
	Schedule    *string `json:"horario" gorm:"column:horario;size:255"`
	Audience    *string `json:"publico_alvo" gorm:"column:publico_alvo;size:255"`
	Order       int     `json:"ordem" gorm:"column:ordem;not null"`
	Active      bool    `json:"ativo" gorm:"column:ativo;not null;index"`
	Audit
	Media []Media `json:"media,omitempty" gorm:"-"`
}

func (SocialResponse) TableName() string { return "respostas_sociais" }

// InstitutionalContent holds the editable blocks of the fixed pages
// (sobre, missao, visao, valores, historia, contactos, ...).
type InstitutionalContent struct {
	ID       uint           `json:"id" gorm:"primarykey"`
	Section  string         `json:"secao" gorm:"column:secao;size:100;not null;index"`
	Title    *string        `json:"titulo" gorm:"column:titulo;size:255"`
	Subtitle *string        `json:"subtitulo" gorm:"column:subtitulo;size:255"`
	Content  string         `json:"conteudo" gorm:"column:conteudo;type:text"`
	ImageURL *string        `json:"imagem_url" gorm:"column:imagem_url;size:500"`
	Data     datatypes.JSON `json:"dados" gorm:"column:dados"`
	Order    int            `json:"ordem" gorm:"column:ordem;not null"`
	Active   bool           `json:"ativo" gorm:"column:ativo;not null;index"`
	Audit
	Media []Media `json:"media,omitempty" gorm:"-"`
}

func (InstitutionalContent) TableName() string { return "conteudo_institucional" }

type SectionLayout string

const (
	LayoutCards   SectionLayout = "cards"
	LayoutList    SectionLayout = "lista"
	LayoutGallery SectionLayout = "galeria"
	LayoutText    SectionLayout = "texto"
)

type CustomSection struct {
	ID          uint          `json:"id" gorm:"primarykey"`
	Name        string        `json:"nome" gorm:"column:nome;size:255;not null"`
	Slug        string        `json:"slug" gorm:"column:slug;size:255;uniqueIndex;not null"`
	Title       *string       `json:"titulo" gorm:"column:titulo;size:255"`
	Description *string       `json:"descricao" gorm:"column:descricao;type:text"`
	Layout      SectionLayout `json:"tipo_layout" gorm:"column:tipo_layout;size:20;not null"`
	Page        *string       `json:"pagina" gorm:"column:pagina;size:100;index"`
	Order       int           `json:"ordem" gorm:"column:ordem;not null"`
	Active      bool          `json:"ativo" gorm:"column:ativo;not null;index"`
	Audit
	Items []SectionItem `json:"itens,omitempty" gorm:"foreignKey:SectionID"`
}

func (CustomSection) TableName() string { return "secoes_personalizadas" }

type SectionItem struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	SectionID uint           `json:"secao_id" gorm:"column:secao_id;not null;index"`
	Title     string         `json:"titulo" gorm:"column:titulo;size:255;not null"`
	Subtitle  *string        `json:"subtitulo" gorm:"column:subtitulo;size:255"`
	Content   string         `json:"conteudo" gorm:"column:conteudo;type:text"`
	ImageURL  *string        `json:"imagem_url" gorm:"column:imagem_url;size:500"`
	LinkURL   *string        `json:"link_url" gorm:"column:link_url;size:500"`
	LinkText  *string        `json:"link_texto" gorm:"column:link_texto;size:255"`
	Data      datatypes.JSON `json:"dados" gorm:"column:dados"`
	Order     int            `json:"ordem" gorm:"column:ordem;not null"`
	Active    bool           `json:"ativo" gorm:"column:ativo;not null;index"`
	Audit
	Media []Media `json:"media,omitempty" gorm:"-"`
}

func (SectionItem) TableName() string { return "itens_secao" }

type TransparencyDocument struct {
	ID          uint    `json:"id" gorm:"primarykey"`
	Title       string  `json:"titulo" gorm:"column:titulo;size:255;not null"`
	Description *string `json:"descricao" gorm:"column:descricao;type:text"`
	Category    string  `json:"categoria" gorm:"column:categoria;size:100;not null;index"`
	Year        int     `json:"ano" gorm:"column:ano;not null;index"`
	FileURL     string  `json:"ficheiro_url" gorm:"column:ficheiro_url;size:500;not null"`
	StorageKey  string  `json:"-" gorm:"column:storage_key;size:500"`
	Size        int64   `json:"tamanho" gorm:"column:tamanho"`
	MimeType    string  `json:"mime_type" gorm:"column:mime_type;size:100"`
	Order       int     `json:"ordem" gorm:"column:ordem;not null"`
	Active      bool    `json:"ativo" gorm:"column:ativo;not null;index"`
	Audit
}

func (TransparencyDocument) TableName() string { return "documentos_transparencia" }
