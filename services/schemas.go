package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"ipss-cms/helper"
	"ipss-cms/updates"
)

// Mutable fields per resource. Keys outside these lists are rejected.

func sanitize(v any) (any, error) {
	return helper.SanitizeHTML(v.(string)), nil
}

func slug(v any) (any, error) {
	s := helper.Slugify(v.(string))
	if s == "" {
		return nil, errors.New("slug inválido")
	}
	return s, nil
}

func lowerTrim(v any) (any, error) {
	return strings.ToLower(strings.TrimSpace(v.(string))), nil
}

func hashPassword(v any) (any, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(v.(string)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return string(hash), nil
}

const (
	auditColumn = "atualizado_por"
	touchColumn = "data_atualizacao"
)

var (
	titleField  = updates.Field{Name: "titulo", Kind: updates.String, Rules: "min=1,max=255"}
	slugField   = updates.Field{Name: "slug", Kind: updates.String, Rules: "min=1,max=255", Transform: slug}
	imageField  = updates.Field{Name: "imagem_url", Kind: updates.String, Nullable: true, Rules: "max=500"}
	orderField  = updates.Field{Name: "ordem", Kind: updates.Int, Rules: "min=0"}
	activeField = updates.Field{Name: "ativo", Kind: updates.Bool}
)

func richTextField(name string) updates.Field {
	return updates.Field{Name: name, Kind: updates.String, Transform: sanitize}
}

var projectSchema = updates.Schema{
	Table:       "projetos",
	AuditColumn: auditColumn,
	TouchColumn: touchColumn,
	Fields: []updates.Field{
		titleField,
		slugField,
		richTextField("descricao"),
		richTextField("conteudo"),
		imageField,
		{Name: "data_inicio", Kind: updates.Time, Nullable: true},
		{Name: "data_fim", Kind: updates.Time, Nullable: true},
		orderField,
		activeField,
	},
}

var newsSchema = updates.Schema{
	Table:       "noticias",
	AuditColumn: auditColumn,
	TouchColumn: touchColumn,
	Fields: []updates.Field{
		titleField,
		slugField,
		richTextField("resumo"),
		richTextField("conteudo"),
		imageField,
		{Name: "tipo", Kind: updates.String, Rules: "oneof=noticia evento"},
		{Name: "data_publicacao", Kind: updates.Time, Nullable: true},
		{Name: "data_evento", Kind: updates.Time, Nullable: true},
		{Name: "local_evento", Kind: updates.String, Nullable: true, Rules: "max=255"},
		{Name: "destaque", Kind: updates.Bool},
		activeField,
	},
}

var socialResponseSchema = updates.Schema{
	Table:       "respostas_sociais",
	AuditColumn: auditColumn,
	TouchColumn: touchColumn,
	Fields: []updates.Field{
		titleField,
		slugField,
		richTextField("descricao"),
		richTextField("conteudo"),
		imageField,
		{Name: "icone", Kind: updates.String, Nullable: true, Rules: "max=100"},
		{Name: "capacidade", Kind: updates.Int, Nullable: true, Rules: "min=0"},
		{Name: "horario", Kind: updates.String, Nullable: true, Rules: "max=255"},
		{Name: "publico_alvo", Kind: updates.String, Nullable: true, Rules: "max=255"},
		orderField,
		activeField,
	},
}

var contentSchema = updates.Schema{
	Table:       "conteudo_institucional",
	AuditColumn: auditColumn,
	TouchColumn: touchColumn,
	Fields: []updates.Field{
		{Name: "secao", Kind: updates.String, Rules: "min=1,max=100"},
		{Name: "titulo", Kind: updates.String, Nullable: true, Rules: "max=255"},
		{Name: "subtitulo", Kind: updates.String, Nullable: true, Rules: "max=255"},
		richTextField("conteudo"),
		imageField,
		{Name: "dados", Kind: updates.JSON, Nullable: true},
		orderField,
		activeField,
	},
}

var sectionSchema = updates.Schema{
	Table:       "secoes_personalizadas",
	AuditColumn: auditColumn,
	TouchColumn: touchColumn,
	Fields: []updates.Field{
		{Name: "nome", Kind: updates.String, Rules: "min=1,max=255"},
		slugField,
		{Name: "titulo", Kind: updates.String, Nullable: true, Rules: "max=255"},
		{Name: "descricao", Kind: updates.String, Nullable: true, Transform: sanitize},
		{Name: "tipo_layout", Kind: updates.String, Rules: "oneof=cards lista galeria texto"},
		{Name: "pagina", Kind: updates.String, Nullable: true, Rules: "max=100"},
		orderField,
		activeField,
	},
}

var sectionItemSchema = updates.Schema{
	Table:       "itens_secao",
	AuditColumn: auditColumn,
	TouchColumn: touchColumn,
	Fields: []updates.Field{
		titleField,
		{Name: "subtitulo", Kind: updates.String, Nullable: true, Rules: "max=255"},
		richTextField("conteudo"),
		imageField,
		{Name: "link_url", Kind: updates.String, Nullable: true, Rules: "max=500"},
		{Name: "link_texto", Kind: updates.String, Nullable: true, Rules: "max=255"},
		{Name: "dados", Kind: updates.JSON, Nullable: true},
		orderField,
		activeField,
	},
}

var transparencySchema = updates.Schema{
	Table:       "documentos_transparencia",
	AuditColumn: auditColumn,
	TouchColumn: touchColumn,
	Fields: []updates.Field{
		titleField,
		{Name: "descricao", Kind: updates.String, Nullable: true},
		{Name: "categoria", Kind: updates.String, Rules: "min=1,max=100"},
		{Name: "ano", Kind: updates.Int, Rules: "min=1900,max=2100"},
		orderField,
		activeField,
	},
}

var userSchema = updates.Schema{
	Table:       "users",
	TouchColumn: touchColumn,
	Fields: []updates.Field{
		{Name: "nome", Kind: updates.String, Rules: "min=2,max=255"},
		{Name: "email", Kind: updates.String, Rules: "email,max=255", Transform: lowerTrim},
		{Name: "password", Column: "password_hash", Kind: updates.String, Rules: "min=8,max=72", Transform: hashPassword},
		{Name: "tipo", Kind: updates.String, Rules: "oneof=Admin Manager"},
		activeField,
	},
}

var messageSchema = updates.Schema{
	Table: "mensagens",
	Fields: []updates.Field{
		{Name: "lida", Kind: updates.Bool},
		{Name: "respondida", Kind: updates.Bool},
	},
}

var mediaSchema = updates.Schema{
	Table: "media",
	Fields: []updates.Field{
		{Name: "titulo", Kind: updates.String, Nullable: true, Rules: "max=255"},
		orderField,
	},
}
