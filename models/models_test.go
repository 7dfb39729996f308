package models

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOwnerKind(t *testing.T) {
	cases := map[string]OwnerKind{
		"projetos":          OwnerProject,
		"Noticias":          OwnerNews,
		"respostas-sociais": OwnerSocialResponse,
		"respostas_sociais": OwnerSocialResponse,
		"conteudo":          OwnerContent,
		"itens_secao":       OwnerSectionItem,
	}
	for in, want := range cases {
		got, err := ParseOwnerKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseOwnerKind("projeto")
	assert.Error(t, err)
	_, err = ParseOwnerKind("users")
	assert.Error(t, err)
}

func TestAppErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, NewValidationError("x").Status())
	assert.Equal(t, http.StatusBadRequest, NewConflictError("x", nil).Status())
	assert.Equal(t, http.StatusUnauthorized, NewUnauthenticatedError("x").Status())
	assert.Equal(t, http.StatusForbidden, NewForbiddenError("x").Status())
	assert.Equal(t, http.StatusNotFound, NewNotFoundError("x").Status())
	assert.Equal(t, http.StatusInternalServerError, NewServerError(errors.New("boom")).Status())
}

func TestAsAppError(t *testing.T) {
	cause := errors.New("db down")
	appErr := AsAppError(cause)
	assert.Equal(t, KindServer, appErr.Kind)
	assert.Equal(t, MsgServerError, appErr.Message)
	assert.ErrorIs(t, appErr, cause)

	nf := NewNotFoundError("Projeto não encontrado")
	assert.Same(t, nf, AsAppError(nf))
}

func TestInscriptionKindValid(t *testing.T) {
	assert.True(t, InscriptionKind("creche").Valid())
	assert.False(t, InscriptionKind("lar").Valid())
	assert.True(t, RoleManager.Valid())
	assert.False(t, UserRole("admin").Valid())
}
