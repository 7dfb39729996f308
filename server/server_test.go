package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"ipss-cms/config"
	"ipss-cms/database"
	"ipss-cms/models"
)

const (
	adminEmail    = "admin@ipss.pt"
	adminPassword = "admin-password"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  []json.RawMessage `json:"errors"`
	Token   string            `json:"token"`
	User    json.RawMessage   `json:"user"`
}

type ServerTestSuite struct {
	suite.Suite
	db     *database.Database
	server *Server
	token  string
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop()

	db, err := database.Open(database.Config{Driver: database.DriverSQLite, DSN: "file::memory:"}, log)
	s.Require().NoError(err)
	s.Require().NoError(db.Migrate())
	s.db = db

	cfg := &config.Config{
		Env:                 "test",
		JWTSecret:           "test-secret",
		JWTExpiresIn:        "1h",
		CORSOrigins:         []string{"http://localhost:5173"},
		RateLimitWindowMS:   60000,
		RateLimitMax:        1000,
		LoginRateLimitMax:   1000,
		MaxFileSize:         1 << 20,
		UploadDir:           s.T().TempDir(),
		SnowflakeNode:       1,
		ContactDedupeWindow: time.Minute,
	}
	srv, err := New(cfg, db, log)
	s.Require().NoError(err)
	s.server = srv

	created, err := srv.Users.EnsureAdmin(context.Background(), "Administrador", adminEmail, adminPassword)
	s.Require().NoError(err)
	s.Require().True(created)

	s.token = s.login(adminEmail, adminPassword)
}

func (s *ServerTestSuite) TearDownTest() {
	_ = s.db.Close()
}

func (s *ServerTestSuite) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.server.Router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (s *ServerTestSuite) login(email, password string) string {
	w, env := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Require().NotEmpty(env.Token)
	return env.Token
}

func (s *ServerTestSuite) adminID() uint {
	w, env := s.do(http.MethodGet, "/api/auth/me", s.token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var admin models.User
	s.Require().NoError(json.Unmarshal(env.Data, &admin))
	return admin.ID
}

func (s *ServerTestSuite) createManager(email string) (uint, string) {
	w, env := s.do(http.MethodPost, "/api/users", s.token, gin.H{
		"nome":     "Gestora",
		"email":    email,
		"password": "manager-password",
		"tipo":     "Manager",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var user models.User
	s.Require().NoError(json.Unmarshal(env.Data, &user))
	return user.ID, s.login(email, "manager-password")
}

func (s *ServerTestSuite) createProject(title string) models.Project {
	w, env := s.do(http.MethodPost, "/api/projetos", s.token, gin.H{"titulo": title, "descricao": "Descrição"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var p models.Project
	s.Require().NoError(json.Unmarshal(env.Data, &p))
	return p
}

func (s *ServerTestSuite) TestLoginResponseShape() {
	w, env := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": adminEmail, "password": adminPassword})
	s.Equal(http.StatusOK, w.Code)
	s.True(env.Success)
	s.NotEmpty(env.Token)

	var user map[string]any
	s.Require().NoError(json.Unmarshal(env.User, &user))
	s.Equal(adminEmail, user["email"])
	s.Equal("Admin", user["tipo"])
	s.NotContains(user, "password_hash")
}

func (s *ServerTestSuite) TestLoginWrongPassword() {
	w, env := s.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": adminEmail, "password": "wrong-password"})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.False(env.Success)
	s.Equal("Credenciais inválidas", env.Message)
}

func (s *ServerTestSuite) TestMissingTokenIsRejected() {
	w, env := s.do(http.MethodPost, "/api/projetos", "", gin.H{"titulo": "Sem token"})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.False(env.Success)
}

func (s *ServerTestSuite) TestDeactivatedUserTokenStopsWorking() {
	id, token := s.createManager("gestora@ipss.pt")

	w, _ := s.do(http.MethodGet, "/api/auth/me", token, nil)
	s.Equal(http.StatusOK, w.Code)

	w, env := s.do(http.MethodPatch, "/api/users/"+itoa(id)+"/toggle-status", s.token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("Utilizador desativado com sucesso", env.Message)

	w, env = s.do(http.MethodGet, "/api/auth/me", token, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Utilizador não encontrado ou inativo", env.Message)
}

func (s *ServerTestSuite) TestToggleStatusTwiceRestoresUser() {
	id, _ := s.createManager("gestora@ipss.pt")
	path := "/api/users/" + itoa(id) + "/toggle-status"

	_, env := s.do(http.MethodPatch, path, s.token, nil)
	s.Equal("Utilizador desativado com sucesso", env.Message)
	w, env := s.do(http.MethodPatch, path, s.token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("Utilizador ativado com sucesso", env.Message)

	var user models.User
	s.Require().NoError(json.Unmarshal(env.Data, &user))
	s.True(user.Active)
}

func (s *ServerTestSuite) TestAdminCannotDeleteSelf() {
	w, env := s.do(http.MethodDelete, "/api/users/"+itoa(s.adminID()), s.token, nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Não pode eliminar a sua própria conta.", env.Message)
}

func (s *ServerTestSuite) TestManagerCannotManageUsers() {
	_, token := s.createManager("gestora@ipss.pt")

	w, env := s.do(http.MethodGet, "/api/users", token, nil)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("Acesso negado", env.Message)

	w, _ = s.do(http.MethodPost, "/api/projetos", token, gin.H{"titulo": "Horta comunitária"})
	s.Equal(http.StatusCreated, w.Code)
}

func (s *ServerTestSuite) TestPartialUpdateTouchesOnlyGivenColumn() {
	p := s.createProject("Horta comunitária")
	s.True(p.Active)
	managerID, managerToken := s.createManager("gestora@ipss.pt")

	w, env := s.do(http.MethodPut, "/api/projetos/"+itoa(p.ID), managerToken, gin.H{"ativo": false})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var updated models.Project
	s.Require().NoError(json.Unmarshal(env.Data, &updated))
	s.False(updated.Active)
	s.Equal(p.Title, updated.Title)
	s.Equal(p.Slug, updated.Slug)
	s.Equal(p.Description, updated.Description)

	var row models.Project
	s.Require().NoError(s.db.Gorm.First(&row, p.ID).Error)
	s.False(row.Active)
	s.Require().NotNil(row.UpdatedBy)
	s.Equal(managerID, *row.UpdatedBy)
	s.False(row.UpdatedAt.Before(p.UpdatedAt))
	s.Require().NotNil(row.CreatedBy)
	s.Equal(s.adminID(), *row.CreatedBy)

	// Inactive projects disappear from the public listing only.
	_, public := s.do(http.MethodGet, "/api/projetos", "", nil)
	var list []models.Project
	s.Require().NoError(json.Unmarshal(public.Data, &list))
	s.Empty(list)

	_, private := s.do(http.MethodGet, "/api/projetos", s.token, nil)
	s.Require().NoError(json.Unmarshal(private.Data, &list))
	s.Len(list, 1)
}

func (s *ServerTestSuite) TestUpdateWithoutFieldsIsRejected() {
	p := s.createProject("Horta comunitária")

	w, env := s.do(http.MethodPut, "/api/projetos/"+itoa(p.ID), s.token, gin.H{})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Nenhum campo para atualizar", env.Message)
}

func (s *ServerTestSuite) TestUnknownFieldsAreRejected() {
	p := s.createProject("Horta comunitária")

	w, env := s.do(http.MethodPut, "/api/projetos/"+itoa(p.ID), s.token, gin.H{"id": 99})
	s.Equal(http.StatusBadRequest, w.Code)
	s.False(env.Success)

	w, _ = s.do(http.MethodPost, "/api/projetos", s.token, gin.H{"titulo": "Outro", "criado_por": 7})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ServerTestSuite) TestDuplicateSlug() {
	first := s.createProject("Horta comunitária")
	second := s.createProject("Horta comunitária")
	s.Equal("horta-comunitaria-2", second.Slug)

	w, env := s.do(http.MethodPut, "/api/projetos/"+itoa(second.ID), s.token, gin.H{"slug": first.Slug})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Já existe um projeto com este slug.", env.Message)
}

func (s *ServerTestSuite) TestProjectBySlug() {
	p := s.createProject("Horta comunitária")

	w, env := s.do(http.MethodGet, "/api/projetos/"+p.Slug, "", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var got models.Project
	s.Require().NoError(json.Unmarshal(env.Data, &got))
	s.Equal(p.ID, got.ID)

	w, _ = s.do(http.MethodGet, "/api/projetos/nao-existe", "", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ServerTestSuite) TestContactFormDeduplicates() {
	form := gin.H{
		"nome":     "Maria",
		"email":    "Maria@Exemplo.pt",
		"assunto":  "Visita",
		"mensagem": "Gostaria de visitar a creche.",
	}

	w, env := s.do(http.MethodPost, "/api/contactos/form", "", form)
	s.Equal(http.StatusCreated, w.Code)
	s.True(env.Success)
	w, _ = s.do(http.MethodPost, "/api/contactos/form", "", form)
	s.Equal(http.StatusCreated, w.Code)

	var count int64
	s.Require().NoError(s.db.Gorm.Model(&models.ContactMessage{}).Count(&count).Error)
	s.EqualValues(1, count)
}

func (s *ServerTestSuite) TestMessagesRequireStaff() {
	w, _ := s.do(http.MethodGet, "/api/mensagens", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, "/api/mensagens", s.token, nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *ServerTestSuite) TestUnknownFormKindIsNotRouted() {
	w, _ := s.do(http.MethodPost, "/api/forms/lar", "", gin.H{})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ServerTestSuite) TestHealth() {
	w, env := s.do(http.MethodGet, "/api/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.True(env.Success)
}

func (s *ServerTestSuite) TestSecurityHeadersAndRequestID() {
	w, _ := s.do(http.MethodGet, "/api/health", "", nil)
	s.NotEmpty(w.Header().Get("X-Request-ID"))
	s.Equal("nosniff", w.Header().Get("X-Content-Type-Options"))
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
