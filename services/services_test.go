package services

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"ipss-cms/database"
	"ipss-cms/helper"
	"ipss-cms/models"
	"ipss-cms/repositories"
	"ipss-cms/storage"
	"ipss-cms/updates"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type recordingMailer struct {
	subjects []string
}

func (m *recordingMailer) Send(to []string, subject, body string) error {
	m.subjects = append(m.subjects, subject)
	return nil
}

type fixture struct {
	db      *database.Database
	updater *Updater
	files   *storage.Manager
	uploads string
	mailer  *recordingMailer
	notify  *Notifier

	users        repositories.UserRepository
	userSvc      UserService
	authSvc      AuthService
	mediaSvc     MediaService
	projectSvc   ProjectService
	newsSvc      NewsService
	contentSvc   ContentService
	sectionSvc   SectionService
	transSvc     TransparencyService
	messageSvc   MessageService
	inscriptions InscriptionService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zap.NewNop()

	db, err := database.Open(database.Config{Driver: database.DriverSQLite, DSN: "file::memory:"}, log)
	require.NoError(t, err)
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { _ = db.Close() })

	v, trans, err := helper.Validation()
	require.NoError(t, err)

	uploads := t.TempDir()
	local, err := storage.NewLocal(uploads, "/uploads")
	require.NoError(t, err)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	f := &fixture{
		db:      db,
		updater: NewUpdater(db, updates.NewBuilder(v, trans)),
		files:   storage.NewManager(local, 1<<20, log),
		uploads: uploads,
		mailer:  &recordingMailer{},
	}
	f.notify = &Notifier{mailer: f.mailer, to: "staff@ipss.pt", log: log}

	f.users = repositories.NewUserRepository(db.Gorm)
	f.userSvc = NewUserService(f.users, f.updater, log)
	f.authSvc = NewAuthService(f.users, NewTokenManager("test-secret", time.Hour), log)
	f.mediaSvc = NewMediaService(repositories.NewMediaRepository(db.Gorm), f.files, f.updater, log)
	f.projectSvc = NewProjectService(repositories.NewProjectRepository(db.Gorm), f.mediaSvc, f.updater)
	f.newsSvc = NewNewsService(repositories.NewNewsRepository(db.Gorm), f.mediaSvc, f.updater)
	f.contentSvc = NewContentService(repositories.NewContentRepository(db.Gorm), f.mediaSvc, f.updater)
	f.sectionSvc = NewSectionService(repositories.NewSectionRepository(db.Gorm), f.updater)
	f.transSvc = NewTransparencyService(repositories.NewTransparencyRepository(db.Gorm), f.files, f.updater)
	f.messageSvc = NewMessageService(repositories.NewMessageRepository(db.Gorm), f.updater, f.notify, time.Minute, log)
	f.inscriptions = NewInscriptionService(repositories.NewInscriptionRepository(db.Gorm), node, v, trans, f.notify)
	return f
}

func (f *fixture) user(t *testing.T, email string, role models.UserRole, active bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{Name: "Teste", Email: email, PasswordHash: string(hash), Role: role, Active: active}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

// storedPath maps a local storage key to its file under the fixture's upload dir.
func (f *fixture) storedPath(key string) string {
	return filepath.Join(f.uploads, filepath.FromSlash(strings.TrimPrefix(key, "local:")))
}

func payload(t *testing.T, v map[string]any) updates.Payload {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var p updates.Payload
	require.NoError(t, json.Unmarshal(raw, &p))
	return p
}

func fileHeader(t *testing.T, name, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="ficheiro"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["ficheiro"][0]
}

func requireKind(t *testing.T, err error, kind models.ErrorKind) *models.AppError {
	t.Helper()
	require.Error(t, err)
	appErr := models.AsAppError(err)
	require.Equal(t, kind, appErr.Kind, appErr.Message)
	return appErr
}
