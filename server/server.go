// Package server wires configuration, storage, services and handlers into
// the gin engine.
package server

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"ipss-cms/config"
	"ipss-cms/database"
	"ipss-cms/handlers"
	"ipss-cms/helper"
	"ipss-cms/middleware"
	"ipss-cms/models"
	"ipss-cms/repositories"
	"ipss-cms/services"
	"ipss-cms/storage"
	"ipss-cms/updates"
)

const uploadsRoute = "/uploads"

type Server struct {
	Router *gin.Engine
	Users  services.UserService

	httpServer *http.Server
	log        *zap.Logger
}

func init() {
	// Create bodies are explicit schemas too: unknown keys are rejected.
	binding.EnableDecoderDisallowUnknownFields = true
}

// New builds the full application on top of an open database.
func New(cfg *config.Config, db *database.Database, log *zap.Logger) (*Server, error) {
	h, err := helper.NewHTTPHelper(log)
	if err != nil {
		return nil, fmt.Errorf("validation setup: %w", err)
	}

	files, err := newStorage(cfg, log)
	if err != nil {
		return nil, err
	}

	node, err := snowflake.NewNode(cfg.SnowflakeNode)
	if err != nil {
		return nil, fmt.Errorf("snowflake node: %w", err)
	}

	var mailer services.Mailer
	if cfg.SMTPEnabled() {
		mailer = services.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPFrom)
	} else {
		log.Info("SMTP not configured, e-mail notifications disabled")
	}
	notifier := services.NewNotifier(mailer, cfg.NotifyEmail, log)

	// Repositories
	userRepo := repositories.NewUserRepository(db.Gorm)
	projectRepo := repositories.NewProjectRepository(db.Gorm)
	newsRepo := repositories.NewNewsRepository(db.Gorm)
	socialRepo := repositories.NewSocialResponseRepository(db.Gorm)
	contentRepo := repositories.NewContentRepository(db.Gorm)
	sectionRepo := repositories.NewSectionRepository(db.Gorm)
	transparencyRepo := repositories.NewTransparencyRepository(db.Gorm)
	messageRepo := repositories.NewMessageRepository(db.Gorm)
	inscriptionRepo := repositories.NewInscriptionRepository(db.Gorm)
	mediaRepo := repositories.NewMediaRepository(db.Gorm)

	// Services
	updater := services.NewUpdater(db, updates.NewBuilder(h.Validate, h.Translator))
	tokens := services.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiry())
	mediaService := services.NewMediaService(mediaRepo, files, updater, log)
	userService := services.NewUserService(userRepo, updater, log)

	// Handlers
	hs := routeHandlers{
		auth:         handlers.NewAuthHandler(services.NewAuthService(userRepo, tokens, log), h),
		users:        handlers.NewUserHandler(userService, h),
		projects:     handlers.NewProjectHandler(services.NewProjectService(projectRepo, mediaService, updater), h),
		news:         handlers.NewNewsHandler(services.NewNewsService(newsRepo, mediaService, updater), h),
		social:       handlers.NewSocialResponseHandler(services.NewSocialResponseService(socialRepo, mediaService, updater), h),
		content:      handlers.NewContentHandler(services.NewContentService(contentRepo, mediaService, updater), h),
		sections:     handlers.NewSectionHandler(services.NewSectionService(sectionRepo, updater), h),
		transparency: handlers.NewTransparencyHandler(services.NewTransparencyService(transparencyRepo, files, updater), h),
		messages:     handlers.NewMessageHandler(services.NewMessageService(messageRepo, updater, notifier, cfg.ContactDedupeWindow, log), h),
		inscriptions: handlers.NewInscriptionHandler(services.NewInscriptionService(inscriptionRepo, node, h.Validate, h.Translator, notifier), h),
		media:        handlers.NewMediaHandler(mediaService, h),
		health:       handlers.NewHealthHandler(db, files.Backend(), log),
	}
	auth := middleware.NewAuthenticator(tokens, userRepo, h)

	router := gin.New()
	router.MaxMultipartMemory = 8 << 20
	router.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		middleware.Recovery(log),
		middleware.SecurityHeaders(cfg.IsProduction()),
		middleware.CORS(cfg.CORSOrigins),
	)
	router.Static(uploadsRoute, cfg.UploadDir)

	api := router.Group("/api")
	api.Use(middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow(), log).Middleware())
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimitMax, cfg.RateLimitWindow(), log)
	registerRoutes(api, auth, loginLimiter.Middleware(), hs)

	router.NoRoute(func(c *gin.Context) {
		h.SendNotFoundError(c, "Rota não encontrada")
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return &Server{Router: router, Users: userService, httpServer: httpServer, log: log}, nil
}

// Start blocks until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	s.log.Info("HTTP server listening", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// newStorage uses Cloudinary when it is fully configured and local disk
// otherwise. Local disk stays registered so older keys can still be deleted.
func newStorage(cfg *config.Config, log *zap.Logger) (*storage.Manager, error) {
	local, err := storage.NewLocal(filepath.Clean(cfg.UploadDir), uploadsRoute)
	if err != nil {
		return nil, fmt.Errorf("upload dir: %w", err)
	}
	if !cfg.CloudinaryEnabled() {
		log.Info("Cloudinary not configured, storing uploads on disk", zap.String("dir", cfg.UploadDir))
		return storage.NewManager(local, cfg.MaxFileSize, log), nil
	}

	cld, err := storage.NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	log.Info("storing uploads on Cloudinary", zap.String("folder", cfg.CloudinaryFolder))
	return storage.NewManager(cld, cfg.MaxFileSize, log, local), nil
}

type routeHandlers struct {
	auth         *handlers.AuthHandler
	users        *handlers.UserHandler
	projects     *handlers.ProjectHandler
	news         *handlers.NewsHandler
	social       *handlers.SocialResponseHandler
	content      *handlers.ContentHandler
	sections     *handlers.SectionHandler
	transparency *handlers.TransparencyHandler
	messages     *handlers.MessageHandler
	inscriptions *handlers.InscriptionHandler
	media        *handlers.MediaHandler
	health       *handlers.HealthHandler
}

// crud is the handler shape shared by the content resources.
type crud interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

func registerRoutes(api *gin.RouterGroup, auth *middleware.Authenticator, loginLimit gin.HandlerFunc, hs routeHandlers) {
	staff := auth.RequireAnyRole(models.RoleAdmin, models.RoleManager)

	api.GET("/health", hs.health.Check)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", loginLimit, hs.auth.Login)
		authGroup.GET("/me", auth.Required(), hs.auth.Me)
		authGroup.PUT("/password", auth.Required(), hs.auth.ChangePassword)
		authGroup.POST("/logout", auth.Required(), hs.auth.Logout)
	}

	resource := func(path string, h crud) *gin.RouterGroup {
		g := api.Group(path)
		g.GET("", auth.Optional(), h.List)
		g.GET("/:id", auth.Optional(), h.Get)
		g.POST("", auth.Required(), staff, h.Create)
		g.PUT("/:id", auth.Required(), staff, h.Update)
		g.DELETE("/:id", auth.Required(), staff, h.Delete)
		return g
	}

	resource("/projetos", hs.projects)
	resource("/noticias", hs.news)
	resource("/respostas-sociais", hs.social)
	resource("/conteudo", hs.content)
	resource("/transparencia", hs.transparency).
		PUT("/:id/ficheiro", auth.Required(), staff, hs.transparency.ReplaceFile)

	sections := resource("/secoes-personalizadas", hs.sections)
	{
		sections.GET("/:id/itens", auth.Optional(), hs.sections.ListItems)
		sections.POST("/:id/itens", auth.Required(), staff, hs.sections.CreateItem)
		sections.PUT("/:id/itens/ordem", auth.Required(), staff, hs.sections.ReorderItems)
		sections.PUT("/:id/itens/:itemId", auth.Required(), staff, hs.sections.UpdateItem)
		sections.DELETE("/:id/itens/:itemId", auth.Required(), staff, hs.sections.DeleteItem)
	}

	messages := api.Group("/mensagens", auth.Required(), staff)
	{
		messages.GET("", hs.messages.List)
		messages.GET("/:id", hs.messages.Get)
		messages.PUT("/:id", hs.messages.Update)
		messages.DELETE("/:id", hs.messages.Delete)
	}
	api.POST("/contactos/form", hs.messages.SubmitContact)

	users := api.Group("/users", auth.Required(), auth.RequireRole(models.RoleAdmin))
	{
		users.GET("", hs.users.List)
		users.GET("/:id", hs.users.Get)
		users.POST("", hs.users.Create)
		users.PUT("/:id", hs.users.Update)
		users.DELETE("/:id", hs.users.Delete)
		users.PATCH("/:id/toggle-status", hs.users.ToggleStatus)
	}

	forms := api.Group("/forms")
	{
		for _, kind := range models.InscriptionKinds {
			forms.POST("/"+string(kind), hs.inscriptions.Submit(kind))
		}
		forms.GET("", auth.Required(), staff, hs.inscriptions.List)
		forms.GET("/:id", auth.Required(), staff, hs.inscriptions.Get)
		forms.PUT("/:id/estado", auth.Required(), staff, hs.inscriptions.UpdateStatus)
		forms.DELETE("/:id", auth.Required(), staff, hs.inscriptions.Delete)
	}

	media := api.Group("/media")
	{
		media.GET("", hs.media.List)
		media.POST("", auth.Required(), staff, hs.media.Upload)
		media.POST("/link", auth.Required(), staff, hs.media.AddLink)
		media.PUT("/:id", auth.Required(), staff, hs.media.Update)
		media.DELETE("/:id", auth.Required(), staff, hs.media.Delete)
	}
}
