package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"ipss-cms/database"
	"ipss-cms/models"
	"ipss-cms/repositories"
)

const msgInvalidCredentials = "Credenciais inválidas"

type AuthService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	ChangePassword(ctx context.Context, user *models.User, req models.ChangePasswordRequest) error
}

type authService struct {
	userRepo repositories.UserRepository
	tokens   *TokenManager
	log      *zap.Logger
}

func NewAuthService(userRepo repositories.UserRepository, tokens *TokenManager, log *zap.Logger) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens, log: log}
}

func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if database.IsNotFound(err) {
			return nil, models.NewUnauthenticatedError(msgInvalidCredentials)
		}
		return nil, models.NewServerError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, models.NewUnauthenticatedError(msgInvalidCredentials)
	}
	if !user.Active {
		return nil, models.NewUnauthenticatedError("Conta desativada. Contacte o administrador.")
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, models.NewServerError(err)
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID, time.Now()); err != nil {
		s.log.Warn("failed to record last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	return &models.AuthResponse{Token: token, User: user.Summary()}, nil
}

func (s *authService) ChangePassword(ctx context.Context, user *models.User, req models.ChangePasswordRequest) error {
	stored, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		return lookupError(err, "Utilizador não encontrado")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return models.NewValidationError("Password atual incorreta",
			models.FieldError{Field: "password_atual", Message: "password atual incorreta"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewServerError(err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return models.NewServerError(err)
	}
	return nil
}
