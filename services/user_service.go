package services

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"ipss-cms/models"
	"ipss-cms/repositories"
	"ipss-cms/updates"
)

const (
	msgUserNotFound      = "Utilizador não encontrado"
	msgUserEmailTaken    = "Já existe um utilizador com este email."
	msgCannotDeleteSelf  = "Não pode eliminar a sua própria conta."
	msgCannotDisableSelf = "Não pode desativar a sua própria conta."
)

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id uint) (*models.User, error)
	Create(ctx context.Context, req models.CreateUserRequest, actor *models.User) (*models.User, error)
	Update(ctx context.Context, id uint, payload updates.Payload, actor *models.User) (*models.User, error)
	Delete(ctx context.Context, id uint, actor *models.User) error
	ToggleStatus(ctx context.Context, id uint, actor *models.User) (*models.User, error)
	// EnsureAdmin creates the first Admin when the users table is empty.
	EnsureAdmin(ctx context.Context, name, email, password string) (bool, error)
}

type userService struct {
	userRepo repositories.UserRepository
	updater  *Updater
	log      *zap.Logger
}

func NewUserService(userRepo repositories.UserRepository, updater *Updater, log *zap.Logger) UserService {
	return &userService{userRepo: userRepo, updater: updater, log: log}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return users, nil
}

func (s *userService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, msgUserNotFound)
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, req models.CreateUserRequest, actor *models.User) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := s.userRepo.EmailExists(ctx, email, 0)
	if err != nil {
		return nil, models.NewServerError(err)
	}
	if taken {
		return nil, models.NewConflictError(msgUserEmailTaken, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewServerError(err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       boolOr(req.Active, true),
		CreatedBy:    &actor.ID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, writeError(err, msgUserEmailTaken)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, id uint, payload updates.Payload, actor *models.User) (*models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return nil, lookupError(err, msgUserNotFound)
	}

	if id == actor.ID {
		if active, ok := payload.Bool("ativo"); ok && !active {
			return nil, models.NewValidationError(msgCannotDisableSelf)
		}
	}

	if err := s.updater.Apply(ctx, userSchema, id, payload, actor.ID, msgUserEmailTaken); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *userService) Delete(ctx context.Context, id uint, actor *models.User) error {
	if id == actor.ID {
		return models.NewValidationError(msgCannotDeleteSelf)
	}
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return lookupError(err, msgUserNotFound)
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return models.NewServerError(err)
	}
	return nil
}

func (s *userService) ToggleStatus(ctx context.Context, id uint, actor *models.User) (*models.User, error) {
	if id == actor.ID {
		return nil, models.NewValidationError(msgCannotDisableSelf)
	}
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, msgUserNotFound)
	}

	user.Active = !user.Active
	if err := s.userRepo.SetActive(ctx, id, user.Active); err != nil {
		return nil, models.NewServerError(err)
	}
	return user, nil
}

func (s *userService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}
	admin := &models.User{
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
		Active:       true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return false, err
	}
	s.log.Info("seeded initial admin", zap.String("email", admin.Email))
	return true, nil
}
