package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/rafabene/cwsite-users/internal/domain/entities"
	"github.com/rafabene/cwsite-users/internal/domain/errors"
	"github.com/rafabene/cwsite-users/internal/domain/ports"
	"github.com/rafabene/cwsite-users/internal/domain/repositories"
)

// UserService expõe as consultas de usuário e aplica a política de não encontrado
type UserService struct {
	userRepo repositories.UserRepository
	logger   ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger.With("component", "user_service"),
	}
}

// GetUserByID busca um usuário pela chave primária
func (s *UserService) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, found, err := s.userRepo.FindByID(ctx, id)
	return s.result(ctx, "id", id.String(), user, found, err)
}

// GetUserByDiscordID busca um usuário pela conta do Discord vinculada
func (s *UserService) GetUserByDiscordID(ctx context.Context, discordID int64) (*entities.User, error) {
	user, found, err := s.userRepo.FindByDiscordID(ctx, discordID)
	return s.result(ctx, "discord_id", discordID, user, found, err)
}

// GetUserByName busca um usuário pelo nome exato
func (s *UserService) GetUserByName(ctx context.Context, name string) (*entities.User, error) {
	user, found, err := s.userRepo.FindByName(ctx, name)
	return s.result(ctx, "name", name, user, found, err)
}

func (s *UserService) result(ctx context.Context, key string, value any, user entities.User, found bool, err error) (*entities.User, error) {
	if err != nil {
		s.logger.ErrorContext(ctx, "user lookup failed", "key", key, "value", value, "error", err)
		return nil, errors.NewLookupError(key, err)
	}
	if !found {
		s.logger.Debug("user not found", "key", key, "value", value)
		return nil, errors.ErrUserNotFound
	}
	return &user, nil
}
