package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafabene/cwsite-users/internal/domain/entities"
	"github.com/rafabene/cwsite-users/internal/domain/repositories"
)

var _ repositories.UserRepository = (*UserRepository)(nil)

// UserRepository implementa repositories.UserRepository sobre gorm
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (entities.User, bool, error) {
	return r.findOne(ctx, "uuid = ?", id)
}

// FindByDiscordID não assume unicidade: havendo duplicatas vence o menor uuid
func (r *UserRepository) FindByDiscordID(ctx context.Context, discordID int64) (entities.User, bool, error) {
	return r.findOne(ctx, "discord_id = ?", discordID)
}

// FindByName compara o nome exatamente, sem normalizar caixa
func (r *UserRepository) FindByName(ctx context.Context, name string) (entities.User, bool, error) {
	return r.findOne(ctx, "name = ?", name)
}

// findOne executa uma única consulta; First ordena pela chave primária
func (r *UserRepository) findOne(ctx context.Context, cond string, arg any) (entities.User, bool, error) {
	var model UserModel

	err := r.db.WithContext(ctx).
		Select(userColumns).
		Where(cond, arg).
		First(&model).Error
	switch {
	case err == nil:
		return toEntity(&model), true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return entities.User{}, false, nil
	default:
		return entities.User{}, false, fmt.Errorf("query users: %w", err)
	}
}

// toEntity mapeia a linha campo a campo; colunas nulas viram zero value
func toEntity(model *UserModel) entities.User {
	return entities.User{
		ID:        model.UUID,
		Name:      model.Name.String,
		DiscordID: model.DiscordID.Int64,
	}
}
