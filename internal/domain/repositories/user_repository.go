package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/rafabene/cwsite-users/internal/domain/entities"
)

// UserRepository define a interface de leitura de usuários
//
// Cada método executa exatamente uma consulta. O booleano indica se o
// registro foi encontrado; ausência nunca é retornada como erro.
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (entities.User, bool, error)
	FindByDiscordID(ctx context.Context, discordID int64) (entities.User, bool, error)
	FindByName(ctx context.Context, name string) (entities.User, bool, error)
}
