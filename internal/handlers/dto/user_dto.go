package dto

import (
	"github.com/google/uuid"

	"github.com/rafabene/cwsite-users/internal/domain/entities"
)

// UserResponse representa a resposta de um usuário
// Os nomes dos campos seguem o contrato público: uuid, name, discordId
type UserResponse struct {
	UUID      uuid.UUID `json:"uuid" example:"11111111-1111-1111-1111-111111111111"`
	Name      string    `json:"name" example:"alice"`
	DiscordID int64     `json:"discordId" example:"42"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		UUID:      user.ID,
		Name:      user.Name,
		DiscordID: user.DiscordID,
	}
}
