package entities

import (
	"github.com/google/uuid"
)

// User representa um usuário cadastrado na tabela users
// Registros são criados e alterados fora deste serviço; aqui só há leitura
type User struct {
	ID        uuid.UUID
	Name      string
	DiscordID int64
}

