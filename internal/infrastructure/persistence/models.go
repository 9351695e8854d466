package persistence

import (
	"database/sql"

	"github.com/google/uuid"
)

// UserModel é o model GORM para a tabela users
// name e discord_id não têm restrição NOT NULL no schema, por isso são Null*
type UserModel struct {
	UUID      uuid.UUID      `gorm:"column:uuid;type:uuid;primaryKey"`
	Name      sql.NullString `gorm:"column:name;type:text"`
	DiscordID sql.NullInt64  `gorm:"column:discord_id;type:bigint"`
}

func (UserModel) TableName() string {
	return "users"
}

// userColumns lista as colunas lidas pelas consultas, na ordem do schema
var userColumns = []string{"uuid", "name", "discord_id"}
