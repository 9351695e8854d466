package http

import (
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var registerOnce sync.Once

// RegisterValidators adiciona as tags user_uuid e discord_id ao validator do gin
// e faz os erros usarem o nome do parâmetro de rota
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("uri"); name != "" && name != "-" {
				return name
			}
			return fld.Name
		})
		_ = v.RegisterValidation("user_uuid", isUserUUID)
		_ = v.RegisterValidation("discord_id", isDiscordID)
	})
}

// isUserUUID aceita apenas a forma canônica 8-4-4-4-12 (qualquer caixa)
func isUserUUID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 36 || strings.Count(s, "-") != 4 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// isDiscordID aceita qualquer inteiro decimal que caiba em int64
func isDiscordID(fl validator.FieldLevel) bool {
	_, err := strconv.ParseInt(fl.Field().String(), 10, 64)
	return err == nil
}
