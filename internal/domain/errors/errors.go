package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções ficam em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound     = errors.New("error.user_not_found")
	ErrInvalidUserID    = errors.New("error.invalid_user_id")
	ErrInvalidDiscordID = errors.New("error.invalid_discord_id")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base vem de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation = "/problems/validation-error"
	ProblemTypeNotFound   = "/problems/not-found"
	ProblemTypeInternal   = "/problems/internal-error"
	ProblemTypeBadRequest = "/problems/bad-request"
)

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Type    string
	Title   string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewLookupError envolve uma falha de consulta identificando a chave usada
func NewLookupError(key string, err error) *DomainError {
	return &DomainError{
		Type:    ProblemTypeInternal,
		Title:   "lookup failed",
		Message: "find user by " + key,
		Err:     err,
	}
}
