package dto

import (
	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	"github.com/rafabene/cwsite-users/internal/domain/errors"
)

// ProblemResponse segue RFC 7807 (Problem Details for HTTP APIs)
// Os campos padrão vêm de problems.Problem
type ProblemResponse struct {
	*problems.Problem
	Errors []ValidationError `json:"errors,omitempty"`
}

// ValidationError representa um erro de validação de parâmetro
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
	Value   string `json:"value,omitempty"`
}

// NewProblemI18n cria uma resposta de erro usando i18n
func NewProblemI18n(c *gin.Context, problemType, titleKey, detailKey string, status int, params ...map[string]interface{}) ProblemResponse {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	problem := problems.NewStatusProblem(status)
	problem.Type = baseURL + problemType
	problem.Title = T(c, titleKey, params...)
	problem.Detail = T(c, detailKey, params...)
	problem.Instance = c.Request.URL.Path

	return ProblemResponse{Problem: problem}
}

// WriteProblem escreve o problema com Content-Type application/problem+json
func WriteProblem(c *gin.Context, response ProblemResponse) {
	c.Header("Content-Type", problems.ProblemMediaType)
	c.AbortWithStatusJSON(response.Status, response)
}

// Helper functions para respostas de erro comuns com i18n

// ValidationProblemI18n cria uma resposta 400 com a lista de parâmetros inválidos
func ValidationProblemI18n(c *gin.Context, detailKey string, validationErrors []ValidationError, params ...map[string]interface{}) ProblemResponse {
	response := NewProblemI18n(
		c,
		errors.ProblemTypeValidation,
		"error.validation.title",
		detailKey,
		400,
		params...,
	)
	response.Errors = validationErrors
	return response
}

// BadRequestProblemI18n cria uma resposta 400 para entradas que não chegam à validação
func BadRequestProblemI18n(c *gin.Context, detailKey string, params ...map[string]interface{}) ProblemResponse {
	return NewProblemI18n(
		c,
		errors.ProblemTypeBadRequest,
		"error.bad_request.title",
		detailKey,
		400,
		params...,
	)
}

// UserNotFoundProblemI18n cria uma resposta 404 identificando a chave consultada
func UserNotFoundProblemI18n(c *gin.Context, key string, value any) ProblemResponse {
	return NewProblemI18n(
		c,
		errors.ProblemTypeNotFound,
		"error.not_found.title",
		errors.ErrUserNotFound.Error(),
		404,
		map[string]interface{}{"Key": key, "Value": value},
	)
}

// RouteNotFoundProblemI18n cria uma resposta 404 para caminhos sem rota
func RouteNotFoundProblemI18n(c *gin.Context) ProblemResponse {
	return NewProblemI18n(
		c,
		errors.ProblemTypeNotFound,
		"error.not_found.title",
		"error.route_not_found",
		404,
		map[string]interface{}{"Path": c.Request.URL.Path},
	)
}

// InternalProblemI18n cria uma resposta de erro 500 sem expor a causa
func InternalProblemI18n(c *gin.Context) ProblemResponse {
	return NewProblemI18n(
		c,
		errors.ProblemTypeInternal,
		"error.internal.title",
		"error.internal.detail",
		500,
	)
}
