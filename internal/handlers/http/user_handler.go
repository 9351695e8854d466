package http

import (
	errs "errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rafabene/cwsite-users/internal/domain/errors"
	"github.com/rafabene/cwsite-users/internal/domain/ports"
	"github.com/rafabene/cwsite-users/internal/handlers/dto"
	"github.com/rafabene/cwsite-users/internal/services"
)

// UserHandler lida com as consultas HTTP de usuários
type UserHandler struct {
	userService *services.UserService
	logger      ports.Logger
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService, logger ports.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger.With("component", "user_handler"),
	}
}

type userIDParams struct {
	ID string `uri:"id" binding:"required,user_uuid"`
}

type discordIDParams struct {
	DiscordID string `uri:"discordId" binding:"required,discord_id"`
}

type userNameParams struct {
	Name string `uri:"name" binding:"required"`
}

// GetUserByID busca um usuário por UUID
//
//	@Summary	Busca usuário por UUID
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"UUID do usuário"
//	@Success	200	{object}	dto.UserResponse
//	@Failure	400	{object}	dto.ProblemResponse
//	@Failure	404	{object}	dto.ProblemResponse
//	@Failure	500	{object}	dto.ProblemResponse
//	@Router		/user/id/{id} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	var params userIDParams
	if err := c.ShouldBindUri(&params); err != nil {
		h.badRequest(c, err, errors.ErrInvalidUserID.Error(), c.Param("id"))
		return
	}

	id, err := uuid.Parse(params.ID)
	if err != nil {
		h.badRequest(c, err, errors.ErrInvalidUserID.Error(), params.ID)
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, "uuid", id.String())
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// GetUserByDiscordID busca um usuário pelo id da conta do Discord
//
//	@Summary	Busca usuário por id do Discord
//	@Tags		users
//	@Produce	json
//	@Param		discordId	path		integer	true	"Id da conta do Discord"
//	@Success	200			{object}	dto.UserResponse
//	@Failure	400			{object}	dto.ProblemResponse
//	@Failure	404			{object}	dto.ProblemResponse
//	@Failure	500			{object}	dto.ProblemResponse
//	@Router		/user/discord/{discordId} [get]
func (h *UserHandler) GetUserByDiscordID(c *gin.Context) {
	var params discordIDParams
	if err := c.ShouldBindUri(&params); err != nil {
		h.badRequest(c, err, errors.ErrInvalidDiscordID.Error(), c.Param("discordId"))
		return
	}

	// já validado por discord_id
	discordID, _ := strconv.ParseInt(params.DiscordID, 10, 64)
	user, err := h.userService.GetUserByDiscordID(c.Request.Context(), discordID)
	if err != nil {
		h.handleError(c, err, "discordId", discordID)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// GetUserByName busca um usuário pelo nome exato
//
//	@Summary	Busca usuário por nome
//	@Tags		users
//	@Produce	json
//	@Param		name	path		string	true	"Nome do usuário"
//	@Success	200		{object}	dto.UserResponse
//	@Failure	400		{object}	dto.ProblemResponse
//	@Failure	404		{object}	dto.ProblemResponse
//	@Failure	500		{object}	dto.ProblemResponse
//	@Router		/user/name/{name} [get]
func (h *UserHandler) GetUserByName(c *gin.Context) {
	var params userNameParams
	if err := c.ShouldBindUri(&params); err != nil {
		h.badRequest(c, err, "error.validation.detail", c.Param("name"))
		return
	}

	name, err := pathValue(c, params.Name)
	if err != nil {
		h.badRequest(c, err, "error.invalid_path", params.Name)
		return
	}

	user, err := h.userService.GetUserByName(c.Request.Context(), name)
	if err != nil {
		h.handleError(c, err, "name", name)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// pathValue decodifica um parâmetro de rota uma única vez, com regras de caminho
// Quando RawPath está vazio o gin já casou a rota sobre URL.Path decodificado
func pathValue(c *gin.Context, raw string) (string, error) {
	if c.Request.URL.RawPath == "" {
		return raw, nil
	}
	return url.PathUnescape(raw)
}

func (h *UserHandler) badRequest(c *gin.Context, err error, detailKey string, raw string) {
	params := map[string]interface{}{"Value": raw}

	var verrs validator.ValidationErrors
	if !errs.As(err, &verrs) {
		dto.WriteProblem(c, dto.BadRequestProblemI18n(c, detailKey, params))
		return
	}
	dto.WriteProblem(c, dto.ValidationProblemI18n(c, detailKey, validationErrors(c, verrs, raw), params))
}

func (h *UserHandler) handleError(c *gin.Context, err error, key string, value any) {
	if errs.Is(err, errors.ErrUserNotFound) {
		dto.WriteProblem(c, dto.UserNotFoundProblemI18n(c, key, value))
		return
	}

	h.logger.ErrorContext(c.Request.Context(), "lookup request failed",
		"path", c.Request.URL.Path,
		"error", err,
	)
	_ = c.Error(err)
	dto.WriteProblem(c, dto.InternalProblemI18n(c))
}

// validationErrors converte validator.ValidationErrors em erros por campo
func validationErrors(c *gin.Context, verrs validator.ValidationErrors, raw string) []dto.ValidationError {
	result := make([]dto.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		result = append(result, dto.ValidationError{
			Field:   fe.Field(),
			Message: dto.T(c, "error.validation.detail"),
			Tag:     fe.Tag(),
			Value:   raw,
		})
	}
	return result
}
