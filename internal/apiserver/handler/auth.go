package handler

import (
	"errors"
	"strings"

	"github.com/amoylab/rentboard/internal/apiserver/database"
	"github.com/amoylab/rentboard/internal/common/cnst"
	"github.com/amoylab/rentboard/internal/common/dto"
	"github.com/amoylab/rentboard/internal/i18n"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// SignUp handles account registration
func (h *Handler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		h.fail(c, err)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		h.fail(c, err)
		return
	}

	ctx := c.Request.Context()
	user := &database.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     cnst.Role(req.Role),
	}
	err = h.db.CreateUser(ctx, user)
	if errors.Is(err, database.ErrDuplicate) {
		if _, lookupErr := h.db.GetUserByEmail(ctx, req.Email); lookupErr == nil {
			i18n.RespondWithError(c, i18n.ErrEmailExists)
			return
		}
		i18n.RespondWithError(c, i18n.ErrUsernameExists)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}

	h.logger.Info("user signed up", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))
	i18n.Created().
		Message(i18n.SuccessUserCreated).
		With("user", dto.NewUserInfo(user)).
		Send(c)
}

// SignIn exchanges an email and password for a session token
func (h *Handler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if !bindJSON(c, &req) {
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		i18n.RespondWithError(c, i18n.ErrInvalidCredentials)
		return
	}

	user, err := h.db.GetUserByEmail(c.Request.Context(), email)
	if errors.Is(err, database.ErrNotFound) {
		i18n.RespondWithError(c, i18n.ErrInvalidCredentials)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		i18n.RespondWithError(c, i18n.ErrInvalidCredentials)
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID.String(), user.Username, string(user.Role))
	if err != nil {
		h.fail(c, err)
		return
	}
	i18n.Success().
		With("token", token).
		With("user", dto.NewUserInfo(user)).
		Send(c)
}
