package handler

import (
	"github.com/gin-gonic/gin"

	appauth "github.com/cmpc-libros/backend/internal/application/auth"
	"github.com/cmpc-libros/backend/internal/interface/http/dto"
	"github.com/cmpc-libros/backend/internal/interface/http/middleware"
	apperrors "github.com/cmpc-libros/backend/pkg/errors"
	"github.com/cmpc-libros/backend/pkg/response"
)

// AuthHandler 认证HTTP处理器
type AuthHandler struct {
	loginUseCase  *appauth.LoginUseCase
	logoutUseCase *appauth.LogoutUseCase
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(loginUseCase *appauth.LoginUseCase, logoutUseCase *appauth.LogoutUseCase) *AuthHandler {
	return &AuthHandler{
		loginUseCase:  loginUseCase,
		logoutUseCase: logoutUseCase,
	}
}

// Login 用户登录
// @Summary      Iniciar sesión
// @Description  Verifica email y contraseña, devuelve JWT
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Credenciales"
// @Success      200 {object} response.Response{data=dto.LoginResponse}
// @Failure      400 {object} response.Response
// @Failure      401 {object} response.Response "Credenciales inválidas"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	result, err := h.loginUseCase.Execute(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.LoginResponse{
		Usuario:      *dto.ToUsuarioResponse(result.Usuario),
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		ExpiresIn:    result.Tokens.ExpiresIn,
	})
}

// Logout 用户登出
// @Summary      Cerrar sesión
// @Description  Revoca el token actual
// @Tags         auth
// @Produce      json
// @Success      200 {object} response.Response
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := middleware.GetUserID(c)
	token := middleware.GetToken(c)
	if userID == 0 || token == "" {
		response.Error(c, apperrors.ErrUnauthorized)
		return
	}

	if err := h.logoutUseCase.Execute(c.Request.Context(), userID, token); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
