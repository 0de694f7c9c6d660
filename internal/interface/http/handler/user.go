package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cmpc-libros/backend/internal/domain/user"
	"github.com/cmpc-libros/backend/internal/interface/http/dto"
	apperrors "github.com/cmpc-libros/backend/pkg/errors"
	"github.com/cmpc-libros/backend/pkg/response"
)

// UsuarioHandler 用户HTTP处理器
// 设计说明：
// 1. Handler只负责HTTP相关的事情：解析请求、调用服务、返回响应
// 2. 不包含业务逻辑（业务逻辑在domain层）
type UsuarioHandler struct {
	svc *user.Service
}

// NewUsuarioHandler 创建用户处理器
func NewUsuarioHandler(svc *user.Service) *UsuarioHandler {
	return &UsuarioHandler{svc: svc}
}

// Create 用户注册
// @Summary      Crear usuario
// @Description  Registra una cuenta nueva
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateUsuarioRequest true "Datos del usuario"
// @Success      201 {object} response.Response{data=dto.UsuarioResponse}
// @Failure      400 {object} response.Response
// @Failure      409 {object} response.Response "Email ya registrado"
// @Router       /usuarios [post]
func (h *UsuarioHandler) Create(c *gin.Context) {
	var req dto.CreateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	u, err := h.svc.Create(c.Request.Context(), req.Email, req.Password, req.Nombre)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToUsuarioResponse(u))
}

// List 分页列出用户
// @Summary      Listar usuarios
// @Tags         usuarios
// @Produce      json
// @Param        page  query int false "Página" default(1)
// @Param        limit query int false "Tamaño de página" default(10)
// @Success      200 {object} response.Response{data=response.PageData}
// @Security     BearerAuth
// @Router       /usuarios [get]
func (h *UsuarioHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	usuarios, total, err := h.svc.FindAll(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, dto.ToUsuarioResponses(usuarios), total, page, limit)
}

// Get 按ID查询用户
func (h *UsuarioHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	u, err := h.svc.FindOne(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToUsuarioResponse(u))
}

// Update 部分更新用户
func (h *UsuarioHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	var req dto.UpdateUsuarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	u, err := h.svc.Update(c.Request.Context(), id, user.UpdateInput{
		Email:    req.Email,
		Password: req.Password,
		Nombre:   req.Nombre,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToUsuarioResponse(u))
}

// Delete 软删除用户
func (h *UsuarioHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	if err := h.svc.Remove(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// Restore 恢复软删除的用户
func (h *UsuarioHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	u, err := h.svc.Restore(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToUsuarioResponse(u))
}
