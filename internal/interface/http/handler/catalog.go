package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/cmpc-libros/backend/internal/domain/catalog"
	"github.com/cmpc-libros/backend/internal/interface/http/dto"
	apperrors "github.com/cmpc-libros/backend/pkg/errors"
	"github.com/cmpc-libros/backend/pkg/response"
)

// CatalogHandler 目录实体HTTP处理器
// 作者/出版社/体裁的路由行为完全一致,共用一个处理器,
// 每种实体注册一个实例(见router.go)
type CatalogHandler struct {
	svc *catalog.Service
}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler(svc *catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// List 分页列表
func (h *CatalogHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	entities, total, err := h.svc.FindAll(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, dto.ToCatalogResponses(entities), total, page, limit)
}

// Get 按ID查询
func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	e, err := h.svc.FindOne(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToCatalogResponse(e))
}

// Create 新建
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.CatalogCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	e, err := h.svc.Create(c.Request.Context(), req.Nombre)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToCatalogResponse(e))
}

// Update 部分更新
func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	var req dto.CatalogUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	e, err := h.svc.Update(c.Request.Context(), id, req.Nombre)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToCatalogResponse(e))
}

// Delete 软删除
func (h *CatalogHandler) Delete(c *gin.Context) {
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

// Restore 恢复软删除的记录
func (h *CatalogHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	e, err := h.svc.Restore(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToCatalogResponse(e))
}
