package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	applibro "github.com/cmpc-libros/backend/internal/application/libro"
	"github.com/cmpc-libros/backend/internal/domain/book"
	"github.com/cmpc-libros/backend/internal/interface/http/dto"
	apperrors "github.com/cmpc-libros/backend/pkg/errors"
	"github.com/cmpc-libros/backend/pkg/response"
)

// LibroHandler 图书HTTP处理器
type LibroHandler struct {
	svc            *book.Service
	createComplete *applibro.CreateCompleteUseCase
	export         *applibro.ExportUseCase
	maxUploadBytes int64
}

// NewLibroHandler 创建图书处理器
func NewLibroHandler(
	svc *book.Service,
	createComplete *applibro.CreateCompleteUseCase,
	export *applibro.ExportUseCase,
	maxUploadBytes int64,
) *LibroHandler {
	return &LibroHandler{
		svc:            svc,
		createComplete: createComplete,
		export:         export,
		maxUploadBytes: maxUploadBytes,
	}
}

// List 过滤/排序/分页列表
// @Summary      Listar libros
// @Description  Lista paginada con filtros por título, autor, editorial, género y disponibilidad
// @Tags         libros
// @Produce      json
// @Param        page       query int    false "Página" default(1)
// @Param        limit      query int    false "Tamaño de página" default(10)
// @Param        id         query int    false "Filtro por ID exacto"
// @Param        titulo     query string false "Filtro por título (subcadena)"
// @Param        autor      query string false "Filtro por autor (subcadena)"
// @Param        editorial  query string false "Filtro por editorial (subcadena)"
// @Param        genero     query string false "Filtro por género (subcadena)"
// @Param        disponible query bool   false "Filtro por disponibilidad"
// @Param        sortBy     query string false "Clave de orden: titulo|precio|autor|editorial|genero"
// @Param        sortOrder  query string false "Dirección: asc|desc"
// @Success      200 {object} response.Response{data=response.PageData}
// @Security     BearerAuth
// @Router       /libros [get]
func (h *LibroHandler) List(c *gin.Context) {
	page, limit := parsePagination(c)

	params := book.ListParams{
		Titulo:    c.Query("titulo"),
		Autor:     c.Query("autor"),
		Editorial: c.Query("editorial"),
		Genero:    c.Query("genero"),
		SortBy:    c.Query("sortBy"),
		SortDir:   c.Query("sortOrder"),
		Page:      page,
		Limit:     limit,
	}

	if raw := c.Query("id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			response.Error(c, apperrors.ErrBindError)
			return
		}
		uid := uint(id)
		params.ID = &uid
	}
	if raw := c.Query("disponible"); raw != "" {
		disponible, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, apperrors.ErrBindError)
			return
		}
		params.Disponible = &disponible
	}

	items, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, dto.ToLibroRows(items), total, page, limit)
}

// Get 按ID查询图书
func (h *LibroHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	l, err := h.svc.FindOne(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToLibroResponse(l))
}

// Create 新建图书(外键已知)
func (h *LibroHandler) Create(c *gin.Context) {
	var req dto.CreateLibroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	disponible := true
	if req.Disponible != nil {
		disponible = *req.Disponible
	}

	l, err := h.svc.Create(c.Request.Context(), book.CreateInput{
		Titulo:      req.Titulo,
		Precio:      *req.Precio,
		Disponible:  disponible,
		ImagenURL:   req.ImagenURL,
		AutorID:     req.AutorID,
		EditorialID: req.EditorialID,
		GeneroID:    req.GeneroID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToLibroResponse(l))
}

// CreateComplete 一站式建书
// 目录实体按名称解析(不存在则创建),封面文件可选
// @Summary      Crear libro completo
// @Description  Crea el libro resolviendo autor/editorial/género por nombre y guardando la portada
// @Tags         libros
// @Accept       multipart/form-data
// @Produce      json
// @Param        titulo     formData string true  "Título"
// @Param        autor      formData string true  "Nombre del autor"
// @Param        editorial  formData string true  "Nombre de la editorial"
// @Param        genero     formData string true  "Nombre del género"
// @Param        precio     formData string true  "Precio"
// @Param        disponible formData string false "Disponibilidad"
// @Param        imagen     formData file   false "Portada"
// @Success      201 {object} response.Response{data=dto.LibroResponse}
// @Failure      400 {object} response.Response
// @Security     BearerAuth
// @Router       /libros/complete [post]
func (h *LibroHandler) CreateComplete(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = newLimitedBody(c, h.maxUploadBytes)
	}

	req := applibro.CreateCompleteRequest{
		Titulo:     c.PostForm("titulo"),
		Autor:      c.PostForm("autor"),
		Editorial:  c.PostForm("editorial"),
		Genero:     c.PostForm("genero"),
		Precio:     c.PostForm("precio"),
		Disponible: c.PostForm("disponible"),
	}

	file, err := c.FormFile("imagen")
	if err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			response.Error(c, apperrors.Wrap(apperrors.ErrCodeStorageError, "Error al leer la imagen", err))
			return
		}
		defer f.Close()
		req.ImagenName = file.Filename
		req.Imagen = f
	}

	l, err := h.createComplete.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToLibroResponse(l))
}

// ExportCSV 全量CSV导出
// 先写入内存缓冲再落响应:查询失败时还能返回真实的错误状态码,
// 而不是一个空body的200
// @Summary      Exportar libros a CSV
// @Tags         libros
// @Produce      text/csv
// @Success      200 {string} string "CSV"
// @Failure      500 {object} response.Response
// @Security     BearerAuth
// @Router       /libros/exportar/csv [get]
func (h *LibroHandler) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.export.Execute(c.Request.Context(), &buf); err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", applibro.ExportFilename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// Update 部分更新图书
func (h *LibroHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	var req dto.UpdateLibroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	l, err := h.svc.Update(c.Request.Context(), id, book.UpdateInput{
		Titulo:      req.Titulo,
		Precio:      req.Precio,
		Disponible:  req.Disponible,
		ImagenURL:   req.ImagenURL,
		AutorID:     req.AutorID,
		EditorialID: req.EditorialID,
		GeneroID:    req.GeneroID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToLibroResponse(l))
}

// Delete 软删除图书
func (h *LibroHandler) Delete(c *gin.Context) {
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

// Restore 恢复软删除的图书
func (h *LibroHandler) Restore(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.Error(c, apperrors.ErrBindError)
		return
	}

	l, err := h.svc.Restore(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, dto.ToLibroResponse(l))
}
