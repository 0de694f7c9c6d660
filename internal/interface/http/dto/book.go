package dto

import (
	"strconv"
	"time"

	"github.com/cmpc-libros/backend/internal/domain/book"
)

// CreateLibroRequest 图书创建请求(外键已知的普通创建)
type CreateLibroRequest struct {
	Titulo      string   `json:"titulo" binding:"required"`
	Precio      *float64 `json:"precio" binding:"required,gte=0"`
	Disponible  *bool    `json:"disponible"`
	ImagenURL   string   `json:"imagenUrl"`
	AutorID     uint     `json:"autorId" binding:"required"`
	EditorialID uint     `json:"editorialId" binding:"required"`
	GeneroID    uint     `json:"generoId" binding:"required"`
}

// UpdateLibroRequest 图书部分更新请求,nil字段保持不变
type UpdateLibroRequest struct {
	Titulo      *string  `json:"titulo"`
	Precio      *float64 `json:"precio" binding:"omitempty,gte=0"`
	Disponible  *bool    `json:"disponible"`
	ImagenURL   *string  `json:"imagenUrl"`
	AutorID     *uint    `json:"autorId"`
	EditorialID *uint    `json:"editorialId"`
	GeneroID    *uint    `json:"generoId"`
}

// LibroResponse 图书详情响应,关联名称已展开
type LibroResponse struct {
	ID          uint       `json:"id"`
	Titulo      string     `json:"titulo"`
	Precio      float64    `json:"precio"`
	Disponible  bool       `json:"disponible"`
	ImagenURL   string     `json:"imagenUrl"`
	AutorID     uint       `json:"autorId"`
	EditorialID uint       `json:"editorialId"`
	GeneroID    uint       `json:"generoId"`
	Autor       string     `json:"autor"`
	Editorial   string     `json:"editorial"`
	Genero      string     `json:"genero"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt"`
}

// ToLibroResponse 领域实体 → 响应DTO
func ToLibroResponse(l *book.Libro) *LibroResponse {
	return &LibroResponse{
		ID:          l.ID,
		Titulo:      l.Titulo,
		Precio:      l.Precio,
		Disponible:  l.Disponible,
		ImagenURL:   l.ImagenURL,
		AutorID:     l.AutorID,
		EditorialID: l.EditorialID,
		GeneroID:    l.GeneroID,
		Autor:       l.Autor,
		Editorial:   l.Editorial,
		Genero:      l.Genero,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
		DeletedAt:   l.DeletedAt,
	}
}

// LibroRow 列表行响应
// ID序列化为字符串,缺失的关联名称输出null
type LibroRow struct {
	ID         string     `json:"id"`
	Titulo     string     `json:"titulo"`
	Autor      *string    `json:"autor"`
	Editorial  *string    `json:"editorial"`
	Genero     *string    `json:"genero"`
	Precio     float64    `json:"precio"`
	Disponible bool       `json:"disponible"`
	ImagenURL  *string    `json:"imagenUrl"`
	CreatedAt  time.Time  `json:"createdAt"`
	DeletedAt  *time.Time `json:"deletedAt"`
}

// ToLibroRows 列表项 → 行响应
func ToLibroRows(items []book.ListItem) []LibroRow {
	rows := make([]LibroRow, len(items))
	for i, it := range items {
		rows[i] = LibroRow{
			ID:         strconv.FormatUint(uint64(it.ID), 10),
			Titulo:     it.Titulo,
			Autor:      nullable(it.Autor),
			Editorial:  nullable(it.Editorial),
			Genero:     nullable(it.Genero),
			Precio:     it.Precio,
			Disponible: it.Disponible,
			ImagenURL:  nullable(it.ImagenURL),
			CreatedAt:  it.CreatedAt,
			DeletedAt:  it.DeletedAt,
		}
	}
	return rows
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
