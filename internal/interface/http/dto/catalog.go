package dto

import (
	"time"

	"github.com/cmpc-libros/backend/internal/domain/catalog"
)

// CatalogCreateRequest 目录实体创建请求(作者/出版社/体裁共用)
type CatalogCreateRequest struct {
	Nombre string `json:"nombre" binding:"required"`
}

// CatalogUpdateRequest 目录实体部分更新请求
type CatalogUpdateRequest struct {
	Nombre *string `json:"nombre"`
}

// CatalogResponse 目录实体响应
type CatalogResponse struct {
	ID        uint       `json:"id"`
	Nombre    string     `json:"nombre"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// ToCatalogResponse 领域实体 → 响应DTO
func ToCatalogResponse(e *catalog.Entidad) *CatalogResponse {
	return &CatalogResponse{
		ID:        e.ID,
		Nombre:    e.Nombre,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
		DeletedAt: e.DeletedAt,
	}
}

// ToCatalogResponses 批量转换
func ToCatalogResponses(entities []catalog.Entidad) []CatalogResponse {
	out := make([]CatalogResponse, len(entities))
	for i := range entities {
		out[i] = *ToCatalogResponse(&entities[i])
	}
	return out
}
