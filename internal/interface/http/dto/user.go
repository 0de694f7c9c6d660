package dto

import (
	"time"

	"github.com/cmpc-libros/backend/internal/domain/user"
)

// CreateUsuarioRequest 用户创建请求
// 说明：HTTP层的DTO，包含参数验证tag
type CreateUsuarioRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Nombre   string `json:"nombre" binding:"required"`
}

// UpdateUsuarioRequest 用户部分更新请求,nil字段保持不变
type UpdateUsuarioRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6,max=72"`
	Nombre   *string `json:"nombre"`
}

// UsuarioResponse 用户响应（不包含密码）
type UsuarioResponse struct {
	ID        uint       `json:"id"`
	Email     string     `json:"email"`
	Nombre    string     `json:"nombre"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// ToUsuarioResponse 领域实体 → 响应DTO
func ToUsuarioResponse(u *user.Usuario) *UsuarioResponse {
	return &UsuarioResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nombre:    u.Nombre,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		DeletedAt: u.DeletedAt,
	}
}

// ToUsuarioResponses 批量转换
func ToUsuarioResponses(usuarios []user.Usuario) []UsuarioResponse {
	out := make([]UsuarioResponse, len(usuarios))
	for i := range usuarios {
		out[i] = *ToUsuarioResponse(&usuarios[i])
	}
	return out
}
