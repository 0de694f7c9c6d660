package user

import (
	apperrors "github.com/cmpc-libros/backend/pkg/errors"
)

// 用户领域错误
var (
	// ErrEmailDuplicado 邮箱已注册（包含软删除的账号）
	ErrEmailDuplicado = apperrors.New(apperrors.ErrCodeEmailDuplicate, "Email ya registrado")

	// ErrEmailVacio 邮箱为空
	ErrEmailVacio = apperrors.New(apperrors.ErrCodeValidation, "El email es obligatorio")

	// ErrPasswordVacio 密码为空
	ErrPasswordVacio = apperrors.New(apperrors.ErrCodeValidation, "La contraseña es obligatoria")
)

// ErrNotFound 用户不存在
func ErrNotFound(id uint) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeNotFound, "Usuario con ID %d no encontrado", id)
}
