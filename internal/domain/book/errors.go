package book

import (
	apperrors "github.com/cmpc-libros/backend/pkg/errors"
)

// 图书领域错误
var (
	// ErrTituloVacio 书名为空
	ErrTituloVacio = apperrors.New(apperrors.ErrCodeEmptyName, "El título es obligatorio")

	// ErrPrecioInvalido 价格非法(非数字或为负)
	ErrPrecioInvalido = apperrors.New(apperrors.ErrCodeInvalidPrice, "El precio debe ser un número válido")
)

// ErrNotFound 图书不存在
func ErrNotFound(id uint) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeNotFound, "Libro con ID %d no encontrado", id)
}
