package catalog

import (
	apperrors "github.com/cmpc-libros/backend/pkg/errors"
)

// 目录领域错误
// 错误信息使用西班牙语，与API的对外语言保持一致

// ErrNotFound 实体不存在（含被软删除过滤的行）
func ErrNotFound(kind Kind, id uint) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeNotFound, "%s con ID %d no encontrado", kind.DisplayName(), id)
}

// ErrNombreVacio 名称为空
func ErrNombreVacio(kind Kind) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeEmptyName, "El nombre de %s no puede estar vacío", kind.DisplayName())
}

// ErrNombreDuplicado 名称重复（大小写不敏感）
func ErrNombreDuplicado(kind Kind, nombre string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeNombreDuplicate, "%s con nombre \"%s\" ya existe", kind.DisplayName(), nombre)
}
