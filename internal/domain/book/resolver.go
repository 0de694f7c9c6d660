package book

import (
	"context"
	"strings"

	apperrors "github.com/cmpc-libros/backend/pkg/errors"
)

// NameRef 目录实体的 ID/名称对,供按名称解析使用
type NameRef struct {
	ID     uint
	Nombre string
}

// ResolveName 按名称解析目录实体:命中返回已有 ID,未命中调用 create 新建。
// 匹配不区分大小写,名称两端空白被忽略,空名称报校验错误。
// existing 是调用方持有的快照,不做二次查询;并发下同名创建
// 由底层唯一约束裁决,create 失败时原样上抛。
func ResolveName(ctx context.Context, nombre string, existing []NameRef, create func(ctx context.Context, nombre string) (uint, error)) (uint, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return 0, apperrors.New(apperrors.ErrCodeEmptyName, "El nombre es obligatorio")
	}
	for _, ref := range existing {
		if strings.EqualFold(ref.Nombre, nombre) {
			return ref.ID, nil
		}
	}
	return create(ctx, nombre)
}
