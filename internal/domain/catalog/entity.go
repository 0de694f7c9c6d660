package catalog

import (
	"time"
)

// Kind 目录实体类型（autor/editorial/genero）
// 设计说明：
// 三个目录实体的结构与CRUD规则完全一致，只有表名和展示名不同，
// 因此领域层用一个Entidad加Kind区分，而不是复制三份同样的代码。
type Kind string

const (
	KindAutor     Kind = "autor"
	KindEditorial Kind = "editorial"
	KindGenero    Kind = "genero"
)

// DisplayName 返回面向用户的实体名称（用于错误信息）
func (k Kind) DisplayName() string {
	switch k {
	case KindAutor:
		return "Autor"
	case KindEditorial:
		return "Editorial"
	case KindGenero:
		return "Género"
	default:
		return string(k)
	}
}

// Entidad 目录实体（作者/出版社/类型）
// 软删除：DeletedAt非nil表示已被逻辑删除
type Entidad struct {
	ID        uint
	Nombre    string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}
