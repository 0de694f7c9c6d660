package book

import (
	"context"
)

// Repository 图书仓储接口
type Repository interface {
	Create(ctx context.Context, l *Libro) error
	FindByID(ctx context.Context, id uint) (*Libro, error)
	// FindByIDWithRelations 加载图书并展开作者/出版社/体裁名称
	FindByIDWithRelations(ctx context.Context, id uint) (*Libro, error)
	// List 按条件过滤、排序、分页;返回总行数以支持前端分页
	List(ctx context.Context, params ListParams) ([]ListItem, int64, error)
	Update(ctx context.Context, l *Libro) error
	Delete(ctx context.Context, id uint) error
	FindByIDUnscoped(ctx context.Context, id uint) (*Libro, error)
	Restore(ctx context.Context, id uint) error
	// AllForExport 返回全量未删除图书(展开关联名称),按 ID 升序
	AllForExport(ctx context.Context) ([]ExportRow, error)
}

// Tx 事务边界
type Tx interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
