package catalog

import (
	"context"
)

// Repository 目录仓储接口（按实体类型实例化三次）
// 设计说明：
// 1. 由domain层定义接口，infrastructure层实现（依赖倒置）
// 2. 默认查询排除软删除行；Unscoped/Restore系列显式包含
type Repository interface {
	// Create 创建实体
	Create(ctx context.Context, e *Entidad) error

	// FindByID 根据ID查找（排除软删除）
	FindByID(ctx context.Context, id uint) (*Entidad, error)

	// FindAll 分页查询
	FindAll(ctx context.Context, page, limit int) ([]Entidad, int64, error)

	// All 返回全部未删除实体（find-or-create解析器的候选列表）
	All(ctx context.Context) ([]Entidad, error)

	// FindByNombre 按名称查找（大小写不敏感），不存在时found=false
	FindByNombre(ctx context.Context, nombre string) (e *Entidad, found bool, err error)

	// Update 更新实体
	Update(ctx context.Context, e *Entidad) error

	// Delete 软删除
	Delete(ctx context.Context, id uint) error

	// FindByIDUnscoped 根据ID查找，包含软删除行
	FindByIDUnscoped(ctx context.Context, id uint) (*Entidad, error)

	// Restore 清除软删除标记
	Restore(ctx context.Context, id uint) error
}

// Tx 事务边界（infrastructure的TxManager实现）
// fn内通过ctx传递的仓储调用在同一事务中执行
type Tx interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
