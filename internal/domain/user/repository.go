package user

import (
	"context"
)

// Repository 用户仓储接口
// 由domain层定义接口，infrastructure层实现（依赖倒置）
type Repository interface {
	// Create 创建用户
	Create(ctx context.Context, u *Usuario) error

	// FindByID 根据ID查找（排除软删除）
	FindByID(ctx context.Context, id uint) (*Usuario, error)

	// FindByEmail 根据邮箱查找，不存在时found=false
	// includeDeleted为true时包含软删除行（注册唯一性检查需要）
	FindByEmail(ctx context.Context, email string, includeDeleted bool) (u *Usuario, found bool, err error)

	// FindAll 分页查询
	FindAll(ctx context.Context, page, limit int) ([]Usuario, int64, error)

	// Update 更新用户
	Update(ctx context.Context, u *Usuario) error

	// Delete 软删除
	Delete(ctx context.Context, id uint) error

	// FindByIDUnscoped 根据ID查找，包含软删除行
	FindByIDUnscoped(ctx context.Context, id uint) (*Usuario, error)

	// Restore 清除软删除标记
	Restore(ctx context.Context, id uint) error
}

// Tx 事务边界（infrastructure的TxManager实现）
type Tx interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}
