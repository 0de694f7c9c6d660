package user

import (
	"time"
)

// Usuario 用户实体（聚合根）
// 设计说明：
// 1. PasswordHash是bcrypt哈希值，永远不对外序列化
// 2. 领域实体不依赖GORM tag（infrastructure层的Repository负责映射）
// 3. DeletedAt非nil表示已被软删除
type Usuario struct {
	ID           uint
	Email        string
	PasswordHash string
	Nombre       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}
