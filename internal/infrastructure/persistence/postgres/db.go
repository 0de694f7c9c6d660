package postgres

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cmpc-libros/backend/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2 + Postgres驱动
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动建schema并迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config, log *slog.Logger) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true, // 唯一索引冲突翻译为gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Info("数据库连接成功", "host", cfg.Database.Host, "dbname", cfg.Database.DBName)

	if err := autoMigrate(db, cfg.Database.Schema); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// 注意：生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
func autoMigrate(db *gorm.DB, schema string) error {
	// 所有表都放在独立schema下
	if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
		return err
	}

	if err := db.AutoMigrate(
		&UsuarioModel{},
		&AutorModel{},
		&EditorialModel{},
		&GeneroModel{},
		&LibroModel{},
	); err != nil {
		return err
	}

	// 体裁名称唯一,但只约束未删除的行(部分唯一索引)
	return db.Exec(fmt.Sprintf(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_generos_nombre ON %s.generos (nombre) WHERE deleted_at IS NULL",
		schema,
	)).Error
}

// catalogColumns 目录表的公共列
// autores/editoriales/generos结构相同,由泛型仓储统一处理
type catalogColumns struct {
	ID        uint           `gorm:"primaryKey"`
	Nombre    string         `gorm:"size:255;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (c *catalogColumns) columns() *catalogColumns { return c }

// AutorModel GORM作者模型
type AutorModel struct {
	catalogColumns
}

// TableName 指定表名
func (AutorModel) TableName() string {
	return "cmpc.autores"
}

// EditorialModel GORM出版社模型
type EditorialModel struct {
	catalogColumns
}

// TableName 指定表名
func (EditorialModel) TableName() string {
	return "cmpc.editoriales"
}

// GeneroModel GORM体裁模型
type GeneroModel struct {
	catalogColumns
}

// TableName 指定表名
func (GeneroModel) TableName() string {
	return "cmpc.generos"
}

// UsuarioModel GORM用户模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain/user/entity.go是领域实体，不依赖GORM
// 3. Repository负责两者之间的转换
type UsuarioModel struct {
	ID           uint           `gorm:"primaryKey"`
	Email        string         `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string         `gorm:"size:255;not null"`
	Nombre       string         `gorm:"size:255;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName 指定表名
func (UsuarioModel) TableName() string {
	return "cmpc.usuarios"
}

// LibroModel GORM图书模型
// 设计说明:
// 1. 价格用numeric(10,2),与导出/展示精度一致
// 2. 三个目录外键均为RESTRICT删除,防止孤儿引用
// 3. Titulo加索引支持模糊搜索的前缀场景
type LibroModel struct {
	ID          uint    `gorm:"primaryKey"`
	Titulo      string  `gorm:"size:255;not null;index"`
	Precio      float64 `gorm:"type:numeric(10,2);not null"`
	Disponible  bool    `gorm:"not null;default:true"`
	ImagenURL   string  `gorm:"size:500"`
	AutorID     uint    `gorm:"index;not null"`
	EditorialID uint    `gorm:"index;not null"`
	GeneroID    uint    `gorm:"index;not null"`

	Autor     AutorModel     `gorm:"foreignKey:AutorID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Editorial EditorialModel `gorm:"foreignKey:EditorialID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Genero    GeneroModel    `gorm:"foreignKey:GeneroID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName 指定表名
func (LibroModel) TableName() string {
	return "cmpc.libros"
}
