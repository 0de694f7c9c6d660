package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cmpc-libros/backend/internal/domain/catalog"
	apperrors "github.com/cmpc-libros/backend/pkg/errors"
)

// catalogPtr 约束:指向目录模型且能暴露公共列
type catalogPtr[M any] interface {
	*M
	columns() *catalogColumns
}

// catalogRepository 目录仓储实现(Postgres)
// 三张目录表结构相同,用泛型共享一份实现,按Kind区分错误消息
type catalogRepository[M any, PM catalogPtr[M]] struct {
	db   *gorm.DB
	kind catalog.Kind
}

// NewAutorRepository 创建作者仓储
func NewAutorRepository(db *gorm.DB) catalog.Repository {
	return &catalogRepository[AutorModel, *AutorModel]{db: db, kind: catalog.KindAutor}
}

// NewEditorialRepository 创建出版社仓储
func NewEditorialRepository(db *gorm.DB) catalog.Repository {
	return &catalogRepository[EditorialModel, *EditorialModel]{db: db, kind: catalog.KindEditorial}
}

// NewGeneroRepository 创建体裁仓储
func NewGeneroRepository(db *gorm.DB) catalog.Repository {
	return &catalogRepository[GeneroModel, *GeneroModel]{db: db, kind: catalog.KindGenero}
}

// Create 插入目录实体
func (r *catalogRepository[M, PM]) Create(ctx context.Context, e *catalog.Entidad) error {
	var model M
	cols := PM(&model).columns()
	cols.Nombre = e.Nombre

	if err := dbFromContext(ctx, r.db).Create(&model).Error; err != nil {
		if isDuplicateError(err) {
			return catalog.ErrNombreDuplicado(r.kind, e.Nombre)
		}
		return apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al crear registro", err)
	}

	// 回填自增ID和时间戳
	e.ID = cols.ID
	e.CreatedAt = cols.CreatedAt
	e.UpdatedAt = cols.UpdatedAt
	return nil
}

// FindByID 根据ID查找(排除软删除)
func (r *catalogRepository[M, PM]) FindByID(ctx context.Context, id uint) (*catalog.Entidad, error) {
	var model M
	err := dbFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound(r.kind, id)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al consultar registro", err)
	}
	return r.toEntity(PM(&model)), nil
}

// FindAll 分页列出,按名称排序
func (r *catalogRepository[M, PM]) FindAll(ctx context.Context, page, limit int) ([]catalog.Entidad, int64, error) {
	var model M
	query := dbFromContext(ctx, r.db).Model(&model).Order("nombre ASC")

	result, err := Paginate[M](query, page, limit)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al listar registros", err)
	}

	entities := make([]catalog.Entidad, len(result.Data))
	for i := range result.Data {
		entities[i] = *r.toEntity(PM(&result.Data[i]))
	}
	return entities, result.Total, nil
}

// All 返回全量未删除实体(供按名称解析使用)
func (r *catalogRepository[M, PM]) All(ctx context.Context) ([]catalog.Entidad, error) {
	var models []M
	if err := dbFromContext(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al listar registros", err)
	}
	entities := make([]catalog.Entidad, len(models))
	for i := range models {
		entities[i] = *r.toEntity(PM(&models[i]))
	}
	return entities, nil
}

// FindByNombre 按名称查找,不区分大小写
func (r *catalogRepository[M, PM]) FindByNombre(ctx context.Context, nombre string) (*catalog.Entidad, bool, error) {
	var model M
	err := dbFromContext(ctx, r.db).Where("LOWER(nombre) = LOWER(?)", nombre).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al consultar registro", err)
	}
	return r.toEntity(PM(&model)), true, nil
}

// Update 更新名称
func (r *catalogRepository[M, PM]) Update(ctx context.Context, e *catalog.Entidad) error {
	var model M
	result := dbFromContext(ctx, r.db).Model(&model).
		Where("id = ?", e.ID).
		Update("nombre", e.Nombre)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return catalog.ErrNombreDuplicado(r.kind, e.Nombre)
		}
		return apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al actualizar registro", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrNotFound(r.kind, e.ID)
	}
	return nil
}

// Delete 软删除
func (r *catalogRepository[M, PM]) Delete(ctx context.Context, id uint) error {
	var model M
	result := dbFromContext(ctx, r.db).Delete(&model, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al eliminar registro", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrNotFound(r.kind, id)
	}
	return nil
}

// FindByIDUnscoped 根据ID查找,包含软删除的行
func (r *catalogRepository[M, PM]) FindByIDUnscoped(ctx context.Context, id uint) (*catalog.Entidad, error) {
	var model M
	err := dbFromContext(ctx, r.db).Unscoped().First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound(r.kind, id)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al consultar registro", err)
	}
	return r.toEntity(PM(&model)), nil
}

// Restore 清除deleted_at恢复软删除的行
func (r *catalogRepository[M, PM]) Restore(ctx context.Context, id uint) error {
	var model M
	result := dbFromContext(ctx, r.db).Unscoped().Model(&model).
		Where("id = ?", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al restaurar registro", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrNotFound(r.kind, id)
	}
	return nil
}

// toEntity GORM模型 → 领域实体
func (r *catalogRepository[M, PM]) toEntity(pm PM) *catalog.Entidad {
	cols := pm.columns()
	var deletedAt *time.Time
	if cols.DeletedAt.Valid {
		t := cols.DeletedAt.Time
		deletedAt = &t
	}
	return &catalog.Entidad{
		ID:        cols.ID,
		Nombre:    cols.Nombre,
		CreatedAt: cols.CreatedAt,
		UpdatedAt: cols.UpdatedAt,
		DeletedAt: deletedAt,
	}
}
