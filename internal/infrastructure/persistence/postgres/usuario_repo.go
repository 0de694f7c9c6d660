package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cmpc-libros/backend/internal/domain/user"
	apperrors "github.com/cmpc-libros/backend/pkg/errors"
)

// usuarioRepository 用户仓储实现(Postgres)
type usuarioRepository struct {
	db *gorm.DB
}

// NewUsuarioRepository 创建用户仓储
func NewUsuarioRepository(db *gorm.DB) user.Repository {
	return &usuarioRepository{db: db}
}

// Create 插入用户
func (r *usuarioRepository) Create(ctx context.Context, u *user.Usuario) error {
	model := &UsuarioModel{
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Nombre:       u.Nombre,
	}

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrEmailDuplicado
		}
		return apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al crear usuario", err)
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找(排除软删除)
func (r *usuarioRepository) FindByID(ctx context.Context, id uint) (*user.Usuario, error) {
	var model UsuarioModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound(id)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al consultar usuario", err)
	}
	return toUsuarioEntity(&model), nil
}

// FindByEmail 按邮箱查找
// includeDeleted为true时连软删除的账号一起查(注册时的唯一性检查)
func (r *usuarioRepository) FindByEmail(ctx context.Context, email string, includeDeleted bool) (*user.Usuario, bool, error) {
	query := dbFromContext(ctx, r.db)
	if includeDeleted {
		query = query.Unscoped()
	}

	var model UsuarioModel
	err := query.Where("email = ?", email).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al consultar usuario", err)
	}
	return toUsuarioEntity(&model), true, nil
}

// FindAll 分页列出用户,按创建时间降序
func (r *usuarioRepository) FindAll(ctx context.Context, page, limit int) ([]user.Usuario, int64, error) {
	query := dbFromContext(ctx, r.db).Model(&UsuarioModel{}).Order("created_at DESC")

	result, err := Paginate[UsuarioModel](query, page, limit)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al listar usuarios", err)
	}

	usuarios := make([]user.Usuario, len(result.Data))
	for i := range result.Data {
		usuarios[i] = *toUsuarioEntity(&result.Data[i])
	}
	return usuarios, result.Total, nil
}

// Update 更新用户全部字段
func (r *usuarioRepository) Update(ctx context.Context, u *user.Usuario) error {
	result := dbFromContext(ctx, r.db).Model(&UsuarioModel{}).
		Where("id = ?", u.ID).
		Updates(map[string]any{
			"email":         u.Email,
			"password_hash": u.PasswordHash,
			"nombre":        u.Nombre,
		})
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return user.ErrEmailDuplicado
		}
		return apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al actualizar usuario", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrNotFound(u.ID)
	}
	return nil
}

// Delete 软删除用户
func (r *usuarioRepository) Delete(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Delete(&UsuarioModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al eliminar usuario", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrNotFound(id)
	}
	return nil
}

// FindByIDUnscoped 根据ID查找,包含软删除的行
func (r *usuarioRepository) FindByIDUnscoped(ctx context.Context, id uint) (*user.Usuario, error) {
	var model UsuarioModel
	err := dbFromContext(ctx, r.db).Unscoped().First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound(id)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al consultar usuario", err)
	}
	return toUsuarioEntity(&model), nil
}

// Restore 恢复软删除的用户
func (r *usuarioRepository) Restore(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Unscoped().Model(&UsuarioModel{}).
		Where("id = ?", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al restaurar usuario", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrNotFound(id)
	}
	return nil
}

// toUsuarioEntity GORM模型 → 领域实体
func toUsuarioEntity(model *UsuarioModel) *user.Usuario {
	var deletedAt *time.Time
	if model.DeletedAt.Valid {
		t := model.DeletedAt.Time
		deletedAt = &t
	}
	return &user.Usuario{
		ID:           model.ID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Nombre:       model.Nombre,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
		DeletedAt:    deletedAt,
	}
}
