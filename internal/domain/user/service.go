package user

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/cmpc-libros/backend/pkg/errors"
)

// Service 用户服务
type Service struct {
	repo Repository
	tx   Tx
	log  *slog.Logger
}

// NewService 创建用户服务
func NewService(repo Repository, tx Tx, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		tx:   tx,
		log:  log.With("entity", "usuario"),
	}
}

// UpdateInput 部分更新：nil 字段保持不变
type UpdateInput struct {
	Email    *string
	Password *string
	Nombre   *string
}

// Create 注册新用户。邮箱全局唯一，软删除的账号也占用邮箱。
func (s *Service) Create(ctx context.Context, email, password, nombre string) (*Usuario, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, ErrEmailVacio
	}
	if password == "" {
		return nil, ErrPasswordVacio
	}

	// 唯一索引覆盖软删除行，提前检查给出友好错误
	if _, found, err := s.repo.FindByEmail(ctx, email, true); err != nil {
		return nil, err
	} else if found {
		return nil, ErrEmailDuplicado
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "Error al generar el hash de contraseña", err)
	}

	u := &Usuario{
		Email:        email,
		PasswordHash: string(hash),
		Nombre:       strings.TrimSpace(nombre),
	}
	if err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		return s.repo.Create(txCtx, u)
	}); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "usuario creado", "id", u.ID, "email", u.Email)
	return u, nil
}

// FindAll 分页列出用户
func (s *Service) FindAll(ctx context.Context, page, limit int) ([]Usuario, int64, error) {
	return s.repo.FindAll(ctx, page, limit)
}

// FindOne 按 ID 查找用户
func (s *Service) FindOne(ctx context.Context, id uint) (*Usuario, error) {
	return s.repo.FindByID(ctx, id)
}

// Update 部分更新用户。修改邮箱时重新检查唯一性，提供密码时重新哈希。
func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*Usuario, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if email == "" {
			return nil, ErrEmailVacio
		}
		if email != u.Email {
			if _, found, err := s.repo.FindByEmail(ctx, email, true); err != nil {
				return nil, err
			} else if found {
				return nil, ErrEmailDuplicado
			}
			u.Email = email
		}
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, ErrPasswordVacio
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrCodeInternal, "Error al generar el hash de contraseña", err)
		}
		u.PasswordHash = string(hash)
	}
	if in.Nombre != nil {
		u.Nombre = strings.TrimSpace(*in.Nombre)
	}

	if err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		return s.repo.Update(txCtx, u)
	}); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "usuario actualizado", "id", u.ID)
	return u, nil
}

// Remove 软删除用户
func (s *Service) Remove(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	}); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "usuario eliminado", "id", id)
	return nil
}

// Restore 恢复软删除的用户。对未删除的记录是幂等操作。
func (s *Service) Restore(ctx context.Context, id uint) (*Usuario, error) {
	if _, err := s.repo.FindByIDUnscoped(ctx, id); err != nil {
		return nil, err
	}
	if err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		return s.repo.Restore(txCtx, id)
	}); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "usuario restaurado", "id", id)
	return s.repo.FindByID(ctx, id)
}

// VerifyCredentials 校验登录凭证。已删除的账号无法登录。
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*Usuario, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	u, found, err := s.repo.FindByEmail(ctx, email, false)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return u, nil
}
