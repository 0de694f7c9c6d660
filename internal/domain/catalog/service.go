package catalog

import (
	"context"
	"log/slog"
	"strings"
)

// Service 目录领域服务（作者/出版社/类型共用）
// 业务规则：
// - 创建/更新名称不能为空（去除首尾空白后）
// - uniqueNombre开启时（类型），创建前做大小写不敏感的重复检查
// - 所有写操作在事务中执行
// - remove是软删除；restore对未删除的行幂等成功，对完全不存在的ID报not-found
type Service struct {
	kind         Kind
	repo         Repository
	tx           Tx
	log          *slog.Logger
	uniqueNombre bool
}

// NewService 创建目录服务
func NewService(kind Kind, repo Repository, tx Tx, log *slog.Logger) *Service {
	return &Service{
		kind: kind,
		repo: repo,
		tx:   tx,
		log:  log.With("entity", string(kind)),
		// 类型名称在应用层保证唯一（数据库唯一索引兜底）
		uniqueNombre: kind == KindGenero,
	}
}

// Create 创建实体
func (s *Service) Create(ctx context.Context, nombre string) (*Entidad, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, ErrNombreVacio(s.kind)
	}

	if s.uniqueNombre {
		if _, found, err := s.repo.FindByNombre(ctx, nombre); err != nil {
			return nil, err
		} else if found {
			s.log.Warn("intento de crear duplicado", "operation", "create", "nombre", nombre)
			return nil, ErrNombreDuplicado(s.kind, nombre)
		}
	}

	e := &Entidad{Nombre: nombre}
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("entidad creada", "operation", "create", "id", e.ID, "nombre", e.Nombre)
	return e, nil
}

// FindAll 分页查询
func (s *Service) FindAll(ctx context.Context, page, limit int) ([]Entidad, int64, error) {
	s.log.Info("listando entidades", "operation", "findAll", "page", page, "limit", limit)
	return s.repo.FindAll(ctx, page, limit)
}

// FindOne 根据ID查找（排除软删除）
func (s *Service) FindOne(ctx context.Context, id uint) (*Entidad, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Warn("entidad no encontrada", "operation", "findOne", "id", id)
		return nil, err
	}
	return e, nil
}

// Update 部分更新（nombre为nil表示不修改）
func (s *Service) Update(ctx context.Context, id uint, nombre *string) (*Entidad, error) {
	var e *Entidad
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		var err error
		e, err = s.repo.FindByID(ctx, id)
		if err != nil {
			s.log.Warn("entidad no encontrada para actualizar", "operation", "update", "id", id)
			return err
		}

		if nombre != nil {
			n := strings.TrimSpace(*nombre)
			if n == "" {
				return ErrNombreVacio(s.kind)
			}
			if s.uniqueNombre && !strings.EqualFold(n, e.Nombre) {
				if _, found, err := s.repo.FindByNombre(ctx, n); err != nil {
					return err
				} else if found {
					return ErrNombreDuplicado(s.kind, n)
				}
			}
			e.Nombre = n
		}

		return s.repo.Update(ctx, e)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("entidad actualizada", "operation", "update", "id", id)
	return e, nil
}

// Remove 软删除
func (s *Service) Remove(ctx context.Context, id uint) error {
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			s.log.Warn("entidad no encontrada para eliminar", "operation", "remove", "id", id)
			return err
		}
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("entidad eliminada", "operation", "remove", "id", id)
	return nil
}

// Restore 恢复软删除的实体
// 查找时包含软删除行：ID完全不存在才报not-found，
// 未被删除的行恢复等价于no-op成功
func (s *Service) Restore(ctx context.Context, id uint) (*Entidad, error) {
	var e *Entidad
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		if _, err := s.repo.FindByIDUnscoped(ctx, id); err != nil {
			s.log.Warn("intento de restaurar entidad inexistente", "operation", "restore", "id", id)
			return err
		}
		if err := s.repo.Restore(ctx, id); err != nil {
			return err
		}
		var err error
		e, err = s.repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("entidad restaurada", "operation", "restore", "id", id)
	return e, nil
}
