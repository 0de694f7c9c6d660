package book

import (
	"context"
	"log/slog"
	"strings"
)

// Service 图书服务
// 目录实体的解析与封面落盘在应用层编排,这里只做单实体的读写规则
type Service struct {
	repo Repository
	tx   Tx
	log  *slog.Logger
}

// NewService 创建图书服务
func NewService(repo Repository, tx Tx, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		tx:   tx,
		log:  log.With("entity", "libro"),
	}
}

// CreateInput 新建图书入参,外键已解析完成
type CreateInput struct {
	Titulo      string
	Precio      float64
	Disponible  bool
	ImagenURL   string
	AutorID     uint
	EditorialID uint
	GeneroID    uint
}

// UpdateInput 部分更新:nil 字段保持不变
type UpdateInput struct {
	Titulo      *string
	Precio      *float64
	Disponible  *bool
	ImagenURL   *string
	AutorID     *uint
	EditorialID *uint
	GeneroID    *uint
}

// Create 新建图书。书名不能为空,价格不能为负。
func (s *Service) Create(ctx context.Context, in CreateInput) (*Libro, error) {
	titulo := strings.TrimSpace(in.Titulo)
	if titulo == "" {
		return nil, ErrTituloVacio
	}
	if in.Precio < 0 {
		return nil, ErrPrecioInvalido
	}

	l := &Libro{
		Titulo:      titulo,
		Precio:      in.Precio,
		Disponible:  in.Disponible,
		ImagenURL:   in.ImagenURL,
		AutorID:     in.AutorID,
		EditorialID: in.EditorialID,
		GeneroID:    in.GeneroID,
	}
	if err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		return s.repo.Create(txCtx, l)
	}); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "libro creado", "id", l.ID, "titulo", l.Titulo)
	return l, nil
}

// List 过滤/排序/分页列表
func (s *Service) List(ctx context.Context, params ListParams) ([]ListItem, int64, error) {
	return s.repo.List(ctx, params)
}

// FindOne 按 ID 查找图书,展开关联名称
func (s *Service) FindOne(ctx context.Context, id uint) (*Libro, error) {
	return s.repo.FindByIDWithRelations(ctx, id)
}

// Update 部分更新图书
func (s *Service) Update(ctx context.Context, id uint, in UpdateInput) (*Libro, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Titulo != nil {
		titulo := strings.TrimSpace(*in.Titulo)
		if titulo == "" {
			return nil, ErrTituloVacio
		}
		l.Titulo = titulo
	}
	if in.Precio != nil {
		if *in.Precio < 0 {
			return nil, ErrPrecioInvalido
		}
		l.Precio = *in.Precio
	}
	if in.Disponible != nil {
		l.Disponible = *in.Disponible
	}
	if in.ImagenURL != nil {
		l.ImagenURL = *in.ImagenURL
	}
	if in.AutorID != nil {
		l.AutorID = *in.AutorID
	}
	if in.EditorialID != nil {
		l.EditorialID = *in.EditorialID
	}
	if in.GeneroID != nil {
		l.GeneroID = *in.GeneroID
	}

	if err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		return s.repo.Update(txCtx, l)
	}); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "libro actualizado", "id", l.ID)
	return s.repo.FindByIDWithRelations(ctx, id)
}

// Remove 软删除图书
func (s *Service) Remove(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	}); err != nil {
		return err
	}
	s.log.InfoContext(ctx, "libro eliminado", "id", id)
	return nil
}

// Restore 恢复软删除的图书。对未删除的记录是幂等操作。
func (s *Service) Restore(ctx context.Context, id uint) (*Libro, error) {
	if _, err := s.repo.FindByIDUnscoped(ctx, id); err != nil {
		return nil, err
	}
	if err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		return s.repo.Restore(txCtx, id)
	}); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "libro restaurado", "id", id)
	return s.repo.FindByIDWithRelations(ctx, id)
}
