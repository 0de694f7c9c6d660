package libro

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cmpc-libros/backend/internal/domain/book"
	"github.com/cmpc-libros/backend/internal/domain/catalog"
	apperrors "github.com/cmpc-libros/backend/pkg/errors"
)

// CoverStore 封面文件存储
type CoverStore interface {
	Save(originalName string, r io.Reader) (string, error)
	Delete(publicURL string) error
}

// CreateCompleteUseCase 一站式建书用例
// 设计说明:
// 1. 作者/出版社/体裁按名称解析,不存在则在同一事务内创建
// 2. 封面在解析完成后落盘,事务失败时删除已写入的文件
// 3. 直接操作Repository而不是领域服务:整个流程必须共享一个事务,
//    领域服务的方法各自开启事务,无法参与外层事务
type CreateCompleteUseCase struct {
	libroRepo     book.Repository
	autorRepo     catalog.Repository
	editorialRepo catalog.Repository
	generoRepo    catalog.Repository
	tx            book.Tx
	covers        CoverStore
	log           *slog.Logger
}

// NewCreateCompleteUseCase 创建一站式建书用例
func NewCreateCompleteUseCase(
	libroRepo book.Repository,
	autorRepo catalog.Repository,
	editorialRepo catalog.Repository,
	generoRepo catalog.Repository,
	tx book.Tx,
	covers CoverStore,
	log *slog.Logger,
) *CreateCompleteUseCase {
	return &CreateCompleteUseCase{
		libroRepo:     libroRepo,
		autorRepo:     autorRepo,
		editorialRepo: editorialRepo,
		generoRepo:    generoRepo,
		tx:            tx,
		covers:        covers,
		log:           log.With("usecase", "create_complete"),
	}
}

// CreateCompleteRequest 建书请求DTO
// Precio/Disponible以原始字符串接收(multipart表单字段),用例内做类型转换
type CreateCompleteRequest struct {
	Titulo     string
	Autor      string
	Editorial  string
	Genero     string
	Precio     string
	Disponible string

	// 封面文件,可选;ImagenName为空表示没有上传
	ImagenName string
	Imagen     io.Reader
}

// Execute 执行建书流程
func (uc *CreateCompleteUseCase) Execute(ctx context.Context, req CreateCompleteRequest) (*book.Libro, error) {
	titulo := strings.TrimSpace(req.Titulo)
	if titulo == "" {
		return nil, book.ErrTituloVacio
	}

	precio, err := strconv.ParseFloat(strings.TrimSpace(req.Precio), 64)
	if err != nil || precio < 0 {
		return nil, book.ErrPrecioInvalido
	}

	// disponible字段缺省为可借阅
	disponible := true
	if req.Disponible != "" {
		disponible, err = strconv.ParseBool(strings.TrimSpace(req.Disponible))
		if err != nil {
			return nil, apperrors.New(apperrors.ErrCodeValidation, "El campo disponible debe ser booleano")
		}
	}

	var libroID uint
	var savedURL string

	txErr := uc.tx.Transaction(ctx, func(txCtx context.Context) error {
		autorID, err := uc.resolve(txCtx, uc.autorRepo, req.Autor)
		if err != nil {
			return err
		}
		editorialID, err := uc.resolve(txCtx, uc.editorialRepo, req.Editorial)
		if err != nil {
			return err
		}
		generoID, err := uc.resolve(txCtx, uc.generoRepo, req.Genero)
		if err != nil {
			return err
		}

		// 封面在目录解析之后落盘:解析失败时根本不产生文件
		var imagenURL string
		if req.ImagenName != "" && req.Imagen != nil {
			imagenURL, err = uc.covers.Save(req.ImagenName, req.Imagen)
			if err != nil {
				return err
			}
			savedURL = imagenURL
		}

		l := &book.Libro{
			Titulo:      titulo,
			Precio:      precio,
			Disponible:  disponible,
			ImagenURL:   imagenURL,
			AutorID:     autorID,
			EditorialID: editorialID,
			GeneroID:    generoID,
		}
		if err := uc.libroRepo.Create(txCtx, l); err != nil {
			return err
		}
		libroID = l.ID
		return nil
	})

	if txErr != nil {
		// 事务回滚后文件成了孤儿,尽力删除
		if savedURL != "" {
			if err := uc.covers.Delete(savedURL); err != nil {
				uc.log.WarnContext(ctx, "no se pudo limpiar la imagen huérfana", "url", savedURL, "error", err)
			}
		}
		return nil, txErr
	}

	uc.log.InfoContext(ctx, "libro creado", "id", libroID, "titulo", titulo)
	return uc.libroRepo.FindByIDWithRelations(ctx, libroID)
}

// resolve 按名称解析目录实体,快照当前全量后做find-or-create
func (uc *CreateCompleteUseCase) resolve(ctx context.Context, repo catalog.Repository, nombre string) (uint, error) {
	entities, err := repo.All(ctx)
	if err != nil {
		return 0, err
	}

	refs := make([]book.NameRef, len(entities))
	for i, e := range entities {
		refs[i] = book.NameRef{ID: e.ID, Nombre: e.Nombre}
	}

	return book.ResolveName(ctx, nombre, refs, func(ctx context.Context, nombre string) (uint, error) {
		e := &catalog.Entidad{Nombre: nombre}
		if err := repo.Create(ctx, e); err != nil {
			return 0, err
		}
		return e.ID, nil
	})
}
