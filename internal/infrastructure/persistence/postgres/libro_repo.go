package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/cmpc-libros/backend/internal/domain/book"
	apperrors "github.com/cmpc-libros/backend/pkg/errors"
)

// libroRepository 图书仓储实现(Postgres)
// 列表和导出通过LEFT JOIN展开目录名称,软删除的目录行不参与匹配
type libroRepository struct {
	db *gorm.DB
}

// NewLibroRepository 创建图书仓储
func NewLibroRepository(db *gorm.DB) book.Repository {
	return &libroRepository{db: db}
}

// libroRow 关联查询的扁平扫描结构
// 目录名称可能为NULL(关联行被软删除),用指针接收
type libroRow struct {
	ID              uint
	Titulo          string
	Precio          float64
	Disponible      bool
	ImagenURL       string
	AutorID         uint
	EditorialID     uint
	GeneroID        uint
	AutorNombre     *string
	EditorialNombre *string
	GeneroNombre    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       gorm.DeletedAt
}

const libroSelect = `libros.id, libros.titulo, libros.precio, libros.disponible, libros.imagen_url,
libros.autor_id, libros.editorial_id, libros.genero_id,
autores.nombre AS autor_nombre, editoriales.nombre AS editorial_nombre, generos.nombre AS genero_nombre,
libros.created_at, libros.updated_at, libros.deleted_at`

// joinRelations 追加目录表JOIN,软删除的目录行按缺失处理
func joinRelations(query *gorm.DB) *gorm.DB {
	return query.
		Joins("LEFT JOIN cmpc.autores ON autores.id = libros.autor_id AND autores.deleted_at IS NULL").
		Joins("LEFT JOIN cmpc.editoriales ON editoriales.id = libros.editorial_id AND editoriales.deleted_at IS NULL").
		Joins("LEFT JOIN cmpc.generos ON generos.id = libros.genero_id AND generos.deleted_at IS NULL")
}

// Create 插入图书
func (r *libroRepository) Create(ctx context.Context, l *book.Libro) error {
	model := &LibroModel{
		Titulo:      l.Titulo,
		Precio:      l.Precio,
		Disponible:  l.Disponible,
		ImagenURL:   l.ImagenURL,
		AutorID:     l.AutorID,
		EditorialID: l.EditorialID,
		GeneroID:    l.GeneroID,
	}

	if err := dbFromContext(ctx, r.db).Omit("Autor", "Editorial", "Genero").Create(model).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al crear libro", err)
	}

	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	l.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找(不展开关联)
func (r *libroRepository) FindByID(ctx context.Context, id uint) (*book.Libro, error) {
	var model LibroModel
	err := dbFromContext(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrNotFound(id)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al consultar libro", err)
	}
	return toLibroEntity(&model), nil
}

// FindByIDWithRelations 根据ID查找并展开目录名称
func (r *libroRepository) FindByIDWithRelations(ctx context.Context, id uint) (*book.Libro, error) {
	var row libroRow
	query := joinRelations(dbFromContext(ctx, r.db).Model(&LibroModel{}).Select(libroSelect)).
		Where("libros.id = ?", id)

	err := query.Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrNotFound(id)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al consultar libro", err)
	}

	l := toLibroEntity(&LibroModel{
		ID:          row.ID,
		Titulo:      row.Titulo,
		Precio:      row.Precio,
		Disponible:  row.Disponible,
		ImagenURL:   row.ImagenURL,
		AutorID:     row.AutorID,
		EditorialID: row.EditorialID,
		GeneroID:    row.GeneroID,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		DeletedAt:   row.DeletedAt,
	})
	l.Autor = deref(row.AutorNombre)
	l.Editorial = deref(row.EditorialNombre)
	l.Genero = deref(row.GeneroNombre)
	return l, nil
}

// sortColumns 允许的排序键 → SQL列
var sortColumns = map[string]string{
	"titulo":     "libros.titulo",
	"precio":     "libros.precio",
	"autor":      "autores.nombre",
	"editorial":  "editoriales.nombre",
	"genero":     "generos.nombre",
	"created_at": "libros.created_at",
}

// sortClause 生成ORDER BY片段
// 未知排序键回退到titulo升序;合法键使用请求的方向(大小写不敏感),默认降序
func sortClause(sortBy, sortDir string) string {
	column, known := sortColumns[sortBy]
	if !known {
		return "libros.titulo ASC"
	}
	direction := "DESC"
	if strings.EqualFold(sortDir, "asc") {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s", column, direction)
}

// List 过滤/排序/分页查询
// 名称过滤作用在JOIN后的目录表上,total反映过滤后的行数
func (r *libroRepository) List(ctx context.Context, params book.ListParams) ([]book.ListItem, int64, error) {
	query := joinRelations(dbFromContext(ctx, r.db).Model(&LibroModel{}).Select(libroSelect))

	if params.ID != nil {
		query = query.Where("libros.id = ?", *params.ID)
	}
	if params.Titulo != "" {
		query = query.Where("libros.titulo ILIKE ?", "%"+params.Titulo+"%")
	}
	if params.Autor != "" {
		query = query.Where("autores.nombre ILIKE ?", "%"+params.Autor+"%")
	}
	if params.Editorial != "" {
		query = query.Where("editoriales.nombre ILIKE ?", "%"+params.Editorial+"%")
	}
	if params.Genero != "" {
		query = query.Where("generos.nombre ILIKE ?", "%"+params.Genero+"%")
	}
	if params.Disponible != nil {
		query = query.Where("libros.disponible = ?", *params.Disponible)
	}

	query = query.Order(sortClause(params.SortBy, params.SortDir))

	result, err := Paginate[libroRow](query, params.Page, params.Limit)
	if err != nil {
		return nil, 0, apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al listar libros", err)
	}

	items := make([]book.ListItem, len(result.Data))
	for i := range result.Data {
		items[i] = toListItem(&result.Data[i])
	}
	return items, result.Total, nil
}

// Update 更新图书全部字段
func (r *libroRepository) Update(ctx context.Context, l *book.Libro) error {
	result := dbFromContext(ctx, r.db).Model(&LibroModel{}).
		Where("id = ?", l.ID).
		Updates(map[string]any{
			"titulo":       l.Titulo,
			"precio":       l.Precio,
			"disponible":   l.Disponible,
			"imagen_url":   l.ImagenURL,
			"autor_id":     l.AutorID,
			"editorial_id": l.EditorialID,
			"genero_id":    l.GeneroID,
		})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al actualizar libro", result.Error)
	}
	if result.RowsAffected == 0 {
		return book.ErrNotFound(l.ID)
	}
	return nil
}

// Delete 软删除图书
func (r *libroRepository) Delete(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Delete(&LibroModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al eliminar libro", result.Error)
	}
	if result.RowsAffected == 0 {
		return book.ErrNotFound(id)
	}
	return nil
}

// FindByIDUnscoped 根据ID查找,包含软删除的行
func (r *libroRepository) FindByIDUnscoped(ctx context.Context, id uint) (*book.Libro, error) {
	var model LibroModel
	err := dbFromContext(ctx, r.db).Unscoped().First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrNotFound(id)
		}
		return nil, apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al consultar libro", err)
	}
	return toLibroEntity(&model), nil
}

// Restore 恢复软删除的图书
func (r *libroRepository) Restore(ctx context.Context, id uint) error {
	result := dbFromContext(ctx, r.db).Unscoped().Model(&LibroModel{}).
		Where("id = ?", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al restaurar libro", result.Error)
	}
	if result.RowsAffected == 0 {
		return book.ErrNotFound(id)
	}
	return nil
}

// AllForExport 全量未删除图书,按ID升序
func (r *libroRepository) AllForExport(ctx context.Context) ([]book.ExportRow, error) {
	var rows []libroRow
	query := joinRelations(dbFromContext(ctx, r.db).Model(&LibroModel{}).Select(libroSelect)).
		Order("libros.id ASC")

	if err := query.Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeDatabaseError, "Error al exportar libros", err)
	}

	export := make([]book.ExportRow, len(rows))
	for i := range rows {
		export[i] = book.ExportRow{
			ID:         rows[i].ID,
			Titulo:     rows[i].Titulo,
			Autor:      deref(rows[i].AutorNombre),
			Editorial:  deref(rows[i].EditorialNombre),
			Genero:     deref(rows[i].GeneroNombre),
			Precio:     rows[i].Precio,
			Disponible: rows[i].Disponible,
			ImagenURL:  rows[i].ImagenURL,
		}
	}
	return export, nil
}

// toLibroEntity GORM模型 → 领域实体
func toLibroEntity(model *LibroModel) *book.Libro {
	var deletedAt *time.Time
	if model.DeletedAt.Valid {
		t := model.DeletedAt.Time
		deletedAt = &t
	}
	return &book.Libro{
		ID:          model.ID,
		Titulo:      model.Titulo,
		Precio:      model.Precio,
		Disponible:  model.Disponible,
		ImagenURL:   model.ImagenURL,
		AutorID:     model.AutorID,
		EditorialID: model.EditorialID,
		GeneroID:    model.GeneroID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

func toListItem(row *libroRow) book.ListItem {
	var deletedAt *time.Time
	if row.DeletedAt.Valid {
		t := row.DeletedAt.Time
		deletedAt = &t
	}
	return book.ListItem{
		ID:         row.ID,
		Titulo:     row.Titulo,
		Precio:     row.Precio,
		Disponible: row.Disponible,
		ImagenURL:  row.ImagenURL,
		Autor:      deref(row.AutorNombre),
		Editorial:  deref(row.EditorialNombre),
		Genero:     deref(row.GeneroNombre),
		CreatedAt:  row.CreatedAt,
		DeletedAt:  deletedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
