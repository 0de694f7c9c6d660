package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	applibro "github.com/cmpc-libros/backend/internal/application/libro"
	"github.com/cmpc-libros/backend/internal/domain/book"
	apperrors "github.com/cmpc-libros/backend/pkg/errors"
)

// stubLibroRepo 只为导出场景服务的图书仓储桩
type stubLibroRepo struct {
	rows      []book.ExportRow
	exportErr error
}

func (s *stubLibroRepo) Create(context.Context, *book.Libro) error { return nil }
func (s *stubLibroRepo) FindByID(_ context.Context, id uint) (*book.Libro, error) {
	return nil, book.ErrNotFound(id)
}
func (s *stubLibroRepo) FindByIDWithRelations(_ context.Context, id uint) (*book.Libro, error) {
	return nil, book.ErrNotFound(id)
}
func (s *stubLibroRepo) List(context.Context, book.ListParams) ([]book.ListItem, int64, error) {
	return nil, 0, nil
}
func (s *stubLibroRepo) Update(context.Context, *book.Libro) error  { return nil }
func (s *stubLibroRepo) Delete(context.Context, uint) error         { return nil }
func (s *stubLibroRepo) FindByIDUnscoped(_ context.Context, id uint) (*book.Libro, error) {
	return nil, book.ErrNotFound(id)
}
func (s *stubLibroRepo) Restore(context.Context, uint) error { return nil }
func (s *stubLibroRepo) AllForExport(context.Context) ([]book.ExportRow, error) {
	if s.exportErr != nil {
		return nil, s.exportErr
	}
	return s.rows, nil
}

func newExportRouter(repo *stubLibroRepo) *gin.Engine {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	export := applibro.NewExportUseCase(repo, log)
	h := NewLibroHandler(nil, nil, export, 0)

	r := gin.New()
	r.GET("/libros/exportar/csv", h.ExportCSV)
	return r
}

func TestLibroHandler_ExportCSV(t *testing.T) {
	t.Run("成功导出带表头的CSV", func(t *testing.T) {
		repo := &stubLibroRepo{rows: []book.ExportRow{
			{ID: 1, Titulo: "Cien años de soledad", Autor: "García Márquez", Editorial: "Sudamericana", Genero: "Novela", Precio: 12990.5, Disponible: true},
		}}
		r := newExportRouter(repo)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/libros/exportar/csv", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, w.Header().Get("Content-Disposition"), "libros.csv")

		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t, "id,titulo,autor,editorial,genero,precio,disponible,imagen_url", lines[0])
		assert.Contains(t, lines[1], "12990.50")
	})

	t.Run("零行时只有表头", func(t *testing.T) {
		r := newExportRouter(&stubLibroRepo{})

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/libros/exportar/csv", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "id,titulo,autor,editorial,genero,precio,disponible,imagen_url",
			strings.TrimSpace(w.Body.String()))
	})

	t.Run("查询失败返回500而不是空200", func(t *testing.T) {
		repo := &stubLibroRepo{exportErr: apperrors.ErrDatabaseError}
		r := newExportRouter(repo)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/libros/exportar/csv", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, w.Body.String(), "50001")
	})
}
