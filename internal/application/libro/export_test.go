package libro

import (
	"bytes"
	"context"
	"encoding/csv"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmpc-libros/backend/internal/domain/book"
)

// exportRepo 只实现AllForExport的图书仓储
type exportRepo struct {
	fakeLibroRepo
	rows []book.ExportRow
	err  error
}

func (r *exportRepo) AllForExport(_ context.Context) ([]book.ExportRow, error) {
	return r.rows, r.err
}

// TestExport_CSV CSV导出
func TestExport_CSV(t *testing.T) {
	t.Run("输出表头和数据行", func(t *testing.T) {
		repo := &exportRepo{rows: []book.ExportRow{
			{ID: 1, Titulo: "Cien años de soledad", Autor: "Gabriel García Márquez", Editorial: "Sudamericana", Genero: "Novela", Precio: 19990.5, Disponible: true, ImagenURL: "/public/imagenes/a.jpg"},
			{ID: 2, Titulo: "Rayuela", Autor: "Julio Cortázar", Editorial: "", Genero: "Novela", Precio: 15000, Disponible: false},
		}}
		uc := NewExportUseCase(repo, slog.Default())

		var buf bytes.Buffer
		require.NoError(t, uc.Execute(context.Background(), &buf))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, []string{"id", "titulo", "autor", "editorial", "genero", "precio", "disponible", "imagen_url"}, records[0])
		assert.Equal(t, []string{"1", "Cien años de soledad", "Gabriel García Márquez", "Sudamericana", "Novela", "19990.50", "true", "/public/imagenes/a.jpg"}, records[1])

		// 缺失的关联名称输出空串,不是"null"
		assert.Equal(t, "", records[2][3])
		assert.Equal(t, "15000.00", records[2][5])
		assert.Equal(t, "false", records[2][6])
	})

	t.Run("零行时只输出表头", func(t *testing.T) {
		uc := NewExportUseCase(&exportRepo{}, slog.Default())

		var buf bytes.Buffer
		require.NoError(t, uc.Execute(context.Background(), &buf))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "id", records[0][0])
	})
}
