package libro

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"strconv"

	"github.com/cmpc-libros/backend/internal/domain/book"
	apperrors "github.com/cmpc-libros/backend/pkg/errors"
)

// ExportFilename CSV下载的固定文件名
const ExportFilename = "libros.csv"

// csvHeader 固定表头,顺序与导出行字段一致
var csvHeader = []string{"id", "titulo", "autor", "editorial", "genero", "precio", "disponible", "imagen_url"}

// ExportUseCase CSV导出用例
// 全量未删除图书,缺失的关联名称输出空串;零行时只输出表头
type ExportUseCase struct {
	libroRepo book.Repository
	log       *slog.Logger
}

// NewExportUseCase 创建导出用例
func NewExportUseCase(libroRepo book.Repository, log *slog.Logger) *ExportUseCase {
	return &ExportUseCase{
		libroRepo: libroRepo,
		log:       log.With("usecase", "export_csv"),
	}
}

// Execute 把全量图书写成CSV
func (uc *ExportUseCase) Execute(ctx context.Context, w io.Writer) error {
	rows, err := uc.libroRepo.AllForExport(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "Error al generar CSV", err)
	}

	for _, r := range rows {
		record := []string{
			strconv.FormatUint(uint64(r.ID), 10),
			r.Titulo,
			r.Autor,
			r.Editorial,
			r.Genero,
			strconv.FormatFloat(r.Precio, 'f', 2, 64),
			strconv.FormatBool(r.Disponible),
			r.ImagenURL,
		}
		if err := writer.Write(record); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInternal, "Error al generar CSV", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInternal, "Error al generar CSV", err)
	}

	uc.log.InfoContext(ctx, "exportación completada", "filas", len(rows))
	return nil
}
