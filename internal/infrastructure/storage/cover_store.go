package storage

import (
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/cmpc-libros/backend/internal/infrastructure/config"
	apperrors "github.com/cmpc-libros/backend/pkg/errors"
)

// DiskCoverStore 封面文件的磁盘存储
// 文件名用UUID+原始扩展名,避免上传同名文件互相覆盖;
// 返回的公开URL以配置的前缀开头,由静态文件路由提供服务。
type DiskCoverStore struct {
	dir       string
	urlPrefix string
	log       *slog.Logger
}

// NewDiskCoverStore 创建磁盘存储,目录不存在时自动创建
func NewDiskCoverStore(cfg config.StorageConfig, log *slog.Logger) (*DiskCoverStore, error) {
	if err := os.MkdirAll(cfg.PublicDir, 0o755); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeStorageError, "Error al crear el directorio de imágenes", err)
	}
	return &DiskCoverStore{
		dir:       cfg.PublicDir,
		urlPrefix: strings.TrimSuffix(cfg.URLPrefix, "/"),
		log:       log.With("component", "cover_store"),
	}, nil
}

// Save 落盘封面文件,返回可直接访问的URL路径
func (s *DiskCoverStore) Save(originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrCodeStorageError, "Error al guardar la imagen", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", apperrors.Wrap(apperrors.ErrCodeStorageError, "Error al guardar la imagen", err)
	}

	return s.urlPrefix + "/" + name, nil
}

// Delete 按公开URL删除封面,文件已不存在时视为成功
func (s *DiskCoverStore) Delete(publicURL string) error {
	name := path.Base(publicURL)
	if name == "." || name == "/" || name == "" {
		return nil
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Info("imagen ya no existe", "url", publicURL)
			return nil
		}
		return apperrors.Wrap(apperrors.ErrCodeStorageError, "Error al eliminar la imagen", err)
	}
	return nil
}
