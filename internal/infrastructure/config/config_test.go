package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `server:
  port: 8080
  mode: debug
database:
  host: localhost
  port: 5432
  user: postgres
  password: desde-archivo
  dbname: cmpc_libros
  sslmode: disable
jwt:
  secret: secreto-de-pruebas
  access_token_expire: 15m
storage:
  public_dir: ./public
`

// writeConfig 在临时目录放一份config.yaml并切换过去
func writeConfig(t *testing.T, yaml string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	chdir(t, dir)
}

// chdir 等价于 t.Chdir（Go 1.24+），在旧版 Go 下切换目录并在测试结束后恢复
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad(t *testing.T) {
	t.Run("从文件加载", func(t *testing.T) {
		writeConfig(t, testYAML)

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "desde-archivo", cfg.Database.Password)
		assert.Equal(t, "secreto-de-pruebas", cfg.JWT.Secret)
	})

	t.Run("环境变量覆盖嵌套key", func(t *testing.T) {
		writeConfig(t, testYAML)
		t.Setenv("CMPC_DATABASE_PASSWORD", "desde-entorno")
		t.Setenv("CMPC_JWT_SECRET", "secreto-de-entorno")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "desde-entorno", cfg.Database.Password)
		assert.Equal(t, "secreto-de-entorno", cfg.JWT.Secret)
	})

	t.Run("配置文件缺失报错", func(t *testing.T) {
		chdir(t, t.TempDir())

		_, err := Load()
		require.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8080, Mode: "debug"},
			JWT:     JWTConfig{Secret: "secreto-de-pruebas"},
			Storage: StorageConfig{PublicDir: "./public"},
		}
	}

	t.Run("合法配置通过", func(t *testing.T) {
		assert.NoError(t, validate(valid()))
	})

	t.Run("端口越界拒绝", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = 70000
		assert.Error(t, validate(cfg))
	})

	t.Run("jwt密钥为空拒绝", func(t *testing.T) {
		cfg := valid()
		cfg.JWT.Secret = ""
		assert.Error(t, validate(cfg))
	})

	t.Run("release模式拒绝默认密钥", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Mode = "release"
		cfg.JWT.Secret = "change-me-in-production"
		assert.Error(t, validate(cfg))
	})
}
