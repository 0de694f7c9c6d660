//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 说明：
// 1. Wire在编译期生成代码,零运行时开销,类型安全
// 2. 运行 `wire gen ./cmd/api` 生成wire_gen.go
// 3. 同类型的多实例依赖(三个目录服务)Wire无法区分,
//    用自定义Provider在函数内手动组装
package main

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"gorm.io/gorm"

	appauth "github.com/cmpc-libros/backend/internal/application/auth"
	applibro "github.com/cmpc-libros/backend/internal/application/libro"
	"github.com/cmpc-libros/backend/internal/domain/book"
	"github.com/cmpc-libros/backend/internal/domain/catalog"
	"github.com/cmpc-libros/backend/internal/domain/user"
	"github.com/cmpc-libros/backend/internal/infrastructure/config"
	"github.com/cmpc-libros/backend/internal/infrastructure/persistence/postgres"
	"github.com/cmpc-libros/backend/internal/infrastructure/persistence/redis"
	"github.com/cmpc-libros/backend/internal/infrastructure/storage"
	"github.com/cmpc-libros/backend/internal/interface/http/handler"
	"github.com/cmpc-libros/backend/internal/interface/http/middleware"
	"github.com/cmpc-libros/backend/pkg/jwt"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	newLogger,
	postgres.NewDB,
	redis.NewClient,
	postgres.NewTxManager,
	redis.NewSessionStore,
	provideJWTManager,
	provideCoverStore,
	wire.Bind(new(user.Tx), new(*postgres.TxManager)),
	wire.Bind(new(book.Tx), new(*postgres.TxManager)),
	wire.Bind(new(catalog.Tx), new(*postgres.TxManager)),
	wire.Bind(new(appauth.Sessions), new(*redis.SessionStore)),
	wire.Bind(new(middleware.TokenBlacklist), new(*redis.SessionStore)),
	wire.Bind(new(applibro.CoverStore), new(*storage.DiskCoverStore)),
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	postgres.NewUsuarioRepository,
	postgres.NewLibroRepository,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
	book.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appauth.NewLoginUseCase,
	appauth.NewLogoutUseCase,
	applibro.NewExportUseCase,
	provideCreateComplete,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewUsuarioHandler,
	provideLibroHandler,
	middleware.NewAuthMiddleware,
)

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideCoverStore 从配置创建封面存储
func provideCoverStore(cfg *config.Config, log *slog.Logger) (*storage.DiskCoverStore, error) {
	return storage.NewDiskCoverStore(cfg.Storage, log)
}

// provideCreateComplete 组装一站式建书用例
// 三个catalog.Repository类型相同,Wire无法区分,手动构造
func provideCreateComplete(
	libroRepo book.Repository,
	tx *postgres.TxManager,
	covers *storage.DiskCoverStore,
	log *slog.Logger,
	db *gorm.DB,
) *applibro.CreateCompleteUseCase {
	return applibro.NewCreateCompleteUseCase(
		libroRepo,
		postgres.NewAutorRepository(db),
		postgres.NewEditorialRepository(db),
		postgres.NewGeneroRepository(db),
		tx,
		covers,
		log,
	)
}

// provideLibroHandler 组装图书处理器(上传大小限制来自配置)
func provideLibroHandler(
	cfg *config.Config,
	svc *book.Service,
	createComplete *applibro.CreateCompleteUseCase,
	export *applibro.ExportUseCase,
) *handler.LibroHandler {
	return handler.NewLibroHandler(svc, createComplete, export, cfg.Storage.MaxUploadBytes)
}

// provideRouteHandlers 汇总全部处理器
// 三个目录处理器共享一个类型,在这里手动实例化
func provideRouteHandlers(
	auth *handler.AuthHandler,
	usuarios *handler.UsuarioHandler,
	libros *handler.LibroHandler,
	authMW *middleware.AuthMiddleware,
	tx *postgres.TxManager,
	log *slog.Logger,
	db *gorm.DB,
) routeHandlers {
	newCatalog := func(kind catalog.Kind, repo catalog.Repository) *handler.CatalogHandler {
		return handler.NewCatalogHandler(catalog.NewService(kind, repo, tx, log))
	}
	return routeHandlers{
		auth:        auth,
		usuarios:    usuarios,
		libros:      libros,
		autores:     newCatalog(catalog.KindAutor, postgres.NewAutorRepository(db)),
		editoriales: newCatalog(catalog.KindEditorial, postgres.NewEditorialRepository(db)),
		generos:     newCatalog(catalog.KindGenero, postgres.NewGeneroRepository(db)),
		authMW:      authMW,
	}
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(cfg *config.Config, log *slog.Logger, h routeHandlers) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	if cfg.CORS.Enabled {
		r.Use(middleware.CORS(cfg.CORS))
	}

	registerRoutes(r, cfg, h)
	return r
}

// InitializeApp 初始化整个应用
// Wire会在wire_gen.go中生成实际的初始化代码
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		provideRouteHandlers,
		provideGinEngine,
	)
	return nil, nil
}
