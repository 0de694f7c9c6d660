package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

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
	"github.com/cmpc-libros/backend/pkg/response"
)

// main 主程序入口
// 说明：手动依赖注入（wire.go是Wire版本的组装声明，两者保持同构）
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)
	log.Info("configuración cargada",
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"db", fmt.Sprintf("%s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName),
		"redis", cfg.Redis.Addr(),
	)

	// 2. 初始化数据库连接
	db, err := postgres.NewDB(cfg, log)
	if err != nil {
		log.Error("初始化数据库失败", "error", err)
		os.Exit(1)
	}

	// 3. 初始化Redis连接
	redisClient, err := redis.NewClient(cfg, log)
	if err != nil {
		log.Error("初始化Redis失败", "error", err)
		os.Exit(1)
	}

	// 4. 依赖注入（手动组装）
	// Repository ← Service ← UseCase ← Handler

	// 基础设施层
	txManager := postgres.NewTxManager(db)
	usuarioRepo := postgres.NewUsuarioRepository(db)
	libroRepo := postgres.NewLibroRepository(db)
	autorRepo := postgres.NewAutorRepository(db)
	editorialRepo := postgres.NewEditorialRepository(db)
	generoRepo := postgres.NewGeneroRepository(db)
	sessionStore := redis.NewSessionStore(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
	coverStore, err := storage.NewDiskCoverStore(cfg.Storage, log)
	if err != nil {
		log.Error("初始化文件存储失败", "error", err)
		os.Exit(1)
	}

	// 领域层
	usuarioService := user.NewService(usuarioRepo, txManager, log)
	libroService := book.NewService(libroRepo, txManager, log)
	autorService := catalog.NewService(catalog.KindAutor, autorRepo, txManager, log)
	editorialService := catalog.NewService(catalog.KindEditorial, editorialRepo, txManager, log)
	generoService := catalog.NewService(catalog.KindGenero, generoRepo, txManager, log)

	// 应用层
	loginUseCase := appauth.NewLoginUseCase(usuarioService, jwtManager, sessionStore, log)
	logoutUseCase := appauth.NewLogoutUseCase(jwtManager, sessionStore, log)
	createCompleteUseCase := applibro.NewCreateCompleteUseCase(
		libroRepo, autorRepo, editorialRepo, generoRepo, txManager, coverStore, log,
	)
	exportUseCase := applibro.NewExportUseCase(libroRepo, log)

	// 接口层
	authHandler := handler.NewAuthHandler(loginUseCase, logoutUseCase)
	usuarioHandler := handler.NewUsuarioHandler(usuarioService)
	libroHandler := handler.NewLibroHandler(libroService, createCompleteUseCase, exportUseCase, cfg.Storage.MaxUploadBytes)
	autorHandler := handler.NewCatalogHandler(autorService)
	editorialHandler := handler.NewCatalogHandler(editorialService)
	generoHandler := handler.NewCatalogHandler(generoService)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	// 5. 初始化Gin引擎
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))
	if cfg.CORS.Enabled {
		r.Use(middleware.CORS(cfg.CORS))
	}

	// 6. 注册路由
	registerRoutes(r, cfg, routeHandlers{
		auth:        authHandler,
		usuarios:    usuarioHandler,
		libros:      libroHandler,
		autores:     autorHandler,
		editoriales: editorialHandler,
		generos:     generoHandler,
		authMW:      authMiddleware,
	})

	// 7. 启动服务
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info("servidor iniciado", "addr", addr)

	if err := r.Run(addr); err != nil {
		log.Error("启动服务失败", "error", err)
		os.Exit(1)
	}
}

// newLogger 按配置创建slog日志器
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.Log.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level, AddSource: cfg.Log.AddSource}

	var h slog.Handler
	if cfg.Log.Format == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}

// routeHandlers 路由注册需要的全部处理器
type routeHandlers struct {
	auth        *handler.AuthHandler
	usuarios    *handler.UsuarioHandler
	libros      *handler.LibroHandler
	autores     *handler.CatalogHandler
	editoriales *handler.CatalogHandler
	generos     *handler.CatalogHandler
	authMW      *middleware.AuthMiddleware
}

// registerRoutes 注册路由
// 除登录和用户注册外,所有接口都要求Bearer Token
func registerRoutes(r *gin.Engine, cfg *config.Config, h routeHandlers) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Swagger文档: http://localhost:<port>/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 封面图片静态服务
	r.Static(cfg.Storage.URLPrefix, cfg.Storage.PublicDir)

	// 认证模块
	auth := r.Group("/auth")
	{
		auth.POST("/login", h.auth.Login)
		auth.POST("/logout", h.authMW.RequireAuth(), h.auth.Logout)
	}

	requireAuth := h.authMW.RequireAuth()

	// 用户模块(注册公开,其余需要登录)
	usuarios := r.Group("/usuarios")
	{
		usuarios.POST("", h.usuarios.Create)
		usuarios.GET("", requireAuth, h.usuarios.List)
		usuarios.GET("/:id", requireAuth, h.usuarios.Get)
		usuarios.PATCH("/:id", requireAuth, h.usuarios.Update)
		usuarios.DELETE("/:id", requireAuth, h.usuarios.Delete)
		usuarios.POST("/:id/restore", requireAuth, h.usuarios.Restore)
	}

	// 目录模块:作者/出版社/体裁三组路由共用一个处理器类型
	catalogs := map[string]*handler.CatalogHandler{
		"/autores":     h.autores,
		"/editoriales": h.editoriales,
		"/generos":     h.generos,
	}
	for path, ch := range catalogs {
		g := r.Group(path, requireAuth)
		{
			g.GET("", ch.List)
			g.GET("/:id", ch.Get)
			g.POST("", ch.Create)
			g.PATCH("/:id", ch.Update)
			g.DELETE("/:id", ch.Delete)
			g.POST("/:id/restore", ch.Restore)
		}
	}

	// 图书模块
	libros := r.Group("/libros", requireAuth)
	{
		libros.GET("", h.libros.List)
		libros.GET("/exportar/csv", h.libros.ExportCSV)
		libros.GET("/:id", h.libros.Get)
		libros.POST("", h.libros.Create)
		libros.POST("/complete", h.libros.CreateComplete)
		libros.PATCH("/:id", h.libros.Update)
		libros.DELETE("/:id", h.libros.Delete)
		libros.POST("/:id/restore", h.libros.Restore)
	}
}
