package auth

import (
	"context"
	"log/slog"

	"github.com/cmpc-libros/backend/pkg/jwt"
)

// LogoutUseCase 登出用例
// JWT无状态,登出=把Token拉黑+删除会话
type LogoutUseCase struct {
	jwt      *jwt.Manager
	sessions Sessions
	log      *slog.Logger
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(jwtManager *jwt.Manager, sessions Sessions, log *slog.Logger) *LogoutUseCase {
	return &LogoutUseCase{
		jwt:      jwtManager,
		sessions: sessions,
		log:      log.With("usecase", "logout"),
	}
}

// Execute 执行登出
// 黑名单TTL取Access Token有效期:Token过期后条目自动清理
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, token string) error {
	if err := uc.sessions.AddToBlacklist(ctx, token, uc.jwt.AccessTokenExpire()); err != nil {
		return err
	}

	if err := uc.sessions.DeleteSession(ctx, userID); err != nil {
		// 会话删不掉不影响登出结果,Token已失效
		uc.log.WarnContext(ctx, "no se pudo eliminar la sesión", "user_id", userID, "error", err)
	}

	uc.log.InfoContext(ctx, "logout exitoso", "user_id", userID)
	return nil
}
