package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmpc-libros/backend/internal/domain/user"
	"github.com/cmpc-libros/backend/pkg/jwt"
)

// Sessions 会话/黑名单存储(Redis实现)
type Sessions interface {
	SaveSession(ctx context.Context, userID uint, sessionData map[string]interface{}, ttl time.Duration) error
	DeleteSession(ctx context.Context, userID uint) error
	AddToBlacklist(ctx context.Context, token string, ttl time.Duration) error
	IsInBlacklist(ctx context.Context, token string) (bool, error)
}

// LoginUseCase 登录用例
// 校验凭证 → 签发Token → 记录会话
type LoginUseCase struct {
	users    *user.Service
	jwt      *jwt.Manager
	sessions Sessions
	log      *slog.Logger
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(users *user.Service, jwtManager *jwt.Manager, sessions Sessions, log *slog.Logger) *LoginUseCase {
	return &LoginUseCase{
		users:    users,
		jwt:      jwtManager,
		sessions: sessions,
		log:      log.With("usecase", "login"),
	}
}

// LoginResult 登录结果
type LoginResult struct {
	Usuario *user.Usuario
	Tokens  *jwt.TokenPair
}

// Execute 执行登录
// 会话写入失败不阻断登录:Token已签发,会话只用于统计和强制下线
func (uc *LoginUseCase) Execute(ctx context.Context, email, password, clientIP string) (*LoginResult, error) {
	u, err := uc.users.VerifyCredentials(ctx, email, password)
	if err != nil {
		uc.log.WarnContext(ctx, "intento de login fallido", "email", email, "ip", clientIP)
		return nil, err
	}

	tokens, err := uc.jwt.GenerateToken(u.ID, u.Email, u.Nombre)
	if err != nil {
		return nil, err
	}

	sessionData := map[string]interface{}{
		"email":    u.Email,
		"ip":       clientIP,
		"login_at": time.Now().Format(time.RFC3339),
	}
	if err := uc.sessions.SaveSession(ctx, u.ID, sessionData, uc.jwt.RefreshTokenExpire()); err != nil {
		uc.log.WarnContext(ctx, "no se pudo guardar la sesión", "user_id", u.ID, "error", err)
	}

	uc.log.InfoContext(ctx, "login exitoso", "user_id", u.ID, "email", u.Email)
	return &LoginResult{Usuario: u, Tokens: tokens}, nil
}
