package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/cmpc-libros/backend/pkg/errors"
	"github.com/cmpc-libros/backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBlacklist 内存版Token黑名单
type fakeBlacklist struct {
	tokens map[string]bool
	err    error
}

func (f *fakeBlacklist) IsInBlacklist(_ context.Context, token string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.tokens[token], nil
}

func newAuthRouter(jwtManager *jwt.Manager, blacklist *fakeBlacklist) *gin.Engine {
	m := NewAuthMiddleware(jwtManager, blacklist)

	r := gin.New()
	r.GET("/perfil", m.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": GetUserID(c),
			"email":   GetEmail(c),
			"token":   GetToken(c),
		})
	})
	return r
}

func doAuth(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/perfil", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func responseCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var resp struct {
		Code int `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Code
}

func TestRequireAuth(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)
	blacklist := &fakeBlacklist{tokens: map[string]bool{}}
	r := newAuthRouter(manager, blacklist)

	t.Run("缺少Authorization头返回401", func(t *testing.T) {
		w := doAuth(r, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperrors.ErrCodeUnauthorized, responseCode(t, w))
	})

	t.Run("非Bearer格式返回401", func(t *testing.T) {
		w := doAuth(r, "Basic abc123")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidToken, responseCode(t, w))
	})

	t.Run("无效Token返回401", func(t *testing.T) {
		w := doAuth(r, "Bearer token-falso")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidToken, responseCode(t, w))
	})

	t.Run("密钥不匹配的Token被拒绝", func(t *testing.T) {
		other := jwt.NewManager("otro-secreto", time.Hour, 24*time.Hour)
		pair, err := other.GenerateToken(1, "ana@cmpc.cl", "Ana")
		require.NoError(t, err)

		w := doAuth(r, "Bearer "+pair.AccessToken)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperrors.ErrCodeInvalidToken, responseCode(t, w))
	})

	t.Run("黑名单中的Token被拒绝", func(t *testing.T) {
		pair, err := manager.GenerateToken(1, "ana@cmpc.cl", "Ana")
		require.NoError(t, err)
		blacklist.tokens[pair.AccessToken] = true

		w := doAuth(r, "Bearer "+pair.AccessToken)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperrors.ErrCodeTokenExpired, responseCode(t, w))
	})

	t.Run("有效Token注入用户信息", func(t *testing.T) {
		pair, err := manager.GenerateToken(7, "carlos@cmpc.cl", "Carlos")
		require.NoError(t, err)

		w := doAuth(r, "Bearer "+pair.AccessToken)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			UserID uint   `json:"user_id"`
			Email  string `json:"email"`
			Token  string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, uint(7), body.UserID)
		assert.Equal(t, "carlos@cmpc.cl", body.Email)
		assert.Equal(t, pair.AccessToken, body.Token)
	})

	t.Run("黑名单查询失败返回500", func(t *testing.T) {
		failing := &fakeBlacklist{err: apperrors.ErrRedisError}
		rf := newAuthRouter(manager, failing)
		pair, err := manager.GenerateToken(1, "ana@cmpc.cl", "Ana")
		require.NoError(t, err)

		w := doAuth(rf, "Bearer "+pair.AccessToken)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
