package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：认证模块集成测试
//
// 测试场景覆盖：
// 1. 注册 → 登录 → 访问受保护接口的完整流程
// 2. 错误凭证被拒绝
// 3. 登出后Token进入黑名单，无法再使用

// TestAuthFlow 测试注册登录完整流程
func TestAuthFlow(t *testing.T) {
	RequireServer(t)

	email := GenerateTestEmail("auth_flow")

	t.Run("注册新用户", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/usuarios", map[string]string{
			"email":    email,
			"password": "Test1234",
			"nombre":   "Usuario de Prueba",
		}, "")

		require.Equal(t, 0, resp.Code, "注册失败: %s", resp.Message)

		var data UsuarioData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, email, data.Email)
		assert.NotZero(t, data.ID)
	})

	t.Run("重复邮箱注册被拒绝", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/usuarios", map[string]string{
			"email":    email,
			"password": "Test1234",
			"nombre":   "Otro Usuario",
		}, "")

		assert.Equal(t, 40902, resp.Code)
	})

	var token string

	t.Run("登录返回Token对", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/auth/login", map[string]string{
			"email":    email,
			"password": "Test1234",
		}, "")

		require.Equal(t, 0, resp.Code, "登录失败: %s", resp.Message)

		var data LoginData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		require.NotEmpty(t, data.AccessToken)
		require.NotEmpty(t, data.RefreshToken)
		token = data.AccessToken
	})

	t.Run("密码错误返回401", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/auth/login", map[string]string{
			"email":    email,
			"password": "incorrecta",
		}, "")

		assert.Equal(t, 40103, resp.Code)
	})

	t.Run("携带Token访问受保护接口", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/autores", token)
		assert.Equal(t, 0, resp.Code)
	})

	t.Run("无Token访问受保护接口返回401", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/autores", "")
		assert.Equal(t, 40100, resp.Code)
	})

	t.Run("登出后Token失效", func(t *testing.T) {
		logoutResp := PostJSON(t, BaseURL+"/auth/logout", nil, token)
		require.Equal(t, 0, logoutResp.Code, "登出失败: %s", logoutResp.Message)

		// 同一个Token再访问应被黑名单拦截
		resp := GetJSON(t, BaseURL+"/autores", token)
		assert.NotEqual(t, 0, resp.Code, "已登出的Token不应继续有效")
	})
}

// TestRegisterValidation 测试注册参数校验
func TestRegisterValidation(t *testing.T) {
	RequireServer(t)

	cases := []struct {
		name string
		body map[string]string
	}{
		{"邮箱格式非法", map[string]string{"email": "no-es-email", "password": "Test1234", "nombre": "X"}},
		{"密码过短", map[string]string{"email": GenerateTestEmail("short"), "password": "123", "nombre": "X"}},
		{"缺少nombre", map[string]string{"email": GenerateTestEmail("sin_nombre"), "password": "Test1234"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			resp := PostJSON(t, BaseURL+"/usuarios", c.body, "")
			assert.Equal(t, 40003, resp.Code)
		})
	}

	t.Run("非JSON请求体", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodPost, BaseURL+"/usuarios", nil)
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")

		client := &http.Client{Timeout: Timeout}
		resp, err := client.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
