package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明：集成测试辅助工具
// 这些测试针对真实运行的服务（数据库+Redis已启动），
// 验证完整链路：Handler → UseCase → Service → Repository → Postgres。
// 服务未启动时整组测试自动跳过，不影响单元测试的执行。

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// PageData 分页响应数据
type PageData struct {
	Data  json.RawMessage `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// UsuarioData 用户响应数据
type UsuarioData struct {
	ID     uint   `json:"id"`
	Email  string `json:"email"`
	Nombre string `json:"nombre"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// EntidadData 目录实体响应数据（作者/出版社/类型）
type EntidadData struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

// LibroData 图书详情响应数据
type LibroData struct {
	ID         uint    `json:"id"`
	Titulo     string  `json:"titulo"`
	Precio     float64 `json:"precio"`
	Disponible bool    `json:"disponible"`
}

// RequireServer 服务不可达时跳过当前测试
func RequireServer(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(BaseURL + "/ping")
	if err != nil {
		t.Skipf("servidor no disponible en %s: %v", BaseURL, err)
	}
	resp.Body.Close()
}

// DoJSON 发送JSON请求并解析统一响应
func DoJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		raw, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	require.NoError(t, json.Unmarshal(raw, &result), "解析JSON响应失败: %s", string(raw))
	return &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return DoJSON(t, http.MethodPost, url, data, token)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, token string) *Response {
	return DoJSON(t, http.MethodGet, url, nil, token)
}

// GetRaw 发送GET请求并返回原始响应（CSV导出等非JSON接口）
func GetRaw(t *testing.T, url string, token string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err, "创建HTTP请求失败")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")
	return resp, body
}

// GenerateTestEmail 生成唯一的测试邮箱
// 时间戳保证重复运行时不会撞唯一索引
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// GenerateTestNombre 生成唯一的实体名称
func GenerateTestNombre(prefix string) string {
	return fmt.Sprintf("%s %d", prefix, time.Now().UnixNano())
}

// RegisterTestUser 注册测试用户并登录，返回邮箱和Access Token
func RegisterTestUser(t *testing.T, nombre string) (email string, token string) {
	t.Helper()

	email = GenerateTestEmail(nombre)
	registerResp := PostJSON(t, BaseURL+"/usuarios", map[string]string{
		"email":    email,
		"password": "Test1234",
		"nombre":   nombre,
	}, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	loginResp := PostJSON(t, BaseURL+"/auth/login", map[string]string{
		"email":    email,
		"password": "Test1234",
	}, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	require.NoError(t, json.Unmarshal(loginResp.Data, &loginData), "解析登录响应失败")
	return email, loginData.AccessToken
}

// CreateTestEntidad 创建目录实体（path为/autores、/editoriales或/generos），返回ID
func CreateTestEntidad(t *testing.T, token, path, nombre string) uint {
	t.Helper()

	resp := PostJSON(t, BaseURL+path, map[string]string{"nombre": nombre}, token)
	require.Equal(t, 0, resp.Code, "创建%s失败: %s", path, resp.Message)

	var data EntidadData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return data.ID
}
