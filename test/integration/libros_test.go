package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 教学说明：图书模块集成测试
//
// 测试场景覆盖：
// 1. 外键已知的常规建书
// 2. 一站式建书（按名称解析目录实体 + 封面上传）
// 3. 列表过滤、排序、分页
// 4. 软删除与恢复
// 5. CSV全量导出

// TestLibroCRUD 测试图书增删改查流程
func TestLibroCRUD(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "libro_crud")

	autorID := CreateTestEntidad(t, token, "/autores", GenerateTestNombre("Autor CRUD"))
	editorialID := CreateTestEntidad(t, token, "/editoriales", GenerateTestNombre("Editorial CRUD"))
	generoID := CreateTestEntidad(t, token, "/generos", GenerateTestNombre("Genero CRUD"))

	titulo := GenerateTestNombre("El Libro de Prueba")
	var libroID uint

	t.Run("创建图书", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/libros", map[string]interface{}{
			"titulo":      titulo,
			"precio":      12990.50,
			"autorId":     autorID,
			"editorialId": editorialID,
			"generoId":    generoID,
		}, token)

		require.Equal(t, 0, resp.Code, "创建图书失败: %s", resp.Message)

		var data LibroData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, titulo, data.Titulo)
		assert.True(t, data.Disponible, "disponible缺省应为true")
		libroID = data.ID
	})

	t.Run("负价格被拒绝", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/libros", map[string]interface{}{
			"titulo":      "Precio Negativo",
			"precio":      -1,
			"autorId":     autorID,
			"editorialId": editorialID,
			"generoId":    generoID,
		}, token)

		assert.Equal(t, 40003, resp.Code)
	})

	t.Run("部分更新", func(t *testing.T) {
		resp := DoJSON(t, http.MethodPatch, fmt.Sprintf("%s/libros/%d", BaseURL, libroID),
			map[string]interface{}{"precio": 9990.0, "disponible": false}, token)

		require.Equal(t, 0, resp.Code, "更新失败: %s", resp.Message)

		var data LibroData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, 9990.0, data.Precio)
		assert.False(t, data.Disponible)
		assert.Equal(t, titulo, data.Titulo, "未提交的字段不应被修改")
	})

	t.Run("软删除后详情404", func(t *testing.T) {
		resp := DoJSON(t, http.MethodDelete, fmt.Sprintf("%s/libros/%d", BaseURL, libroID), nil, token)
		require.Equal(t, 0, resp.Code)

		getResp := GetJSON(t, fmt.Sprintf("%s/libros/%d", BaseURL, libroID), token)
		assert.Equal(t, 40400, getResp.Code)
	})

	t.Run("恢复后详情可见", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/libros/%d/restore", BaseURL, libroID), nil, token)
		require.Equal(t, 0, resp.Code, "恢复失败: %s", resp.Message)

		getResp := GetJSON(t, fmt.Sprintf("%s/libros/%d", BaseURL, libroID), token)
		assert.Equal(t, 0, getResp.Code)
	})
}

// TestLibroCreateComplete 测试一站式建书
func TestLibroCreateComplete(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "libro_complete")

	autorNombre := GenerateTestNombre("Autor Completo")

	t.Run("按名称创建全部目录实体", func(t *testing.T) {
		resp := postMultipart(t, token, map[string]string{
			"titulo":    GenerateTestNombre("Libro Completo"),
			"autor":     autorNombre,
			"editorial": GenerateTestNombre("Editorial Completa"),
			"genero":    GenerateTestNombre("Genero Completo"),
			"precio":    "15990",
		}, "", nil)

		require.Equal(t, 0, resp.Code, "一站式建书失败: %s", resp.Message)
	})

	t.Run("同名作者被复用而非重建", func(t *testing.T) {
		// 大小写不同也应匹配到上一个用例创建的作者
		resp := postMultipart(t, token, map[string]string{
			"titulo":    GenerateTestNombre("Segundo Libro"),
			"autor":     strings.ToUpper(autorNombre),
			"editorial": GenerateTestNombre("Otra Editorial"),
			"genero":    GenerateTestNombre("Otro Genero"),
			"precio":    "8990",
		}, "", nil)

		require.Equal(t, 0, resp.Code, "建书失败: %s", resp.Message)

		listResp := GetJSON(t, BaseURL+"/autores?limit=0", token)
		require.Equal(t, 0, listResp.Code)
		// limit=0只返回总数,这里只验证接口可用;重名校验由单元测试覆盖
	})

	t.Run("带封面上传", func(t *testing.T) {
		resp := postMultipart(t, token, map[string]string{
			"titulo":    GenerateTestNombre("Libro con Portada"),
			"autor":     GenerateTestNombre("Autor Portada"),
			"editorial": GenerateTestNombre("Editorial Portada"),
			"genero":    GenerateTestNombre("Genero Portada"),
			"precio":    "20000",
		}, "portada.png", []byte("png-de-prueba"))

		require.Equal(t, 0, resp.Code, "带封面建书失败: %s", resp.Message)

		var data struct {
			ImagenURL string `json:"imagenUrl"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.NotEmpty(t, data.ImagenURL, "应返回封面URL")
		assert.True(t, strings.HasSuffix(data.ImagenURL, ".png"))
	})

	t.Run("价格非法返回400", func(t *testing.T) {
		resp := postMultipart(t, token, map[string]string{
			"titulo":    "Libro Inválido",
			"autor":     "Alguien",
			"editorial": "Alguna",
			"genero":    "Alguno",
			"precio":    "no-numerico",
		}, "", nil)

		assert.Equal(t, 40002, resp.Code)
	})

	t.Run("作者名称为空返回400", func(t *testing.T) {
		resp := postMultipart(t, token, map[string]string{
			"titulo":    "Libro Sin Autor",
			"autor":     "   ",
			"editorial": "Alguna",
			"genero":    "Alguno",
			"precio":    "1000",
		}, "", nil)

		assert.Equal(t, 40001, resp.Code)
	})
}

// TestLibroList 测试列表过滤与排序
func TestLibroList(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "libro_list")

	// 准备两本可按标题区分的书
	marca := GenerateTestNombre("Marca")
	autorID := CreateTestEntidad(t, token, "/autores", GenerateTestNombre("Autor Lista"))
	editorialID := CreateTestEntidad(t, token, "/editoriales", GenerateTestNombre("Editorial Lista"))
	generoID := CreateTestEntidad(t, token, "/generos", GenerateTestNombre("Genero Lista"))

	for i, precio := range []float64{5000, 9000} {
		resp := PostJSON(t, BaseURL+"/libros", map[string]interface{}{
			"titulo":      fmt.Sprintf("%s Tomo %d", marca, i+1),
			"precio":      precio,
			"autorId":     autorID,
			"editorialId": editorialID,
			"generoId":    generoID,
		}, token)
		require.Equal(t, 0, resp.Code)
	}

	type row struct {
		ID     string  `json:"id"`
		Titulo string  `json:"titulo"`
		Precio float64 `json:"precio"`
		Autor  *string `json:"autor"`
	}

	listRows := func(t *testing.T, query string) ([]row, int64) {
		resp := GetJSON(t, BaseURL+"/libros"+query, token)
		require.Equal(t, 0, resp.Code, "列表失败: %s", resp.Message)

		var page PageData
		require.NoError(t, json.Unmarshal(resp.Data, &page))
		var rows []row
		require.NoError(t, json.Unmarshal(page.Data, &rows))
		return rows, page.Total
	}

	t.Run("按标题子串过滤", func(t *testing.T) {
		rows, total := listRows(t, "?titulo="+urlQueryEscape(marca))
		assert.Equal(t, int64(2), total)
		for _, r := range rows {
			assert.Contains(t, r.Titulo, marca)
			require.NotNil(t, r.Autor, "列表行应带作者名称")
		}
	})

	t.Run("按价格升序排序", func(t *testing.T) {
		rows, _ := listRows(t, "?titulo="+urlQueryEscape(marca)+"&sortBy=precio&sortOrder=asc")
		require.Len(t, rows, 2)
		assert.LessOrEqual(t, rows[0].Precio, rows[1].Precio)
	})

	t.Run("分页截断结果", func(t *testing.T) {
		rows, total := listRows(t, "?titulo="+urlQueryEscape(marca)+"&page=1&limit=1")
		assert.Equal(t, int64(2), total, "total应为过滤后的总数")
		assert.Len(t, rows, 1)
	})

	t.Run("ID为字符串类型", func(t *testing.T) {
		rows, _ := listRows(t, "?titulo="+urlQueryEscape(marca))
		require.NotEmpty(t, rows)
		assert.NotEmpty(t, rows[0].ID)
	})
}

// TestLibroExportCSV 测试CSV导出
func TestLibroExportCSV(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "libro_export")

	resp, body := GetRaw(t, BaseURL+"/libros/exportar/csv", token)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "libros.csv")

	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "id,titulo,autor,editorial,genero,precio,disponible,imagen_url", strings.TrimSpace(lines[0]))
}

// postMultipart 发送multipart/form-data建书请求
func postMultipart(t *testing.T, token string, fields map[string]string, filename string, fileContent []byte) *Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		fw, err := w.CreateFormFile("imagen", filename)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, BaseURL+"/libros/complete", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result Response
	require.NoError(t, json.Unmarshal(raw, &result), "解析响应失败: %s", string(raw))
	return &result
}

// urlQueryEscape 查询参数转义
func urlQueryEscape(s string) string {
	return strings.ReplaceAll(s, " ", "%20")
}
