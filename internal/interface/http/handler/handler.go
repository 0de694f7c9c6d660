package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// 分页默认值
const (
	defaultPage  = 1
	defaultLimit = 10
)

// parsePagination 解析page/limit查询参数,缺省或非法时用默认值
func parsePagination(c *gin.Context) (page, limit int) {
	page = defaultPage
	limit = defaultLimit

	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v >= 0 {
		limit = v
	}
	return page, limit
}

// newLimitedBody 限制请求体大小,超限时multipart解析会报错
func newLimitedBody(c *gin.Context, maxBytes int64) io.ReadCloser {
	return http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
}

// parseIDParam 解析路径中的:id参数
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
