package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/cmpc-libros/backend/pkg/errors"
)

// Response 统一响应结构
// 设计说明：
// 1. Code是业务错误码（成功为0），客户端据此判断错误类型
// 2. HTTP状态码由错误码前3位决定（见pkg/errors.HTTPStatus）
// 3. Data是业务数据，失败时为null
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应（Code=0表示成功）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功响应（201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error 错误响应（自动处理AppError并映射HTTP状态码）
// 用法：
//
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)

	c.JSON(apperrors.HTTPStatus(appErr.Code), Response{
		Code:    appErr.Code,
		Message: appErr.Message,
		Data:    nil,
	})
}

// =========================================
// 分页响应结构
// =========================================

// PageData 分页数据封装
type PageData struct {
	Data  interface{} `json:"data"`  // 数据列表
	Total int64       `json:"total"` // 总记录数
	Page  int         `json:"page"`  // 当前页码
	Limit int         `json:"limit"` // 每页大小
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, data interface{}, total int64, page, limit int) {
	Success(c, &PageData{
		Data:  data,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}
