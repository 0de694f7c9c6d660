package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，前3位对应HTTP状态码（40100→401、40400→404等）
// 2. Message是面向用户的提示信息
// 3. Err是底层错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 格式化创建AppError
func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap 包装底层错误（数据库错误、文件IO错误等）
func Wrap(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：错误码前3位即HTTP状态码，后2位区分具体场景。

const (
	// 参数/校验错误（40000-40099）→ 400
	ErrCodeValidation   = 40000 // 校验失败(通用)
	ErrCodeEmptyName    = 40001 // 名称为空
	ErrCodeInvalidPrice = 40002 // 价格非法
	ErrCodeBindError    = 40003 // 参数绑定失败

	// 认证授权错误（40100-40199）→ 401
	ErrCodeUnauthorized       = 40100 // 未登录
	ErrCodeInvalidToken       = 40101 // Token无效
	ErrCodeTokenExpired       = 40102 // Token过期
	ErrCodeInvalidCredentials = 40103 // 邮箱或密码错误

	// 资源错误（40400-40499）→ 404
	ErrCodeNotFound = 40400 // 资源不存在(通用)

	// 冲突错误（40900-40999）→ 409
	ErrCodeConflict        = 40900 // 重复记录(通用)
	ErrCodeNombreDuplicate = 40901 // 名称已存在
	ErrCodeEmailDuplicate  = 40902 // 邮箱已注册

	// 系统级错误码（50000-50099）→ 500
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeStorageError  = 50003 // 文件存储错误
)

// 预定义错误（避免每次都New）
// Message是面向客户端的提示,统一用西班牙语
var (
	ErrInternal      = New(ErrCodeInternal, "Error interno del servidor")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Error de base de datos")
	ErrRedisError    = New(ErrCodeRedisError, "Error del servicio de caché")

	ErrUnauthorized       = New(ErrCodeUnauthorized, "Debe iniciar sesión")
	ErrInvalidToken       = New(ErrCodeInvalidToken, "Token inválido")
	ErrTokenExpired       = New(ErrCodeTokenExpired, "Token expirado")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "Email o contraseña incorrectos")

	ErrBindError = New(ErrCodeBindError, "Formato de parámetros inválido")
)

// HTTPStatus 业务错误码 → HTTP状态码
// 错误码前3位即状态码；不在已知范围内的一律按500处理
func HTTPStatus(code int) int {
	status := code / 100
	switch status {
	case http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusConflict:
		return status
	default:
		return http.StatusInternalServerError
	}
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrCodeInternal, "Error interno del servidor", err)
}
