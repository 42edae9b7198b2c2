package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"niddo-http-service/internal/error/code"
	"niddo-http-service/pkg/logger"
)

// Response 定义统一的响应格式
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    code.ErrSuccess,
		Message: code.GetMessage(code.ErrSuccess),
		Data:    data,
	})
}

// Created 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    code.ErrSuccess,
		Message: code.GetMessage(code.ErrSuccess),
		Data:    data,
	})
}

// NoContent 删除成功，无响应体
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Fail 失败响应
func Fail(c *gin.Context, errorCode int, data interface{}) {
	c.JSON(code.GetStatus(errorCode), Response{
		Code:    errorCode,
		Message: code.GetMessage(errorCode),
		Data:    data,
	})
}

// FailWithMessage 失败响应（自定义消息）
func FailWithMessage(c *gin.Context, errorCode int, message string, data interface{}) {
	c.JSON(code.GetStatus(errorCode), Response{
		Code:    errorCode,
		Message: message,
		Data:    data,
	})
}

// Error 将服务层返回的错误映射为HTTP响应，500 类错误不暴露内部细节
func Error(c *gin.Context, err error) {
	appErr := code.From(err)
	status := appErr.Status()

	if status >= http.StatusInternalServerError {
		logger.Error("请求 %s %s 失败 [request_id=%s]: %v", c.Request.Method, c.Request.URL.Path, c.GetString("requestID"), err)
		Fail(c, appErr.Code, nil)
		return
	}

	logger.Debug("请求 %s %s 返回 %d: %v", c.Request.Method, c.Request.URL.Path, status, err)
	FailWithMessage(c, appErr.Code, appErr.Message, nil)
}

// ParamError 参数错误响应
func ParamError(c *gin.Context, message string) {
	if message == "" {
		message = code.GetMessage(code.ErrValidation)
	}
	FailWithMessage(c, code.ErrValidation, message, nil)
}

// ServerError 服务器错误响应
func ServerError(c *gin.Context) {
	Fail(c, code.ErrUnknown, nil)
}

// Unauthorized 未授权响应
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = code.GetMessage(code.ErrTokenInvalid)
	}
	FailWithMessage(c, code.ErrTokenInvalid, message, nil)
}

// Forbidden 角色无权访问响应
func Forbidden(c *gin.Context) {
	Fail(c, code.ErrForbidden, nil)
}
