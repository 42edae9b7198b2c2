package code

import (
	"errors"
	"fmt"
)

// AppError 携带错误码的业务错误，Cause 只用于日志，不返回给客户端
type AppError struct {
	Code    int
	Message string
	Cause   error
}

// New 使用错误码默认消息创建错误
func New(code int) *AppError {
	return &AppError{Code: code, Message: GetMessage(code)}
}

// Newf 使用自定义消息创建错误
func Newf(code int, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap 包装底层错误
func Wrap(code int, cause error) *AppError {
	return &AppError{Code: code, Message: GetMessage(code), Cause: cause}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%d %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Status 返回错误对应的HTTP状态码
func (e *AppError) Status() int {
	return GetStatus(e.Code)
}

// From 从任意错误中取出 AppError，取不到时视为未知错误
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrUnknown, err)
}

// Is 判断错误是否携带指定错误码
func Is(err error, code int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
