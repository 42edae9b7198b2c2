package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"niddo-http-service/internal/app/middleware"
	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/domain/services"
	"niddo-http-service/internal/error/code"
	"niddo-http-service/internal/error/response"
	"niddo-http-service/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse 错误响应结构，仅用于接口文档
type ErrorResponse struct {
	Code    int         `json:"code" example:"102000"`
	Message string      `json:"message" example:"user not found"`
	Data    interface{} `json:"data"`
}

var registerOnce sync.Once

// RegisterValidators 注册自定义参数校验规则
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
			return utils.IsClock(fl.Field().String())
		})
		_ = v.RegisterValidation("reservation_status", func(fl validator.FieldLevel) bool {
			status := models.ReservationStatus(fl.Field().String())
			for _, s := range models.ReservationStatuses {
				if s == status {
					return true
				}
			}
			return false
		})
		_ = v.RegisterValidation("visitor_status", func(fl validator.FieldLevel) bool {
			return models.VisitorStatus(fl.Field().String()).Valid()
		})
	})
}

// bindJSON 绑定请求体，失败时写入400响应
func bindJSON(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.ParamError(ctx, describeValidation(verrs))
			return false
		}
		response.FailWithMessage(ctx, code.ErrBind, "invalid request body: "+err.Error(), nil)
		return false
	}
	return true
}

// describeValidation 将校验错误转换为可读消息
func describeValidation(verrs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := toSnake(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "clock":
			msgs = append(msgs, field+" must be HH:MM or HH:MM:SS")
		case "datetime":
			msgs = append(msgs, field+" must be YYYY-MM-DD")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}

func toSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 && !(s[i-1] >= 'A' && s[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

// pathID 解析路径中的正整数ID
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.ParamError(ctx, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// pagination 解析分页参数
func pagination(ctx *gin.Context) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	return page, pageSize
}

// actor 当前请求的操作者
func actor(ctx *gin.Context) services.Actor {
	return services.Actor{
		UserID: ctx.GetUint(middleware.ContextUserID),
		Role:   ctx.GetString(middleware.ContextRole),
	}
}

// isAdmin 当前请求是否来自管理员
func isAdmin(ctx *gin.Context) bool {
	return ctx.GetString(middleware.ContextRole) == models.RoleAdmin
}
