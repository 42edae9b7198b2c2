package controllers

import (
	"niddo-http-service/internal/domain/services"
	"niddo-http-service/internal/domain/services/container"
	"niddo-http-service/internal/error/code"
	"niddo-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceJWTController 定义认证控制器接口
type InterfaceJWTController interface {
	Login()
}

// JWTController 处理身份验证请求
type JWTController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewJWTController 创建一个新的认证控制器
func NewJWTController(ctx *gin.Context, container *container.ServiceContainer) *JWTController {
	return &JWTController{
		Ctx:       ctx,
		Container: container,
	}
}

// LoginRequest 表示登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@niddo.local"`
	Password string `json:"password" binding:"required" example:"change-me-now"`
}

// HandleJWTFunc 返回一个处理JWT认证请求的Gin处理函数
func HandleJWTFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewJWTController(ctx, container)

		switch method {
		case "login":
			controller.Login()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

// Login 处理用户登录
// @Summary      User Login
// @Description  Verify email and password, return a bearer token carrying user id, name, role and condo id
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "登录凭据"
// @Success      200 {object} services.LoginResult
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      429 {object} ErrorResponse
// @Router       /auth/login [post]
func (c *JWTController) Login() {
	var req LoginRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	jwtService := c.Container.GetService("jwt").(services.InterfaceJWTService)
	result, err := jwtService.Login(c.Ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, result)
}
