package controllers

import (
	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/domain/services"
	"niddo-http-service/internal/domain/services/container"
	"niddo-http-service/internal/error/code"
	"niddo-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceUserController 定义用户控制器接口
type InterfaceUserController interface {
	GetUsers()
	GetUser()
	GetUsersByCondo()
	CreateUser()
	UpdateUser()
	DeleteUser()
}

// UserController 处理用户相关的请求
type UserController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewUserController 创建一个新的用户控制器
func NewUserController(ctx *gin.Context, container *container.ServiceContainer) *UserController {
	return &UserController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateUserRequest 表示创建用户请求
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required" example:"Maria Souza"`
	Email    string `json:"email" binding:"required,email" example:"maria@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"s3cret-pass"`
	Role     string `json:"role" binding:"omitempty,oneof=admin resident" example:"resident"`
	CondoID  uint   `json:"condo_id" binding:"required" example:"1"`
	Unit     string `json:"unit" example:"101B"`
}

// UpdateUserRequest 表示更新用户请求，未提供的字段保持不变
type UpdateUserRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1" example:"Maria Souza"`
	Email    *string `json:"email" binding:"omitempty,email" example:"maria@example.com"`
	Password *string `json:"password" binding:"omitempty,min=8" example:"new-pass-123"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin resident" example:"resident"`
	CondoID  *uint   `json:"condo_id" binding:"omitempty,min=1" example:"1"`
	Unit     *string `json:"unit" example:"102B"`
}

// HandleUserFunc 返回一个处理用户请求的Gin处理函数
func HandleUserFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewUserController(ctx, container)

		switch method {
		case "getUsers":
			controller.GetUsers()
		case "getUser":
			controller.GetUser()
		case "getUsersByCondo":
			controller.GetUsersByCondo()
		case "createUser":
			controller.CreateUser()
		case "updateUser":
			controller.UpdateUser()
		case "deleteUser":
			controller.DeleteUser()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *UserController) service() services.InterfaceUserService {
	return c.Container.GetService("user").(services.InterfaceUserService)
}

// 1. GetUsers 分页获取用户列表
// @Summary 获取所有用户
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} models.PaginationResult
// @Failure 403 {object} ErrorResponse
// @Router /users/ [get]
func (c *UserController) GetUsers() {
	page, pageSize := pagination(c.Ctx)

	users, total, err := c.service().GetAllUsers(c.Ctx.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, models.NewPaginationResult(users, total, page, pageSize))
}

// 2. GetUser 获取用户详情
// @Summary 获取用户详情
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "用户ID"
// @Success 200 {object} models.User
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{user_id} [get]
func (c *UserController) GetUser() {
	id, ok := pathID(c.Ctx, "user_id")
	if !ok {
		return
	}

	user, err := c.service().GetUserByID(c.Ctx.Request.Context(), id)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, user)
}

// 3. GetUsersByCondo 获取小区下的用户
// @Summary 获取小区用户
// @Tags User
// @Produce json
// @Security BearerAuth
// @Param condo_id path int true "小区ID"
// @Success 200 {array} models.User
// @Router /users/usersbycondo/{condo_id} [get]
func (c *UserController) GetUsersByCondo() {
	condoID, ok := pathID(c.Ctx, "condo_id")
	if !ok {
		return
	}

	users, err := c.service().GetUsersByCondo(c.Ctx.Request.Context(), condoID)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, users)
}

// 4. CreateUser 创建用户
// @Summary 创建用户
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body CreateUserRequest true "用户信息"
// @Success 201 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /users/ [post]
func (c *UserController) CreateUser() {
	var req CreateUserRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	user, err := c.service().CreateUser(c.Ctx.Request.Context(), &models.User{
		Name:    req.Name,
		Email:   req.Email,
		Role:    req.Role,
		CondoID: req.CondoID,
		Unit:    req.Unit,
	}, req.Password)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Created(c.Ctx, user)
}

// 5. UpdateUser 更新用户信息，住户只能修改自己且不能修改角色和小区
// @Summary 更新用户
// @Tags User
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "用户ID"
// @Param user body UpdateUserRequest true "用户信息"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{user_id} [put]
func (c *UserController) UpdateUser() {
	id, ok := pathID(c.Ctx, "user_id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}
	if !isAdmin(c.Ctx) && (req.Role != nil || req.CondoID != nil) {
		response.Forbidden(c.Ctx)
		return
	}

	user, err := c.service().UpdateUser(c.Ctx.Request.Context(), id, services.UserUpdate{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		CondoID:  req.CondoID,
		Unit:     req.Unit,
	})
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, user)
}

// 6. DeleteUser 删除用户
// @Summary 删除用户
// @Description 用户的预约和访客级联删除
// @Tags User
// @Security BearerAuth
// @Param user_id path int true "用户ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /users/{user_id} [delete]
func (c *UserController) DeleteUser() {
	id, ok := pathID(c.Ctx, "user_id")
	if !ok {
		return
	}

	if err := c.service().DeleteUser(c.Ctx.Request.Context(), id); err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.NoContent(c.Ctx)
}
