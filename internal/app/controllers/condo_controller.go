package controllers

import (
	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/domain/services"
	"niddo-http-service/internal/domain/services/container"
	"niddo-http-service/internal/error/code"
	"niddo-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceCondoController 定义小区控制器接口
type InterfaceCondoController interface {
	GetCondos()
	GetCondo()
	CreateCondo()
	UpdateCondo()
	DeleteCondo()
}

// CondoController 处理小区相关的请求
type CondoController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewCondoController 创建一个新的小区控制器
func NewCondoController(ctx *gin.Context, container *container.ServiceContainer) *CondoController {
	return &CondoController{
		Ctx:       ctx,
		Container: container,
	}
}

// CondoRequest 表示小区请求
type CondoRequest struct {
	Name    string `json:"name" binding:"required" example:"Residencial Aurora"`
	Address string `json:"address" binding:"required" example:"Rua das Flores, 100"`
}

// HandleCondoFunc 返回一个处理小区请求的Gin处理函数
func HandleCondoFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewCondoController(ctx, container)

		switch method {
		case "getCondos":
			controller.GetCondos()
		case "getCondo":
			controller.GetCondo()
		case "createCondo":
			controller.CreateCondo()
		case "updateCondo":
			controller.UpdateCondo()
		case "deleteCondo":
			controller.DeleteCondo()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *CondoController) service() services.InterfaceCondoService {
	return c.Container.GetService("condo").(services.InterfaceCondoService)
}

// 1. GetCondos 分页获取小区列表
// @Summary 获取所有小区
// @Tags Condo
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码，默认为1"
// @Param page_size query int false "每页条数，默认为10"
// @Success 200 {object} models.PaginationResult
// @Failure 401 {object} ErrorResponse
// @Router /condos/ [get]
func (c *CondoController) GetCondos() {
	page, pageSize := pagination(c.Ctx)

	condos, total, err := c.service().GetAllCondos(c.Ctx.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, models.NewPaginationResult(condos, total, page, pageSize))
}

// 2. GetCondo 获取小区详情
// @Summary 获取小区详情
// @Tags Condo
// @Produce json
// @Security BearerAuth
// @Param condo_id path int true "小区ID"
// @Success 200 {object} models.Condo
// @Failure 404 {object} ErrorResponse
// @Router /condos/{condo_id} [get]
func (c *CondoController) GetCondo() {
	id, ok := pathID(c.Ctx, "condo_id")
	if !ok {
		return
	}

	condo, err := c.service().GetCondoByID(c.Ctx.Request.Context(), id)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, condo)
}

// 3. CreateCondo 创建小区
// @Summary 创建小区
// @Tags Condo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param condo body CondoRequest true "小区信息"
// @Success 201 {object} models.Condo
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /condos/ [post]
func (c *CondoController) CreateCondo() {
	var req CondoRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	condo, err := c.service().CreateCondo(c.Ctx.Request.Context(), &models.Condo{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Created(c.Ctx, condo)
}

// 4. UpdateCondo 更新小区信息
// @Summary 更新小区
// @Tags Condo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param condo_id path int true "小区ID"
// @Param condo body CondoRequest true "小区信息"
// @Success 200 {object} models.Condo
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /condos/{condo_id} [put]
func (c *CondoController) UpdateCondo() {
	id, ok := pathID(c.Ctx, "condo_id")
	if !ok {
		return
	}

	var req CondoRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}

	condo, err := c.service().UpdateCondo(c.Ctx.Request.Context(), id, &models.Condo{
		Name:    req.Name,
		Address: req.Address,
	})
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, condo)
}

// 5. DeleteCondo 删除小区
// @Summary 删除小区
// @Description 小区的设施、访客级联删除；仍有用户时返回400
// @Tags Condo
// @Security BearerAuth
// @Param condo_id path int true "小区ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /condos/{condo_id} [delete]
func (c *CondoController) DeleteCondo() {
	id, ok := pathID(c.Ctx, "condo_id")
	if !ok {
		return
	}

	if err := c.service().DeleteCondo(c.Ctx.Request.Context(), id); err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.NoContent(c.Ctx)
}
