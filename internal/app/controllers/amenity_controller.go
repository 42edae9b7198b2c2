package controllers

import (
	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/domain/services"
	"niddo-http-service/internal/domain/services/container"
	"niddo-http-service/internal/error/code"
	"niddo-http-service/internal/error/response"
	"niddo-http-service/utils"

	"github.com/gin-gonic/gin"
)

// InterfaceAmenityController 定义设施控制器接口
type InterfaceAmenityController interface {
	GetAmenity()
	GetAmenitiesByCondo()
	CreateAmenity()
	UpdateAmenity()
	DeleteAmenity()
}

// AmenityController 处理设施相关的请求
type AmenityController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAmenityController 创建一个新的设施控制器
func NewAmenityController(ctx *gin.Context, container *container.ServiceContainer) *AmenityController {
	return &AmenityController{
		Ctx:       ctx,
		Container: container,
	}
}

// AmenityRequest 表示设施请求
type AmenityRequest struct {
	Name        string `json:"name" binding:"required" example:"Pool"`
	Description string `json:"description" example:"Outdoor pool"`
	StartTime   string `json:"start_time" binding:"required,clock" example:"08:00"`
	// 结束时刻，"24:00" 表示开放至午夜
	EndTime     string `json:"end_time" binding:"required,clock" example:"20:00"`
	CondoID     uint   `json:"condo_id" binding:"required" example:"1"`
}

func (r *AmenityRequest) toModel() (*models.Amenity, error) {
	start, err := utils.ParseClock(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseClock(r.EndTime)
	if err != nil {
		return nil, err
	}
	return &models.Amenity{
		Name:        r.Name,
		Description: r.Description,
		StartTime:   start,
		EndTime:     end,
		CondoID:     r.CondoID,
	}, nil
}

// HandleAmenityFunc 返回一个处理设施请求的Gin处理函数
func HandleAmenityFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAmenityController(ctx, container)

		switch method {
		case "getAmenity":
			controller.GetAmenity()
		case "getAmenitiesByCondo":
			controller.GetAmenitiesByCondo()
		case "createAmenity":
			controller.CreateAmenity()
		case "updateAmenity":
			controller.UpdateAmenity()
		case "deleteAmenity":
			controller.DeleteAmenity()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *AmenityController) service() services.InterfaceAmenityService {
	return c.Container.GetService("amenity").(services.InterfaceAmenityService)
}

// 1. GetAmenity 获取设施详情
// @Summary 获取设施详情
// @Tags Amenity
// @Produce json
// @Security BearerAuth
// @Param amenity_id path int true "设施ID"
// @Success 200 {object} models.Amenity
// @Failure 404 {object} ErrorResponse
// @Router /amenities/{amenity_id} [get]
func (c *AmenityController) GetAmenity() {
	id, ok := pathID(c.Ctx, "amenity_id")
	if !ok {
		return
	}

	amenity, err := c.service().GetAmenityByID(c.Ctx.Request.Context(), id)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, amenity)
}

// 2. GetAmenitiesByCondo 获取小区的设施列表
// @Summary 获取小区设施
// @Tags Amenity
// @Produce json
// @Security BearerAuth
// @Param condo_id path int true "小区ID"
// @Success 200 {array} models.Amenity
// @Router /amenities/amenitiesbycondo/{condo_id} [get]
func (c *AmenityController) GetAmenitiesByCondo() {
	condoID, ok := pathID(c.Ctx, "condo_id")
	if !ok {
		return
	}

	amenities, err := c.service().GetAmenitiesByCondo(c.Ctx.Request.Context(), condoID)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, amenities)
}

// 3. CreateAmenity 创建设施
// @Summary 创建设施
// @Tags Amenity
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param amenity body AmenityRequest true "设施信息"
// @Success 201 {object} models.Amenity
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /amenities/ [post]
func (c *AmenityController) CreateAmenity() {
	var req AmenityRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}
	input, err := req.toModel()
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	amenity, err := c.service().CreateAmenity(c.Ctx.Request.Context(), input)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Created(c.Ctx, amenity)
}

// 4. UpdateAmenity 更新设施信息
// @Summary 更新设施
// @Tags Amenity
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param amenity_id path int true "设施ID"
// @Param amenity body AmenityRequest true "设施信息"
// @Success 200 {object} models.Amenity
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /amenities/{amenity_id} [put]
func (c *AmenityController) UpdateAmenity() {
	id, ok := pathID(c.Ctx, "amenity_id")
	if !ok {
		return
	}

	var req AmenityRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}
	input, err := req.toModel()
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	amenity, err := c.service().UpdateAmenity(c.Ctx.Request.Context(), id, input)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, amenity)
}

// 5. DeleteAmenity 删除设施
// @Summary 删除设施
// @Description 设施的封锁时段和预约级联删除
// @Tags Amenity
// @Security BearerAuth
// @Param amenity_id path int true "设施ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /amenities/{amenity_id} [delete]
func (c *AmenityController) DeleteAmenity() {
	id, ok := pathID(c.Ctx, "amenity_id")
	if !ok {
		return
	}

	if err := c.service().DeleteAmenity(c.Ctx.Request.Context(), id); err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.NoContent(c.Ctx)
}
