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

// InterfaceBlockController 定义封锁时段控制器接口
type InterfaceBlockController interface {
	GetBlock()
	GetBlocksByAmenity()
	CreateBlock()
	UpdateBlock()
	DeleteBlock()
}

// BlockController 处理封锁时段相关的请求
type BlockController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewBlockController 创建一个新的封锁时段控制器
func NewBlockController(ctx *gin.Context, container *container.ServiceContainer) *BlockController {
	return &BlockController{
		Ctx:       ctx,
		Container: container,
	}
}

// BlockPeriod 封锁的日期区间和每日时段
type BlockPeriod struct {
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02" example:"2024-07-01"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02" example:"2024-07-03"`
	StartTime string `json:"start_time" binding:"required,clock" example:"08:00"`
	EndTime   string `json:"end_time" binding:"required,clock" example:"12:00"`
	Reason    string `json:"reason" example:"Maintenance"`
}

// CreateBlockRequest 表示创建封锁时段请求
type CreateBlockRequest struct {
	AmenityID uint `json:"amenity_id" binding:"required" example:"1"`
	BlockPeriod
}

// UpdateBlockRequest 表示更新封锁时段请求
type UpdateBlockRequest struct {
	BlockPeriod
}

func (p *BlockPeriod) toModel(amenityID uint) (*models.Block, error) {
	startDate, err := utils.ParseDate(p.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := utils.ParseDate(p.EndDate)
	if err != nil {
		return nil, err
	}
	startTime, err := utils.ParseClock(p.StartTime)
	if err != nil {
		return nil, err
	}
	endTime, err := utils.ParseClock(p.EndTime)
	if err != nil {
		return nil, err
	}
	return &models.Block{
		AmenityID: amenityID,
		StartDate: startDate,
		EndDate:   endDate,
		StartTime: startTime,
		EndTime:   endTime,
		Reason:    p.Reason,
	}, nil
}

// HandleBlockFunc 返回一个处理封锁时段请求的Gin处理函数
func HandleBlockFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewBlockController(ctx, container)

		switch method {
		case "getBlock":
			controller.GetBlock()
		case "getBlocksByAmenity":
			controller.GetBlocksByAmenity()
		case "createBlock":
			controller.CreateBlock()
		case "updateBlock":
			controller.UpdateBlock()
		case "deleteBlock":
			controller.DeleteBlock()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *BlockController) service() services.InterfaceBlockService {
	return c.Container.GetService("block").(services.InterfaceBlockService)
}

// 1. GetBlock 获取封锁时段详情
// @Summary 获取封锁时段详情
// @Tags Block
// @Produce json
// @Security BearerAuth
// @Param block_id path int true "封锁时段ID"
// @Success 200 {object} services.BlockOut
// @Failure 404 {object} ErrorResponse
// @Router /blocks/{block_id} [get]
func (c *BlockController) GetBlock() {
	id, ok := pathID(c.Ctx, "block_id")
	if !ok {
		return
	}

	block, err := c.service().GetBlockByID(c.Ctx.Request.Context(), id)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, block)
}

// 2. GetBlocksByAmenity 获取设施的封锁时段
// @Summary 获取设施封锁时段
// @Tags Block
// @Produce json
// @Security BearerAuth
// @Param amenity_id path int true "设施ID"
// @Success 200 {array} services.BlockOut
// @Router /blocks/blocksbyamenity/{amenity_id} [get]
func (c *BlockController) GetBlocksByAmenity() {
	amenityID, ok := pathID(c.Ctx, "amenity_id")
	if !ok {
		return
	}

	blocks, err := c.service().GetBlocksByAmenity(c.Ctx.Request.Context(), amenityID)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, blocks)
}

// 3. CreateBlock 创建封锁时段
// @Summary 创建封锁时段
// @Tags Block
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param block body CreateBlockRequest true "封锁时段"
// @Success 201 {object} services.BlockOut
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /blocks/ [post]
func (c *BlockController) CreateBlock() {
	var req CreateBlockRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}
	input, err := req.toModel(req.AmenityID)
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	block, err := c.service().CreateBlock(c.Ctx.Request.Context(), input)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Created(c.Ctx, block)
}

// 4. UpdateBlock 更新封锁时段
// @Summary 更新封锁时段
// @Tags Block
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param block_id path int true "封锁时段ID"
// @Param block body UpdateBlockRequest true "封锁时段"
// @Success 200 {object} services.BlockOut
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /blocks/{block_id} [put]
func (c *BlockController) UpdateBlock() {
	id, ok := pathID(c.Ctx, "block_id")
	if !ok {
		return
	}

	var req UpdateBlockRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}
	input, err := req.toModel(0)
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	block, err := c.service().UpdateBlock(c.Ctx.Request.Context(), id, input)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, block)
}

// 5. DeleteBlock 删除封锁时段
// @Summary 删除封锁时段
// @Tags Block
// @Security BearerAuth
// @Param block_id path int true "封锁时段ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /blocks/{block_id} [delete]
func (c *BlockController) DeleteBlock() {
	id, ok := pathID(c.Ctx, "block_id")
	if !ok {
		return
	}

	if err := c.service().DeleteBlock(c.Ctx.Request.Context(), id); err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.NoContent(c.Ctx)
}
