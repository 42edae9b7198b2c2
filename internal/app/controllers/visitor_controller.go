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

// InterfaceVisitorController 定义访客控制器接口
type InterfaceVisitorController interface {
	GetVisitor()
	GetVisitorsByCondo()
	GetVisitorsByUser()
	CreateVisitor()
	UpdateVisitor()
	DeleteVisitor()
}

// VisitorController 处理访客相关的请求
type VisitorController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewVisitorController 创建一个新的访客控制器
func NewVisitorController(ctx *gin.Context, container *container.ServiceContainer) *VisitorController {
	return &VisitorController{
		Ctx:       ctx,
		Container: container,
	}
}

// VisitorDetails 访客的可修改信息
type VisitorDetails struct {
	Identification string `json:"identification" example:"RG 12.345.678-9"`
	VisitName      string `json:"visit_name" binding:"required" example:"João Lima"`
	Plate          string `json:"plate" example:"ABC1D23"`
	VisitDate      string `json:"visit_date" binding:"required,datetime=2006-01-02" example:"2024-07-01"`
	Status         string `json:"status" binding:"omitempty,visitor_status" example:"pending"`
	UnitNumber     string `json:"unit_number" binding:"required" example:"101B"`
}

// CreateVisitorRequest 表示登记访客请求
type CreateVisitorRequest struct {
	UserID  uint `json:"user_id" binding:"required" example:"2"`
	CondoID uint `json:"condo_id" binding:"required" example:"1"`
	VisitorDetails
}

// UpdateVisitorRequest 表示更新访客请求
type UpdateVisitorRequest struct {
	VisitorDetails
}

func (d *VisitorDetails) toModel(userID, condoID uint) (*models.Visitor, error) {
	visitDate, err := utils.ParseDate(d.VisitDate)
	if err != nil {
		return nil, err
	}
	return &models.Visitor{
		Identification: d.Identification,
		VisitName:      d.VisitName,
		UserID:         userID,
		CondoID:        condoID,
		Plate:          d.Plate,
		VisitDate:      visitDate,
		Status:         models.VisitorStatus(d.Status),
		UnitNumber:     d.UnitNumber,
	}, nil
}

// HandleVisitorFunc 返回一个处理访客请求的Gin处理函数
func HandleVisitorFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewVisitorController(ctx, container)

		switch method {
		case "getVisitor":
			controller.GetVisitor()
		case "getVisitorsByCondo":
			controller.GetVisitorsByCondo()
		case "getVisitorsByUser":
			controller.GetVisitorsByUser()
		case "createVisitor":
			controller.CreateVisitor()
		case "updateVisitor":
			controller.UpdateVisitor()
		case "deleteVisitor":
			controller.DeleteVisitor()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *VisitorController) service() services.InterfaceVisitorService {
	return c.Container.GetService("visitor").(services.InterfaceVisitorService)
}

// 1. GetVisitor 获取访客详情
// @Summary 获取访客详情
// @Tags Visitor
// @Produce json
// @Security BearerAuth
// @Param visitor_id path int true "访客ID"
// @Success 200 {object} services.VisitorOut
// @Failure 404 {object} ErrorResponse
// @Router /visitors/{visitor_id} [get]
func (c *VisitorController) GetVisitor() {
	id, ok := pathID(c.Ctx, "visitor_id")
	if !ok {
		return
	}

	visitor, err := c.service().GetVisitorByID(c.Ctx.Request.Context(), id)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, visitor)
}

// 2. GetVisitorsByCondo 获取小区的访客
// @Summary 获取小区访客
// @Tags Visitor
// @Produce json
// @Security BearerAuth
// @Param condo_id path int true "小区ID"
// @Success 200 {array} services.VisitorOut
// @Router /visitors/visitorsbycondo/{condo_id} [get]
func (c *VisitorController) GetVisitorsByCondo() {
	condoID, ok := pathID(c.Ctx, "condo_id")
	if !ok {
		return
	}

	visitors, err := c.service().GetVisitorsByCondo(c.Ctx.Request.Context(), condoID)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, visitors)
}

// 3. GetVisitorsByUser 获取用户登记的访客
// @Summary 获取用户访客
// @Tags Visitor
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "用户ID"
// @Success 200 {array} services.VisitorOut
// @Router /visitors/visitorsbyuser/{user_id} [get]
func (c *VisitorController) GetVisitorsByUser() {
	userID, ok := pathID(c.Ctx, "user_id")
	if !ok {
		return
	}

	visitors, err := c.service().GetVisitorsByUser(c.Ctx.Request.Context(), userID)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, visitors)
}

// 4. CreateVisitor 登记访客
// @Summary 登记访客
// @Tags Visitor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param visitor body CreateVisitorRequest true "访客信息"
// @Success 201 {object} services.VisitorOut
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /visitors/ [post]
func (c *VisitorController) CreateVisitor() {
	var req CreateVisitorRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}
	input, err := req.toModel(req.UserID, req.CondoID)
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	visitor, err := c.service().CreateVisitor(c.Ctx.Request.Context(), actor(c.Ctx), input)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Created(c.Ctx, visitor)
}

// 5. UpdateVisitor 更新访客信息
// @Summary 更新访客
// @Tags Visitor
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param visitor_id path int true "访客ID"
// @Param visitor body UpdateVisitorRequest true "访客信息"
// @Success 200 {object} services.VisitorOut
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /visitors/{visitor_id} [put]
func (c *VisitorController) UpdateVisitor() {
	id, ok := pathID(c.Ctx, "visitor_id")
	if !ok {
		return
	}

	var req UpdateVisitorRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}
	input, err := req.toModel(0, 0)
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	visitor, err := c.service().UpdateVisitor(c.Ctx.Request.Context(), actor(c.Ctx), id, input)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, visitor)
}

// 6. DeleteVisitor 删除访客
// @Summary 删除访客
// @Tags Visitor
// @Security BearerAuth
// @Param visitor_id path int true "访客ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /visitors/{visitor_id} [delete]
func (c *VisitorController) DeleteVisitor() {
	id, ok := pathID(c.Ctx, "visitor_id")
	if !ok {
		return
	}

	if err := c.service().DeleteVisitor(c.Ctx.Request.Context(), actor(c.Ctx), id); err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.NoContent(c.Ctx)
}
