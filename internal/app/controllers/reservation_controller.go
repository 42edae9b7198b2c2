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

// InterfaceReservationController 定义预约控制器接口
type InterfaceReservationController interface {
	GetReservation()
	GetReservationsByUser()
	GetReservationsByAmenity()
	CreateReservation()
	UpdateReservation()
	DeleteReservation()
}

// ReservationController 处理预约相关的请求
type ReservationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewReservationController 创建一个新的预约控制器
func NewReservationController(ctx *gin.Context, container *container.ServiceContainer) *ReservationController {
	return &ReservationController{
		Ctx:       ctx,
		Container: container,
	}
}

// ReservationRequest 表示预约请求
type ReservationRequest struct {
	UserID    uint   `json:"user_id" binding:"required" example:"2"`
	AmenityID uint   `json:"amenity_id" binding:"required" example:"1"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02" example:"2024-07-01"`
	StartTime string `json:"start_time" binding:"required,clock" example:"09:00"`
	EndTime   string `json:"end_time" binding:"required,clock" example:"10:00"`
	Status    string `json:"status" binding:"omitempty,reservation_status" example:"pending"`
}

func (r *ReservationRequest) toModel() (*models.Reservation, error) {
	date, err := utils.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	start, err := utils.ParseClock(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseClock(r.EndTime)
	if err != nil {
		return nil, err
	}
	return &models.Reservation{
		UserID:    r.UserID,
		AmenityID: r.AmenityID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Status:    models.ReservationStatus(r.Status),
	}, nil
}

// HandleReservationFunc 返回一个处理预约请求的Gin处理函数
func HandleReservationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewReservationController(ctx, container)

		switch method {
		case "getReservation":
			controller.GetReservation()
		case "getReservationsByUser":
			controller.GetReservationsByUser()
		case "getReservationsByAmenity":
			controller.GetReservationsByAmenity()
		case "createReservation":
			controller.CreateReservation()
		case "updateReservation":
			controller.UpdateReservation()
		case "deleteReservation":
			controller.DeleteReservation()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "invalid method", nil)
		}
	}
}

func (c *ReservationController) service() services.InterfaceReservationService {
	return c.Container.GetService("reservation").(services.InterfaceReservationService)
}

// 1. GetReservation 获取预约详情
// @Summary 获取预约详情
// @Description 返回附带用户名和设施名称的预约
// @Tags Reservation
// @Produce json
// @Security BearerAuth
// @Param reservation_id path int true "预约ID"
// @Success 200 {object} services.ReservationOut
// @Failure 404 {object} ErrorResponse
// @Router /reservations/{reservation_id} [get]
func (c *ReservationController) GetReservation() {
	id, ok := pathID(c.Ctx, "reservation_id")
	if !ok {
		return
	}

	reservation, err := c.service().GetReservationByID(c.Ctx.Request.Context(), id)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, reservation)
}

// 2. GetReservationsByUser 获取用户的预约
// @Summary 获取用户预约
// @Tags Reservation
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "用户ID"
// @Success 200 {array} services.ReservationOut
// @Router /reservations/reservationsbyuser/{user_id} [get]
func (c *ReservationController) GetReservationsByUser() {
	userID, ok := pathID(c.Ctx, "user_id")
	if !ok {
		return
	}

	reservations, err := c.service().GetReservationsByUser(c.Ctx.Request.Context(), userID)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, reservations)
}

// 3. GetReservationsByAmenity 获取设施的预约
// @Summary 获取设施预约
// @Tags Reservation
// @Produce json
// @Security BearerAuth
// @Param amenity_id path int true "设施ID"
// @Success 200 {array} services.ReservationOut
// @Router /reservations/reservationsbyamenity/{amenity_id} [get]
func (c *ReservationController) GetReservationsByAmenity() {
	amenityID, ok := pathID(c.Ctx, "amenity_id")
	if !ok {
		return
	}

	reservations, err := c.service().GetReservationsByAmenity(c.Ctx.Request.Context(), amenityID)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, reservations)
}

// 4. CreateReservation 创建预约
// @Summary 创建预约
// @Description 时段必须在设施开放时间内，且不能与封锁时段或待确认/已确认的预约重叠
// @Tags Reservation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reservation body ReservationRequest true "预约信息"
// @Success 201 {object} services.ReservationOut
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /reservations/ [post]
func (c *ReservationController) CreateReservation() {
	var req ReservationRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}
	input, err := req.toModel()
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	reservation, err := c.service().CreateReservation(c.Ctx.Request.Context(), actor(c.Ctx), input)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Created(c.Ctx, reservation)
}

// 5. UpdateReservation 更新预约
// @Summary 更新预约
// @Tags Reservation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reservation_id path int true "预约ID"
// @Param reservation body ReservationRequest true "预约信息"
// @Success 200 {object} services.ReservationOut
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /reservations/{reservation_id} [put]
func (c *ReservationController) UpdateReservation() {
	id, ok := pathID(c.Ctx, "reservation_id")
	if !ok {
		return
	}

	var req ReservationRequest
	if !bindJSON(c.Ctx, &req) {
		return
	}
	input, err := req.toModel()
	if err != nil {
		response.ParamError(c.Ctx, err.Error())
		return
	}

	reservation, err := c.service().UpdateReservation(c.Ctx.Request.Context(), actor(c.Ctx), id, input)
	if err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, reservation)
}

// 6. DeleteReservation 删除预约
// @Summary 删除预约
// @Tags Reservation
// @Security BearerAuth
// @Param reservation_id path int true "预约ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /reservations/{reservation_id} [delete]
func (c *ReservationController) DeleteReservation() {
	id, ok := pathID(c.Ctx, "reservation_id")
	if !ok {
		return
	}

	if err := c.service().DeleteReservation(c.Ctx.Request.Context(), actor(c.Ctx), id); err != nil {
		response.Error(c.Ctx, err)
		return
	}

	response.NoContent(c.Ctx)
}
