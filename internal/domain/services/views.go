package services

import (
	"time"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/utils"

	"gorm.io/datatypes"
)

// BlockOut 封锁时段的对外表示，附带设施名称
type BlockOut struct {
	ID          uint      `json:"id"`
	AmenityID   uint      `json:"amenity_id"`
	AmenityName string    `json:"amenity_name"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Reason      string    `json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReservationOut 预约的对外表示，附带用户名和设施名称
type ReservationOut struct {
	ID          uint                     `json:"id"`
	UserID      uint                     `json:"user_id"`
	UserName    string                   `json:"user_name"`
	AmenityID   uint                     `json:"amenity_id"`
	AmenityName string                   `json:"amenity_name"`
	Date        string                   `json:"date"`
	StartTime   string                   `json:"start_time"`
	EndTime     string                   `json:"end_time"`
	Status      models.ReservationStatus `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
}

// VisitorOut 访客的对外表示
type VisitorOut struct {
	ID             uint                 `json:"id"`
	Identification string               `json:"identification"`
	VisitName      string               `json:"visit_name"`
	UserID         uint                 `json:"user_id"`
	CondoID        uint                 `json:"condo_id"`
	Plate          string               `json:"plate"`
	VisitDate      string               `json:"visit_date"`
	Status         models.VisitorStatus `json:"status"`
	UnitNumber     string               `json:"unit_number"`
	CreatedAt      time.Time            `json:"created_at"`
}

// blockRow 封锁时段联表查询的结果行
type blockRow struct {
	ID          uint
	AmenityID   uint
	AmenityName string
	StartDate   datatypes.Date
	EndDate     datatypes.Date
	StartTime   datatypes.Time
	EndTime     datatypes.Time
	Reason      string
	CreatedAt   time.Time
}

func (r blockRow) out() BlockOut {
	return BlockOut{
		ID:          r.ID,
		AmenityID:   r.AmenityID,
		AmenityName: r.AmenityName,
		StartDate:   utils.FormatDate(r.StartDate),
		EndDate:     utils.FormatDate(r.EndDate),
		StartTime:   r.StartTime.String(),
		EndTime:     r.EndTime.String(),
		Reason:      r.Reason,
		CreatedAt:   r.CreatedAt,
	}
}

// reservationRow 预约联表查询的结果行
type reservationRow struct {
	ID          uint
	UserID      uint
	UserName    string
	AmenityID   uint
	AmenityName string
	Date        datatypes.Date
	StartTime   datatypes.Time
	EndTime     datatypes.Time
	Status      models.ReservationStatus
	CreatedAt   time.Time
}

func (r reservationRow) out() ReservationOut {
	return ReservationOut{
		ID:          r.ID,
		UserID:      r.UserID,
		UserName:    r.UserName,
		AmenityID:   r.AmenityID,
		AmenityName: r.AmenityName,
		Date:        utils.FormatDate(r.Date),
		StartTime:   r.StartTime.String(),
		EndTime:     r.EndTime.String(),
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
	}
}

// NewVisitorOut 将访客模型转换为对外表示
func NewVisitorOut(v *models.Visitor) VisitorOut {
	return VisitorOut{
		ID:             v.ID,
		Identification: v.Identification,
		VisitName:      v.VisitName,
		UserID:         v.UserID,
		CondoID:        v.CondoID,
		Plate:          v.Plate,
		VisitDate:      utils.FormatDate(v.VisitDate),
		Status:         v.Status,
		UnitNumber:     v.UnitNumber,
		CreatedAt:      v.CreatedAt,
	}
}
