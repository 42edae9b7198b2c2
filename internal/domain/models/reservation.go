package models

import "gorm.io/datatypes"

// ReservationStatus 预约状态
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCanceled  ReservationStatus = "canceled"
	ReservationRejected  ReservationStatus = "rejected"
)

// ReservationStatuses 所有合法的预约状态
var ReservationStatuses = []ReservationStatus{
	ReservationPending,
	ReservationConfirmed,
	ReservationCanceled,
	ReservationRejected,
}

// HoldsSlot 该状态的预约是否占用时段
func (s ReservationStatus) HoldsSlot() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

// Reservation 用户对设施某日某时段的预约
type Reservation struct {
	BaseModel
	UserID    uint              `gorm:"not null;index" json:"user_id"`
	AmenityID uint              `gorm:"not null;index:idx_reservations_amenity_date,priority:1" json:"amenity_id"`
	Date      datatypes.Date    `gorm:"not null;index:idx_reservations_amenity_date,priority:2" json:"date"`
	StartTime datatypes.Time    `gorm:"not null" json:"start_time"`
	EndTime   datatypes.Time    `gorm:"not null" json:"end_time"`
	Status    ReservationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Amenity *Amenity `gorm:"foreignKey:AmenityID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
