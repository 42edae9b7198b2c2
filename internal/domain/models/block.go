package models

import "gorm.io/datatypes"

// Block 管理员设置的设施封锁时段，在日期区间内每天的 [StartTime, EndTime) 不可预约
type Block struct {
	BaseModel
	AmenityID uint           `gorm:"not null;index" json:"amenity_id"`
	StartDate datatypes.Date `gorm:"not null" json:"start_date"`
	EndDate   datatypes.Date `gorm:"not null" json:"end_date"`
	StartTime datatypes.Time `gorm:"not null" json:"start_time"`
	EndTime   datatypes.Time `gorm:"not null" json:"end_time"`
	Reason    string         `gorm:"type:text" json:"reason"`

	Amenity *Amenity `gorm:"foreignKey:AmenityID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
