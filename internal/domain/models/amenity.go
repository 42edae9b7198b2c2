package models

import "gorm.io/datatypes"

// Amenity 小区公共设施，StartTime/EndTime 为每日开放时段
type Amenity struct {
	BaseModel
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:varchar(255);not null" json:"description"`
	StartTime   datatypes.Time `gorm:"not null" json:"start_time"`
	EndTime     datatypes.Time `gorm:"not null" json:"end_time"`
	CondoID     uint           `gorm:"not null;index" json:"condo_id"`

	Condo *Condo `gorm:"foreignKey:CondoID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
