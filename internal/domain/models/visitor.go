package models

import "gorm.io/datatypes"

// VisitorStatus 访客状态
type VisitorStatus string

const (
	VisitorPending  VisitorStatus = "pending"
	VisitorApproved VisitorStatus = "approved"
)

// Valid 是否为合法的访客状态
func (s VisitorStatus) Valid() bool {
	return s == VisitorPending || s == VisitorApproved
}

// Visitor 住户登记的访客
type Visitor struct {
	BaseModel
	Identification string         `gorm:"type:varchar(100)" json:"identification"`
	VisitName      string         `gorm:"type:varchar(100);not null" json:"visit_name"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	CondoID        uint           `gorm:"not null;index" json:"condo_id"`
	Plate          string         `gorm:"type:varchar(20)" json:"plate"`
	VisitDate      datatypes.Date `gorm:"not null" json:"visit_date"`
	Status         VisitorStatus  `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	UnitNumber     string         `gorm:"type:varchar(50);not null" json:"unit_number"`

	User  *User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Condo *Condo `gorm:"foreignKey:CondoID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
