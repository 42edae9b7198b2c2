package models

// Condo 小区
type Condo struct {
	BaseModel
	Name    string `gorm:"type:varchar(255);not null" json:"name"`
	Address string `gorm:"type:text;not null" json:"address"`
}
