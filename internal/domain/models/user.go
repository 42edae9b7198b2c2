package models

import (
	"niddo-http-service/utils"

	"gorm.io/gorm"
)

// 用户角色
const (
	RoleAdmin    = "admin"
	RoleResident = "resident"
)

// User 小区用户（管理员或住户）
type User struct {
	BaseModel
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;type:varchar(255);not null" json:"-"` // 不在JSON中暴露密码
	Role         string `gorm:"type:varchar(50);not null;default:'resident'" json:"role"`
	CondoID      uint   `gorm:"not null;index" json:"condo_id"`
	Unit         string `gorm:"type:varchar(50)" json:"unit"`

	// 小区下仍有用户时禁止删除小区
	Condo *Condo `gorm:"foreignKey:CondoID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

// BeforeSave 是一个GORM钩子，在保存记录前对明文密码进行哈希处理
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.PasswordHash == "" {
		return nil
	}
	// 已经是bcrypt哈希则跳过
	if utils.IsPasswordHash(u.PasswordHash) {
		return nil
	}
	hashed, err := utils.HashPassword(u.PasswordHash)
	if err != nil {
		return err
	}
	u.PasswordHash = hashed
	return nil
}

// CheckPassword 比较密码和哈希值
func (u *User) CheckPassword(password string) bool {
	return utils.CheckPasswordHash(password, u.PasswordHash)
}
