package services

import (
	"errors"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/error/code"

	"gorm.io/gorm"
)

// translateDBError 将存储层错误转换为带错误码的业务错误
// notFoundCode 为该实体“记录不存在”时使用的错误码
func translateDBError(err error, notFoundCode int) error {
	if err == nil {
		return nil
	}

	var appErr *code.AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return code.Wrap(notFoundCode, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return code.Wrap(code.ErrConstraint, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &code.AppError{Code: code.ErrConstraint, Message: "duplicate value violates a unique constraint", Cause: err}
	default:
		return code.Wrap(code.ErrDatabase, err)
	}
}

// missingParent 外键引用的父记录不存在
func missingParent(field string) error {
	return code.Newf(code.ErrConstraint, "referenced parent does not exist: %s", field)
}

// ensureExists 校验外键引用的父记录存在
func ensureExists(tx *gorm.DB, model interface{}, id uint, field string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return translateDBError(err, code.ErrRecordNotFound)
	}
	if count == 0 {
		return missingParent(field)
	}
	return nil
}

// Actor 发起写操作的用户
type Actor struct {
	UserID uint
	Role   string
}

// AdminActor 管理员身份，用于初始化数据和测试
func AdminActor() Actor {
	return Actor{Role: models.RoleAdmin}
}

// canActFor 管理员可操作任意用户的数据，住户只能操作自己的
func (a Actor) canActFor(userID uint) bool {
	return a.Role == models.RoleAdmin || a.UserID == userID
}

// authorize 不允许时返回403错误
func (a Actor) authorize(userID uint) error {
	if !a.canActFor(userID) {
		return code.New(code.ErrForbidden)
	}
	return nil
}
