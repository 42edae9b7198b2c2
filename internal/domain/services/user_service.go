package services

import (
	"context"
	"errors"
	"strings"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/error/code"
	"niddo-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// UserUpdate 用户更新参数，nil 字段保持不变
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
	CondoID  *uint
	Unit     *string
}

// InterfaceUserService 定义用户服务接口
type InterfaceUserService interface {
	GetAllUsers(ctx context.Context, page, pageSize int) ([]models.User, int64, error)
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByCondo(ctx context.Context, condoID uint) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User, password string) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, update UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

// UserService 提供用户相关的服务
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService 创建一个新的用户服务
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllUsers 分页获取所有用户
func (s *UserService) GetAllUsers(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	db := s.DB.WithContext(ctx)

	var total int64
	if err := db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, translateDBError(err, code.ErrUserNotFound)
	}

	users := make([]models.User, 0)
	if err := db.Order("id").Offset((page - 1) * pageSize).Limit(pageSize).Find(&users).Error; err != nil {
		return nil, 0, translateDBError(err, code.ErrUserNotFound)
	}
	return users, total, nil
}

// 2 GetUserByID 根据ID获取用户
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translateDBError(err, code.ErrUserNotFound)
	}
	return &user, nil
}

// 3 GetUserByEmail 根据邮箱获取用户
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		return nil, translateDBError(err, code.ErrUserNotFound)
	}
	return &user, nil
}

// 4 GetUsersByCondo 获取小区下的所有用户
func (s *UserService) GetUsersByCondo(ctx context.Context, condoID uint) ([]models.User, error) {
	users := make([]models.User, 0)
	if err := s.DB.WithContext(ctx).Where("condo_id = ?", condoID).Order("id").Find(&users).Error; err != nil {
		return nil, translateDBError(err, code.ErrUserNotFound)
	}
	return users, nil
}

// 5 CreateUser 创建用户，密码在保存前哈希
func (s *UserService) CreateUser(ctx context.Context, user *models.User, password string) (*models.User, error) {
	db := s.DB.WithContext(ctx)

	user.ID = 0
	user.Email = normalizeEmail(user.Email)
	user.PasswordHash = password
	if user.Role == "" {
		user.Role = models.RoleResident
	}

	if err := s.ensureEmailFree(db, user.Email, 0); err != nil {
		return nil, err
	}
	if err := ensureExists(db, &models.Condo{}, user.CondoID, "condo_id"); err != nil {
		return nil, err
	}

	if err := db.Create(user).Error; err != nil {
		return nil, translateUserError(err)
	}
	return s.GetUserByID(ctx, user.ID)
}

// 6 UpdateUser 更新用户信息
func (s *UserService) UpdateUser(ctx context.Context, id uint, update UserUpdate) (*models.User, error) {
	db := s.DB.WithContext(ctx)

	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		email := normalizeEmail(*update.Email)
		if email != user.Email {
			if err := s.ensureEmailFree(db, email, id); err != nil {
				return nil, err
			}
		}
		user.Email = email
	}
	if update.Password != nil {
		// 明文写入，由 BeforeSave 钩子哈希
		user.PasswordHash = *update.Password
	}
	if update.Role != nil {
		user.Role = *update.Role
	}
	if update.CondoID != nil {
		if err := ensureExists(db, &models.Condo{}, *update.CondoID, "condo_id"); err != nil {
			return nil, err
		}
		user.CondoID = *update.CondoID
	}
	if update.Unit != nil {
		user.Unit = *update.Unit
	}

	if err := db.Save(user).Error; err != nil {
		return nil, translateUserError(err)
	}
	return s.GetUserByID(ctx, id)
}

// 7 DeleteUser 删除用户，其预约和访客随外键级联删除
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return translateDBError(result.Error, code.ErrUserNotFound)
	}
	if result.RowsAffected == 0 {
		return code.New(code.ErrUserNotFound)
	}
	return nil
}

// ensureEmailFree 校验邮箱未被其他用户使用
func (s *UserService) ensureEmailFree(db *gorm.DB, email string, exceptID uint) error {
	var count int64
	query := db.Model(&models.User{}).Where("email = ?", email)
	if exceptID > 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return translateDBError(err, code.ErrUserNotFound)
	}
	if count > 0 {
		return code.New(code.ErrUserAlreadyExist)
	}
	return nil
}

// translateUserError 唯一索引冲突只可能来自邮箱
func translateUserError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return code.Wrap(code.ErrUserAlreadyExist, err)
	}
	return translateDBError(err, code.ErrUserNotFound)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
