package services

import (
	"context"
	"errors"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/error/code"
	"niddo-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceCondoService 定义小区服务接口
type InterfaceCondoService interface {
	GetAllCondos(ctx context.Context, page, pageSize int) ([]models.Condo, int64, error)
	GetCondoByID(ctx context.Context, id uint) (*models.Condo, error)
	CreateCondo(ctx context.Context, condo *models.Condo) (*models.Condo, error)
	UpdateCondo(ctx context.Context, id uint, input *models.Condo) (*models.Condo, error)
	DeleteCondo(ctx context.Context, id uint) error
}

// CondoService 提供小区相关的服务
type CondoService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewCondoService 创建一个新的小区服务
func NewCondoService(db *gorm.DB, cfg *config.Config) InterfaceCondoService {
	return &CondoService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllCondos 分页获取所有小区
func (s *CondoService) GetAllCondos(ctx context.Context, page, pageSize int) ([]models.Condo, int64, error) {
	db := s.DB.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Condo{}).Count(&total).Error; err != nil {
		return nil, 0, translateDBError(err, code.ErrCondoNotFound)
	}

	condos := make([]models.Condo, 0)
	if err := db.Order("id").Offset((page - 1) * pageSize).Limit(pageSize).Find(&condos).Error; err != nil {
		return nil, 0, translateDBError(err, code.ErrCondoNotFound)
	}
	return condos, total, nil
}

// 2 GetCondoByID 根据ID获取小区
func (s *CondoService) GetCondoByID(ctx context.Context, id uint) (*models.Condo, error) {
	var condo models.Condo
	if err := s.DB.WithContext(ctx).First(&condo, id).Error; err != nil {
		return nil, translateDBError(err, code.ErrCondoNotFound)
	}
	return &condo, nil
}

// 3 CreateCondo 创建小区
func (s *CondoService) CreateCondo(ctx context.Context, condo *models.Condo) (*models.Condo, error) {
	condo.ID = 0
	if err := s.DB.WithContext(ctx).Create(condo).Error; err != nil {
		return nil, translateDBError(err, code.ErrCondoNotFound)
	}
	return s.GetCondoByID(ctx, condo.ID)
}

// 4 UpdateCondo 更新小区信息
func (s *CondoService) UpdateCondo(ctx context.Context, id uint, input *models.Condo) (*models.Condo, error) {
	condo, err := s.GetCondoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	condo.Name = input.Name
	condo.Address = input.Address
	if err := s.DB.WithContext(ctx).Save(condo).Error; err != nil {
		return nil, translateDBError(err, code.ErrCondoNotFound)
	}
	return s.GetCondoByID(ctx, id)
}

// 5 DeleteCondo 删除小区，其设施、访客随外键级联删除；仍有用户时拒绝删除
func (s *CondoService) DeleteCondo(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var users int64
		if err := tx.Model(&models.User{}).Where("condo_id = ?", id).Count(&users).Error; err != nil {
			return translateDBError(err, code.ErrCondoNotFound)
		}
		if users > 0 {
			return &code.AppError{Code: code.ErrConstraint, Message: "condo still has users"}
		}

		result := tx.Delete(&models.Condo{}, id)
		if result.Error != nil {
			// 计数后并发插入的用户由外键兜底
			if errors.Is(result.Error, gorm.ErrForeignKeyViolated) {
				return &code.AppError{Code: code.ErrConstraint, Message: "condo still has users", Cause: result.Error}
			}
			return translateDBError(result.Error, code.ErrCondoNotFound)
		}
		if result.RowsAffected == 0 {
			return code.New(code.ErrCondoNotFound)
		}
		return nil
	})
}
