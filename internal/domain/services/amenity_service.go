package services

import (
	"context"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/error/code"
	"niddo-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceAmenityService 定义设施服务接口
type InterfaceAmenityService interface {
	GetAmenityByID(ctx context.Context, id uint) (*models.Amenity, error)
	GetAmenitiesByCondo(ctx context.Context, condoID uint) ([]models.Amenity, error)
	CreateAmenity(ctx context.Context, amenity *models.Amenity) (*models.Amenity, error)
	UpdateAmenity(ctx context.Context, id uint, input *models.Amenity) (*models.Amenity, error)
	DeleteAmenity(ctx context.Context, id uint) error
}

// AmenityService 提供设施相关的服务
type AmenityService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAmenityService 创建一个新的设施服务
func NewAmenityService(db *gorm.DB, cfg *config.Config) InterfaceAmenityService {
	return &AmenityService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAmenityByID 根据ID获取设施
func (s *AmenityService) GetAmenityByID(ctx context.Context, id uint) (*models.Amenity, error) {
	var amenity models.Amenity
	if err := s.DB.WithContext(ctx).First(&amenity, id).Error; err != nil {
		return nil, translateDBError(err, code.ErrAmenityNotFound)
	}
	return &amenity, nil
}

// 2 GetAmenitiesByCondo 获取小区下的所有设施
func (s *AmenityService) GetAmenitiesByCondo(ctx context.Context, condoID uint) ([]models.Amenity, error) {
	amenities := make([]models.Amenity, 0)
	if err := s.DB.WithContext(ctx).Where("condo_id = ?", condoID).Order("id").Find(&amenities).Error; err != nil {
		return nil, translateDBError(err, code.ErrAmenityNotFound)
	}
	return amenities, nil
}

// 3 CreateAmenity 创建设施
func (s *AmenityService) CreateAmenity(ctx context.Context, amenity *models.Amenity) (*models.Amenity, error) {
	db := s.DB.WithContext(ctx)

	if !(TimeRange{Start: amenity.StartTime, End: amenity.EndTime}).Valid() {
		return nil, code.Newf(code.ErrValidation, "end_time must be after start_time")
	}
	if err := ensureExists(db, &models.Condo{}, amenity.CondoID, "condo_id"); err != nil {
		return nil, err
	}

	amenity.ID = 0
	if err := db.Create(amenity).Error; err != nil {
		return nil, translateDBError(err, code.ErrAmenityNotFound)
	}
	return s.GetAmenityByID(ctx, amenity.ID)
}

// 4 UpdateAmenity 更新设施信息，已有预约不受开放时段变化影响
func (s *AmenityService) UpdateAmenity(ctx context.Context, id uint, input *models.Amenity) (*models.Amenity, error) {
	db := s.DB.WithContext(ctx)

	amenity, err := s.GetAmenityByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !(TimeRange{Start: input.StartTime, End: input.EndTime}).Valid() {
		return nil, code.Newf(code.ErrValidation, "end_time must be after start_time")
	}
	if input.CondoID != amenity.CondoID {
		if err := ensureExists(db, &models.Condo{}, input.CondoID, "condo_id"); err != nil {
			return nil, err
		}
	}

	amenity.Name = input.Name
	amenity.Description = input.Description
	amenity.StartTime = input.StartTime
	amenity.EndTime = input.EndTime
	amenity.CondoID = input.CondoID
	if err := db.Save(amenity).Error; err != nil {
		return nil, translateDBError(err, code.ErrAmenityNotFound)
	}
	return s.GetAmenityByID(ctx, id)
}

// 5 DeleteAmenity 删除设施，其封锁时段和预约随外键级联删除
func (s *AmenityService) DeleteAmenity(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.Amenity{}, id)
	if result.Error != nil {
		return translateDBError(result.Error, code.ErrAmenityNotFound)
	}
	if result.RowsAffected == 0 {
		return code.New(code.ErrAmenityNotFound)
	}
	return nil
}
