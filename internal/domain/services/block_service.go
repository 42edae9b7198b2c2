package services

import (
	"context"
	"errors"
	"time"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/error/code"
	"niddo-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

const blockColumns = "blocks.id, blocks.amenity_id, amenities.name AS amenity_name, " +
	"blocks.start_date, blocks.end_date, blocks.start_time, blocks.end_time, blocks.reason, blocks.created_at"

// InterfaceBlockService 定义封锁时段服务接口
type InterfaceBlockService interface {
	GetBlockByID(ctx context.Context, id uint) (*BlockOut, error)
	GetBlocksByAmenity(ctx context.Context, amenityID uint) ([]BlockOut, error)
	CreateBlock(ctx context.Context, block *models.Block) (*BlockOut, error)
	UpdateBlock(ctx context.Context, id uint, input *models.Block) (*BlockOut, error)
	DeleteBlock(ctx context.Context, id uint) error
}

// BlockService 提供封锁时段相关的服务
type BlockService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewBlockService 创建一个新的封锁时段服务
func NewBlockService(db *gorm.DB, cfg *config.Config) InterfaceBlockService {
	return &BlockService{
		DB:     db,
		Config: cfg,
	}
}

func (s *BlockService) joined(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Table("blocks").
		Select(blockColumns).
		Joins("JOIN amenities ON amenities.id = blocks.amenity_id")
}

// 1 GetBlockByID 根据ID获取封锁时段
func (s *BlockService) GetBlockByID(ctx context.Context, id uint) (*BlockOut, error) {
	var rows []blockRow
	if err := s.joined(ctx).Where("blocks.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, translateDBError(err, code.ErrBlockNotFound)
	}
	if len(rows) == 0 {
		return nil, code.New(code.ErrBlockNotFound)
	}
	out := rows[0].out()
	return &out, nil
}

// 2 GetBlocksByAmenity 获取设施的所有封锁时段
func (s *BlockService) GetBlocksByAmenity(ctx context.Context, amenityID uint) ([]BlockOut, error) {
	var rows []blockRow
	err := s.joined(ctx).
		Where("blocks.amenity_id = ?", amenityID).
		Order("blocks.start_date, blocks.start_time").
		Scan(&rows).Error
	if err != nil {
		return nil, translateDBError(err, code.ErrBlockNotFound)
	}

	blocks := make([]BlockOut, 0, len(rows))
	for _, row := range rows {
		blocks = append(blocks, row.out())
	}
	return blocks, nil
}

// 3 CreateBlock 创建封锁时段
func (s *BlockService) CreateBlock(ctx context.Context, block *models.Block) (*BlockOut, error) {
	db := s.DB.WithContext(ctx)

	amenity, err := loadParentAmenity(db, block.AmenityID)
	if err != nil {
		return nil, err
	}
	if err := validateBlock(block, amenity); err != nil {
		return nil, err
	}

	block.ID = 0
	if err := db.Create(block).Error; err != nil {
		return nil, translateDBError(err, code.ErrBlockNotFound)
	}
	return s.GetBlockByID(ctx, block.ID)
}

// 4 UpdateBlock 更新封锁时段，设施不可更换
func (s *BlockService) UpdateBlock(ctx context.Context, id uint, input *models.Block) (*BlockOut, error) {
	db := s.DB.WithContext(ctx)

	var block models.Block
	if err := db.First(&block, id).Error; err != nil {
		return nil, translateDBError(err, code.ErrBlockNotFound)
	}
	amenity, err := loadParentAmenity(db, block.AmenityID)
	if err != nil {
		return nil, err
	}

	block.StartDate = input.StartDate
	block.EndDate = input.EndDate
	block.StartTime = input.StartTime
	block.EndTime = input.EndTime
	block.Reason = input.Reason
	if err := validateBlock(&block, amenity); err != nil {
		return nil, err
	}

	if err := db.Save(&block).Error; err != nil {
		return nil, translateDBError(err, code.ErrBlockNotFound)
	}
	return s.GetBlockByID(ctx, id)
}

// 5 DeleteBlock 删除封锁时段
func (s *BlockService) DeleteBlock(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.Block{}, id)
	if result.Error != nil {
		return translateDBError(result.Error, code.ErrBlockNotFound)
	}
	if result.RowsAffected == 0 {
		return code.New(code.ErrBlockNotFound)
	}
	return nil
}

// loadParentAmenity 读取外键引用的设施，不存在时返回约束错误
func loadParentAmenity(tx *gorm.DB, amenityID uint) (*models.Amenity, error) {
	var amenity models.Amenity
	if err := tx.First(&amenity, amenityID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, missingParent("amenity_id")
		}
		return nil, translateDBError(err, code.ErrAmenityNotFound)
	}
	return &amenity, nil
}

// validateBlock 校验日期区间和每日时段
func validateBlock(block *models.Block, amenity *models.Amenity) error {
	if time.Time(block.EndDate).Before(time.Time(block.StartDate)) {
		return code.Newf(code.ErrValidation, "end_date must not be before start_date")
	}
	return validateSlot(TimeRange{Start: block.StartTime, End: block.EndTime}, amenity)
}
