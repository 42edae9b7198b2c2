package services

import (
	"context"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/error/code"
	"niddo-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceVisitorService 定义访客服务接口
type InterfaceVisitorService interface {
	GetVisitorByID(ctx context.Context, id uint) (*VisitorOut, error)
	GetVisitorsByCondo(ctx context.Context, condoID uint) ([]VisitorOut, error)
	GetVisitorsByUser(ctx context.Context, userID uint) ([]VisitorOut, error)
	CreateVisitor(ctx context.Context, actor Actor, visitor *models.Visitor) (*VisitorOut, error)
	UpdateVisitor(ctx context.Context, actor Actor, id uint, input *models.Visitor) (*VisitorOut, error)
	DeleteVisitor(ctx context.Context, actor Actor, id uint) error
}

// VisitorService 提供访客相关的服务
type VisitorService struct {
	DB     *gorm.DB
	Config *config.Config
	Events InterfaceEventService
}

// NewVisitorService 创建一个新的访客服务，events 为 nil 时不发布事件
func NewVisitorService(db *gorm.DB, cfg *config.Config, events InterfaceEventService) InterfaceVisitorService {
	if events == nil {
		events = NoopEventService{}
	}
	return &VisitorService{
		DB:     db,
		Config: cfg,
		Events: events,
	}
}

func (s *VisitorService) find(ctx context.Context, where string, arg interface{}) ([]VisitorOut, error) {
	var visitors []models.Visitor
	if err := s.DB.WithContext(ctx).Where(where, arg).Order("visit_date, id").Find(&visitors).Error; err != nil {
		return nil, translateDBError(err, code.ErrVisitorNotFound)
	}

	out := make([]VisitorOut, 0, len(visitors))
	for i := range visitors {
		out = append(out, NewVisitorOut(&visitors[i]))
	}
	return out, nil
}

// 1 GetVisitorByID 根据ID获取访客
func (s *VisitorService) GetVisitorByID(ctx context.Context, id uint) (*VisitorOut, error) {
	var visitor models.Visitor
	if err := s.DB.WithContext(ctx).First(&visitor, id).Error; err != nil {
		return nil, translateDBError(err, code.ErrVisitorNotFound)
	}
	out := NewVisitorOut(&visitor)
	return &out, nil
}

// 2 GetVisitorsByCondo 获取小区的所有访客
func (s *VisitorService) GetVisitorsByCondo(ctx context.Context, condoID uint) ([]VisitorOut, error) {
	return s.find(ctx, "condo_id = ?", condoID)
}

// 3 GetVisitorsByUser 获取用户登记的所有访客
func (s *VisitorService) GetVisitorsByUser(ctx context.Context, userID uint) ([]VisitorOut, error) {
	return s.find(ctx, "user_id = ?", userID)
}

// 4 CreateVisitor 登记访客
func (s *VisitorService) CreateVisitor(ctx context.Context, actor Actor, visitor *models.Visitor) (*VisitorOut, error) {
	db := s.DB.WithContext(ctx)

	if err := actor.authorize(visitor.UserID); err != nil {
		return nil, err
	}

	if err := ensureExists(db, &models.User{}, visitor.UserID, "user_id"); err != nil {
		return nil, err
	}
	if err := ensureExists(db, &models.Condo{}, visitor.CondoID, "condo_id"); err != nil {
		return nil, err
	}

	visitor.ID = 0
	if visitor.Status == "" {
		visitor.Status = models.VisitorPending
	}
	if !visitor.Status.Valid() {
		return nil, code.Newf(code.ErrValidation, "invalid visitor status %q", visitor.Status)
	}
	if err := db.Create(visitor).Error; err != nil {
		return nil, translateDBError(err, code.ErrVisitorNotFound)
	}

	out, err := s.GetVisitorByID(ctx, visitor.ID)
	if err != nil {
		return nil, err
	}
	publishEvent(ctx, s.Events, condoVisitorsTopic(out.CondoID), EventVisitorCreated, out)
	return out, nil
}

// 5 UpdateVisitor 更新访客信息，登记人和小区不可更换
func (s *VisitorService) UpdateVisitor(ctx context.Context, actor Actor, id uint, input *models.Visitor) (*VisitorOut, error) {
	db := s.DB.WithContext(ctx)

	var visitor models.Visitor
	if err := db.First(&visitor, id).Error; err != nil {
		return nil, translateDBError(err, code.ErrVisitorNotFound)
	}
	if err := actor.authorize(visitor.UserID); err != nil {
		return nil, err
	}

	visitor.Identification = input.Identification
	visitor.VisitName = input.VisitName
	visitor.Plate = input.Plate
	visitor.VisitDate = input.VisitDate
	visitor.UnitNumber = input.UnitNumber
	if input.Status != "" {
		visitor.Status = input.Status
	}
	if !visitor.Status.Valid() {
		return nil, code.Newf(code.ErrValidation, "invalid visitor status %q", visitor.Status)
	}

	if err := db.Save(&visitor).Error; err != nil {
		return nil, translateDBError(err, code.ErrVisitorNotFound)
	}

	out, err := s.GetVisitorByID(ctx, id)
	if err != nil {
		return nil, err
	}
	publishEvent(ctx, s.Events, condoVisitorsTopic(out.CondoID), EventVisitorUpdated, out)
	return out, nil
}

// 6 DeleteVisitor 删除访客
func (s *VisitorService) DeleteVisitor(ctx context.Context, actor Actor, id uint) error {
	db := s.DB.WithContext(ctx)

	var visitor models.Visitor
	if err := db.Select("id", "user_id", "condo_id").First(&visitor, id).Error; err != nil {
		return translateDBError(err, code.ErrVisitorNotFound)
	}
	if err := actor.authorize(visitor.UserID); err != nil {
		return err
	}

	result := db.Delete(&models.Visitor{}, id)
	if result.Error != nil {
		return translateDBError(result.Error, code.ErrVisitorNotFound)
	}
	if result.RowsAffected == 0 {
		return code.New(code.ErrVisitorNotFound)
	}

	publishEvent(ctx, s.Events, condoVisitorsTopic(visitor.CondoID), EventVisitorDeleted,
		map[string]uint{"id": id, "user_id": visitor.UserID, "condo_id": visitor.CondoID})
	return nil
}
