package services

import (
	"context"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/error/code"
	"niddo-http-service/internal/infrastructure/config"
	"niddo-http-service/pkg/logger"
	"niddo-http-service/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const reservationColumns = "reservations.id, reservations.user_id, users.name AS user_name, " +
	"reservations.amenity_id, amenities.name AS amenity_name, reservations.date, " +
	"reservations.start_time, reservations.end_time, reservations.status, reservations.created_at"

// InterfaceReservationService 定义预约服务接口
type InterfaceReservationService interface {
	GetReservationByID(ctx context.Context, id uint) (*ReservationOut, error)
	GetReservationsByUser(ctx context.Context, userID uint) ([]ReservationOut, error)
	GetReservationsByAmenity(ctx context.Context, amenityID uint) ([]ReservationOut, error)
	CreateReservation(ctx context.Context, actor Actor, reservation *models.Reservation) (*ReservationOut, error)
	UpdateReservation(ctx context.Context, actor Actor, id uint, input *models.Reservation) (*ReservationOut, error)
	DeleteReservation(ctx context.Context, actor Actor, id uint) error
}

// ReservationService 提供预约相关的服务
type ReservationService struct {
	DB     *gorm.DB
	Config *config.Config
	Events InterfaceEventService
}

// NewReservationService 创建一个新的预约服务，events 为 nil 时不发布事件
func NewReservationService(db *gorm.DB, cfg *config.Config, events InterfaceEventService) InterfaceReservationService {
	if events == nil {
		events = NoopEventService{}
	}
	return &ReservationService{
		DB:     db,
		Config: cfg,
		Events: events,
	}
}

func (s *ReservationService) joined(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Table("reservations").
		Select(reservationColumns).
		Joins("JOIN users ON users.id = reservations.user_id").
		Joins("JOIN amenities ON amenities.id = reservations.amenity_id")
}

func (s *ReservationService) list(ctx context.Context, where string, arg interface{}) ([]ReservationOut, error) {
	var rows []reservationRow
	err := s.joined(ctx).
		Where(where, arg).
		Order("reservations.date, reservations.start_time").
		Scan(&rows).Error
	if err != nil {
		return nil, translateDBError(err, code.ErrReservationNotFound)
	}

	reservations := make([]ReservationOut, 0, len(rows))
	for _, row := range rows {
		reservations = append(reservations, row.out())
	}
	return reservations, nil
}

// 1 GetReservationByID 根据ID获取预约，附带用户名和设施名称
func (s *ReservationService) GetReservationByID(ctx context.Context, id uint) (*ReservationOut, error) {
	var rows []reservationRow
	if err := s.joined(ctx).Where("reservations.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, translateDBError(err, code.ErrReservationNotFound)
	}
	if len(rows) == 0 {
		return nil, code.New(code.ErrReservationNotFound)
	}
	out := rows[0].out()
	return &out, nil
}

// 2 GetReservationsByUser 获取用户的所有预约
func (s *ReservationService) GetReservationsByUser(ctx context.Context, userID uint) ([]ReservationOut, error) {
	return s.list(ctx, "reservations.user_id = ?", userID)
}

// 3 GetReservationsByAmenity 获取设施的所有预约
func (s *ReservationService) GetReservationsByAmenity(ctx context.Context, amenityID uint) ([]ReservationOut, error) {
	return s.list(ctx, "reservations.amenity_id = ?", amenityID)
}

// 4 CreateReservation 在事务中校验时段并创建预约
func (s *ReservationService) CreateReservation(ctx context.Context, actor Actor, reservation *models.Reservation) (*ReservationOut, error) {
	if err := actor.authorize(reservation.UserID); err != nil {
		return nil, err
	}

	reservation.ID = 0
	if reservation.Status == "" {
		reservation.Status = models.ReservationPending
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkBookable(tx, reservation); err != nil {
			return err
		}
		if err := tx.Create(reservation).Error; err != nil {
			return translateDBError(err, code.ErrReservationNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("预约已创建: id=%d amenity=%d date=%s %s-%s", reservation.ID, reservation.AmenityID,
		utils.FormatDate(reservation.Date), reservation.StartTime.String(), reservation.EndTime.String())

	out, err := s.GetReservationByID(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}
	publishEvent(ctx, s.Events, amenityReservationsTopic(out.AmenityID), EventReservationCreated, out)
	return out, nil
}

// 5 UpdateReservation 在事务中重新校验时段并覆盖预约
func (s *ReservationService) UpdateReservation(ctx context.Context, actor Actor, id uint, input *models.Reservation) (*ReservationOut, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var reservation models.Reservation
		if err := tx.First(&reservation, id).Error; err != nil {
			return translateDBError(err, code.ErrReservationNotFound)
		}
		// 住户既不能修改他人的预约，也不能把预约转给他人
		if err := actor.authorize(reservation.UserID); err != nil {
			return err
		}
		if err := actor.authorize(input.UserID); err != nil {
			return err
		}

		reservation.UserID = input.UserID
		reservation.AmenityID = input.AmenityID
		reservation.Date = input.Date
		reservation.StartTime = input.StartTime
		reservation.EndTime = input.EndTime
		if input.Status != "" {
			reservation.Status = input.Status
		}

		if err := s.checkBookable(tx, &reservation); err != nil {
			return err
		}
		if err := tx.Save(&reservation).Error; err != nil {
			return translateDBError(err, code.ErrReservationNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out, err := s.GetReservationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	publishEvent(ctx, s.Events, amenityReservationsTopic(out.AmenityID), EventReservationUpdated, out)
	return out, nil
}

// 6 DeleteReservation 删除预约
func (s *ReservationService) DeleteReservation(ctx context.Context, actor Actor, id uint) error {
	db := s.DB.WithContext(ctx)

	var reservation models.Reservation
	if err := db.Select("id", "user_id", "amenity_id").First(&reservation, id).Error; err != nil {
		return translateDBError(err, code.ErrReservationNotFound)
	}
	if err := actor.authorize(reservation.UserID); err != nil {
		return err
	}

	result := db.Delete(&models.Reservation{}, id)
	if result.Error != nil {
		return translateDBError(result.Error, code.ErrReservationNotFound)
	}
	if result.RowsAffected == 0 {
		return code.New(code.ErrReservationNotFound)
	}

	publishEvent(ctx, s.Events, amenityReservationsTopic(reservation.AmenityID), EventReservationDeleted,
		map[string]uint{"id": id, "user_id": reservation.UserID, "amenity_id": reservation.AmenityID})
	return nil
}

// checkBookable 锁定设施行后依次校验用户、开放时段、封锁时段和已有预约
func (s *ReservationService) checkBookable(tx *gorm.DB, r *models.Reservation) error {
	if !validReservationStatus(r.Status) {
		return code.Newf(code.ErrValidation, "invalid reservation status %q", r.Status)
	}

	// 同一设施的预约在此串行化
	amenity, err := loadParentAmenity(tx.Clauses(clause.Locking{Strength: "UPDATE"}), r.AmenityID)
	if err != nil {
		return err
	}
	if err := ensureExists(tx, &models.User{}, r.UserID, "user_id"); err != nil {
		return err
	}

	slot := TimeRange{Start: r.StartTime, End: r.EndTime}
	if err := validateSlot(slot, amenity); err != nil {
		return err
	}

	// 已取消或被拒绝的预约不占用时段
	if !r.Status.HoldsSlot() {
		return nil
	}

	// 加锁读不受事务快照影响，总能看到设施锁释放前最新提交的封锁和预约
	var blocks []models.Block
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("amenity_id = ?", r.AmenityID).Find(&blocks).Error; err != nil {
		return translateDBError(err, code.ErrBlockNotFound)
	}
	if b := findBlockingBlock(blocks, r.Date, slot); b != nil {
		return code.Newf(code.ErrReservationBlocked, "amenity is blocked on %s from %s to %s: %s",
			utils.FormatDate(r.Date), b.StartTime.String(), b.EndTime.String(), b.Reason)
	}

	var existing []models.Reservation
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("amenity_id = ? AND date = ? AND status IN ?", r.AmenityID, r.Date, holdingStatuses()).
		Find(&existing).Error
	if err != nil {
		return translateDBError(err, code.ErrReservationNotFound)
	}
	if other := findOverlappingReservation(existing, r.Date, slot, r.ID); other != nil {
		return code.Newf(code.ErrReservationConflict, "time range overlaps reservation %d (%s-%s)",
			other.ID, other.StartTime.String(), other.EndTime.String())
	}
	return nil
}

func validReservationStatus(status models.ReservationStatus) bool {
	for _, s := range models.ReservationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func holdingStatuses() []string {
	statuses := make([]string, 0, len(models.ReservationStatuses))
	for _, s := range models.ReservationStatuses {
		if s.HoldsSlot() {
			statuses = append(statuses, string(s))
		}
	}
	return statuses
}
