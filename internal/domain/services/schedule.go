package services

import (
	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/error/code"
	"niddo-http-service/utils"

	"gorm.io/datatypes"
)

// TimeRange 一天内的半开区间 [Start, End)
type TimeRange struct {
	Start datatypes.Time
	End   datatypes.Time
}

// Valid 结束时间必须晚于开始时间
func (r TimeRange) Valid() bool {
	return r.End > r.Start
}

// Overlaps 两个半开区间是否重叠，首尾相接不算重叠
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start < other.End && other.Start < r.End
}

// Within 区间是否完全落在 window 内
func (r TimeRange) Within(window TimeRange) bool {
	return r.Start >= window.Start && r.End <= window.End
}

// amenityWindow 设施的每日开放时段
func amenityWindow(a *models.Amenity) TimeRange {
	return TimeRange{Start: a.StartTime, End: a.EndTime}
}

// validateSlot 校验时段本身合法且位于设施开放时段内
func validateSlot(slot TimeRange, amenity *models.Amenity) error {
	if !slot.Valid() {
		return code.Newf(code.ErrValidation, "end_time must be after start_time")
	}
	if !slot.Within(amenityWindow(amenity)) {
		return code.Newf(code.ErrOutsideAvailability, "time range %s-%s is outside the amenity availability window %s-%s",
			slot.Start.String(), slot.End.String(), amenity.StartTime.String(), amenity.EndTime.String())
	}
	return nil
}

// blockCovers 封锁时段是否覆盖指定日期的指定时段
func blockCovers(b *models.Block, day datatypes.Date, slot TimeRange) bool {
	if !utils.DateWithin(day, b.StartDate, b.EndDate) {
		return false
	}
	return slot.Overlaps(TimeRange{Start: b.StartTime, End: b.EndTime})
}

// findBlockingBlock 返回第一个与时段冲突的封锁时段
func findBlockingBlock(blocks []models.Block, day datatypes.Date, slot TimeRange) *models.Block {
	for i := range blocks {
		if blockCovers(&blocks[i], day, slot) {
			return &blocks[i]
		}
	}
	return nil
}

// findOverlappingReservation 返回第一个占用时段且与之重叠的预约，excludeID 为正在更新的预约
func findOverlappingReservation(existing []models.Reservation, day datatypes.Date, slot TimeRange, excludeID uint) *models.Reservation {
	for i := range existing {
		r := &existing[i]
		if r.ID == excludeID || !r.Status.HoldsSlot() || !utils.SameDay(r.Date, day) {
			continue
		}
		if slot.Overlaps(TimeRange{Start: r.StartTime, End: r.EndTime}) {
			return r
		}
	}
	return nil
}
