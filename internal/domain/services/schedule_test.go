package services

import (
	"testing"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/error/code"
	"niddo-http-service/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func mustClock(t *testing.T, s string) datatypes.Time {
	t.Helper()
	v, err := utils.ParseClock(s)
	require.NoError(t, err)
	return v
}

func mustDay(t *testing.T, s string) datatypes.Date {
	t.Helper()
	v, err := utils.ParseDate(s)
	require.NoError(t, err)
	return v
}

func span(t *testing.T, start, end string) TimeRange {
	return TimeRange{Start: mustClock(t, start), End: mustClock(t, end)}
}

func TestTimeRangeOverlaps(t *testing.T) {
	base := span(t, "09:00", "10:00")

	tests := []struct {
		name  string
		other TimeRange
		want  bool
	}{
		{"same range", span(t, "09:00", "10:00"), true},
		{"starts inside", span(t, "09:30", "10:30"), true},
		{"contains", span(t, "08:00", "11:00"), true},
		{"back to back after", span(t, "10:00", "11:00"), false},
		{"back to back before", span(t, "08:00", "09:00"), false},
		{"disjoint", span(t, "12:00", "13:00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestValidateSlot(t *testing.T) {
	pool := &models.Amenity{StartTime: mustClock(t, "08:00"), EndTime: mustClock(t, "20:00")}

	assert.NoError(t, validateSlot(span(t, "08:00", "20:00"), pool))
	assert.NoError(t, validateSlot(span(t, "09:00", "10:00"), pool))

	err := validateSlot(span(t, "10:00", "10:00"), pool)
	assert.True(t, code.Is(err, code.ErrValidation))

	err = validateSlot(span(t, "11:00", "10:00"), pool)
	assert.True(t, code.Is(err, code.ErrValidation))

	err = validateSlot(span(t, "07:00", "09:00"), pool)
	assert.True(t, code.Is(err, code.ErrOutsideAvailability))

	err = validateSlot(span(t, "19:30", "20:30"), pool)
	assert.True(t, code.Is(err, code.ErrOutsideAvailability))
}

func TestFindBlockingBlock(t *testing.T) {
	blocks := []models.Block{
		{
			BaseModel: models.BaseModel{ID: 1},
			StartDate: mustDay(t, "2024-07-01"),
			EndDate:   mustDay(t, "2024-07-03"),
			StartTime: mustClock(t, "12:00"),
			EndTime:   mustClock(t, "14:00"),
		},
	}

	assert.NotNil(t, findBlockingBlock(blocks, mustDay(t, "2024-07-02"), span(t, "13:00", "15:00")))
	assert.NotNil(t, findBlockingBlock(blocks, mustDay(t, "2024-07-03"), span(t, "11:00", "12:30")))
	assert.Nil(t, findBlockingBlock(blocks, mustDay(t, "2024-07-04"), span(t, "13:00", "15:00")))
	assert.Nil(t, findBlockingBlock(blocks, mustDay(t, "2024-07-02"), span(t, "14:00", "15:00")))
	assert.Nil(t, findBlockingBlock(nil, mustDay(t, "2024-07-02"), span(t, "13:00", "15:00")))
}

func TestFindOverlappingReservation(t *testing.T) {
	existing := []models.Reservation{
		{
			BaseModel: models.BaseModel{ID: 1},
			Date:      mustDay(t, "2024-07-01"),
			StartTime: mustClock(t, "09:00"),
			EndTime:   mustClock(t, "10:00"),
			Status:    models.ReservationPending,
		},
		{
			BaseModel: models.BaseModel{ID: 2},
			Date:      mustDay(t, "2024-07-01"),
			StartTime: mustClock(t, "11:00"),
			EndTime:   mustClock(t, "12:00"),
			Status:    models.ReservationCanceled,
		},
		{
			BaseModel: models.BaseModel{ID: 3},
			Date:      mustDay(t, "2024-07-02"),
			StartTime: mustClock(t, "09:00"),
			EndTime:   mustClock(t, "10:00"),
			Status:    models.ReservationConfirmed,
		},
	}
	july1 := mustDay(t, "2024-07-01")

	got := findOverlappingReservation(existing, july1, span(t, "09:30", "10:30"), 0)
	require.NotNil(t, got)
	assert.Equal(t, uint(1), got.ID)

	assert.Nil(t, findOverlappingReservation(existing, july1, span(t, "09:30", "10:30"), 1), "a reservation never conflicts with itself")
	assert.Nil(t, findOverlappingReservation(existing, july1, span(t, "10:00", "11:00"), 0))
	assert.Nil(t, findOverlappingReservation(existing, july1, span(t, "11:00", "12:00"), 0), "canceled reservations free the slot")
}
