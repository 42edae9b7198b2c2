package services_test

import (
	"context"
	"testing"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/domain/services"
	"niddo-http-service/internal/error/code"
	"niddo-http-service/internal/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockServiceCRUD(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := services.NewBlockService(db, nil)
	condo := testutil.CreateCondo(t, db, "Lakeview")
	pool := testutil.CreateAmenity(t, db, condo.ID, "Pool", "08:00", "20:00")

	block, err := svc.CreateBlock(ctx, &models.Block{
		AmenityID: pool.ID,
		StartDate: testutil.Date(t, "2024-07-01"),
		EndDate:   testutil.Date(t, "2024-07-03"),
		StartTime: testutil.Clock(t, "12:00"),
		EndTime:   testutil.Clock(t, "14:00"),
		Reason:    "Cleaning",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pool", block.AmenityName)
	assert.Equal(t, "2024-07-01", block.StartDate)
	assert.Equal(t, "2024-07-03", block.EndDate)
	assert.Equal(t, "12:00:00", block.StartTime)

	updated, err := svc.UpdateBlock(ctx, block.ID, &models.Block{
		StartDate: testutil.Date(t, "2024-07-02"),
		EndDate:   testutil.Date(t, "2024-07-02"),
		StartTime: testutil.Clock(t, "13:00"),
		EndTime:   testutil.Clock(t, "15:00"),
		Reason:    "Repairs",
	})
	require.NoError(t, err)
	assert.Equal(t, pool.ID, updated.AmenityID)
	assert.Equal(t, "Repairs", updated.Reason)
	assert.Equal(t, "15:00:00", updated.EndTime)

	list, err := svc.GetBlocksByAmenity(ctx, pool.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pool", list[0].AmenityName)

	require.NoError(t, svc.DeleteBlock(ctx, block.ID))
	_, err = svc.GetBlockByID(ctx, block.ID)
	assert.True(t, code.Is(err, code.ErrBlockNotFound))
	assert.True(t, code.Is(svc.DeleteBlock(ctx, block.ID), code.ErrBlockNotFound))
}

func TestCreateBlockValidation(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := services.NewBlockService(db, nil)
	condo := testutil.CreateCondo(t, db, "Lakeview")
	pool := testutil.CreateAmenity(t, db, condo.ID, "Pool", "08:00", "20:00")

	tests := []struct {
		name  string
		block models.Block
		want  int
	}{
		{
			name: "unknown amenity",
			block: models.Block{AmenityID: 404, StartDate: testutil.Date(t, "2024-07-01"), EndDate: testutil.Date(t, "2024-07-01"),
				StartTime: testutil.Clock(t, "09:00"), EndTime: testutil.Clock(t, "10:00")},
			want: code.ErrConstraint,
		},
		{
			name: "dates reversed",
			block: models.Block{AmenityID: pool.ID, StartDate: testutil.Date(t, "2024-07-05"), EndDate: testutil.Date(t, "2024-07-01"),
				StartTime: testutil.Clock(t, "09:00"), EndTime: testutil.Clock(t, "10:00")},
			want: code.ErrValidation,
		},
		{
			name: "times reversed",
			block: models.Block{AmenityID: pool.ID, StartDate: testutil.Date(t, "2024-07-01"), EndDate: testutil.Date(t, "2024-07-01"),
				StartTime: testutil.Clock(t, "10:00"), EndTime: testutil.Clock(t, "09:00")},
			want: code.ErrValidation,
		},
		{
			name: "outside window",
			block: models.Block{AmenityID: pool.ID, StartDate: testutil.Date(t, "2024-07-01"), EndDate: testutil.Date(t, "2024-07-01"),
				StartTime: testutil.Clock(t, "19:00"), EndTime: testutil.Clock(t, "22:00")},
			want: code.ErrOutsideAvailability,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block := tt.block
			_, err := svc.CreateBlock(ctx, &block)
			require.Error(t, err)
			assert.Equal(t, tt.want, code.From(err).Code)
		})
	}
}
