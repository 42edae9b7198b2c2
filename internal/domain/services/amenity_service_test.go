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

func TestAmenityServiceCRUD(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := services.NewAmenityService(db, nil)
	condo := testutil.CreateCondo(t, db, "Lakeview")

	pool, err := svc.CreateAmenity(ctx, &models.Amenity{
		Name:        "Pool",
		Description: "Outdoor pool",
		StartTime:   testutil.Clock(t, "08:00"),
		EndTime:     testutil.Clock(t, "20:00"),
		CondoID:     condo.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "08:00:00", pool.StartTime.String())
	assert.Equal(t, "20:00:00", pool.EndTime.String())

	updated, err := svc.UpdateAmenity(ctx, pool.ID, &models.Amenity{
		Name:        "Pool",
		Description: "Heated pool",
		StartTime:   testutil.Clock(t, "07:00"),
		EndTime:     testutil.Clock(t, "21:30"),
		CondoID:     condo.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Heated pool", updated.Description)
	assert.Equal(t, "21:30:00", updated.EndTime.String())

	list, err := svc.GetAmenitiesByCondo(ctx, condo.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, pool.ID, list[0].ID)

	require.NoError(t, svc.DeleteAmenity(ctx, pool.ID))
	_, err = svc.GetAmenityByID(ctx, pool.ID)
	assert.True(t, code.Is(err, code.ErrAmenityNotFound))
	assert.True(t, code.Is(svc.DeleteAmenity(ctx, pool.ID), code.ErrAmenityNotFound))
}

func TestCreateAmenityValidation(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := services.NewAmenityService(db, nil)
	condo := testutil.CreateCondo(t, db, "Lakeview")

	_, err := svc.CreateAmenity(ctx, &models.Amenity{
		Name:      "Gym",
		StartTime: testutil.Clock(t, "20:00"),
		EndTime:   testutil.Clock(t, "08:00"),
		CondoID:   condo.ID,
	})
	assert.True(t, code.Is(err, code.ErrValidation))

	_, err = svc.CreateAmenity(ctx, &models.Amenity{
		Name:      "Gym",
		StartTime: testutil.Clock(t, "08:00"),
		EndTime:   testutil.Clock(t, "20:00"),
		CondoID:   77,
	})
	assert.True(t, code.Is(err, code.ErrConstraint))
}

func TestAmenitiesByUnknownCondoIsEmpty(t *testing.T) {
	svc := services.NewAmenityService(testutil.DB(t), nil)

	list, err := svc.GetAmenitiesByCondo(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, list)
}
