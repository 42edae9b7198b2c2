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

func TestCondoServiceCRUD(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := services.NewCondoService(db, nil)

	created, err := svc.CreateCondo(ctx, &models.Condo{Name: "Lakeview", Address: "1 Lake Rd"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Lakeview", created.Name)

	got, err := svc.GetCondoByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "1 Lake Rd", got.Address)

	updated, err := svc.UpdateCondo(ctx, created.ID, &models.Condo{Name: "Lakeview II", Address: "2 Lake Rd"})
	require.NoError(t, err)
	assert.Equal(t, "Lakeview II", updated.Name)
	assert.Equal(t, "2 Lake Rd", updated.Address)

	require.NoError(t, svc.DeleteCondo(ctx, created.ID))

	_, err = svc.GetCondoByID(ctx, created.ID)
	assert.True(t, code.Is(err, code.ErrCondoNotFound))

	err = svc.DeleteCondo(ctx, created.ID)
	assert.True(t, code.Is(err, code.ErrCondoNotFound))
}

func TestCondoServiceNotFound(t *testing.T) {
	ctx := context.Background()
	svc := services.NewCondoService(testutil.DB(t), nil)

	_, err := svc.GetCondoByID(ctx, 42)
	require.Error(t, err)
	assert.Equal(t, code.StatusNotFound, code.From(err).Status())

	_, err = svc.UpdateCondo(ctx, 42, &models.Condo{Name: "x", Address: "y"})
	assert.True(t, code.Is(err, code.ErrCondoNotFound))
}

func TestCondoServicePagination(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := services.NewCondoService(db, nil)

	for _, name := range []string{"A", "B", "C"} {
		testutil.CreateCondo(t, db, name)
	}

	page, total, err := svc.GetAllCondos(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "C", page[0].Name)
}

func TestDeleteCondoWithUsers(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := services.NewCondoService(db, nil)

	condo := testutil.CreateCondo(t, db, "Lakeview")
	ana := testutil.CreateUser(t, db, condo.ID, "ana@example.com", models.RoleResident)

	err := svc.DeleteCondo(ctx, condo.ID)
	require.Error(t, err)
	assert.True(t, code.Is(err, code.ErrConstraint))
	assert.Equal(t, code.StatusBadRequest, code.From(err).Status())
	assert.Contains(t, err.Error(), "condo still has users")

	_, err = svc.GetCondoByID(ctx, condo.ID)
	assert.NoError(t, err)

	require.NoError(t, db.Delete(&models.User{}, ana.ID).Error)
	require.NoError(t, svc.DeleteCondo(ctx, condo.ID))
}

func TestDeleteCondoRestrictedByStorage(t *testing.T) {
	db := testutil.DB(t)
	condo := testutil.CreateCondo(t, db, "Lakeview")
	testutil.CreateUser(t, db, condo.ID, "ana@example.com", models.RoleResident)

	// 外键 RESTRICT 在数据库层同样生效
	err := db.Delete(&models.Condo{}, condo.ID).Error
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Condo{}).Where("id = ?", condo.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestDeleteCondoCascadesAmenities(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := services.NewCondoService(db, nil)
	amenities := services.NewAmenityService(db, nil)

	condo := testutil.CreateCondo(t, db, "Lakeview")
	pool := testutil.CreateAmenity(t, db, condo.ID, "Pool", "08:00", "20:00")

	require.NoError(t, svc.DeleteCondo(ctx, condo.ID))

	_, err := amenities.GetAmenityByID(ctx, pool.ID)
	assert.True(t, code.Is(err, code.ErrAmenityNotFound))
}
