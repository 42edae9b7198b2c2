package services_test

import (
	"context"
	"testing"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/domain/services"
	"niddo-http-service/internal/error/code"
	"niddo-http-service/internal/test/testutil"
	"niddo-http-service/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestCreateUserHashesPassword(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := services.NewUserService(db, nil)
	condo := testutil.CreateCondo(t, db, "Lakeview")

	user, err := svc.CreateUser(ctx, &models.User{
		Name:    "Ana",
		Email:   " Ana@Example.com ",
		CondoID: condo.ID,
		Unit:    "4B",
	}, "password123")
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, models.RoleResident, user.Role)
	assert.True(t, utils.IsPasswordHash(user.PasswordHash))
	assert.True(t, user.CheckPassword("password123"))

	byEmail, err := svc.GetUserByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := services.NewUserService(db, nil)
	condo := testutil.CreateCondo(t, db, "Lakeview")
	testutil.CreateUser(t, db, condo.ID, "ana@example.com", models.RoleResident)

	_, err := svc.CreateUser(ctx, &models.User{Name: "Other", Email: "ana@example.com", CondoID: condo.ID}, "password123")
	require.Error(t, err)
	assert.True(t, code.Is(err, code.ErrUserAlreadyExist))
	assert.Equal(t, code.StatusBadRequest, code.From(err).Status())
}

func TestCreateUserRequiresCondo(t *testing.T) {
	ctx := context.Background()
	svc := services.NewUserService(testutil.DB(t), nil)

	_, err := svc.CreateUser(ctx, &models.User{Name: "Ana", Email: "ana@example.com", CondoID: 99}, "password123")
	require.Error(t, err)
	assert.True(t, code.Is(err, code.ErrConstraint))
	assert.Contains(t, err.Error(), "condo_id")
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := services.NewUserService(db, nil)
	condo := testutil.CreateCondo(t, db, "Lakeview")
	ana := testutil.CreateUser(t, db, condo.ID, "ana@example.com", models.RoleResident)
	testutil.CreateUser(t, db, condo.ID, "bob@example.com", models.RoleResident)

	updated, err := svc.UpdateUser(ctx, ana.ID, services.UserUpdate{
		Name:     strPtr("Ana Maria"),
		Password: strPtr("new-password"),
		Unit:     strPtr("7C"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)
	assert.Equal(t, "7C", updated.Unit)
	assert.True(t, updated.CheckPassword("new-password"))
	assert.False(t, updated.CheckPassword("password123"))

	_, err = svc.UpdateUser(ctx, ana.ID, services.UserUpdate{Email: strPtr("bob@example.com")})
	assert.True(t, code.Is(err, code.ErrUserAlreadyExist))

	missing := uint(99)
	_, err = svc.UpdateUser(ctx, ana.ID, services.UserUpdate{CondoID: &missing})
	assert.True(t, code.Is(err, code.ErrConstraint))

	_, err = svc.UpdateUser(ctx, 999, services.UserUpdate{Name: strPtr("x")})
	assert.True(t, code.Is(err, code.ErrUserNotFound))
}

func TestUsersByCondoAndDelete(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	svc := services.NewUserService(db, nil)
	lakeview := testutil.CreateCondo(t, db, "Lakeview")
	hillside := testutil.CreateCondo(t, db, "Hillside")
	ana := testutil.CreateUser(t, db, lakeview.ID, "ana@example.com", models.RoleResident)
	testutil.CreateUser(t, db, lakeview.ID, "bob@example.com", models.RoleAdmin)

	users, err := svc.GetUsersByCondo(ctx, lakeview.ID)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = svc.GetUsersByCondo(ctx, hillside.ID)
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.NotNil(t, users)

	all, total, err := svc.GetAllUsers(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	require.NoError(t, svc.DeleteUser(ctx, ana.ID))
	_, err = svc.GetUserByID(ctx, ana.ID)
	assert.True(t, code.Is(err, code.ErrUserNotFound))
	assert.True(t, code.Is(svc.DeleteUser(ctx, ana.ID), code.ErrUserNotFound))
}
