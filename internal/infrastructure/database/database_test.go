package database_test

import (
	"context"
	"testing"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/infrastructure/database"
	"niddo-http-service/internal/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCreatesTables(t *testing.T) {
	cfg := testutil.Config(t)
	pool := testutil.Pool(t, cfg)

	for _, model := range database.AllModels() {
		assert.True(t, pool.GetDB().Migrator().HasTable(model))
	}
}

func TestMigrateDropMode(t *testing.T) {
	cfg := testutil.Config(t)
	pool := testutil.Pool(t, cfg)
	db := pool.GetDB()
	testutil.CreateCondo(t, db, "Lakeview")

	require.NoError(t, database.Migrate(db, "drop"))

	var count int64
	require.NoError(t, db.Model(&models.Condo{}).Count(&count).Error)
	assert.Zero(t, count)

	assert.Error(t, database.Migrate(db, "sideways"))
}

func TestEnsureAdminExists(t *testing.T) {
	ctx := context.Background()
	cfg := testutil.Config(t)
	pool := testutil.Pool(t, cfg)
	db := pool.GetDB()

	require.NoError(t, database.EnsureAdminExists(ctx, pool, cfg))
	require.NoError(t, database.EnsureAdminExists(ctx, pool, cfg))

	var admins []models.User
	require.NoError(t, db.Where("role = ?", models.RoleAdmin).Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, testutil.AdminEmail, admins[0].Email)
	assert.True(t, admins[0].CheckPassword(testutil.AdminPassword))

	var condo models.Condo
	require.NoError(t, db.First(&condo, admins[0].CondoID).Error)
	assert.Equal(t, cfg.DefaultCondoName, condo.Name)
}

func TestEnsureAdminExistsReusesCondo(t *testing.T) {
	ctx := context.Background()
	cfg := testutil.Config(t)
	pool := testutil.Pool(t, cfg)
	existing := testutil.CreateCondo(t, pool.GetDB(), cfg.DefaultCondoName)

	require.NoError(t, database.EnsureAdminExists(ctx, pool, cfg))

	var admin models.User
	require.NoError(t, pool.GetDB().Where("email = ?", testutil.AdminEmail).First(&admin).Error)
	assert.Equal(t, existing.ID, admin.CondoID)
}

func TestPoolHealthAndStats(t *testing.T) {
	cfg := testutil.Config(t)
	pool := testutil.Pool(t, cfg)

	assert.NoError(t, pool.HealthCheck(context.Background()))

	stats, err := pool.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats["max_open_connections"])
	assert.Equal(t, "sqlite", pool.Driver)
}

func TestUnsupportedDriver(t *testing.T) {
	cfg := testutil.Config(t)
	cfg.DBDriver = "oracle"

	_, err := database.NewConnectionPool(cfg)
	assert.Error(t, err)
}
