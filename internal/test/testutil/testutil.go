// Package testutil 为各包测试提供基于 SQLite 的数据库和常用数据
package testutil

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/infrastructure/config"
	"niddo-http-service/internal/infrastructure/database"
	"niddo-http-service/pkg/logger"
	"niddo-http-service/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 测试用默认管理员
const (
	AdminEmail    = "admin@niddo.test"
	AdminPassword = "admin-pass-123"
)

// Config 返回指向临时 SQLite 文件的配置，缓存和限流关闭
func Config(t testing.TB) *config.Config {
	t.Helper()
	logger.SetOutput(io.Discard)

	return &config.Config{
		EnvType:              "TEST",
		GinMode:              "test",
		LogDir:               t.TempDir(),
		DBDriver:             "sqlite",
		DBName:               filepath.Join(t.TempDir(), "niddo.db"),
		DBMigrationMode:      "auto",
		ServerPort:           "0",
		CORSAllowOrigin:      "*",
		JWTSecretKey:         "test-secret-key",
		JWTTTL:               time.Hour,
		DefaultAdminEmail:    AdminEmail,
		DefaultAdminPassword: AdminPassword,
		DefaultCondoName:     "Administration",
	}
}

// Pool 打开并迁移测试数据库，测试结束时关闭
func Pool(t testing.TB, cfg *config.Config) *database.ConnectionPool {
	t.Helper()

	pool, err := database.NewConnectionPool(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Close() })

	require.NoError(t, database.Migrate(pool.GetDB(), cfg.DBMigrationMode))
	return pool
}

// DB 打开已迁移的测试数据库
func DB(t testing.TB) *gorm.DB {
	t.Helper()
	return Pool(t, Config(t)).GetDB()
}

// CreateCondo 插入一个小区
func CreateCondo(t testing.TB, db *gorm.DB, name string) *models.Condo {
	t.Helper()
	condo := &models.Condo{Name: name, Address: name + " address"}
	require.NoError(t, db.Create(condo).Error)
	return condo
}

// CreateUser 插入一个用户，密码为 "password123"
func CreateUser(t testing.TB, db *gorm.DB, condoID uint, email, role string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         "User " + email,
		Email:        email,
		PasswordHash: "password123",
		Role:         role,
		CondoID:      condoID,
		Unit:         "101",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateAmenity 插入一个设施，开放时段为 start-end
func CreateAmenity(t testing.TB, db *gorm.DB, condoID uint, name, start, end string) *models.Amenity {
	t.Helper()
	amenity := &models.Amenity{
		Name:        name,
		Description: name + " description",
		StartTime:   Clock(t, start),
		EndTime:     Clock(t, end),
		CondoID:     condoID,
	}
	require.NoError(t, db.Create(amenity).Error)
	return amenity
}

// Clock 解析时刻，失败时终止测试
func Clock(t testing.TB, s string) datatypes.Time {
	t.Helper()
	c, err := utils.ParseClock(s)
	require.NoError(t, err)
	return c
}

// Date 解析日期，失败时终止测试
func Date(t testing.TB, s string) datatypes.Date {
	t.Helper()
	d, err := utils.ParseDate(s)
	require.NoError(t, err)
	return d
}
