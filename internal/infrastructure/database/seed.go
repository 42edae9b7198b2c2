package database

import (
	"context"
	"errors"
	"fmt"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/infrastructure/config"
	"niddo-http-service/pkg/logger"

	"gorm.io/gorm"
)

// EnsureAdminExists 系统中没有管理员时创建默认小区和默认管理员
func EnsureAdminExists(ctx context.Context, pool *ConnectionPool, cfg *config.Config) error {
	var count int64
	if err := pool.GetDB().WithContext(ctx).Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}

	return pool.WithTransaction(ctx, func(tx *gorm.DB) error {
		var condo models.Condo
		err := tx.Where("name = ?", cfg.DefaultCondoName).First(&condo).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			condo = models.Condo{Name: cfg.DefaultCondoName, Address: "-"}
			if err := tx.Create(&condo).Error; err != nil {
				return fmt.Errorf("create default condo: %w", err)
			}
			logger.Info("已创建默认小区: %s", condo.Name)
		} else if err != nil {
			return fmt.Errorf("load default condo: %w", err)
		}

		// 密码由 BeforeSave 钩子哈希
		admin := models.User{
			Name:         "Administrator",
			Email:        cfg.DefaultAdminEmail,
			PasswordHash: cfg.DefaultAdminPassword,
			Role:         models.RoleAdmin,
			CondoID:      condo.ID,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("create default admin: %w", err)
		}

		logger.Info("已创建默认管理员账户: %s", admin.Email)
		return nil
	})
}
