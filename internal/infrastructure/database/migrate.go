package database

import (
	"fmt"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/pkg/logger"

	"gorm.io/gorm"
)

// AllModels 返回需要迁移的全部模型，顺序即外键依赖顺序
func AllModels() []interface{} {
	return []interface{}{
		&models.Condo{},
		&models.User{},
		&models.Amenity{},
		&models.Block{},
		&models.Reservation{},
		&models.Visitor{},
	}
}

// AutoMigrate 自动迁移所有模型（只添加新列和新表）
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	logger.Info("数据库迁移完成")
	return nil
}

// DropAndRecreate 删除并重建所有表
func DropAndRecreate(db *gorm.DB) error {
	logger.Warning("正在删除并重建所有表，所有数据将丢失")

	tables := AllModels()
	// 逆序删除，先删除子表
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}

	return AutoMigrate(db)
}

// Migrate 根据迁移模式执行数据库操作
func Migrate(db *gorm.DB, mode string) error {
	switch mode {
	case "drop":
		return DropAndRecreate(db)
	case "auto", "":
		return AutoMigrate(db)
	default:
		return fmt.Errorf("unknown migration mode: %s", mode)
	}
}
