package container

import (
	"context"
	"sync"
	"time"

	"niddo-http-service/internal/domain/services"
	"niddo-http-service/internal/infrastructure/config"
	"niddo-http-service/pkg/logger"

	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService
	eventService services.InterfaceEventService

	// 业务服务
	condoService       services.InterfaceCondoService
	userService        services.InterfaceUserService
	amenityService     services.InterfaceAmenityService
	blockService       services.InterfaceBlockService
	reservationService services.InterfaceReservationService
	visitorService     services.InterfaceVisitorService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器，未配置Redis时不创建Redis服务
func NewServiceContainer(db *gorm.DB, cfg *config.Config) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config, c.db)

	// 初始化Redis服务，连接失败时退回内存缓存
	if c.config.RedisEnabled() {
		redisService := services.NewRedisService(c.config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisService.Ping(ctx); err != nil {
			logger.Warning("Redis连接测试失败: %v，将使用内存缓存", err)
			_ = redisService.Close()
		} else {
			c.redisService = redisService
		}
	}

	// 初始化事件推送，连接失败时丢弃事件
	c.eventService = services.NoopEventService{}
	if c.config.MQTTEnabled() {
		eventService, err := services.NewMQTTEventService(c.config)
		if err != nil {
			logger.Warning("MQTT连接失败: %v，将不推送事件", err)
		} else {
			c.eventService = eventService
		}
	}

	// 初始化业务服务
	c.condoService = services.NewCondoService(c.db, c.config)
	c.userService = services.NewUserService(c.db, c.config)
	c.amenityService = services.NewAmenityService(c.db, c.config)
	c.blockService = services.NewBlockService(c.db, c.config)
	c.reservationService = services.NewReservationService(c.db, c.config, c.eventService)
	c.visitorService = services.NewVisitorService(c.db, c.config, c.eventService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "events":
		return c.eventService
	case "condo":
		return c.condoService
	case "user":
		return c.userService
	case "amenity":
		return c.amenityService
	case "block":
		return c.blockService
	case "reservation":
		return c.reservationService
	case "visitor":
		return c.visitorService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// Close 释放外部连接
func (c *ServiceContainer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.redisService != nil {
		if err := c.redisService.Close(); err != nil {
			logger.Warning("关闭Redis连接失败: %v", err)
		}
		c.redisService = nil
	}
	c.eventService.Close()
}
