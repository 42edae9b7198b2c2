// @title           Niddo HTTP Service API
// @version         1.0
// @description     Condominium management backend: condos, residents, amenities, blocks, reservations and visitors

// @BasePath  /

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer ` prefix
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"niddo-http-service/internal/app/middleware"
	"niddo-http-service/internal/app/routes"
	"niddo-http-service/internal/domain/services/container"
	"niddo-http-service/internal/infrastructure/config"
	"niddo-http-service/internal/infrastructure/database"
	"niddo-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// 加载.env文件
	envErr := godotenv.Load()

	// 获取配置
	cfg := config.GetConfig()

	// 初始化日志配置
	if err := logger.SetupLogger(cfg.LogDir, cfg.Debug); err != nil {
		fmt.Printf("初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}
	if envErr != nil {
		// 即使加载失败也继续执行，可能环境变量已经通过其他方式设置
		logger.Warning("无法加载.env文件: %v", envErr)
	} else {
		logger.Info("成功加载.env文件")
	}

	gin.SetMode(cfg.GinMode)
	if middleware.DevBypassEnabled() {
		logger.Warning("当前为 devauth 构建，所有请求将跳过认证")
	}

	// 创建数据库连接池
	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		logger.Error("无法创建数据库连接池: %v", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(pool.GetDB(), cfg.DBMigrationMode); err != nil {
		logger.Error("数据库迁移失败: %v", err)
		os.Exit(1)
	}

	// 确保系统中有管理员账户
	if err := database.EnsureAdminExists(context.Background(), pool, cfg); err != nil {
		logger.Error("初始化管理员失败: %v", err)
		os.Exit(1)
	}

	serviceContainer := container.NewServiceContainer(pool.GetDB(), cfg)
	defer serviceContainer.Close()

	r := routes.SetupRouter(pool, serviceContainer)

	printSystemInfo(pool)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("服务器启动在: http://0.0.0.0:%s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("启动服务器失败: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("正在关闭服务器...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭失败: %v", err)
	}
}

// printSystemInfo 打印连接池和运行时信息
func printSystemInfo(pool *database.ConnectionPool) {
	stats, err := pool.Stats()
	if err == nil {
		logger.Info("数据库连接池状态: %+v", stats)
	}

	logger.Info("系统CPU核心数: %d", runtime.NumCPU())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	logger.Info("系统内存使用: Alloc=%v MiB, Sys=%v MiB", m.Alloc/1024/1024, m.Sys/1024/1024)
}
