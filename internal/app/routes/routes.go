package routes

import (
	_ "niddo-http-service/docs"
	"niddo-http-service/internal/app/controllers"
	"niddo-http-service/internal/app/middleware"
	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/domain/services"
	"niddo-http-service/internal/domain/services/container"
	"niddo-http-service/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const cacheKeyPrefix = "niddo:cache:"

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(pool *database.ConnectionPool, serviceContainer *container.ServiceContainer) *gin.Engine {
	cfg := serviceContainer.GetConfig()

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), middleware.RequestID())

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	controllers.RegisterValidators()

	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerPublicRoutes(r, pool, serviceContainer)
	registerAuthenticatedRoutes(r, serviceContainer)
	return r
}

// cacheStore 配置了Redis时使用共享缓存，否则使用内存缓存
func cacheStore(serviceContainer *container.ServiceContainer) middleware.CacheStore {
	if redisService, ok := serviceContainer.GetService("redis").(services.InterfaceRedisService); ok && redisService != nil {
		return middleware.NewRedisStore(redisService, cacheKeyPrefix)
	}
	return middleware.NewMemoryStore(1024)
}

// rateLimiter rps<=0 时不限流
func rateLimiter(rps float64, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.IPRateLimiter(rps, burst)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(r *gin.Engine, pool *database.ConnectionPool, serviceContainer *container.ServiceContainer) {
	health := controllers.NewHealthCheckController(pool)
	r.GET("/ping", health.Ping)
	r.GET("/health", health.Health)

	cfg := serviceContainer.GetConfig()

	// 登录单独按IP限流
	r.POST("/auth/login", rateLimiter(cfg.LoginRateLimitRPS, cfg.LoginRateLimitBurst), controllers.HandleJWTFunc(serviceContainer, "login"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(r *gin.Engine, serviceContainer *container.ServiceContainer) {
	cfg := serviceContainer.GetConfig()
	auth := middleware.NewAuth(serviceContainer.GetService("jwt").(services.InterfaceJWTService))

	// 读接口对所有角色开放，缓存放在认证之后
	cache := middleware.Cache(cacheStore(serviceContainer), cfg.CacheTTL)
	anyone := auth.RequireRoles(models.RoleAdmin, models.RoleResident)
	admin := auth.RequireRoles(models.RoleAdmin)

	// 每个分组独立限流，互不占用令牌
	limiter := func() gin.HandlerFunc {
		return rateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	// 用户路由
	userGroup := r.Group("/users", limiter())
	{
		userGroup.POST("/", admin, cache, controllers.HandleUserFunc(serviceContainer, "createUser"))
		userGroup.GET("/", admin, cache, controllers.HandleUserFunc(serviceContainer, "getUsers"))
		userGroup.GET("/usersbycondo/:condo_id", anyone, cache, controllers.HandleUserFunc(serviceContainer, "getUsersByCondo"))
		userGroup.GET("/:user_id", anyone, cache, controllers.HandleUserFunc(serviceContainer, "getUser"))
		userGroup.PUT("/:user_id", anyone, auth.RequireSelfOrRoles("user_id", models.RoleAdmin), cache, controllers.HandleUserFunc(serviceContainer, "updateUser"))
		userGroup.DELETE("/:user_id", admin, cache, controllers.HandleUserFunc(serviceContainer, "deleteUser"))
	}

	// 小区路由
	condoGroup := r.Group("/condos", limiter())
	{
		condoGroup.POST("/", admin, cache, controllers.HandleCondoFunc(serviceContainer, "createCondo"))
		condoGroup.GET("/", anyone, cache, controllers.HandleCondoFunc(serviceContainer, "getCondos"))
		condoGroup.GET("/:condo_id", anyone, cache, controllers.HandleCondoFunc(serviceContainer, "getCondo"))
		condoGroup.PUT("/:condo_id", admin, cache, controllers.HandleCondoFunc(serviceContainer, "updateCondo"))
		condoGroup.DELETE("/:condo_id", admin, cache, controllers.HandleCondoFunc(serviceContainer, "deleteCondo"))
	}

	// 设施路由
	amenityGroup := r.Group("/amenities", limiter())
	{
		amenityGroup.POST("/", admin, cache, controllers.HandleAmenityFunc(serviceContainer, "createAmenity"))
		amenityGroup.GET("/amenitiesbycondo/:condo_id", anyone, cache, controllers.HandleAmenityFunc(serviceContainer, "getAmenitiesByCondo"))
		amenityGroup.GET("/:amenity_id", anyone, cache, controllers.HandleAmenityFunc(serviceContainer, "getAmenity"))
		amenityGroup.PUT("/:amenity_id", admin, cache, controllers.HandleAmenityFunc(serviceContainer, "updateAmenity"))
		amenityGroup.DELETE("/:amenity_id", admin, cache, controllers.HandleAmenityFunc(serviceContainer, "deleteAmenity"))
	}

	// 封锁时段路由
	blockGroup := r.Group("/blocks", limiter())
	{
		blockGroup.POST("/", admin, cache, controllers.HandleBlockFunc(serviceContainer, "createBlock"))
		blockGroup.GET("/blocksbyamenity/:amenity_id", anyone, cache, controllers.HandleBlockFunc(serviceContainer, "getBlocksByAmenity"))
		blockGroup.GET("/:block_id", anyone, cache, controllers.HandleBlockFunc(serviceContainer, "getBlock"))
		blockGroup.PUT("/:block_id", admin, cache, controllers.HandleBlockFunc(serviceContainer, "updateBlock"))
		blockGroup.DELETE("/:block_id", admin, cache, controllers.HandleBlockFunc(serviceContainer, "deleteBlock"))
	}

	// 预约路由，住户只能操作自己的预约
	reservationGroup := r.Group("/reservations", limiter())
	{
		reservationGroup.POST("/", anyone, cache, controllers.HandleReservationFunc(serviceContainer, "createReservation"))
		reservationGroup.GET("/reservationsbyuser/:user_id", anyone, cache, controllers.HandleReservationFunc(serviceContainer, "getReservationsByUser"))
		reservationGroup.GET("/reservationsbyamenity/:amenity_id", anyone, cache, controllers.HandleReservationFunc(serviceContainer, "getReservationsByAmenity"))
		reservationGroup.GET("/:reservation_id", anyone, cache, controllers.HandleReservationFunc(serviceContainer, "getReservation"))
		reservationGroup.PUT("/:reservation_id", anyone, cache, controllers.HandleReservationFunc(serviceContainer, "updateReservation"))
		reservationGroup.DELETE("/:reservation_id", anyone, cache, controllers.HandleReservationFunc(serviceContainer, "deleteReservation"))
	}

	// 访客路由，住户只能操作自己登记的访客
	visitorGroup := r.Group("/visitors", limiter())
	{
		visitorGroup.POST("/", anyone, cache, controllers.HandleVisitorFunc(serviceContainer, "createVisitor"))
		visitorGroup.GET("/visitorsbycondo/:condo_id", anyone, cache, controllers.HandleVisitorFunc(serviceContainer, "getVisitorsByCondo"))
		visitorGroup.GET("/visitorsbyuser/:user_id", anyone, cache, controllers.HandleVisitorFunc(serviceContainer, "getVisitorsByUser"))
		visitorGroup.GET("/:visitor_id", anyone, cache, controllers.HandleVisitorFunc(serviceContainer, "getVisitor"))
		visitorGroup.PUT("/:visitor_id", anyone, cache, controllers.HandleVisitorFunc(serviceContainer, "updateVisitor"))
		visitorGroup.DELETE("/:visitor_id", anyone, cache, controllers.HandleVisitorFunc(serviceContainer, "deleteVisitor"))
	}
}
