package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	config     *Config
	configOnce sync.Once
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string
	GinMode string
	LogDir  string
	Debug   bool

	// Database
	DBDriver        string // 数据库驱动: "mysql"(默认), "postgres", "sqlite"
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string // sqlite 驱动下为数据库文件路径
	DBPort          string
	DBMigrationMode string // 数据库迁移模式: "auto"(默认), "drop"(删除重建)

	// Server
	ServerPort      string
	CORSAllowOrigin string

	// 限流，RPS 为 0 表示关闭
	RateLimitRPS        float64
	RateLimitBurst      int
	LoginRateLimitRPS   float64
	LoginRateLimitBurst int

	// Redis
	RedisHost string
	RedisPort string
	RedisDB   int

	// MQTT 事件推送，BrokerURL 为空表示关闭
	MQTTBrokerURL   string
	MQTTClientID    string
	MQTTUsername    string
	MQTTPassword    string
	MQTTTopicPrefix string

	// GET 响应缓存时间，0 表示关闭缓存
	CacheTTL time.Duration

	// JWT Authentication
	JWTSecretKey string
	JWTTTL       time.Duration

	// Admin
	DefaultAdminEmail    string
	DefaultAdminPassword string
	DefaultCondoName     string
}

// LoadConfig loads config from environment variables based on ENV_TYPE
func LoadConfig() *Config {
	// Get environment type (default to LOCAL if not set)
	envType := getEnv("ENV_TYPE", "LOCAL")
	prefix := ""

	// Set prefix based on environment type
	if strings.ToUpper(envType) == "LOCAL" {
		prefix = "LOCAL_"
	} else if strings.ToUpper(envType) == "SERVER" {
		prefix = "SERVER_"
	} else {
		fmt.Printf("Warning: Unknown ENV_TYPE '%s', defaulting to LOCAL environment\n", envType)
		prefix = "LOCAL_"
		envType = "LOCAL"
	}

	fmt.Printf("Loading configuration for environment: %s\n", envType)

	driver := strings.ToLower(getEnv(prefix+"DB_DRIVER", getEnv("DB_DRIVER", "mysql")))

	cfg := &Config{
		EnvType: envType,
		GinMode: getEnv("GIN_MODE", "release"),
		LogDir:  getEnv("LOG_DIR", "logs"),
		Debug:   getEnvAsBool("DEBUG", false),

		DBDriver:        driver,
		DBMigrationMode: getEnv(prefix+"DB_MIGRATION_MODE", "auto"),

		ServerPort:      getEnv(prefix+"SERVER_PORT", getEnv("SERVER_PORT", "8080")),
		CORSAllowOrigin: getEnv("CORS_ALLOW_ORIGIN", "*"),

		RateLimitRPS:        getEnvAsFloat("RATE_LIMIT_RPS", 30),
		RateLimitBurst:      getEnvAsInt("RATE_LIMIT_BURST", 50),
		LoginRateLimitRPS:   getEnvAsFloat("LOGIN_RATE_LIMIT_RPS", 1),
		LoginRateLimitBurst: getEnvAsInt("LOGIN_RATE_LIMIT_BURST", 5),

		RedisHost: getEnv(prefix+"REDIS_HOST", getEnv("REDIS_HOST", "")),
		RedisPort: getEnv(prefix+"REDIS_PORT", getEnv("REDIS_PORT", "6379")),
		RedisDB:   getEnvAsInt("REDIS_DB", 0),

		MQTTBrokerURL:   getEnv(prefix+"MQTT_BROKER_URL", getEnv("MQTT_BROKER_URL", "")),
		MQTTClientID:    getEnv("MQTT_CLIENT_ID", "niddo-http-service"),
		MQTTUsername:    getEnv("MQTT_USERNAME", ""),
		MQTTPassword:    getEnv("MQTT_PASSWORD", ""),
		MQTTTopicPrefix: getEnv("MQTT_TOPIC_PREFIX", "niddo"),

		CacheTTL: time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 30)) * time.Second,

		JWTSecretKey: getEnvRequired("JWT_SECRET_KEY"),
		JWTTTL:       time.Duration(getEnvAsInt("JWT_TTL_MINUTES", 60)) * time.Minute,

		DefaultAdminEmail:    getEnv("DEFAULT_ADMIN_EMAIL", "admin@niddo.local"),
		DefaultAdminPassword: getEnvRequired("DEFAULT_ADMIN_PASSWORD"),
		DefaultCondoName:     getEnv("DEFAULT_CONDO_NAME", "Administration"),
	}

	// sqlite 只需要文件路径，其余驱动必须提供完整的连接信息
	if driver == "sqlite" {
		cfg.DBName = getEnv(prefix+"DB_NAME", "niddo.db")
	} else {
		cfg.DBHost = getEnvRequired(prefix + "DB_HOST")
		cfg.DBUser = getEnvRequired(prefix + "DB_USER")
		cfg.DBPassword = getEnvRequired(prefix + "DB_PASSWORD")
		cfg.DBName = getEnvRequired(prefix + "DB_NAME")
		cfg.DBPort = getEnvRequired(prefix + "DB_PORT")
	}

	return cfg
}

// GetConfig returns the application configuration as a singleton
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN returns the database connection string for the configured driver
func (c *Config) GetDSN() string {
	switch c.DBDriver {
	case "postgres":
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	case "sqlite":
		return c.DBName + "?_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
	default:
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=UTC&allowNativePasswords=true"
	}
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// RedisEnabled 是否配置了Redis
func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}

// MQTTEnabled 是否配置了MQTT消息代理
func (c *Config) MQTTEnabled() bool {
	return c.MQTTBrokerURL != ""
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as float with default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as boolean with default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// 要求必须提供环境变量的辅助函数
func getEnvRequired(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	panic(fmt.Sprintf("Required environment variable %s is not set", key))
}
