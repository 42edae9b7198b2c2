package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigSQLiteDefaults(t *testing.T) {
	t.Setenv("ENV_TYPE", "LOCAL")
	t.Setenv("LOCAL_DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DEFAULT_ADMIN_PASSWORD", "admin-pass")

	cfg := LoadConfig()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "niddo.db", cfg.DBName)
	assert.Equal(t, "auto", cfg.DBMigrationMode)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, "admin@niddo.local", cfg.DefaultAdminEmail)
	assert.False(t, cfg.RedisEnabled())
	assert.Contains(t, cfg.GetDSN(), "_foreign_keys=on")
}

func TestLoadConfigServerPrefix(t *testing.T) {
	t.Setenv("ENV_TYPE", "SERVER")
	t.Setenv("SERVER_DB_DRIVER", "postgres")
	t.Setenv("SERVER_DB_HOST", "db")
	t.Setenv("SERVER_DB_USER", "niddo")
	t.Setenv("SERVER_DB_PASSWORD", "pw")
	t.Setenv("SERVER_DB_NAME", "niddo")
	t.Setenv("SERVER_DB_PORT", "5432")
	t.Setenv("SERVER_REDIS_HOST", "cache")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("JWT_TTL_MINUTES", "15")
	t.Setenv("DEFAULT_ADMIN_PASSWORD", "admin-pass")

	cfg := LoadConfig()

	assert.Equal(t, "SERVER", cfg.EnvType)
	assert.Equal(t, "host=db user=niddo password=pw dbname=niddo port=5432 sslmode=disable TimeZone=UTC", cfg.GetDSN())
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
}

func TestLoadConfigMySQLDSN(t *testing.T) {
	t.Setenv("ENV_TYPE", "LOCAL")
	t.Setenv("LOCAL_DB_DRIVER", "mysql")
	t.Setenv("LOCAL_DB_HOST", "127.0.0.1")
	t.Setenv("LOCAL_DB_USER", "root")
	t.Setenv("LOCAL_DB_PASSWORD", "pw")
	t.Setenv("LOCAL_DB_NAME", "niddo")
	t.Setenv("LOCAL_DB_PORT", "3306")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DEFAULT_ADMIN_PASSWORD", "admin-pass")

	cfg := LoadConfig()

	assert.Equal(t, "root:pw@tcp(127.0.0.1:3306)/niddo?charset=utf8mb4&parseTime=True&loc=UTC&allowNativePasswords=true", cfg.GetDSN())
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("LOCAL_DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("DEFAULT_ADMIN_PASSWORD", "admin-pass")

	assert.Panics(t, func() { LoadConfig() })
}

func TestLoadConfigRequiresDatabaseSettings(t *testing.T) {
	t.Setenv("ENV_TYPE", "LOCAL")
	t.Setenv("LOCAL_DB_DRIVER", "postgres")
	t.Setenv("LOCAL_DB_HOST", "")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DEFAULT_ADMIN_PASSWORD", "admin-pass")

	assert.Panics(t, func() { LoadConfig() })
}

func TestLoadConfigMQTT(t *testing.T) {
	t.Setenv("ENV_TYPE", "LOCAL")
	t.Setenv("LOCAL_DB_DRIVER", "sqlite")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("DEFAULT_ADMIN_PASSWORD", "admin-pass")
	t.Setenv("LOCAL_MQTT_BROKER_URL", "")

	cfg := LoadConfig()
	assert.False(t, cfg.MQTTEnabled())
	assert.Equal(t, "niddo", cfg.MQTTTopicPrefix)

	t.Setenv("LOCAL_MQTT_BROKER_URL", "tcp://broker:1883")
	t.Setenv("MQTT_TOPIC_PREFIX", "lakeview")
	cfg = LoadConfig()
	assert.True(t, cfg.MQTTEnabled())
	assert.Equal(t, "tcp://broker:1883", cfg.MQTTBrokerURL)
	assert.Equal(t, "lakeview", cfg.MQTTTopicPrefix)
}
