package middleware

import (
	"strconv"
	"strings"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/domain/services"
	"niddo-http-service/internal/error/response"
	"niddo-http-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// 认证成功后写入 gin.Context 的键
const (
	ContextUserID  = "userID"
	ContextRole    = "role"
	ContextCondoID = "condoID"
	ContextClaims  = "claims"
)

// Auth 基于JWT的认证与角色校验
type Auth struct {
	jwtService services.InterfaceJWTService
}

// NewAuth 创建认证中间件
func NewAuth(jwtService services.InterfaceJWTService) *Auth {
	return &Auth{jwtService: jwtService}
}

// DevBypassEnabled 当前二进制是否带有开发环境免认证
func DevBypassEnabled() bool {
	return devBypass
}

// extractToken 从授权头中提取token，只接受 Bearer 方案
func extractToken(authHeader string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(authHeader), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}

// RequireRoles 校验令牌并要求角色在允许列表中
func (a *Auth) RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(c *gin.Context) {
		if devBypass {
			setClaims(c, &services.JWTClaims{UserID: 1, Name: "dev", Role: models.RoleAdmin})
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "authorization header is required")
			c.Abort()
			return
		}

		tokenString, ok := extractToken(authHeader)
		if !ok {
			response.Unauthorized(c, "authorization header must use the Bearer scheme")
			c.Abort()
			return
		}

		claims, err := a.jwtService.ValidateToken(tokenString)
		if err != nil {
			logger.Debug("令牌校验失败: %v", err)
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		if _, ok := allowed[claims.Role]; !ok {
			response.Forbidden(c)
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// RequireSelfOrRoles 要求路径参数 param 为当前用户ID或角色在允许列表中，需放在 RequireRoles 之后
func (a *Auth) RequireSelfOrRoles(param string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}

		id, err := strconv.ParseUint(c.Param(param), 10, 64)
		if err == nil && uint(id) == c.GetUint(ContextUserID) {
			c.Next()
			return
		}

		response.Forbidden(c)
		c.Abort()
	}
}

// ClaimsFrom 取出认证中间件写入的声明
func ClaimsFrom(c *gin.Context) (*services.JWTClaims, bool) {
	value, exists := c.Get(ContextClaims)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*services.JWTClaims)
	return claims, ok
}

func setClaims(c *gin.Context, claims *services.JWTClaims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextRole, claims.Role)
	c.Set(ContextCondoID, claims.CondoID)
	c.Set(ContextClaims, claims)
}
