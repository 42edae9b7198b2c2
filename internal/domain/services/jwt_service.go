package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"niddo-http-service/internal/domain/models"
	"niddo-http-service/internal/error/code"
	"niddo-http-service/internal/infrastructure/config"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

const tokenIssuer = "niddo-http-service"

// InterfaceJWTService 定义JWT服务接口
type InterfaceJWTService interface {
	GenerateToken(user *models.User) (string, time.Time, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

// LoginResult 表示登录结果
type LoginResult struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      uint      `json:"user_id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	CondoID     uint      `json:"condo_id"`
}

// JWTClaims 定义JWT令牌的声明结构
type JWTClaims struct {
	UserID  uint   `json:"user_id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	CondoID uint   `json:"condo_id"`
	jwt.RegisteredClaims
}

// JWTService 提供JWT相关服务
type JWTService struct {
	secretKey []byte
	ttl       time.Duration
	DB        *gorm.DB
}

// NewJWTService 创建一个新的JWT服务
func NewJWTService(cfg *config.Config, db *gorm.DB) InterfaceJWTService {
	ttl := cfg.JWTTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &JWTService{
		secretKey: []byte(cfg.JWTSecretKey),
		ttl:       ttl,
		DB:        db,
	}
}

// 1 GenerateToken 为用户签发令牌
func (s *JWTService) GenerateToken(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := &JWTClaims{
		UserID:  user.ID,
		Name:    user.Name,
		Role:    user.Role,
		CondoID: user.CondoID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// 2 ValidateToken 验证签名和有效期并返回声明
func (s *JWTService) ValidateToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// 验证签名算法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Role == "" {
		return nil, errors.New("token carries no role")
	}
	return claims, nil
}

// 3 Login 校验邮箱和密码，成功后签发令牌
func (s *JWTService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.New(code.ErrCredentials)
		}
		return nil, translateDBError(err, code.ErrUserNotFound)
	}

	if !user.CheckPassword(password) {
		return nil, code.New(code.ErrCredentials)
	}

	token, expiresAt, err := s.GenerateToken(&user)
	if err != nil {
		return nil, code.Wrap(code.ErrUnknown, err)
	}

	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		UserID:      user.ID,
		Name:        user.Name,
		Role:        user.Role,
		CondoID:     user.CondoID,
	}, nil
}
