//go:build devauth

package middleware

// 仅在 -tags devauth 构建的开发版本中跳过认证，所有请求视为管理员
const devBypass = true
