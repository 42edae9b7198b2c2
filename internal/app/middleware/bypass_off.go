//go:build !devauth

package middleware

const devBypass = false
