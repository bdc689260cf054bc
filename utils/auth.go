// utils/auth.go
package utils

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// TokenCookie is the cookie the HTML pages carry the JWT in.
const TokenCookie = "token"

const tokenSubject = "owner"

const bcryptCost = 12

// Generate JWT secret key
func GenerateJWTSecret() string {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic("failed to generate JWT secret")
	}
	return base64.StdEncoding.EncodeToString(key)
}

// Hash password
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// Check password
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// GenerateToken signs a token for the single owner of the reminder book.
func GenerateToken(secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("JWT secret not set")
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": tokenSubject,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ValidateToken checks signature, expiry and subject.
func ValidateToken(tokenString, secret string) error {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return errors.New("invalid token")
	}
	sub, err := token.Claims.GetSubject()
	if err != nil || sub != tokenSubject {
		return errors.New("invalid token claims")
	}
	return nil
}

// Auth middleware. The token comes from the Authorization header or the
// token cookie. API callers get 401; browsers are sent to loginPath.
func AuthMiddleware(secret, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			denyAccess(c, loginPath, "Authorization header required")
			return
		}

		if err := ValidateToken(tokenString, secret); err != nil {
			denyAccess(c, loginPath, "Invalid token")
			return
		}

		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	tokenString := c.GetHeader("Authorization")
	if len(tokenString) > 7 && strings.ToUpper(tokenString[0:6]) == "BEARER" {
		return tokenString[7:]
	}
	if tokenString != "" {
		return tokenString
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

func denyAccess(c *gin.Context, loginPath, message string) {
	if loginPath != "" && !strings.HasPrefix(c.Request.URL.Path, "/api") {
		c.Redirect(http.StatusSeeOther, loginPath)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}
