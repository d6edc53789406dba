package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/workcafe/workcafe-api/internal/config"
	"github.com/workcafe/workcafe-api/internal/models"
)

const ContextIdentity = "identity"

// TokenTTL is the validity window; there is no refresh flow, expiry means
// re-login.
const TokenTTL = 7 * 24 * time.Hour

// Identity is the immutable request-scoped caller, decoded from the bearer
// token.
type Identity struct {
	UserID   uint
	Username string
	Email    string
	Role     string
}

func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}

// IdentityFrom reads the caller identity set by RequireAuth/OptionalAuth.
func IdentityFrom(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(ContextIdentity)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

func GenerateToken(cfg *config.Config, user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
		"exp":      time.Now().Add(TokenTTL).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func decodeIdentity(tokenString, secret string) (Identity, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Identity{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, false
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return Identity{}, false
	}
	username, _ := claims["username"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return Identity{
		UserID:   uint(sub),
		Username: username,
		Email:    email,
		Role:     role,
	}, true
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	return parts[1], true
}

// RequireAuth rejects with 401 when the bearer token is missing or invalid.
func RequireAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		identity, ok := decodeIdentity(tokenString, cfg.JWTSecret)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(ContextIdentity, identity)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// proceeds anonymously otherwise. Used by endpoints whose response shape
// depends on the caller (e.g. is_favorite).
func OptionalAuth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if identity, ok := decodeIdentity(tokenString, cfg.JWTSecret); ok {
				c.Set(ContextIdentity, identity)
			}
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok || !identity.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin_privileges_required"})
			return
		}
		c.Next()
	}
}
