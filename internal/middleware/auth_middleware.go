package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/toshniwal-akshay/ecommerce-project/internal/app/model"
	"github.com/toshniwal-akshay/ecommerce-project/internal/errors"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/redis"
	"github.com/toshniwal-akshay/ecommerce-project/pkg/util"
)

// Context keys for user information
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
	UserRoleKey  = "user_role"
	TokenKey     = "auth_token"
)

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// Authenticate validates the JWT token (required)
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Please login to continue")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authorization header")
			c.Abort()
			return
		}
		token := parts[1]

		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if err == util.ErrExpiredToken {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenExpired, "Your session has expired. Please login again")
			} else {
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authentication token")
			}
			c.Abort()
			return
		}

		// A logged-out token stays invalid until its natural expiry.
		blacklisted, err := redis.IsTokenBlacklisted(c.Request.Context(), token)
		if err != nil {
			log.Error("Failed to check token blacklist", err, map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.InternalError(c, "")
			c.Abort()
			return
		}
		if blacklisted {
			log.Warn("Revoked token presented", map[string]interface{}{
				"path":    c.Request.URL.Path,
				"user_id": claims.UserID,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenRevoked, "Your session has ended. Please login again")
			c.Abort()
			return
		}

		role := model.UserRole(claims.Role)
		if !role.Valid() {
			log.Warn("Token carries unknown role", map[string]interface{}{
				"path": c.Request.URL.Path,
				"role": claims.Role,
			})
			errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthTokenInvalid, "Invalid authentication token")
			c.Abort()
			return
		}

		// Set user information in context
		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, role)
		c.Set(TokenKey, token)

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id": claims.UserID,
			"email":   claims.Email,
			"role":    claims.Role,
		})

		c.Next()
	}
}

// OptionalAuthenticate validates the JWT token if present (optional)
// - If token is present and valid: sets user info in context
// - If token is missing or invalid: continues without user info
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Debug("No authorization header - continuing as guest", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			c.Next()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Debug("Invalid authorization header format - continuing as guest", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			c.Next()
			return
		}

		token := parts[1]
		claims, err := util.ValidateToken(token, m.jwtSecret)
		if err != nil {
			log.Debug("Token validation failed - continuing as guest", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		blacklisted, err := redis.IsTokenBlacklisted(c.Request.Context(), token)
		if err != nil || blacklisted {
			log.Debug("Token revoked or blacklist unavailable - continuing as guest", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			c.Next()
			return
		}

		role := model.UserRole(claims.Role)
		if !role.Valid() {
			c.Next()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, role)
		c.Set(TokenKey, token)

		log.Debug("User authenticated successfully (optional)", map[string]interface{}{
			"user_id": claims.UserID,
			"email":   claims.Email,
			"role":    claims.Role,
		})

		c.Next()
	}
}

// RequireRole checks if the user has one of the required roles. Roles
// are matched against the known enum values, never raw strings.
func (m *AuthMiddleware) RequireRole(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		userRole, exists := c.Get(UserRoleKey)
		if !exists {
			log.Warn("Role information not found in context", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.RespondWithError(c, http.StatusForbidden, errors.AuthzRoleNotFound, "Role information not found")
			c.Abort()
			return
		}

		role := userRole.(model.UserRole)
		userID, _ := GetUserID(c)

		for _, r := range roles {
			if role == r {
				log.Debug("Role check passed", map[string]interface{}{
					"user_id":       userID,
					"user_role":     role,
					"required_role": r,
				})
				c.Next()
				return
			}
		}

		log.Warn("Insufficient permissions", map[string]interface{}{
			"user_id":        userID,
			"user_role":      role,
			"required_roles": roles,
			"path":           c.Request.URL.Path,
		})
		errors.Forbidden(c, "You do not have permission to access this page")
		c.Abort()
	}
}

// GetUserID extracts the user ID from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetUserEmail extracts the user email from context
func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	return email.(string), true
}

// GetUserRole extracts the user role from context
func GetUserRole(c *gin.Context) (model.UserRole, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	return role.(model.UserRole), true
}

// GetToken extracts the raw bearer token from context
func GetToken(c *gin.Context) (string, bool) {
	token, exists := c.Get(TokenKey)
	if !exists {
		return "", false
	}
	return token.(string), true
}
