package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Constants for context keys
const (
	ContextUserIDKey    = "userID"
	ContextRequestIDKey = "requestID"
)

// jwtClaims defines the structure we expect in the JWT payload.
// Mirroring the structure used in authService.generateJWT.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// parseBearerToken validates the Authorization header and returns the
// caller's user ID in hex form.
func parseBearerToken(authHeader, jwtSecret string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", errors.New("authorization header format must be Bearer {token}")
	}

	claims := &jwtClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.UserID == "" {
		return "", errors.New("invalid token or missing claims")
	}
	return claims.UserID, nil
}

// AuthMiddleware creates a Gin middleware for JWT authentication. Requests
// without a valid bearer token are rejected with 401.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header is missing")
			return
		}

		userID, err := parseBearerToken(authHeader, jwtSecret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				abortWithError(c, http.StatusUnauthorized, "Token has expired")
			} else {
				abortWithError(c, http.StatusUnauthorized, fmt.Sprintf("Invalid token: %v", err))
			}
			return
		}

		c.Set(ContextUserIDKey, userID) // Hex representation
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller identity in best-effort mode:
// a missing or invalid token yields an anonymous request rather than a 401.
// Used on read paths whose results depend on who is asking.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			if userID, err := parseBearerToken(authHeader, jwtSecret); err == nil {
				c.Set(ContextUserIDKey, userID)
			}
		}
		c.Next()
	}
}

// RequestIDMiddleware tags every request with a unique ID for log
// correlation, echoed back in the X-Request-ID header.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// Helper to return the uniform JSON error envelope and abort the request.
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"message": message})
}

// callerIDFromContext returns the authenticated caller's ID. Only valid
// after AuthMiddleware has run.
func callerIDFromContext(c *gin.Context) (primitive.ObjectID, error) {
	idRaw, exists := c.Get(ContextUserIDKey)
	if !exists {
		return primitive.NilObjectID, errors.New("user ID not found in context")
	}
	idStr, ok := idRaw.(string)
	if !ok {
		return primitive.NilObjectID, errors.New("invalid user ID type in context")
	}
	return primitive.ObjectIDFromHex(idStr)
}

// optionalCallerID returns the caller's ID or nil for anonymous requests.
// Used after OptionalAuthMiddleware.
func optionalCallerID(c *gin.Context) *primitive.ObjectID {
	id, err := callerIDFromContext(c)
	if err != nil {
		return nil
	}
	return &id
}
