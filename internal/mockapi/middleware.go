package mockapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidAuthFormat = errors.New("invalid authorization header format")
	ErrEmptyToken        = errors.New("empty token")
	ErrInvalidToken      = errors.New("invalid token")
)

func setClaims(c *gin.Context, claims *Claims) {
	c.Set("claims", claims)
}

// GetClaims returns the authenticated claims set by the JWT middleware.
func GetClaims(c *gin.Context) (*Claims, bool) {
	value, exists := c.Get("claims")
	if !exists {
		return nil, false
	}

	claims, ok := value.(*Claims)
	return claims, ok
}

func extractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingAuthHeader
	}

	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", ErrInvalidAuthFormat
	}

	token := strings.TrimPrefix(authHeader, bearerPrefix)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

// respondDetail writes the FastAPI-style error envelope used by the
// production backend.
func respondDetail(c *gin.Context, statusCode int, detail string) {
	c.JSON(statusCode, gin.H{"detail": detail})
	c.Abort()
}

// jwtAuthMiddleware validates bearer tokens and loads the user behind them.
func (s *Server) jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token, err := extractBearerToken(authHeader)
		if err != nil {
			var message string
			switch err {
			case ErrMissingAuthHeader:
				message = "Missing authorization header"
			case ErrInvalidAuthFormat:
				message = "Invalid authorization header format"
			case ErrEmptyToken:
				message = "Empty token"
			}
			s.logger.Warn().Err(err).Msg("Rejected request")
			respondDetail(c, http.StatusUnauthorized, message)
			return
		}

		claims, err := ValidateToken(s.jwtSecret, token)
		if err != nil {
			s.logger.Warn().Err(err).Msg("Failed to validate JWT token")
			respondDetail(c, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		// Verify the user still exists.
		if _, err := s.store.UserByID(claims.UserID); err != nil {
			s.logger.Warn().Str("user_id", claims.UserID).Msg("Token for unknown user")
			respondDetail(c, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		setClaims(c, claims)

		c.Next()
	}
}
