package mockapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gastrack-dev/gastrack/internal/models"
)

// TokenResponse is the OAuth2-style login response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"full_name" binding:"required"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// login handles the OAuth2 password flow: credentials arrive form-encoded
// under username/password, where username carries the email.
func (s *Server) login(c *gin.Context) {
	email := c.PostForm("username")
	password := c.PostForm("password")
	if email == "" || password == "" {
		respondDetail(c, http.StatusBadRequest, "Incorrect email or password")
		return
	}

	user, err := s.store.Authenticate(email, password)
	if err != nil {
		respondDetail(c, http.StatusBadRequest, "Incorrect email or password")
		return
	}

	token, err := GenerateToken(s.jwtSecret, user)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to generate token")
		respondDetail(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	s.metrics.RecordLogin()
	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User logged in")

	c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (s *Server) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondDetail(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	user, err := s.store.CreateUser(req.Email, req.Password, req.FullName, req.PhoneNumber, req.Address, models.RoleUser)
	if err != nil {
		if errors.Is(err, ErrDuplicate) {
			respondDetail(c, http.StatusBadRequest, "Email already registered")
			return
		}
		s.logger.Error().Err(err).Msg("Failed to create user")
		respondDetail(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User registered")

	c.JSON(http.StatusCreated, user)
}

func (s *Server) getCurrentUser(c *gin.Context) {
	claims, exists := GetClaims(c)
	if !exists {
		respondDetail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	user, err := s.store.UserByID(claims.UserID)
	if err != nil {
		respondDetail(c, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	c.JSON(http.StatusOK, user)
}
