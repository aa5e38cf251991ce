package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"simulado/api/internal/models"
	"simulado/api/internal/repository"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username already exists"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, userResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect username or password"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
	})
}

// Upgrade moves the caller to the premium tier and returns a fresh token
// already carrying the new role.
func (h HandlerSet) Upgrade(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	result, err := h.authService.Upgrade(c.Request.Context(), user)
	if err != nil {
		h.log.Error().Err(err).Str("username", user.Username).Msg("upgrade failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upgrade failed"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
	})
}

func (h HandlerSet) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, userResponse{
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
}

func currentUser(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("current_user")
	if !exists {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_user"})
		return models.User{}, false
	}
	return user, true
}
