package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"maintdesk/internal/middleware"
	"maintdesk/internal/models"
	"maintdesk/internal/services"
)

type AuthHandler struct {
	userService services.UserService
	jwtKey      []byte
	tokenTTL    time.Duration
}

func NewAuthHandler(userService services.UserService, jwtKey []byte, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{userService: userService, jwtKey: jwtKey, tokenTTL: tokenTTL}
}

// @Summary      Log in
// @Description  Authenticates a user and returns a bearer token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[auth][login][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	email := strings.TrimSpace(req.Email)
	log.Printf("[auth][login] attempt email=%q", email)

	user, err := h.userService.Authenticate(c.Request.Context(), email, req.Password)
	if err != nil {
		log.Printf("[auth][login][err] email=%q: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if user == nil {
		log.Printf("[auth][login][deny] email=%q", email)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	claims := &middleware.Claims{
		UserID: user.ID,
		Role:   user.Role,
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(h.jwtKey)
	if err != nil {
		log.Printf("[auth][login][err] sign token userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	log.Printf("[auth][login][ok] userID=%d role=%s", user.ID, user.Role)
	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  user, // PasswordHash is json:"-", наружу не уйдёт
	})
}
