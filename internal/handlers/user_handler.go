package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"maintdesk/internal/models"
	"maintdesk/internal/services"
)

type UserHandler struct {
	service services.UserService
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Active   *bool  `json:"active"`
}

func NewUserHandler(service services.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// @Summary      Create a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	actor := getActor(c)
	log.Printf("[user][create] call by userID=%d", actor.ID)

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[user][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	user := &models.User{
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Role:   req.Role,
		Active: active,
	}
	if err := h.service.CreateUser(c.Request.Context(), user, req.Password); err != nil {
		log.Printf("[user][create][err] %v", err)
		respondError(c, err)
		return
	}
	log.Printf("[user][create][ok] id=%d email=%s role=%s", user.ID, user.Email, user.Role)
	c.JSON(http.StatusCreated, gin.H{"id": user.ID})
}

// @Summary      List users
// @Tags         Users
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		log.Printf("[user][list][err] %v", err)
		respondError(c, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// @Summary      Get a user
// @Tags         Users
// @Produce      json
// @Param        id  path  int  true  "user id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	user, err := h.service.GetUserByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[user][getByID][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// @Summary      Update a user
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "user id"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Router       /api/users/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	actor := getActor(c)
	log.Printf("[user][update] call by userID=%d id_param=%s", actor.ID, c.Param("id"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var patch services.UserUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		log.Printf("[user][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.service.UpdateUser(c.Request.Context(), id, patch); err != nil {
		log.Printf("[user][update][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	log.Printf("[user][update][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
