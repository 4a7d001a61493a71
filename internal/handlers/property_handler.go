package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
)

// PropertyHandler serves the building registry lookups: categories,
// apartments and common areas. Thin enough to sit directly on the repo.
type PropertyHandler struct {
	repo repositories.PropertyRepository
}

func NewPropertyHandler(repo repositories.PropertyRepository) *PropertyHandler {
	return &PropertyHandler{repo: repo}
}

// @Summary      List categories
// @Tags         Registry
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/categories [get]
func (h *PropertyHandler) ListCategories(c *gin.Context) {
	categories, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		log.Printf("[registry][categories][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if categories == nil {
		categories = []models.Category{}
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// @Summary      Create a category
// @Tags         Registry
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/categories [post]
func (h *PropertyHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := &models.Category{Name: req.Name}
	if err := h.repo.StoreCategory(c.Request.Context(), category); err != nil {
		log.Printf("[registry][categories][create][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "category already exists"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": category.ID})
}

// @Summary      List apartments
// @Tags         Registry
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/apartments [get]
func (h *PropertyHandler) ListApartments(c *gin.Context) {
	apartments, err := h.repo.ListApartments(c.Request.Context())
	if err != nil {
		log.Printf("[registry][apartments][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if apartments == nil {
		apartments = []models.Apartment{}
	}
	c.JSON(http.StatusOK, gin.H{"apartments": apartments})
}

// @Summary      Create an apartment
// @Tags         Registry
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/apartments [post]
func (h *PropertyHandler) CreateApartment(c *gin.Context) {
	var req struct {
		Number string `json:"number" binding:"required"`
		Floor  int    `json:"floor"`
		Notes  string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	apartment := &models.Apartment{Number: req.Number, Floor: req.Floor, Notes: req.Notes}
	if err := h.repo.StoreApartment(c.Request.Context(), apartment); err != nil {
		log.Printf("[registry][apartments][create][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": apartment.ID})
}

// @Summary      List areas
// @Tags         Registry
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/areas [get]
func (h *PropertyHandler) ListAreas(c *gin.Context) {
	areas, err := h.repo.ListAreas(c.Request.Context())
	if err != nil {
		log.Printf("[registry][areas][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if areas == nil {
		areas = []models.Area{}
	}
	c.JSON(http.StatusOK, gin.H{"areas": areas})
}

// @Summary      Create an area
// @Tags         Registry
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/areas [post]
func (h *PropertyHandler) CreateArea(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Notes string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	area := &models.Area{Name: req.Name, Notes: req.Notes}
	if err := h.repo.StoreArea(c.Request.Context(), area); err != nil {
		log.Printf("[registry][areas][create][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": area.ID})
}
