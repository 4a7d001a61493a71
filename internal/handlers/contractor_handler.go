package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"maintdesk/internal/models"
	"maintdesk/internal/services"
)

type ContractorHandler struct {
	service services.ContractorService
}

func NewContractorHandler(service services.ContractorService) *ContractorHandler {
	return &ContractorHandler{service: service}
}

// @Summary      Register a contractor
// @Tags         Contractors
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/contractors [post]
func (h *ContractorHandler) Create(c *gin.Context) {
	actor := getActor(c)
	log.Printf("[contractor][create] call by userID=%d", actor.ID)

	var req struct {
		Name      string `json:"name"`
		Phone     string `json:"phone"`
		Email     string `json:"email"`
		Specialty string `json:"specialty"`
		Notes     string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[contractor][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contractor := &models.Contractor{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     req.Email,
		Specialty: req.Specialty,
		Notes:     req.Notes,
	}
	created, err := h.service.Create(c.Request.Context(), contractor)
	if err != nil {
		log.Printf("[contractor][create][err] %v", err)
		respondError(c, err)
		return
	}
	log.Printf("[contractor][create][ok] id=%d name=%q", created.ID, created.Name)
	c.JSON(http.StatusCreated, gin.H{"id": created.ID})
}

// @Summary      List contractors
// @Tags         Contractors
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/contractors [get]
func (h *ContractorHandler) List(c *gin.Context) {
	contractors, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Printf("[contractor][list][err] %v", err)
		respondError(c, err)
		return
	}
	if contractors == nil {
		contractors = []models.Contractor{}
	}
	c.JSON(http.StatusOK, gin.H{"contractors": contractors})
}

// @Summary      Get a contractor
// @Tags         Contractors
// @Produce      json
// @Param        id  path  int  true  "contractor id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/contractors/{id} [get]
func (h *ContractorHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	contractor, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[contractor][getByID][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contractor": contractor})
}

// @Summary      Update a contractor
// @Tags         Contractors
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "contractor id"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Router       /api/contractors/{id} [patch]
func (h *ContractorHandler) Update(c *gin.Context) {
	actor := getActor(c)
	log.Printf("[contractor][update] call by userID=%d id_param=%s", actor.ID, c.Param("id"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var patch services.ContractorUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		log.Printf("[contractor][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.service.Update(c.Request.Context(), id, patch); err != nil {
		log.Printf("[contractor][update][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary      Review a contractor
// @Description  Appends a 1..5 star review; reviews are never edited
// @Tags         Contractors
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "contractor id"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/contractors/{id}/reviews [post]
func (h *ContractorHandler) AddReview(c *gin.Context) {
	actor := getActor(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[contractor][review][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.service.AddReview(c.Request.Context(), actor, id, req.Rating, req.Comment)
	if err != nil {
		log.Printf("[contractor][review][err] contractor=%d: %v", id, err)
		respondError(c, err)
		return
	}
	log.Printf("[contractor][review][ok] contractor=%d review=%d rating=%d", id, review.ID, review.Rating)
	c.JSON(http.StatusCreated, gin.H{"id": review.ID})
}

// @Summary      List contractor reviews
// @Tags         Contractors
// @Produce      json
// @Param        id  path  int  true  "contractor id"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/contractors/{id}/reviews [get]
func (h *ContractorHandler) ListReviews(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	reviews, err := h.service.ListReviews(c.Request.Context(), id)
	if err != nil {
		log.Printf("[contractor][reviews][err] contractor=%d: %v", id, err)
		respondError(c, err)
		return
	}
	if reviews == nil {
		reviews = []models.ContractorReview{}
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
