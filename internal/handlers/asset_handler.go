package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"maintdesk/internal/models"
	"maintdesk/internal/services"
)

type AssetHandler struct {
	service services.AssetService
}

func NewAssetHandler(service services.AssetService) *AssetHandler {
	return &AssetHandler{service: service}
}

// @Summary      Register an asset
// @Tags         Assets
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/assets [post]
func (h *AssetHandler) Create(c *gin.Context) {
	actor := getActor(c)
	log.Printf("[asset][create] call by userID=%d", actor.ID)

	var req struct {
		Name            string          `json:"name"`
		Category        string          `json:"category"`
		AreaType        models.AreaType `json:"area_type"`
		ApartmentID     *int64          `json:"apartment_id"`
		AreaID          *int64          `json:"area_id"`
		ContractorID    *int64          `json:"contractor_id"`
		LastServiceDate *string         `json:"last_service_date"`
		IntervalDays    *int64          `json:"interval_days"`
		NextDueDate     *string         `json:"next_due_date"`
		Notes           string          `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[asset][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	asset := &models.Asset{
		Name:            req.Name,
		Category:        req.Category,
		AreaType:        req.AreaType,
		ApartmentID:     req.ApartmentID,
		AreaID:          req.AreaID,
		ContractorID:    req.ContractorID,
		LastServiceDate: req.LastServiceDate,
		IntervalDays:    req.IntervalDays,
		NextDueDate:     req.NextDueDate,
		Notes:           req.Notes,
	}
	created, err := h.service.Create(c.Request.Context(), asset)
	if err != nil {
		log.Printf("[asset][create][err] %v", err)
		respondError(c, err)
		return
	}
	log.Printf("[asset][create][ok] id=%d name=%q", created.ID, created.Name)
	c.JSON(http.StatusCreated, gin.H{"id": created.ID})
}

// @Summary      List assets
// @Tags         Assets
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/assets [get]
func (h *AssetHandler) List(c *gin.Context) {
	assets, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Printf("[asset][list][err] %v", err)
		respondError(c, err)
		return
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	c.JSON(http.StatusOK, gin.H{"assets": assets})
}

// @Summary      Get an asset
// @Tags         Assets
// @Produce      json
// @Param        id  path  int  true  "asset id"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	asset, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[asset][getByID][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// @Summary      Update an asset
// @Description  Partial update of service planning fields
// @Tags         Assets
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "asset id"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Router       /api/assets/{id} [patch]
func (h *AssetHandler) Update(c *gin.Context) {
	actor := getActor(c)
	log.Printf("[asset][update] call by userID=%d id_param=%s", actor.ID, c.Param("id"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var patch models.AssetUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		log.Printf("[asset][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.service.Update(c.Request.Context(), id, patch); err != nil {
		log.Printf("[asset][update][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	log.Printf("[asset][update][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
