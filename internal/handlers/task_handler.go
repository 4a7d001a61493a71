package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"maintdesk/internal/models"
	"maintdesk/internal/services"
)

type TaskHandler struct {
	service services.TaskService
	users   services.UserService
	tg      *services.TelegramService
}

func NewTaskHandler(service services.TaskService, users services.UserService, tg *services.TelegramService) *TaskHandler {
	return &TaskHandler{service: service, users: users, tg: tg}
}

// @Summary      Create a task
// @Description  Creates a maintenance task; admin only
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	actor := getActor(c)
	log.Printf("[task][create] call by userID=%d role=%s", actor.ID, actor.Role)

	var req struct {
		Title          string              `json:"title"`
		Description    string              `json:"description"`
		Category       string              `json:"category"`
		TaskType       models.TaskType     `json:"task_type"`
		Status         models.TaskStatus   `json:"status"`
		Priority       models.TaskPriority `json:"priority"`
		DueDate        *string             `json:"due_date"`
		ScheduledDate  *string             `json:"scheduled_date"`
		AssignedTo     int64               `json:"assigned_to"`
		ApartmentID    *int64              `json:"apartment_id"`
		AreaID         *int64              `json:"area_id"`
		AssetID        *int64              `json:"asset_id"`
		EstimatedHours *float64            `json:"estimated_hours"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task := &models.Task{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		TaskType:       req.TaskType,
		Status:         req.Status,
		Priority:       req.Priority,
		DueDate:        req.DueDate,
		ScheduledDate:  req.ScheduledDate,
		AssignedTo:     req.AssignedTo,
		ApartmentID:    req.ApartmentID,
		AreaID:         req.AreaID,
		AssetID:        req.AssetID,
		EstimatedHours: req.EstimatedHours,
	}

	created, err := h.service.Create(c.Request.Context(), actor, task)
	if err != nil {
		log.Printf("[task][create][err] %v", err)
		respondError(c, err)
		return
	}
	log.Printf("[task][create][ok] id=%d assigned_to=%d title=%q", created.ID, created.AssignedTo, created.Title)
	c.JSON(http.StatusCreated, gin.H{"id": created.ID})

	h.notifyAssignee(c, created)
}

// @Summary      List tasks
// @Description  Admins see every task, staff only their own; optional status and category filters
// @Tags         Tasks
// @Produce      json
// @Param        status    query  string  false  "exact status"
// @Param        category  query  string  false  "exact category"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	actor := getActor(c)
	log.Printf("[task][list] call by userID=%d role=%s q=%v", actor.ID, actor.Role, c.Request.URL.RawQuery)

	var filter models.TaskFilter
	if v, ok := c.GetQuery("status"); ok {
		st := models.TaskStatus(v)
		filter.Status = &st
	}
	if v, ok := c.GetQuery("category"); ok {
		category := v
		filter.Category = &category
	}

	tasks, err := h.service.List(c.Request.Context(), actor, filter)
	if err != nil {
		log.Printf("[task][list][err] %v", err)
		respondError(c, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	log.Printf("[task][list][ok] count=%d", len(tasks))
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

// @Summary      Get a task
// @Tags         Tasks
// @Produce      json
// @Param        id  path  int  true  "task id"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) GetByID(c *gin.Context) {
	actor := getActor(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Printf("[task][getByID][err] invalid id: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	task, err := h.service.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		log.Printf("[task][getByID][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	log.Printf("[task][getByID][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"task": task})
}

// @Summary      Update a task
// @Description  Partial update of status, hours_spent, cost_amount, due_date, priority
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "task id"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/tasks/{id} [patch]
func (h *TaskHandler) Update(c *gin.Context) {
	actor := getActor(c)
	log.Printf("[task][update] call by userID=%d role=%s id_param=%s", actor.ID, actor.Role, c.Param("id"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Printf("[task][update][err] invalid id: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var patch models.TaskUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.service.Update(c.Request.Context(), actor, id, patch); err != nil {
		log.Printf("[task][update][err] id=%d: %v", id, err)
		respondError(c, err)
		return
	}
	log.Printf("[task][update][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// @Summary      Add a remark
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        id  path  int  true  "task id"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/tasks/{id}/remarks [post]
func (h *TaskHandler) AddRemark(c *gin.Context) {
	actor := getActor(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Printf("[task][remark][err] invalid id: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][remark][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	remark, err := h.service.AddRemark(c.Request.Context(), actor, id, req.Message)
	if err != nil {
		log.Printf("[task][remark][err] task=%d: %v", id, err)
		respondError(c, err)
		return
	}
	log.Printf("[task][remark][ok] task=%d remark=%d", id, remark.ID)
	c.JSON(http.StatusCreated, gin.H{"id": remark.ID})
}

// @Summary      List remarks
// @Description  Remark thread for a task, newest first
// @Tags         Tasks
// @Produce      json
// @Param        id  path  int  true  "task id"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/tasks/{id}/remarks [get]
func (h *TaskHandler) ListRemarks(c *gin.Context) {
	actor := getActor(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Printf("[task][remarks][err] invalid id: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	remarks, err := h.service.ListRemarks(c.Request.Context(), actor, id)
	if err != nil {
		log.Printf("[task][remarks][err] task=%d: %v", id, err)
		respondError(c, err)
		return
	}
	if remarks == nil {
		remarks = []models.TaskRemark{}
	}
	c.JSON(http.StatusOK, gin.H{"remarks": remarks})
}

func (h *TaskHandler) notifyAssignee(c *gin.Context, task *models.Task) {
	if h.tg == nil || task == nil {
		return
	}
	assignee, err := h.users.GetUserByID(c.Request.Context(), task.AssignedTo)
	if err != nil {
		log.Printf("[task][notify][err] assignee=%d: %v", task.AssignedTo, err)
		return
	}
	h.tg.NotifyTaskAssigned(assignee.TelegramChatID, task)
}
