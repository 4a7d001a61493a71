package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"

	"maintdesk/internal/authz"
	"maintdesk/internal/db"
	"maintdesk/internal/middleware"
	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
	"maintdesk/internal/services"
)

// testAuth stands in for the JWT middleware: the caller identity comes from
// request headers instead of a token.
func testAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := strconv.ParseInt(c.GetHeader("X-Test-User"), 10, 64)
		c.Set("user_id", id)
		c.Set("role", c.GetHeader("X-Test-Role"))
		c.Set("name", c.GetHeader("X-Test-Name"))
		c.Next()
	}
}

type taskAPI struct {
	router *gin.Engine
	samID  int64
	kimID  int64
}

func newTaskAPI(t *testing.T) *taskAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, err := db.Open(filepath.Join(t.TempDir(), "maintdesk.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	userRepo := repositories.NewUserRepository(sqlDB)
	taskRepo := repositories.NewTaskRepository(sqlDB)
	propRepo := repositories.NewPropertyRepository(sqlDB)

	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, userRepo, propRepo)
	handler := NewTaskHandler(taskService, userService, nil)

	ctx := context.Background()
	sam := &models.User{Name: "Sam", Email: "sam@example.com", Role: "staff", Active: true}
	if err := userService.CreateUser(ctx, sam, "secret12"); err != nil {
		t.Fatalf("create sam: %v", err)
	}
	kim := &models.User{Name: "Kim", Email: "kim@example.com", Role: "staff", Active: true}
	if err := userService.CreateUser(ctx, kim, "secret12"); err != nil {
		t.Fatalf("create kim: %v", err)
	}

	r := gin.New()
	r.Use(testAuth())
	adminOnly := middleware.RequireRoles(authz.RoleAdmin)
	tasks := r.Group("/api/tasks")
	{
		tasks.GET("", handler.List)
		tasks.POST("", adminOnly, handler.Create)
		tasks.GET("/:id", handler.GetByID)
		tasks.PATCH("/:id", handler.Update)
		tasks.POST("/:id/remarks", handler.AddRemark)
		tasks.GET("/:id/remarks", handler.ListRemarks)
	}

	return &taskAPI{router: r, samID: sam.ID, kimID: kim.ID}
}

func (a *taskAPI) do(t *testing.T, method, path string, body any, userID int64, role string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", strconv.FormatInt(userID, 10))
	req.Header.Set("X-Test-Role", role)
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	api := newTaskAPI(t)

	// admin creates a task for Sam
	create := map[string]any{
		"title":       "Replace lobby light",
		"category":    "Electrical",
		"task_type":   "corrective",
		"status":      "open",
		"priority":    "medium",
		"due_date":    "2026-09-05",
		"assigned_to": api.samID,
	}
	w := api.do(t, http.MethodPost, "/api/tasks", create, 1, "admin")
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	path := fmt.Sprintf("/api/tasks/%d", created.ID)

	// the assignee sees it
	if w := api.do(t, http.MethodGet, path, nil, api.samID, "staff"); w.Code != http.StatusOK {
		t.Fatalf("assignee get: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// other staff does not
	if w := api.do(t, http.MethodGet, path, nil, api.kimID, "staff"); w.Code != http.StatusForbidden {
		t.Fatalf("other staff get: expected 403, got %d", w.Code)
	}

	// the assignee completes it
	w = api.do(t, http.MethodPatch, path, map[string]any{"status": "completed", "hours_spent": 1.5}, api.samID, "staff")
	if w.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = api.do(t, http.MethodGet, path, nil, 1, "admin")
	if w.Code != http.StatusOK {
		t.Fatalf("admin get: expected 200, got %d", w.Code)
	}
	var got struct {
		Task models.Task `json:"task"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode task: %v", err)
	}
	if got.Task.Status != models.StatusCompleted {
		t.Fatalf("expected completed, got %s", got.Task.Status)
	}
	if got.Task.CompletedAt == nil {
		t.Fatal("expected completed_at in response")
	}
	if got.Task.HoursSpent == nil || *got.Task.HoursSpent != 1.5 {
		t.Fatalf("expected hours_spent 1.5, got %v", got.Task.HoursSpent)
	}
}

func TestTaskCreateForbiddenForStaff(t *testing.T) {
	api := newTaskAPI(t)

	w := api.do(t, http.MethodPost, "/api/tasks", map[string]any{"title": "x"}, api.samID, "staff")
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 from role middleware, got %d", w.Code)
	}
}

func TestTaskCreateRejectsUnknownCategory(t *testing.T) {
	api := newTaskAPI(t)

	create := map[string]any{
		"title":       "Paint fence",
		"category":    "Carpentry",
		"task_type":   "preventive",
		"status":      "open",
		"priority":    "low",
		"assigned_to": api.samID,
	}
	w := api.do(t, http.MethodPost, "/api/tasks", create, 1, "admin")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTaskListScopedByRole(t *testing.T) {
	api := newTaskAPI(t)

	for _, assignee := range []int64{api.samID, api.kimID} {
		create := map[string]any{
			"title":       "Check extinguishers",
			"category":    "Security",
			"task_type":   "preventive",
			"status":      "open",
			"priority":    "low",
			"assigned_to": assignee,
		}
		if w := api.do(t, http.MethodPost, "/api/tasks", create, 1, "admin"); w.Code != http.StatusCreated {
			t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
		}
	}

	var listed struct {
		Tasks []models.Task `json:"tasks"`
	}

	w := api.do(t, http.MethodGet, "/api/tasks", nil, 1, "admin")
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Tasks) != 2 {
		t.Fatalf("admin should list both tasks, got %d", len(listed.Tasks))
	}

	w = api.do(t, http.MethodGet, "/api/tasks", nil, api.kimID, "staff")
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listed.Tasks) != 1 || listed.Tasks[0].AssignedTo != api.kimID {
		t.Fatalf("staff should only list their own task, got %+v", listed.Tasks)
	}
}

func TestRemarkThreadOverHTTP(t *testing.T) {
	api := newTaskAPI(t)

	create := map[string]any{
		"title":       "Bleed radiators",
		"category":    "HVAC",
		"task_type":   "preventive",
		"status":      "open",
		"priority":    "low",
		"assigned_to": api.samID,
	}
	w := api.do(t, http.MethodPost, "/api/tasks", create, 1, "admin")
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	path := fmt.Sprintf("/api/tasks/%d/remarks", created.ID)

	if w := api.do(t, http.MethodPost, path, map[string]any{"message": "started on floor 2"}, api.samID, "staff"); w.Code != http.StatusCreated {
		t.Fatalf("add remark: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if w := api.do(t, http.MethodPost, path, map[string]any{"message": "  "}, api.samID, "staff"); w.Code != http.StatusBadRequest {
		t.Fatalf("blank remark: expected 400, got %d", w.Code)
	}
	if w := api.do(t, http.MethodPost, path, map[string]any{"message": "hi"}, api.kimID, "staff"); w.Code != http.StatusForbidden {
		t.Fatalf("other staff remark: expected 403, got %d", w.Code)
	}

	w = api.do(t, http.MethodGet, path, nil, api.samID, "staff")
	if w.Code != http.StatusOK {
		t.Fatalf("list remarks: expected 200, got %d", w.Code)
	}
	var listed struct {
		Remarks []models.TaskRemark `json:"remarks"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode remarks: %v", err)
	}
	if len(listed.Remarks) != 1 || listed.Remarks[0].Message != "started on floor 2" {
		t.Fatalf("unexpected remarks %+v", listed.Remarks)
	}
}
