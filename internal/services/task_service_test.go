package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"maintdesk/internal/models"
)

type fakeTaskRepo struct {
	nextID  int64
	tasks   map[int64]models.Task
	remarks []models.TaskRemark

	// assignee contacts for ListDueOn
	assignees map[int64]models.User
	// ids whose reminder claim should be lost to a concurrent run
	claimLost map[int64]bool
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{
		tasks:     map[int64]models.Task{},
		assignees: map[int64]models.User{},
		claimLost: map[int64]bool{},
	}
}

func (f *fakeTaskRepo) Store(ctx context.Context, task *models.Task) error {
	f.nextID++
	task.ID = f.nextID
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskRepo) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	t, ok := f.tasks[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeTaskRepo) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	var out []models.Task
	for id := int64(1); id <= f.nextID; id++ {
		t, ok := f.tasks[id]
		if !ok {
			continue
		}
		if filter.AssignedTo != nil && t.AssignedTo != *filter.AssignedTo {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.Category != nil && t.Category != *filter.Category {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, task *models.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return fmt.Errorf("task %d not found", task.ID)
	}
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTaskRepo) ListDueOn(ctx context.Context, date string) ([]models.DueTask, error) {
	var out []models.DueTask
	for id := int64(1); id <= f.nextID; id++ {
		t, ok := f.tasks[id]
		if !ok || t.DueDate == nil || *t.DueDate != date || t.ReminderSentAt != nil {
			continue
		}
		u, ok := f.assignees[t.AssignedTo]
		if !ok || !u.Active {
			continue
		}
		out = append(out, models.DueTask{
			Task:           t,
			AssigneeName:   u.Name,
			AssigneeEmail:  u.Email,
			AssigneeChatID: u.TelegramChatID,
		})
	}
	return out, nil
}

func (f *fakeTaskRepo) ClaimReminder(ctx context.Context, id int64, at time.Time) (bool, error) {
	if f.claimLost[id] {
		return false, nil
	}
	t, ok := f.tasks[id]
	if !ok || t.ReminderSentAt != nil {
		return false, nil
	}
	t.ReminderSentAt = &at
	f.tasks[id] = t
	return true, nil
}

func (f *fakeTaskRepo) AddRemark(ctx context.Context, remark *models.TaskRemark) error {
	remark.ID = int64(len(f.remarks) + 1)
	f.remarks = append(f.remarks, *remark)
	return nil
}

func (f *fakeTaskRepo) ListRemarks(ctx context.Context, taskID int64) ([]models.TaskRemark, error) {
	var out []models.TaskRemark
	for i := len(f.remarks) - 1; i >= 0; i-- {
		if f.remarks[i].TaskID == taskID {
			out = append(out, f.remarks[i])
		}
	}
	return out, nil
}

type fakeUserRepo struct {
	users map[int64]models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = int64(len(f.users) + 1)
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUserRepo) ListActiveAdmins(ctx context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Role == "admin" && u.Active {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakePropertyRepo struct {
	categories map[string]bool
	apartments map[int64]bool
	areas      map[int64]bool
}

func (f *fakePropertyRepo) ListApartments(ctx context.Context) ([]models.Apartment, error) {
	return nil, nil
}
func (f *fakePropertyRepo) StoreApartment(ctx context.Context, apartment *models.Apartment) error {
	return nil
}
func (f *fakePropertyRepo) ApartmentExists(ctx context.Context, id int64) (bool, error) {
	return f.apartments[id], nil
}
func (f *fakePropertyRepo) ListAreas(ctx context.Context) ([]models.Area, error) { return nil, nil }
func (f *fakePropertyRepo) StoreArea(ctx context.Context, area *models.Area) error {
	return nil
}
func (f *fakePropertyRepo) AreaExists(ctx context.Context, id int64) (bool, error) {
	return f.areas[id], nil
}
func (f *fakePropertyRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	return nil, nil
}
func (f *fakePropertyRepo) StoreCategory(ctx context.Context, category *models.Category) error {
	return nil
}
func (f *fakePropertyRepo) CategoryExists(ctx context.Context, name string) (bool, error) {
	return f.categories[name], nil
}

var (
	adminActor = models.Actor{ID: 1, Role: "admin", Name: "Admin"}
	samActor   = models.Actor{ID: 2, Role: "staff", Name: "Sam"}
	kimActor   = models.Actor{ID: 3, Role: "staff", Name: "Kim"}
)

func newTaskServiceForTest() (TaskService, *fakeTaskRepo) {
	repo := newFakeTaskRepo()
	users := &fakeUserRepo{users: map[int64]models.User{
		1: {ID: 1, Name: "Admin", Email: "admin@example.com", Role: "admin", Active: true},
		2: {ID: 2, Name: "Sam", Email: "sam@example.com", Role: "staff", Active: true},
		3: {ID: 3, Name: "Kim", Email: "kim@example.com", Role: "staff", Active: true},
	}}
	props := &fakePropertyRepo{categories: map[string]bool{"Plumbing": true, "HVAC": true}}
	return NewTaskService(repo, users, props), repo
}

func validTask(assignee int64) *models.Task {
	return &models.Task{
		Title:      "Fix boiler leak",
		Category:   "Plumbing",
		TaskType:   models.TypeCorrective,
		Status:     models.StatusOpen,
		Priority:   models.PriorityHigh,
		AssignedTo: assignee,
	}
}

func strPtr(s string) *string                          { return &s }
func statusPtr(s models.TaskStatus) *models.TaskStatus { return &s }

func TestCreateTaskRequiresAdmin(t *testing.T) {
	svc, _ := newTaskServiceForTest()

	_, err := svc.Create(context.Background(), samActor, validTask(2))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	svc, _ := newTaskServiceForTest()
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*models.Task)
	}{
		{"missing title", func(task *models.Task) { task.Title = "  " }},
		{"missing category", func(task *models.Task) { task.Category = "" }},
		{"missing status", func(task *models.Task) { task.Status = "" }},
		{"missing assignee", func(task *models.Task) { task.AssignedTo = 0 }},
		{"unknown status", func(task *models.Task) { task.Status = "done" }},
		{"unknown priority", func(task *models.Task) { task.Priority = "urgent" }},
		{"unknown task type", func(task *models.Task) { task.TaskType = "inspection" }},
		{"unknown category", func(task *models.Task) { task.Category = "Carpentry" }},
		{"bad due date", func(task *models.Task) { task.DueDate = strPtr("tomorrow") }},
		{"nonexistent assignee", func(task *models.Task) { task.AssignedTo = 99 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			task := validTask(2)
			tc.mutate(task)
			if _, err := svc.Create(ctx, adminActor, task); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCreateTaskStampsCompletedAtWhenCreatedCompleted(t *testing.T) {
	svc, _ := newTaskServiceForTest()

	task := validTask(2)
	task.Status = models.StatusCompleted
	created, err := svc.Create(context.Background(), adminActor, task)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.CompletedAt == nil {
		t.Fatal("expected completed_at to be stamped at creation")
	}
	if created.CreatedBy != adminActor.ID {
		t.Fatalf("expected created_by %d, got %d", adminActor.ID, created.CreatedBy)
	}
}

func TestGetByIDVisibility(t *testing.T) {
	svc, _ := newTaskServiceForTest()
	ctx := context.Background()

	created, err := svc.Create(ctx, adminActor, validTask(2))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.GetByID(ctx, samActor, created.ID); err != nil {
		t.Fatalf("assignee should see own task: %v", err)
	}
	if _, err := svc.GetByID(ctx, adminActor, created.ID); err != nil {
		t.Fatalf("admin should see any task: %v", err)
	}
	if _, err := svc.GetByID(ctx, kimActor, created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other staff: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.GetByID(ctx, adminActor, 777); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing task: expected ErrNotFound, got %v", err)
	}
}

func TestListScopesStaffToOwnTasks(t *testing.T) {
	svc, _ := newTaskServiceForTest()
	ctx := context.Background()

	if _, err := svc.Create(ctx, adminActor, validTask(2)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, adminActor, validTask(3)); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := svc.List(ctx, adminActor, models.TaskFilter{})
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin should see both tasks, got %d", len(all))
	}

	mine, err := svc.List(ctx, samActor, models.TaskFilter{})
	if err != nil {
		t.Fatalf("staff list: %v", err)
	}
	if len(mine) != 1 || mine[0].AssignedTo != samActor.ID {
		t.Fatalf("staff should only see their own task, got %+v", mine)
	}
}

func TestUpdateStampsCompletedAtOnce(t *testing.T) {
	svc, _ := newTaskServiceForTest()
	ctx := context.Background()

	created, err := svc.Create(ctx, adminActor, validTask(2))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	done, err := svc.Update(ctx, samActor, created.ID, models.TaskUpdate{Status: statusPtr(models.StatusCompleted)})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.CompletedAt == nil {
		t.Fatal("expected completed_at after entering completed")
	}
	firstStamp := *done.CompletedAt

	reopened, err := svc.Update(ctx, samActor, created.ID, models.TaskUpdate{Status: statusPtr(models.StatusOpen)})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.CompletedAt == nil || !reopened.CompletedAt.Equal(firstStamp) {
		t.Fatalf("reopening must keep the old completed_at stamp, got %v", reopened.CompletedAt)
	}

	redone, err := svc.Update(ctx, samActor, created.ID, models.TaskUpdate{Status: statusPtr(models.StatusCompleted)})
	if err != nil {
		t.Fatalf("re-complete: %v", err)
	}
	if redone.CompletedAt == nil || redone.CompletedAt.Before(firstStamp) {
		t.Fatalf("re-entering completed should restamp, got %v", redone.CompletedAt)
	}
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTaskServiceForTest()
	ctx := context.Background()

	created, err := svc.Create(ctx, adminActor, validTask(2))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Update(ctx, samActor, created.ID, models.TaskUpdate{Status: statusPtr("paused")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestUpdateClearsDueDateOnEmptyString(t *testing.T) {
	svc, _ := newTaskServiceForTest()
	ctx := context.Background()

	task := validTask(2)
	task.DueDate = strPtr("2026-09-10")
	created, err := svc.Create(ctx, adminActor, task)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, adminActor, created.ID, models.TaskUpdate{DueDate: strPtr("")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.DueDate != nil {
		t.Fatalf("expected due_date cleared, got %q", *updated.DueDate)
	}
}

func TestUpdateForbiddenForOtherStaff(t *testing.T) {
	svc, _ := newTaskServiceForTest()
	ctx := context.Background()

	created, err := svc.Create(ctx, adminActor, validTask(2))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Update(ctx, kimActor, created.ID, models.TaskUpdate{Status: statusPtr(models.StatusBlocked)}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRemarkThread(t *testing.T) {
	svc, _ := newTaskServiceForTest()
	ctx := context.Background()

	created, err := svc.Create(ctx, adminActor, validTask(2))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.AddRemark(ctx, samActor, created.ID, "   "); !errors.Is(err, ErrValidation) {
		t.Fatalf("blank message: expected ErrValidation, got %v", err)
	}
	if _, err := svc.AddRemark(ctx, kimActor, created.ID, "hi"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("other staff: expected ErrForbidden, got %v", err)
	}

	if _, err := svc.AddRemark(ctx, samActor, created.ID, "ordered the part"); err != nil {
		t.Fatalf("add remark: %v", err)
	}
	if _, err := svc.AddRemark(ctx, adminActor, created.ID, "part arrived"); err != nil {
		t.Fatalf("add remark: %v", err)
	}

	remarks, err := svc.ListRemarks(ctx, samActor, created.ID)
	if err != nil {
		t.Fatalf("list remarks: %v", err)
	}
	if len(remarks) != 2 {
		t.Fatalf("expected 2 remarks, got %d", len(remarks))
	}
	if remarks[0].Message != "part arrived" {
		t.Fatalf("expected newest remark first, got %q", remarks[0].Message)
	}
	if remarks[1].UserID != samActor.ID {
		t.Fatalf("expected remark author %d, got %d", samActor.ID, remarks[1].UserID)
	}
}
