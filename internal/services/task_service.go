package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"maintdesk/internal/authz"
	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
)

// TaskService owns the task lifecycle: creation, role-scoped reads, partial
// updates and the remark thread.
type TaskService interface {
	Create(ctx context.Context, actor models.Actor, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, actor models.Actor, id int64) (*models.Task, error)
	List(ctx context.Context, actor models.Actor, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, actor models.Actor, id int64, patch models.TaskUpdate) (*models.Task, error)
	AddRemark(ctx context.Context, actor models.Actor, taskID int64, message string) (*models.TaskRemark, error)
	ListRemarks(ctx context.Context, actor models.Actor, taskID int64) ([]models.TaskRemark, error)
}

type taskService struct {
	repo       repositories.TaskRepository
	users      repositories.UserRepository
	properties repositories.PropertyRepository
}

// NewTaskService creates a new instance of TaskService.
func NewTaskService(repo repositories.TaskRepository, users repositories.UserRepository, properties repositories.PropertyRepository) TaskService {
	return &taskService{repo: repo, users: users, properties: properties}
}

func isKnownStatus(s models.TaskStatus) bool {
	switch s {
	case models.StatusOpen, models.StatusInProgress, models.StatusCompleted, models.StatusBlocked:
		return true
	}
	return false
}

func isKnownPriority(p models.TaskPriority) bool {
	switch p {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
		return true
	}
	return false
}

func isKnownType(t models.TaskType) bool {
	switch t {
	case models.TypePreventive, models.TypeCorrective:
		return true
	}
	return false
}

// validDate accepts calendar dates in YYYY-MM-DD form.
func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func (s *taskService) Create(ctx context.Context, actor models.Actor, task *models.Task) (*models.Task, error) {
	if !authz.IsAdmin(actor.Role) {
		return nil, fmt.Errorf("only admins may create tasks: %w", ErrForbidden)
	}

	switch {
	case strings.TrimSpace(task.Title) == "":
		return nil, fmt.Errorf("title is required: %w", ErrValidation)
	case strings.TrimSpace(task.Category) == "":
		return nil, fmt.Errorf("category is required: %w", ErrValidation)
	case task.TaskType == "":
		return nil, fmt.Errorf("task_type is required: %w", ErrValidation)
	case task.Status == "":
		return nil, fmt.Errorf("status is required: %w", ErrValidation)
	case task.Priority == "":
		return nil, fmt.Errorf("priority is required: %w", ErrValidation)
	case task.AssignedTo == 0:
		return nil, fmt.Errorf("assigned_to is required: %w", ErrValidation)
	}
	if !isKnownType(task.TaskType) {
		return nil, fmt.Errorf("unknown task_type %q: %w", task.TaskType, ErrValidation)
	}
	if !isKnownStatus(task.Status) {
		return nil, fmt.Errorf("unknown status %q: %w", task.Status, ErrValidation)
	}
	if !isKnownPriority(task.Priority) {
		return nil, fmt.Errorf("unknown priority %q: %w", task.Priority, ErrValidation)
	}
	if task.DueDate != nil && !validDate(*task.DueDate) {
		return nil, fmt.Errorf("invalid due_date (YYYY-MM-DD): %w", ErrValidation)
	}
	if task.ScheduledDate != nil && !validDate(*task.ScheduledDate) {
		return nil, fmt.Errorf("invalid scheduled_date (YYYY-MM-DD): %w", ErrValidation)
	}

	known, err := s.properties.CategoryExists(ctx, task.Category)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, fmt.Errorf("unknown category %q: %w", task.Category, ErrValidation)
	}

	assignee, err := s.users.GetByID(ctx, task.AssignedTo)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, fmt.Errorf("assignee %d does not exist: %w", task.AssignedTo, ErrValidation)
	}

	task.CreatedBy = actor.ID
	task.CreatedAt = time.Now()
	if task.Status == models.StatusCompleted {
		now := task.CreatedAt
		task.CompletedAt = &now
	}

	if err := s.repo.Store(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// canAccess applies the one visibility rule: admins see everything, staff
// only what is assigned to them.
func canAccess(actor models.Actor, task *models.Task) bool {
	return authz.IsAdmin(actor.Role) || task.AssignedTo == actor.ID
}

func (s *taskService) GetByID(ctx context.Context, actor models.Actor, id int64) (*models.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if !canAccess(actor, task) {
		return nil, fmt.Errorf("task %d: %w", id, ErrForbidden)
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, actor models.Actor, filter models.TaskFilter) ([]models.Task, error) {
	if !authz.IsAdmin(actor.Role) {
		uid := actor.ID
		filter.AssignedTo = &uid
	}
	return s.repo.FindAll(ctx, filter)
}

// Update applies a partial update. Only status, hours_spent, cost_amount,
// due_date and priority are mutable; everything else is fixed at creation.
//
// Status transitions are deliberately unconstrained: any known status may
// replace any other. Entering "completed" stamps completed_at; leaving it
// keeps the old stamp.
func (s *taskService) Update(ctx context.Context, actor models.Actor, id int64, patch models.TaskUpdate) (*models.Task, error) {
	task, err := s.GetByID(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if patch.Status != nil {
		if !isKnownStatus(*patch.Status) {
			return nil, fmt.Errorf("unknown status %q: %w", *patch.Status, ErrValidation)
		}
		if *patch.Status == models.StatusCompleted && task.Status != models.StatusCompleted {
			now := time.Now()
			task.CompletedAt = &now
		}
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !isKnownPriority(*patch.Priority) {
			return nil, fmt.Errorf("unknown priority %q: %w", *patch.Priority, ErrValidation)
		}
		task.Priority = *patch.Priority
	}
	if patch.DueDate != nil {
		if *patch.DueDate == "" {
			task.DueDate = nil
		} else {
			if !validDate(*patch.DueDate) {
				return nil, fmt.Errorf("invalid due_date (YYYY-MM-DD): %w", ErrValidation)
			}
			task.DueDate = patch.DueDate
		}
	}
	if patch.HoursSpent != nil {
		task.HoursSpent = patch.HoursSpent
	}
	if patch.CostAmount != nil {
		task.CostAmount = patch.CostAmount
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) AddRemark(ctx context.Context, actor models.Actor, taskID int64, message string) (*models.TaskRemark, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("message is required: %w", ErrValidation)
	}
	// access is enforced through the task lookup
	if _, err := s.GetByID(ctx, actor, taskID); err != nil {
		return nil, err
	}

	remark := &models.TaskRemark{
		TaskID:    taskID,
		UserID:    actor.ID,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.repo.AddRemark(ctx, remark); err != nil {
		return nil, err
	}
	return remark, nil
}

func (s *taskService) ListRemarks(ctx context.Context, actor models.Actor, taskID int64) ([]models.TaskRemark, error) {
	// same rule as GetByID, applied through the task lookup
	if _, err := s.GetByID(ctx, actor, taskID); err != nil {
		return nil, err
	}
	return s.repo.ListRemarks(ctx, taskID)
}
