package models

import "time"

// TaskStatus defines the possible statuses for a task.
type TaskStatus string

const (
	StatusOpen       TaskStatus = "open"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
	StatusBlocked    TaskStatus = "blocked"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// TaskType separates planned maintenance from breakage fixes.
type TaskType string

const (
	TypePreventive TaskType = "preventive"
	TypeCorrective TaskType = "corrective"
)

// Task represents a maintenance job in the building.
// DueDate and ScheduledDate are calendar dates (YYYY-MM-DD), no time part.
type Task struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	Description    string       `json:"description"`
	Category       string       `json:"category"`
	TaskType       TaskType     `json:"task_type"`
	Status         TaskStatus   `json:"status"`
	Priority       TaskPriority `json:"priority"`
	DueDate        *string      `json:"due_date,omitempty"`
	ScheduledDate  *string      `json:"scheduled_date,omitempty"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
	CreatedBy      int64        `json:"created_by"`
	AssignedTo     int64        `json:"assigned_to"`
	ApartmentID    *int64       `json:"apartment_id,omitempty"`
	AreaID         *int64       `json:"area_id,omitempty"`
	AssetID        *int64       `json:"asset_id,omitempty"`
	EstimatedHours *float64     `json:"estimated_hours,omitempty"`
	HoursSpent     *float64     `json:"hours_spent,omitempty"`
	CostAmount     *float64     `json:"cost_amount,omitempty"`
	ReminderSentAt *time.Time   `json:"reminder_sent_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// TaskRemark is one entry in a task's remark thread. Append-only.
type TaskRemark struct {
	ID        int64     `json:"id"`
	TaskID    int64     `json:"task_id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskFilter defines the available parameters for filtering tasks.
type TaskFilter struct {
	AssignedTo *int64
	Status     *TaskStatus
	Category   *string
}

// DueTask pairs a task due for a reminder with its assignee's contacts.
type DueTask struct {
	Task
	AssigneeName   string `json:"assignee_name"`
	AssigneeEmail  string `json:"assignee_email"`
	AssigneeChatID *int64 `json:"-"`
}

// TaskUpdate carries the fields a PATCH may change; everything else is
// immutable after creation.
type TaskUpdate struct {
	Status     *TaskStatus   `json:"status"`
	HoursSpent *float64      `json:"hours_spent"`
	CostAmount *float64      `json:"cost_amount"`
	DueDate    *string       `json:"due_date"`
	Priority   *TaskPriority `json:"priority"`
}
