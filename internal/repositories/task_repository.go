package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"maintdesk/internal/models"
)

type TaskRepository interface {
	Store(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id int64) (*models.Task, error)
	FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error

	// reminder sweep
	ListDueOn(ctx context.Context, date string) ([]models.DueTask, error)
	ClaimReminder(ctx context.Context, id int64, at time.Time) (bool, error)

	// remark thread
	AddRemark(ctx context.Context, remark *models.TaskRemark) error
	ListRemarks(ctx context.Context, taskID int64) ([]models.TaskRemark, error)
}

type taskRepository struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, title, description, category, task_type, status, priority,
       due_date, scheduled_date, completed_at, created_by, assigned_to,
       apartment_id, area_id, asset_id, estimated_hours, hours_spent, cost_amount,
       reminder_sent_at, created_at`

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	var (
		t           models.Task
		due, sched  sql.NullString
		completed   sql.NullInt64
		apt, area   sql.NullInt64
		asset       sql.NullInt64
		est, spent  sql.NullFloat64
		cost        sql.NullFloat64
		reminded    sql.NullInt64
		createdAtMs int64
	)
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Category, &t.TaskType, &t.Status, &t.Priority,
		&due, &sched, &completed, &t.CreatedBy, &t.AssignedTo,
		&apt, &area, &asset, &est, &spent, &cost,
		&reminded, &createdAtMs,
	)
	if err != nil {
		return nil, err
	}
	t.DueDate = stringPtr(due)
	t.ScheduledDate = stringPtr(sched)
	t.CompletedAt = millisPtr(completed)
	t.ApartmentID = int64Ptr(apt)
	t.AreaID = int64Ptr(area)
	t.AssetID = int64Ptr(asset)
	t.EstimatedHours = float64Ptr(est)
	t.HoursSpent = float64Ptr(spent)
	t.CostAmount = float64Ptr(cost)
	t.ReminderSentAt = millisPtr(reminded)
	t.CreatedAt = fromMillis(createdAtMs)
	return &t, nil
}

func (r *taskRepository) Store(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (
			title, description, category, task_type, status, priority,
			due_date, scheduled_date, completed_at, created_by, assigned_to,
			apartment_id, area_id, asset_id, estimated_hours, hours_spent, cost_amount,
			reminder_sent_at, created_at
		)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Category, task.TaskType, task.Status, task.Priority,
		nullString(task.DueDate), nullString(task.ScheduledDate), nullMillis(task.CompletedAt),
		task.CreatedBy, task.AssignedTo,
		nullInt64(task.ApartmentID), nullInt64(task.AreaID), nullInt64(task.AssetID),
		nullFloat64(task.EstimatedHours), nullFloat64(task.HoursSpent), nullFloat64(task.CostAmount),
		nullMillis(task.ReminderSentAt), toMillis(task.CreatedAt),
	).Scan(&task.ID)
}

func (r *taskRepository) FindByID(ctx context.Context, id int64) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	task, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return task, err
}

func (r *taskRepository) FindAll(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks`

	conditions := []string{}
	args := []interface{}{}

	if filter.AssignedTo != nil {
		conditions = append(conditions, "assigned_to = ?")
		args = append(args, *filter.AssignedTo)
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.Category != nil {
		conditions = append(conditions, "category = ?")
		args = append(args, *filter.Category)
	}

	if len(conditions) > 0 {
		baseQuery += " WHERE " + strings.Join(conditions, " AND ")
	}
	// nulls last, then id for a stable order
	baseQuery += " ORDER BY due_date IS NULL, due_date ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Update(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks SET
			status=?, priority=?, due_date=?, hours_spent=?, cost_amount=?, completed_at=?
		WHERE id=?`
	res, err := r.db.ExecContext(ctx, query,
		task.Status, task.Priority, nullString(task.DueDate),
		nullFloat64(task.HoursSpent), nullFloat64(task.CostAmount), nullMillis(task.CompletedAt),
		task.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("task %d not found", task.ID)
	}
	return nil
}

// ListDueOn returns tasks due on the given date that have not been reminded
// yet and whose assignee is still active.
func (r *taskRepository) ListDueOn(ctx context.Context, date string) ([]models.DueTask, error) {
	q := `
SELECT t.id, t.title, t.description, t.category, t.task_type, t.status, t.priority,
       t.due_date, t.scheduled_date, t.completed_at, t.created_by, t.assigned_to,
       t.apartment_id, t.area_id, t.asset_id, t.estimated_hours, t.hours_spent, t.cost_amount,
       t.reminder_sent_at, t.created_at,
       u.name, u.email, u.telegram_chat_id
FROM tasks t
JOIN users u ON u.id = t.assigned_to
WHERE t.due_date = ?
  AND t.reminder_sent_at IS NULL
  AND u.active = 1
ORDER BY t.id ASC`
	rows, err := r.db.QueryContext(ctx, q, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.DueTask
	for rows.Next() {
		var (
			d           models.DueTask
			due, sched  sql.NullString
			completed   sql.NullInt64
			apt, area   sql.NullInt64
			asset       sql.NullInt64
			est, spent  sql.NullFloat64
			cost        sql.NullFloat64
			reminded    sql.NullInt64
			createdAtMs int64
			chatID      sql.NullInt64
		)
		if err := rows.Scan(
			&d.ID, &d.Title, &d.Description, &d.Category, &d.TaskType, &d.Status, &d.Priority,
			&due, &sched, &completed, &d.CreatedBy, &d.AssignedTo,
			&apt, &area, &asset, &est, &spent, &cost,
			&reminded, &createdAtMs,
			&d.AssigneeName, &d.AssigneeEmail, &chatID,
		); err != nil {
			return nil, err
		}
		d.DueDate = stringPtr(due)
		d.ScheduledDate = stringPtr(sched)
		d.CompletedAt = millisPtr(completed)
		d.ApartmentID = int64Ptr(apt)
		d.AreaID = int64Ptr(area)
		d.AssetID = int64Ptr(asset)
		d.EstimatedHours = float64Ptr(est)
		d.HoursSpent = float64Ptr(spent)
		d.CostAmount = float64Ptr(cost)
		d.ReminderSentAt = millisPtr(reminded)
		d.CreatedAt = fromMillis(createdAtMs)
		d.AssigneeChatID = int64Ptr(chatID)
		out = append(out, d)
	}
	return out, rows.Err()
}

// ClaimReminder stamps reminder_sent_at in a single conditional update.
// Returns false when another sweep already claimed the task; the stamp can
// only ever happen once per task.
func (r *taskRepository) ClaimReminder(ctx context.Context, id int64, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET reminder_sent_at = ? WHERE id = ? AND reminder_sent_at IS NULL`,
		toMillis(at), id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *taskRepository) AddRemark(ctx context.Context, remark *models.TaskRemark) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO task_remarks (task_id, user_id, message, created_at) VALUES (?,?,?,?) RETURNING id`,
		remark.TaskID, remark.UserID, remark.Message, toMillis(remark.CreatedAt),
	).Scan(&remark.ID)
}

func (r *taskRepository) ListRemarks(ctx context.Context, taskID int64) ([]models.TaskRemark, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, task_id, user_id, message, created_at
		 FROM task_remarks WHERE task_id = ?
		 ORDER BY created_at DESC, id DESC`, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var remarks []models.TaskRemark
	for rows.Next() {
		var (
			rm        models.TaskRemark
			createdAt int64
		)
		if err := rows.Scan(&rm.ID, &rm.TaskID, &rm.UserID, &rm.Message, &createdAt); err != nil {
			return nil, err
		}
		rm.CreatedAt = fromMillis(createdAt)
		remarks = append(remarks, rm)
	}
	return remarks, rows.Err()
}
