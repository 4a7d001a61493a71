package repositories

import (
	"context"
	"database/sql"

	"maintdesk/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	ListActiveAdmins(ctx context.Context) ([]models.User, error)
}

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, email, phone, role, password_hash, active, telegram_chat_id, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var (
		u           models.User
		active      int
		chatID      sql.NullInt64
		createdAtMs int64
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.PasswordHash, &active, &chatID, &createdAtMs)
	if err != nil {
		return nil, err
	}
	u.Active = active == 1
	u.TelegramChatID = int64Ptr(chatID)
	u.CreatedAt = fromMillis(createdAtMs)
	return &u, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	active := 0
	if user.Active {
		active = 1
	}
	return r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, phone, role, password_hash, active, telegram_chat_id, created_at)
		VALUES (?,?,?,?,?,?,?,?)
		RETURNING id`,
		user.Name, user.Email, user.Phone, user.Role, user.PasswordHash,
		active, nullInt64(user.TelegramChatID), toMillis(user.CreatedAt),
	).Scan(&user.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return user, err
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	active := 0
	if user.Active {
		active = 1
	}
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET name=?, phone=?, role=?, password_hash=?, active=?, telegram_chat_id=?
		WHERE id=?`,
		user.Name, user.Phone, user.Role, user.PasswordHash, active,
		nullInt64(user.TelegramChatID), user.ID,
	)
	return err
}

func (r *userRepository) ListActiveAdmins(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE role = 'admin' AND active = 1 ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, *u)
	}
	return admins, rows.Err()
}
