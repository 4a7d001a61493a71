package repositories

import (
	"context"
	"database/sql"

	"maintdesk/internal/models"
)

type ContractorRepository interface {
	Store(ctx context.Context, contractor *models.Contractor) error
	FindByID(ctx context.Context, id int64) (*models.Contractor, error)
	FindAll(ctx context.Context) ([]models.Contractor, error)
	Update(ctx context.Context, contractor *models.Contractor) error

	AddReview(ctx context.Context, review *models.ContractorReview) error
	ListReviews(ctx context.Context, contractorID int64) ([]models.ContractorReview, error)
}

type contractorRepository struct {
	db *sql.DB
}

func NewContractorRepository(db *sql.DB) ContractorRepository {
	return &contractorRepository{db: db}
}

func scanContractor(row interface{ Scan(...any) error }) (*models.Contractor, error) {
	var (
		c           models.Contractor
		createdAtMs int64
	)
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Specialty, &c.Notes, &createdAtMs)
	if err != nil {
		return nil, err
	}
	c.CreatedAt = fromMillis(createdAtMs)
	return &c, nil
}

func (r *contractorRepository) Store(ctx context.Context, contractor *models.Contractor) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO contractors (name, phone, email, specialty, notes, created_at)
		VALUES (?,?,?,?,?,?)
		RETURNING id`,
		contractor.Name, contractor.Phone, contractor.Email, contractor.Specialty,
		contractor.Notes, toMillis(contractor.CreatedAt),
	).Scan(&contractor.ID)
}

func (r *contractorRepository) FindByID(ctx context.Context, id int64) (*models.Contractor, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, phone, email, specialty, notes, created_at FROM contractors WHERE id = ?`, id)
	contractor, err := scanContractor(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return contractor, err
}

func (r *contractorRepository) FindAll(ctx context.Context) ([]models.Contractor, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, phone, email, specialty, notes, created_at FROM contractors ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contractors []models.Contractor
	for rows.Next() {
		c, err := scanContractor(rows)
		if err != nil {
			return nil, err
		}
		contractors = append(contractors, *c)
	}
	return contractors, rows.Err()
}

func (r *contractorRepository) Update(ctx context.Context, contractor *models.Contractor) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE contractors SET name=?, phone=?, email=?, specialty=?, notes=? WHERE id=?`,
		contractor.Name, contractor.Phone, contractor.Email, contractor.Specialty,
		contractor.Notes, contractor.ID,
	)
	return err
}

func (r *contractorRepository) AddReview(ctx context.Context, review *models.ContractorReview) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO contractor_reviews (contractor_id, user_id, rating, comment, created_at)
		VALUES (?,?,?,?,?)
		RETURNING id`,
		review.ContractorID, review.UserID, review.Rating, review.Comment, toMillis(review.CreatedAt),
	).Scan(&review.ID)
}

func (r *contractorRepository) ListReviews(ctx context.Context, contractorID int64) ([]models.ContractorReview, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, contractor_id, user_id, rating, comment, created_at
		FROM contractor_reviews WHERE contractor_id = ?
		ORDER BY created_at DESC, id DESC`, contractorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.ContractorReview
	for rows.Next() {
		var (
			rv          models.ContractorReview
			createdAtMs int64
		)
		if err := rows.Scan(&rv.ID, &rv.ContractorID, &rv.UserID, &rv.Rating, &rv.Comment, &createdAtMs); err != nil {
			return nil, err
		}
		rv.CreatedAt = fromMillis(createdAtMs)
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
