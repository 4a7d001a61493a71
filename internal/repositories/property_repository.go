package repositories

import (
	"context"
	"database/sql"

	"maintdesk/internal/models"
)

// PropertyRepository covers the building registry lookups: apartments,
// common areas and task/asset categories.
type PropertyRepository interface {
	ListApartments(ctx context.Context) ([]models.Apartment, error)
	StoreApartment(ctx context.Context, apartment *models.Apartment) error
	ApartmentExists(ctx context.Context, id int64) (bool, error)

	ListAreas(ctx context.Context) ([]models.Area, error)
	StoreArea(ctx context.Context, area *models.Area) error
	AreaExists(ctx context.Context, id int64) (bool, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	StoreCategory(ctx context.Context, category *models.Category) error
	CategoryExists(ctx context.Context, name string) (bool, error)
}

type propertyRepository struct {
	db *sql.DB
}

func NewPropertyRepository(db *sql.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) ListApartments(ctx context.Context) ([]models.Apartment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, number, floor, notes FROM apartments ORDER BY floor ASC, number ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apartments []models.Apartment
	for rows.Next() {
		var a models.Apartment
		if err := rows.Scan(&a.ID, &a.Number, &a.Floor, &a.Notes); err != nil {
			return nil, err
		}
		apartments = append(apartments, a)
	}
	return apartments, rows.Err()
}

func (r *propertyRepository) StoreApartment(ctx context.Context, apartment *models.Apartment) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO apartments (number, floor, notes) VALUES (?,?,?) RETURNING id`,
		apartment.Number, apartment.Floor, apartment.Notes,
	).Scan(&apartment.ID)
}

func (r *propertyRepository) ApartmentExists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM apartments WHERE id = ?`, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *propertyRepository) ListAreas(ctx context.Context) ([]models.Area, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, notes FROM areas ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var areas []models.Area
	for rows.Next() {
		var a models.Area
		if err := rows.Scan(&a.ID, &a.Name, &a.Notes); err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	return areas, rows.Err()
}

func (r *propertyRepository) StoreArea(ctx context.Context, area *models.Area) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO areas (name, notes) VALUES (?,?) RETURNING id`,
		area.Name, area.Notes,
	).Scan(&area.ID)
}

func (r *propertyRepository) AreaExists(ctx context.Context, id int64) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM areas WHERE id = ?`, id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *propertyRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *propertyRepository) StoreCategory(ctx context.Context, category *models.Category) error {
	return r.db.QueryRowContext(ctx,
		`INSERT INTO categories (name) VALUES (?) RETURNING id`,
		category.Name,
	).Scan(&category.ID)
}

func (r *propertyRepository) CategoryExists(ctx context.Context, name string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories WHERE name = ?`, name).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}
