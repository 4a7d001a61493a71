package repositories

import (
	"context"
	"database/sql"

	"maintdesk/internal/models"
)

type AssetRepository interface {
	Store(ctx context.Context, asset *models.Asset) error
	FindByID(ctx context.Context, id int64) (*models.Asset, error)
	FindAll(ctx context.Context) ([]models.Asset, error)
	Update(ctx context.Context, asset *models.Asset) error

	// preventive sweep
	ListDueOn(ctx context.Context, date string) ([]models.Asset, error)
}

type assetRepository struct {
	db *sql.DB
}

func NewAssetRepository(db *sql.DB) AssetRepository {
	return &assetRepository{db: db}
}

const assetColumns = `id, name, category, area_type, apartment_id, area_id, contractor_id,
       last_service_date, interval_days, next_due_date, notes`

func scanAsset(row interface{ Scan(...any) error }) (*models.Asset, error) {
	var (
		a         models.Asset
		apt, area sql.NullInt64
		con       sql.NullInt64
		last, due sql.NullString
		interval  sql.NullInt64
	)
	err := row.Scan(&a.ID, &a.Name, &a.Category, &a.AreaType, &apt, &area, &con, &last, &interval, &due, &a.Notes)
	if err != nil {
		return nil, err
	}
	a.ApartmentID = int64Ptr(apt)
	a.AreaID = int64Ptr(area)
	a.ContractorID = int64Ptr(con)
	a.LastServiceDate = stringPtr(last)
	a.IntervalDays = int64Ptr(interval)
	a.NextDueDate = stringPtr(due)
	return &a, nil
}

func (r *assetRepository) Store(ctx context.Context, asset *models.Asset) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO assets (name, category, area_type, apartment_id, area_id, contractor_id,
			last_service_date, interval_days, next_due_date, notes)
		VALUES (?,?,?,?,?,?,?,?,?,?)
		RETURNING id`,
		asset.Name, asset.Category, asset.AreaType,
		nullInt64(asset.ApartmentID), nullInt64(asset.AreaID), nullInt64(asset.ContractorID),
		nullString(asset.LastServiceDate), nullInt64(asset.IntervalDays), nullString(asset.NextDueDate),
		asset.Notes,
	).Scan(&asset.ID)
}

func (r *assetRepository) FindByID(ctx context.Context, id int64) (*models.Asset, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = ?`, id)
	asset, err := scanAsset(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return asset, err
}

func (r *assetRepository) FindAll(ctx context.Context) ([]models.Asset, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *a)
	}
	return assets, rows.Err()
}

func (r *assetRepository) Update(ctx context.Context, asset *models.Asset) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE assets SET name=?, contractor_id=?, last_service_date=?, interval_days=?, next_due_date=?, notes=?
		WHERE id=?`,
		asset.Name, nullInt64(asset.ContractorID), nullString(asset.LastServiceDate),
		nullInt64(asset.IntervalDays), nullString(asset.NextDueDate), asset.Notes,
		asset.ID,
	)
	return err
}

// ListDueOn returns assets whose next service falls on the given date.
// There is no per-asset reminder marker; the caller owns dedupe, if any.
func (r *assetRepository) ListDueOn(ctx context.Context, date string) ([]models.Asset, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE next_due_date = ? ORDER BY id ASC`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *a)
	}
	return assets, rows.Err()
}
