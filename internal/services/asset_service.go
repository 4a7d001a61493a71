package services

import (
	"context"
	"fmt"
	"strings"

	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
)

type AssetService interface {
	Create(ctx context.Context, asset *models.Asset) (*models.Asset, error)
	GetByID(ctx context.Context, id int64) (*models.Asset, error)
	List(ctx context.Context) ([]models.Asset, error)
	Update(ctx context.Context, id int64, patch models.AssetUpdate) (*models.Asset, error)
}

type assetService struct {
	repo       repositories.AssetRepository
	properties repositories.PropertyRepository
}

func NewAssetService(repo repositories.AssetRepository, properties repositories.PropertyRepository) AssetService {
	return &assetService{repo: repo, properties: properties}
}

func (s *assetService) Create(ctx context.Context, asset *models.Asset) (*models.Asset, error) {
	if strings.TrimSpace(asset.Name) == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}

	// area_type selects which location link must be present
	switch asset.AreaType {
	case models.AreaTypeApartment:
		if asset.ApartmentID == nil {
			return nil, fmt.Errorf("apartment_id is required for area_type=apartment: %w", ErrValidation)
		}
		ok, err := s.properties.ApartmentExists(ctx, *asset.ApartmentID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("apartment %d does not exist: %w", *asset.ApartmentID, ErrValidation)
		}
		asset.AreaID = nil
	case models.AreaTypeArea:
		if asset.AreaID == nil {
			return nil, fmt.Errorf("area_id is required for area_type=area: %w", ErrValidation)
		}
		ok, err := s.properties.AreaExists(ctx, *asset.AreaID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("area %d does not exist: %w", *asset.AreaID, ErrValidation)
		}
		asset.ApartmentID = nil
	default:
		return nil, fmt.Errorf("unknown area_type %q: %w", asset.AreaType, ErrValidation)
	}

	if asset.LastServiceDate != nil && !validDate(*asset.LastServiceDate) {
		return nil, fmt.Errorf("invalid last_service_date (YYYY-MM-DD): %w", ErrValidation)
	}
	if asset.NextDueDate != nil && !validDate(*asset.NextDueDate) {
		return nil, fmt.Errorf("invalid next_due_date (YYYY-MM-DD): %w", ErrValidation)
	}

	if err := s.repo.Store(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *assetService) GetByID(ctx context.Context, id int64) (*models.Asset, error) {
	asset, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, fmt.Errorf("asset %d: %w", id, ErrNotFound)
	}
	return asset, nil
}

func (s *assetService) List(ctx context.Context) ([]models.Asset, error) {
	return s.repo.FindAll(ctx)
}

func (s *assetService) Update(ctx context.Context, id int64, patch models.AssetUpdate) (*models.Asset, error) {
	asset, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("name must not be empty: %w", ErrValidation)
		}
		asset.Name = *patch.Name
	}
	if patch.ContractorID != nil {
		asset.ContractorID = patch.ContractorID
	}
	if patch.LastServiceDate != nil {
		if !validDate(*patch.LastServiceDate) {
			return nil, fmt.Errorf("invalid last_service_date (YYYY-MM-DD): %w", ErrValidation)
		}
		asset.LastServiceDate = patch.LastServiceDate
	}
	if patch.IntervalDays != nil {
		asset.IntervalDays = patch.IntervalDays
	}
	if patch.NextDueDate != nil {
		if !validDate(*patch.NextDueDate) {
			return nil, fmt.Errorf("invalid next_due_date (YYYY-MM-DD): %w", ErrValidation)
		}
		asset.NextDueDate = patch.NextDueDate
	}
	if patch.Notes != nil {
		asset.Notes = *patch.Notes
	}

	if err := s.repo.Update(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}
