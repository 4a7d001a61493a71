package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
)

type ContractorService interface {
	Create(ctx context.Context, contractor *models.Contractor) (*models.Contractor, error)
	GetByID(ctx context.Context, id int64) (*models.Contractor, error)
	List(ctx context.Context) ([]models.Contractor, error)
	Update(ctx context.Context, id int64, patch ContractorUpdate) (*models.Contractor, error)

	AddReview(ctx context.Context, actor models.Actor, contractorID int64, rating int, comment string) (*models.ContractorReview, error)
	ListReviews(ctx context.Context, contractorID int64) ([]models.ContractorReview, error)
}

type ContractorUpdate struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Specialty *string `json:"specialty"`
	Notes     *string `json:"notes"`
}

type contractorService struct {
	repo repositories.ContractorRepository
}

func NewContractorService(repo repositories.ContractorRepository) ContractorService {
	return &contractorService{repo: repo}
}

func (s *contractorService) Create(ctx context.Context, contractor *models.Contractor) (*models.Contractor, error) {
	if strings.TrimSpace(contractor.Name) == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}
	contractor.CreatedAt = time.Now()
	if err := s.repo.Store(ctx, contractor); err != nil {
		return nil, err
	}
	return contractor, nil
}

func (s *contractorService) GetByID(ctx context.Context, id int64) (*models.Contractor, error) {
	contractor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contractor == nil {
		return nil, fmt.Errorf("contractor %d: %w", id, ErrNotFound)
	}
	return contractor, nil
}

func (s *contractorService) List(ctx context.Context) ([]models.Contractor, error) {
	return s.repo.FindAll(ctx)
}

func (s *contractorService) Update(ctx context.Context, id int64, patch ContractorUpdate) (*models.Contractor, error) {
	contractor, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		if strings.TrimSpace(*patch.Name) == "" {
			return nil, fmt.Errorf("name must not be empty: %w", ErrValidation)
		}
		contractor.Name = *patch.Name
	}
	if patch.Phone != nil {
		contractor.Phone = *patch.Phone
	}
	if patch.Email != nil {
		contractor.Email = *patch.Email
	}
	if patch.Specialty != nil {
		contractor.Specialty = *patch.Specialty
	}
	if patch.Notes != nil {
		contractor.Notes = *patch.Notes
	}

	if err := s.repo.Update(ctx, contractor); err != nil {
		return nil, err
	}
	return contractor, nil
}

func (s *contractorService) AddReview(ctx context.Context, actor models.Actor, contractorID int64, rating int, comment string) (*models.ContractorReview, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be 1..5: %w", ErrValidation)
	}
	if _, err := s.GetByID(ctx, contractorID); err != nil {
		return nil, err
	}

	review := &models.ContractorReview{
		ContractorID: contractorID,
		UserID:       actor.ID,
		Rating:       rating,
		Comment:      comment,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.AddReview(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *contractorService) ListReviews(ctx context.Context, contractorID int64) ([]models.ContractorReview, error) {
	if _, err := s.GetByID(ctx, contractorID); err != nil {
		return nil, err
	}
	return s.repo.ListReviews(ctx, contractorID)
}
