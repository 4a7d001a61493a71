package services

import (
	"context"
	"errors"
	"testing"

	"maintdesk/internal/models"
)

func int64Ptr(v int64) *int64 { return &v }

func newAssetServiceForTest() (AssetService, *fakeAssetRepo) {
	repo := newFakeAssetRepo()
	props := &fakePropertyRepo{
		apartments: map[int64]bool{12: true},
		areas:      map[int64]bool{3: true},
	}
	return NewAssetService(repo, props), repo
}

func TestCreateAssetLocationBranch(t *testing.T) {
	svc, _ := newAssetServiceForTest()
	ctx := context.Background()

	// apartment-bound asset drops any stray area link
	asset := &models.Asset{
		Name:        "Water heater",
		AreaType:    models.AreaTypeApartment,
		ApartmentID: int64Ptr(12),
		AreaID:      int64Ptr(3),
	}
	created, err := svc.Create(ctx, asset)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.AreaID != nil {
		t.Fatal("area_id must be cleared for area_type=apartment")
	}

	cases := []struct {
		name  string
		asset models.Asset
	}{
		{"missing name", models.Asset{AreaType: models.AreaTypeArea, AreaID: int64Ptr(3)}},
		{"unknown area_type", models.Asset{Name: "Pump", AreaType: "roof"}},
		{"apartment link missing", models.Asset{Name: "Pump", AreaType: models.AreaTypeApartment}},
		{"apartment does not exist", models.Asset{Name: "Pump", AreaType: models.AreaTypeApartment, ApartmentID: int64Ptr(99)}},
		{"area link missing", models.Asset{Name: "Pump", AreaType: models.AreaTypeArea}},
		{"area does not exist", models.Asset{Name: "Pump", AreaType: models.AreaTypeArea, AreaID: int64Ptr(99)}},
		{"bad next_due_date", models.Asset{Name: "Pump", AreaType: models.AreaTypeArea, AreaID: int64Ptr(3), NextDueDate: strPtr("soon")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.asset
			if _, err := svc.Create(ctx, &a); !errors.Is(err, ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestUpdateAssetServicePlan(t *testing.T) {
	svc, _ := newAssetServiceForTest()
	ctx := context.Background()

	asset := &models.Asset{Name: "Boiler", AreaType: models.AreaTypeArea, AreaID: int64Ptr(3)}
	if _, err := svc.Create(ctx, asset); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, asset.ID, models.AssetUpdate{
		LastServiceDate: strPtr("2026-09-01"),
		IntervalDays:    int64Ptr(90),
		NextDueDate:     strPtr("2026-11-30"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.NextDueDate == nil || *updated.NextDueDate != "2026-11-30" {
		t.Fatalf("expected next_due_date updated, got %v", updated.NextDueDate)
	}

	if _, err := svc.Update(ctx, asset.ID, models.AssetUpdate{NextDueDate: strPtr("next week")}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.Update(ctx, 404, models.AssetUpdate{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
