package models

import "time"

type Contractor struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Specialty string    `json:"specialty"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// ContractorReview is append-only: once written it is never edited.
type ContractorReview struct {
	ID           int64     `json:"id"`
	ContractorID int64     `json:"contractor_id"`
	UserID       int64     `json:"user_id"`
	Rating       int       `json:"rating"` // 1..5
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}
