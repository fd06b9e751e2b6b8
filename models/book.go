package models

import "time"

const BookTable = "lib_books"

// Book status lifecycle. A book is either on the shelf or out with exactly
// one employee; there is no intermediate state.
const (
	BookStatusAvailable = "available"
	BookStatusBorrowed  = "borrowed"
)

type Book struct {
	ID            string `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string `gorm:"size:200;not null" json:"title"`
	Author        string `gorm:"size:200;not null" json:"author"`
	ISBN          string `gorm:"size:13;uniqueIndex;not null" json:"isbn"` // stored normalized: no hyphens/spaces
	CoverImageURL string `gorm:"size:500" json:"coverImageUrl,omitempty"`

	Status string `gorm:"size:20;not null;default:'available'" json:"status"`
	// Set iff Status == borrowed. The lib_loans partial unique index is the
	// hard guarantee; this column is the fast path for listings.
	CurrentBorrowerID *string `gorm:"size:64;index" json:"currentBorrowerId,omitempty"`

	RegisteredAt time.Time `gorm:"not null" json:"registeredAt"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Book) TableName() string { return BookTable }
