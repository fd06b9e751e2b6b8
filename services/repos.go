package services

import (
	"context"
	"time"

	"Gin_postgres_redis_library_lending/models"
)

// Repository contracts consumed by the services. The gorm implementations
// live in the db package; tests run against db/memory.
//
// Lookup methods return (nil, nil) when no row matches — "not found" is a
// business outcome decided here, not a storage failure. Any non-nil error is
// an I/O problem and is wrapped in *StorageError by the callers.

type BookUpdate struct {
	Title         *string
	Author        *string
	ISBN          *string
	CoverImageURL *string
}

type EmployeeUpdate struct {
	Name  *string
	Email *string
}

type BookRepository interface {
	FindAll(ctx context.Context) ([]models.Book, error)
	FindByID(ctx context.Context, id string) (*models.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*models.Book, error)
	FindAvailable(ctx context.Context) ([]models.Book, error)
	// Search matches title or author, case-insensitive substring.
	Search(ctx context.Context, query string) ([]models.Book, error)
	Create(ctx context.Context, b *models.Book) error
	UpdateDetails(ctx context.Context, id string, upd BookUpdate) (*models.Book, error)
	// MarkBorrowed flips status to borrowed iff it is available.
	MarkBorrowed(ctx context.Context, id, employeeID string) error
	MarkAvailable(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type EmployeeRepository interface {
	FindAll(ctx context.Context) ([]models.Employee, error)
	FindByID(ctx context.Context, id string) (*models.Employee, error)
	FindByEmail(ctx context.Context, email string) (*models.Employee, error)
	FindByBarcode(ctx context.Context, barcode string) (*models.Employee, error)
	Create(ctx context.Context, e *models.Employee) error
	UpdateDetails(ctx context.Context, id string, upd EmployeeUpdate) (*models.Employee, error)
	Delete(ctx context.Context, id string) error
}

type LoanRepository interface {
	FindAll(ctx context.Context) ([]models.LoanRecord, error)
	FindByID(ctx context.Context, id string) (*models.LoanRecord, error)
	FindActive(ctx context.Context) ([]models.LoanRecord, error)
	// FindActiveByBookID relies on the at-most-one-active-loan-per-book
	// invariant; (nil, nil) means the book is on the shelf.
	FindActiveByBookID(ctx context.Context, bookID string) (*models.LoanRecord, error)
	FindActiveByEmployeeID(ctx context.Context, employeeID string) ([]models.LoanRecord, error)
	FindByBookID(ctx context.Context, bookID string) ([]models.LoanRecord, error)
	FindByEmployeeID(ctx context.Context, employeeID string) ([]models.LoanRecord, error)
	Create(ctx context.Context, l *models.LoanRecord) error
	MarkReturned(ctx context.Context, id string, at time.Time) (*models.LoanRecord, error)
	SetDueDate(ctx context.Context, id string, due time.Time) (*models.LoanRecord, error)
}
