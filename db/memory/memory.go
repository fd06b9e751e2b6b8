// Package memory holds mutex-guarded, slice-backed implementations of the
// repository contracts in the services package. Tests use them in place of
// Postgres; semantics mirror db's gorm repositories, including the
// (nil, nil) not-found convention.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"Gin_postgres_redis_library_lending/models"
	"Gin_postgres_redis_library_lending/services"
)

type Store struct {
	mu        sync.Mutex
	books     []models.Book
	employees []models.Employee
	loans     []models.LoanRecord
}

func NewStore() *Store { return &Store{} }

func (s *Store) Books() services.BookRepository         { return &bookRepo{s} }
func (s *Store) Employees() services.EmployeeRepository { return &employeeRepo{s} }
func (s *Store) Loans() services.LoanRepository         { return &loanRepo{s} }

type bookRepo struct{ s *Store }

var _ services.BookRepository = (*bookRepo)(nil)

func (r *bookRepo) FindAll(ctx context.Context) ([]models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]models.Book(nil), r.s.books...), nil
}

func (r *bookRepo) FindByID(ctx context.Context, id string) (*models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.books {
		if r.s.books[i].ID == id {
			b := r.s.books[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (r *bookRepo) FindByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.books {
		if r.s.books[i].ISBN == isbn {
			b := r.s.books[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (r *bookRepo) FindAvailable(ctx context.Context) ([]models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.Book
	for _, b := range r.s.books {
		if b.Status == models.BookStatusAvailable {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *bookRepo) Search(ctx context.Context, query string) ([]models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q := strings.ToLower(query)
	var out []models.Book
	for _, b := range r.s.books {
		if strings.Contains(strings.ToLower(b.Title), q) || strings.Contains(strings.ToLower(b.Author), q) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *bookRepo) Create(ctx context.Context, b *models.Book) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.books = append(r.s.books, *b)
	return nil
}

func (r *bookRepo) UpdateDetails(ctx context.Context, id string, upd services.BookUpdate) (*models.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.books {
		if r.s.books[i].ID != id {
			continue
		}
		if upd.Title != nil {
			r.s.books[i].Title = *upd.Title
		}
		if upd.Author != nil {
			r.s.books[i].Author = *upd.Author
		}
		if upd.ISBN != nil {
			r.s.books[i].ISBN = *upd.ISBN
		}
		if upd.CoverImageURL != nil {
			r.s.books[i].CoverImageURL = *upd.CoverImageURL
		}
		b := r.s.books[i]
		return &b, nil
	}
	return nil, nil
}

func (r *bookRepo) MarkBorrowed(ctx context.Context, id, employeeID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.books {
		if r.s.books[i].ID == id {
			if r.s.books[i].Status != models.BookStatusAvailable {
				return fmt.Errorf("book %s is not available", id)
			}
			eid := employeeID
			r.s.books[i].Status = models.BookStatusBorrowed
			r.s.books[i].CurrentBorrowerID = &eid
			return nil
		}
	}
	return fmt.Errorf("book %s does not exist", id)
}

func (r *bookRepo) MarkAvailable(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.books {
		if r.s.books[i].ID == id {
			r.s.books[i].Status = models.BookStatusAvailable
			r.s.books[i].CurrentBorrowerID = nil
			return nil
		}
	}
	return fmt.Errorf("book %s does not exist", id)
}

func (r *bookRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.books {
		if r.s.books[i].ID == id {
			r.s.books = append(r.s.books[:i], r.s.books[i+1:]...)
			return nil
		}
	}
	return nil
}

type employeeRepo struct{ s *Store }

var _ services.EmployeeRepository = (*employeeRepo)(nil)

func (r *employeeRepo) FindAll(ctx context.Context) ([]models.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]models.Employee(nil), r.s.employees...), nil
}

func (r *employeeRepo) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.employees {
		if r.s.employees[i].ID == id {
			e := r.s.employees[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (r *employeeRepo) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.employees {
		if r.s.employees[i].Email == email {
			e := r.s.employees[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (r *employeeRepo) FindByBarcode(ctx context.Context, barcode string) (*models.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.employees {
		if r.s.employees[i].Barcode == barcode {
			e := r.s.employees[i]
			return &e, nil
		}
	}
	return nil, nil
}

func (r *employeeRepo) Create(ctx context.Context, e *models.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.employees = append(r.s.employees, *e)
	return nil
}

func (r *employeeRepo) UpdateDetails(ctx context.Context, id string, upd services.EmployeeUpdate) (*models.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.employees {
		if r.s.employees[i].ID != id {
			continue
		}
		if upd.Name != nil {
			r.s.employees[i].Name = *upd.Name
		}
		if upd.Email != nil {
			r.s.employees[i].Email = *upd.Email
		}
		e := r.s.employees[i]
		return &e, nil
	}
	return nil, nil
}

func (r *employeeRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.employees {
		if r.s.employees[i].ID == id {
			r.s.employees = append(r.s.employees[:i], r.s.employees[i+1:]...)
			return nil
		}
	}
	return nil
}

type loanRepo struct{ s *Store }

var _ services.LoanRepository = (*loanRepo)(nil)

func (r *loanRepo) FindAll(ctx context.Context) ([]models.LoanRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]models.LoanRecord(nil), r.s.loans...), nil
}

func (r *loanRepo) FindByID(ctx context.Context, id string) (*models.LoanRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.loans {
		if r.s.loans[i].ID == id {
			l := r.s.loans[i]
			return &l, nil
		}
	}
	return nil, nil
}

func (r *loanRepo) FindActive(ctx context.Context) ([]models.LoanRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.LoanRecord
	for _, l := range r.s.loans {
		if l.Status == models.LoanStatusActive {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *loanRepo) FindActiveByBookID(ctx context.Context, bookID string) (*models.LoanRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.loans {
		if r.s.loans[i].BookID == bookID && r.s.loans[i].Status == models.LoanStatusActive {
			l := r.s.loans[i]
			return &l, nil
		}
	}
	return nil, nil
}

func (r *loanRepo) FindActiveByEmployeeID(ctx context.Context, employeeID string) ([]models.LoanRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.LoanRecord
	for _, l := range r.s.loans {
		if l.EmployeeID == employeeID && l.Status == models.LoanStatusActive {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *loanRepo) FindByBookID(ctx context.Context, bookID string) ([]models.LoanRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.LoanRecord
	for _, l := range r.s.loans {
		if l.BookID == bookID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *loanRepo) FindByEmployeeID(ctx context.Context, employeeID string) ([]models.LoanRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []models.LoanRecord
	for _, l := range r.s.loans {
		if l.EmployeeID == employeeID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *loanRepo) Create(ctx context.Context, l *models.LoanRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.loans = append(r.s.loans, *l)
	return nil
}

func (r *loanRepo) MarkReturned(ctx context.Context, id string, at time.Time) (*models.LoanRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.loans {
		if r.s.loans[i].ID == id {
			if r.s.loans[i].Status == models.LoanStatusActive {
				t := at
				r.s.loans[i].ReturnedAt = &t
				r.s.loans[i].Status = models.LoanStatusReturned
			}
			l := r.s.loans[i]
			return &l, nil
		}
	}
	return nil, nil
}

func (r *loanRepo) SetDueDate(ctx context.Context, id string, due time.Time) (*models.LoanRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i := range r.s.loans {
		if r.s.loans[i].ID == id {
			r.s.loans[i].DueDate = due
			l := r.s.loans[i]
			return &l, nil
		}
	}
	return nil, nil
}
