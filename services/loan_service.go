package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"Gin_postgres_redis_library_lending/models"
	"Gin_postgres_redis_library_lending/validation"

	"github.com/google/uuid"
)

const (
	// MaxLoansPerEmployee caps the number of simultaneously open loans.
	MaxLoansPerEmployee = 10
	// LoanPeriodDays is the default window from borrow to due date.
	LoanPeriodDays = 14
)

// LoanService is the loan lifecycle engine: every transition touching a book
// together with a loan record goes through here.
//
// A single mutex serializes the check-then-act sequence of each mutating
// operation, so two concurrent borrows cannot both observe an available
// book. The partial unique index on lib_loans (see db.Migrate) backs the
// same invariant at the database level for multi-process deployments.
type LoanService struct {
	mu        sync.Mutex
	loans     LoanRepository
	books     BookRepository
	employees EmployeeRepository

	now func() time.Time
}

func NewLoanService(loans LoanRepository, books BookRepository, employees EmployeeRepository) *LoanService {
	return &LoanService{
		loans:     loans,
		books:     books,
		employees: employees,
		now:       time.Now,
	}
}

// Borrow creates an active loan for the given book and employee.
// Precondition order: book exists, employee exists, book available,
// employee under the loan cap.
func (s *LoanService) Borrow(ctx context.Context, bookID, employeeID string) (*models.LoanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.borrowLocked(ctx, bookID, employeeID)
}

func (s *LoanService) borrowLocked(ctx context.Context, bookID, employeeID string) (*models.LoanRecord, error) {
	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, &StorageError{Op: "find book", Err: err}
	}
	if book == nil {
		return nil, &BookNotFoundError{BookID: bookID}
	}

	employee, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, &StorageError{Op: "find employee", Err: err}
	}
	if employee == nil {
		return nil, &EmployeeNotFoundError{EmployeeID: employeeID}
	}

	if book.Status == models.BookStatusBorrowed {
		e := &BookAlreadyBorrowedError{BookID: book.ID, EmployeeID: employeeID}
		if book.CurrentBorrowerID != nil {
			e.BorrowerID = *book.CurrentBorrowerID
		}
		return nil, e
	}

	active, err := s.loans.FindActiveByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, &StorageError{Op: "count active loans", Err: err}
	}
	if len(active) >= MaxLoansPerEmployee {
		return nil, &LoanLimitExceededError{
			EmployeeID: employeeID,
			Active:     len(active),
			Requested:  1,
			Limit:      MaxLoansPerEmployee,
		}
	}

	now := s.now()
	loan := &models.LoanRecord{
		ID:         uuid.NewString(),
		BookID:     book.ID,
		EmployeeID: employeeID,
		BorrowedAt: now,
		DueDate:    now.AddDate(0, 0, LoanPeriodDays),
		Status:     models.LoanStatusActive,
	}
	if err := s.loans.Create(ctx, loan); err != nil {
		return nil, &StorageError{Op: "create loan", Err: err}
	}
	if err := s.books.MarkBorrowed(ctx, book.ID, employeeID); err != nil {
		return nil, &StorageError{Op: "mark book borrowed", Err: err}
	}
	return loan, nil
}

// Return closes the active loan on the given book and shelves it again.
func (s *LoanService) Return(ctx context.Context, bookID string) (*models.LoanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.returnLocked(ctx, bookID)
}

func (s *LoanService) returnLocked(ctx context.Context, bookID string) (*models.LoanRecord, error) {
	book, err := s.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, &StorageError{Op: "find book", Err: err}
	}
	if book == nil {
		return nil, &BookNotFoundError{BookID: bookID}
	}

	loan, err := s.loans.FindActiveByBookID(ctx, bookID)
	if err != nil {
		return nil, &StorageError{Op: "find active loan", Err: err}
	}
	if loan == nil {
		return nil, &BookNotBorrowedError{BookID: bookID}
	}

	updated, err := s.loans.MarkReturned(ctx, loan.ID, s.now())
	if err != nil {
		return nil, &StorageError{Op: "mark loan returned", Err: err}
	}
	if err := s.books.MarkAvailable(ctx, bookID); err != nil {
		return nil, &StorageError{Op: "mark book available", Err: err}
	}
	return updated, nil
}

// BorrowByISBN resolves the book through its normalized ISBN and borrows it.
func (s *LoanService) BorrowByISBN(ctx context.Context, isbn, employeeID string) (*models.LoanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.borrowByISBNLocked(ctx, isbn, employeeID)
}

func (s *LoanService) borrowByISBNLocked(ctx context.Context, isbn, employeeID string) (*models.LoanRecord, error) {
	book, err := s.resolveBookByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	return s.borrowLocked(ctx, book.ID, employeeID)
}

// ReturnByISBN resolves the book through its normalized ISBN and returns it.
func (s *LoanService) ReturnByISBN(ctx context.Context, isbn string) (*models.LoanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.returnByISBNLocked(ctx, isbn)
}

func (s *LoanService) returnByISBNLocked(ctx context.Context, isbn string) (*models.LoanRecord, error) {
	book, err := s.resolveBookByISBN(ctx, isbn)
	if err != nil {
		return nil, err
	}
	return s.returnLocked(ctx, book.ID)
}

// BorrowByBarcodes is the two-scan desk flow: employee badge plus book ISBN.
func (s *LoanService) BorrowByBarcodes(ctx context.Context, isbn, barcode string) (*models.LoanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	employee, err := s.resolveEmployeeByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	return s.borrowByISBNLocked(ctx, isbn, employee.ID)
}

// ExtendLoan moves the due date of an open loan, either by a signed day
// offset or to an explicit date. Returned loans are rejected: extending
// closed history would silently corrupt it.
func (s *LoanService) ExtendLoan(ctx context.Context, loanID string, days int, dueDate *time.Time) (*models.LoanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	loan, err := s.loans.FindByID(ctx, loanID)
	if err != nil {
		return nil, &StorageError{Op: "find loan", Err: err}
	}
	if loan == nil {
		return nil, &LoanNotFoundError{LoanID: loanID}
	}
	if loan.Status == models.LoanStatusReturned {
		return nil, &LoanAlreadyReturnedError{LoanID: loanID}
	}

	due := loan.DueDate.AddDate(0, 0, days)
	if dueDate != nil {
		due = *dueDate
	}
	updated, err := s.loans.SetDueDate(ctx, loanID, due)
	if err != nil {
		return nil, &StorageError{Op: "set due date", Err: err}
	}
	return updated, nil
}

// GetActiveLoans lists every loan currently open.
func (s *LoanService) GetActiveLoans(ctx context.Context) ([]models.LoanRecord, error) {
	loans, err := s.loans.FindActive(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list active loans", Err: err}
	}
	return loans, nil
}

// GetLoanHistory lists loans filtered by book and/or employee; both filters
// combine as an intersection, neither returns the full history.
func (s *LoanService) GetLoanHistory(ctx context.Context, bookID, employeeID string) ([]models.LoanRecord, error) {
	switch {
	case bookID != "" && employeeID != "":
		byBook, err := s.loans.FindByBookID(ctx, bookID)
		if err != nil {
			return nil, &StorageError{Op: "list loan history", Err: err}
		}
		out := make([]models.LoanRecord, 0, len(byBook))
		for _, l := range byBook {
			if l.EmployeeID == employeeID {
				out = append(out, l)
			}
		}
		return out, nil
	case bookID != "":
		loans, err := s.loans.FindByBookID(ctx, bookID)
		if err != nil {
			return nil, &StorageError{Op: "list loan history", Err: err}
		}
		return loans, nil
	case employeeID != "":
		loans, err := s.loans.FindByEmployeeID(ctx, employeeID)
		if err != nil {
			return nil, &StorageError{Op: "list loan history", Err: err}
		}
		return loans, nil
	default:
		loans, err := s.loans.FindAll(ctx)
		if err != nil {
			return nil, &StorageError{Op: "list loan history", Err: err}
		}
		return loans, nil
	}
}

// GetEmployeeActiveLoans lists the loans an employee currently holds.
func (s *LoanService) GetEmployeeActiveLoans(ctx context.Context, employeeID string) ([]models.LoanRecord, error) {
	employee, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		return nil, &StorageError{Op: "find employee", Err: err}
	}
	if employee == nil {
		return nil, &EmployeeNotFoundError{EmployeeID: employeeID}
	}
	loans, err := s.loans.FindActiveByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, &StorageError{Op: "list active loans", Err: err}
	}
	return loans, nil
}

// GetEmployeeActiveLoanCount returns how many loans an employee holds.
func (s *LoanService) GetEmployeeActiveLoanCount(ctx context.Context, employeeID string) (int, error) {
	loans, err := s.GetEmployeeActiveLoans(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	return len(loans), nil
}

func (s *LoanService) resolveBookByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	norm := validation.NormalizeIdentifier(isbn)
	book, err := s.books.FindByISBN(ctx, norm)
	if err != nil {
		return nil, &StorageError{Op: "find book by isbn", Err: err}
	}
	if book == nil {
		return nil, &BookNotFoundError{ISBN: norm}
	}
	return book, nil
}

func (s *LoanService) resolveEmployeeByBarcode(ctx context.Context, barcode string) (*models.Employee, error) {
	employee, err := s.employees.FindByBarcode(ctx, strings.TrimSpace(barcode))
	if err != nil {
		return nil, &StorageError{Op: "find employee by barcode", Err: err}
	}
	if employee == nil {
		return nil, &EmployeeNotFoundError{Barcode: strings.TrimSpace(barcode)}
	}
	return employee, nil
}
