package services

import (
	"context"

	"Gin_postgres_redis_library_lending/models"
)

// Batch borrow/return for the scanner workflow: one badge scan, many book
// scans. Items are processed in input order and failures never stop the
// loop — a torn barcode on one book must not block the stack under it.
// Successes are NOT rolled back when later items fail; the caller gets both
// the applied loans and the aggregate error.

// BorrowMultiple borrows every ISBN for the employee with the given badge
// barcode. The loan cap is pre-checked once for the whole batch, before any
// item is processed: current active + len(isbns) must stay within the cap
// (boundary inclusive), otherwise nothing is borrowed.
func (s *LoanService) BorrowMultiple(ctx context.Context, barcode string, isbns []string) ([]models.LoanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	employee, err := s.resolveEmployeeByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	active, err := s.loans.FindActiveByEmployeeID(ctx, employee.ID)
	if err != nil {
		return nil, &StorageError{Op: "count active loans", Err: err}
	}
	if len(active)+len(isbns) > MaxLoansPerEmployee {
		return nil, &LoanLimitExceededError{
			EmployeeID: employee.ID,
			Active:     len(active),
			Requested:  len(isbns),
			Limit:      MaxLoansPerEmployee,
		}
	}

	var (
		records  []models.LoanRecord
		failures []BatchItemFailure
	)
	for _, isbn := range isbns {
		loan, err := s.borrowByISBNLocked(ctx, isbn, employee.ID)
		if err != nil {
			failures = append(failures, BatchItemFailure{ISBN: isbn, Reason: err.Error(), ECode: ErrorCode(err)})
			continue
		}
		records = append(records, *loan)
	}

	if len(failures) > 0 {
		return records, &BatchError{Op: "batch borrow", Failures: failures}
	}
	return records, nil
}

// ReturnMultiple returns every ISBN in order, continue-on-error, no
// up-front check.
func (s *LoanService) ReturnMultiple(ctx context.Context, isbns []string) ([]models.LoanRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		records  []models.LoanRecord
		failures []BatchItemFailure
	)
	for _, isbn := range isbns {
		loan, err := s.returnByISBNLocked(ctx, isbn)
		if err != nil {
			failures = append(failures, BatchItemFailure{ISBN: isbn, Reason: err.Error(), ECode: ErrorCode(err)})
			continue
		}
		records = append(records, *loan)
	}

	if len(failures) > 0 {
		return records, &BatchError{Op: "batch return", Failures: failures}
	}
	return records, nil
}
