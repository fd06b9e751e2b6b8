package services

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes surfaced to API clients alongside the message. The set is
// closed: every failure leaving this package is one of the types below or a
// *StorageError wrapping the repository cause.
const (
	CodeBookNotFound        = "BOOK_NOT_FOUND"
	CodeEmployeeNotFound    = "EMPLOYEE_NOT_FOUND"
	CodeLoanNotFound        = "LOAN_NOT_FOUND"
	CodeBookAlreadyBorrowed = "BOOK_ALREADY_BORROWED"
	CodeBookNotBorrowed     = "BOOK_NOT_BORROWED"
	CodeLoanLimitExceeded   = "LOAN_LIMIT_EXCEEDED"
	CodeLoanAlreadyReturned = "LOAN_ALREADY_RETURNED"
	CodeDuplicate           = "DUPLICATE_IDENTIFIER"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeBookBorrowedDelete  = "CANNOT_DELETE_BORROWED_BOOK"
	CodeEmployeeHasLoans    = "CANNOT_DELETE_EMPLOYEE_WITH_LOANS"
	CodeStorageFailure      = "STORAGE_FAILURE"
	CodeBatchFailure        = "BATCH_FAILURE"
)

// Coded is implemented by every error type in this package.
type Coded interface {
	error
	Code() string
}

// ErrorCode extracts the machine code from a service error, or
// CodeStorageFailure for anything unrecognized.
func ErrorCode(err error) string {
	var c Coded
	if errors.As(err, &c) {
		return c.Code()
	}
	return CodeStorageFailure
}

type BookNotFoundError struct {
	BookID string
	ISBN   string
}

func (e *BookNotFoundError) Code() string { return CodeBookNotFound }
func (e *BookNotFoundError) Error() string {
	if e.ISBN != "" {
		return fmt.Sprintf("no book registered with ISBN %s", e.ISBN)
	}
	return fmt.Sprintf("book %s not found", e.BookID)
}

type EmployeeNotFoundError struct {
	EmployeeID string
	Barcode    string
}

func (e *EmployeeNotFoundError) Code() string { return CodeEmployeeNotFound }
func (e *EmployeeNotFoundError) Error() string {
	if e.Barcode != "" {
		return fmt.Sprintf("no employee registered with barcode %s", e.Barcode)
	}
	return fmt.Sprintf("employee %s not found", e.EmployeeID)
}

type LoanNotFoundError struct{ LoanID string }

func (e *LoanNotFoundError) Code() string  { return CodeLoanNotFound }
func (e *LoanNotFoundError) Error() string { return fmt.Sprintf("loan %s not found", e.LoanID) }

// BookAlreadyBorrowedError is returned for any borrow attempt against a
// borrowed book. The message differs when the requester already holds the
// book, the code does not.
type BookAlreadyBorrowedError struct {
	BookID     string
	BorrowerID string
	EmployeeID string
}

func (e *BookAlreadyBorrowedError) Code() string { return CodeBookAlreadyBorrowed }
func (e *BookAlreadyBorrowedError) Error() string {
	if e.EmployeeID != "" && e.BorrowerID == e.EmployeeID {
		return fmt.Sprintf("book %s is already borrowed by you", e.BookID)
	}
	return fmt.Sprintf("book %s is already borrowed", e.BookID)
}

type BookNotBorrowedError struct{ BookID string }

func (e *BookNotBorrowedError) Code() string { return CodeBookNotBorrowed }
func (e *BookNotBorrowedError) Error() string {
	return fmt.Sprintf("book %s is not currently borrowed", e.BookID)
}

type LoanLimitExceededError struct {
	EmployeeID string
	Active     int
	Requested  int
	Limit      int
}

func (e *LoanLimitExceededError) Code() string { return CodeLoanLimitExceeded }
func (e *LoanLimitExceededError) Error() string {
	return fmt.Sprintf("loan limit (%d) exceeded for employee %s: %d active, %d requested",
		e.Limit, e.EmployeeID, e.Active, e.Requested)
}

type LoanAlreadyReturnedError struct{ LoanID string }

func (e *LoanAlreadyReturnedError) Code() string { return CodeLoanAlreadyReturned }
func (e *LoanAlreadyReturnedError) Error() string {
	return fmt.Sprintf("loan %s is already returned", e.LoanID)
}

// DuplicateError covers the unique-identifier rules: book ISBN, employee id
// and employee email.
type DuplicateError struct {
	Field string
	Value string
}

func (e *DuplicateError) Code() string { return CodeDuplicate }
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q is already registered", e.Field, e.Value)
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Code() string { return CodeInvalidInput }
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type BorrowedBookDeleteError struct{ BookID string }

func (e *BorrowedBookDeleteError) Code() string { return CodeBookBorrowedDelete }
func (e *BorrowedBookDeleteError) Error() string {
	return fmt.Sprintf("book %s is borrowed and cannot be deleted", e.BookID)
}

type EmployeeHasLoansError struct {
	EmployeeID string
	Active     int
}

func (e *EmployeeHasLoansError) Code() string { return CodeEmployeeHasLoans }
func (e *EmployeeHasLoansError) Error() string {
	return fmt.Sprintf("employee %s still holds %d active loan(s) and cannot be deleted",
		e.EmployeeID, e.Active)
}

// StorageError wraps a repository I/O failure. Never retried here; retries,
// if any, belong to the storage layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Code() string  { return CodeStorageFailure }
func (e *StorageError) Error() string { return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err) }
func (e *StorageError) Unwrap() error { return e.Err }

// BatchItemFailure is one failed item of a batch borrow/return.
type BatchItemFailure struct {
	ISBN   string `json:"isbn"`
	Reason string `json:"reason"`
	ECode  string `json:"code"`
}

// BatchError aggregates per-item failures of a batch operation. The items
// that succeeded before and after each failure are NOT rolled back; callers
// receive them alongside this error.
type BatchError struct {
	Op       string
	Failures []BatchItemFailure
}

func (e *BatchError) Code() string { return CodeBatchFailure }
func (e *BatchError) Error() string {
	lines := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		lines = append(lines, fmt.Sprintf("%s: %s", f.ISBN, f.Reason))
	}
	return fmt.Sprintf("%s failed for %d item(s):\n%s", e.Op, len(e.Failures), strings.Join(lines, "\n"))
}
