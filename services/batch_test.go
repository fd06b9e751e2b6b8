package services_test

import (
	"context"
	"errors"
	"testing"

	"Gin_postgres_redis_library_lending/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBorrowMultiplePartialFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b1 := f.addBook(t, "Book One", seqISBN(1))
	b2 := f.addBook(t, "Book Two", seqISBN(2))
	b3 := f.addBook(t, "Book Three", seqISBN(3))
	e := f.addEmployee(t, "EMP001", "山田太郎")
	other := f.addEmployee(t, "EMP002", "佐藤花子")

	// the middle book is already out
	_, err := f.loans.Borrow(ctx, b2.ID, other.ID)
	require.NoError(t, err)

	records, err := f.loans.BorrowMultiple(ctx, e.Barcode, []string{b1.ISBN, b2.ISBN, b3.ISBN})

	var be *services.BatchError
	require.ErrorAs(t, err, &be)
	require.Len(t, be.Failures, 1)
	assert.Equal(t, b2.ISBN, be.Failures[0].ISBN)
	assert.Equal(t, services.CodeBookAlreadyBorrowed, be.Failures[0].ECode)

	// the failure did not stop the items after it, input order preserved
	require.Len(t, records, 2)
	assert.Equal(t, b1.ID, records[0].BookID)
	assert.Equal(t, b3.ID, records[1].BookID)
}

func TestBorrowMultipleUnknownISBNContinues(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b1 := f.addBook(t, "Book One", seqISBN(1))
	e := f.addEmployee(t, "EMP001", "山田太郎")

	records, err := f.loans.BorrowMultiple(ctx, e.Barcode, []string{"9780306406157", b1.ISBN})

	var be *services.BatchError
	require.ErrorAs(t, err, &be)
	require.Len(t, be.Failures, 1)
	assert.Equal(t, services.CodeBookNotFound, be.Failures[0].ECode)
	require.Len(t, records, 1)
	assert.Equal(t, b1.ID, records[0].BookID)
}

func TestBorrowMultipleCapBoundary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.addEmployee(t, "EMP001", "山田太郎")

	var isbns []string
	for i := 0; i < services.MaxLoansPerEmployee; i++ {
		isbns = append(isbns, f.addBook(t, "Book", seqISBN(i)).ISBN)
	}

	// exactly at the cap is allowed
	records, err := f.loans.BorrowMultiple(ctx, e.Barcode, isbns)
	require.NoError(t, err)
	assert.Len(t, records, services.MaxLoansPerEmployee)
}

func TestBorrowMultipleOverCapRejectsWholeBatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	e := f.addEmployee(t, "EMP001", "山田太郎")

	var isbns []string
	for i := 0; i <= services.MaxLoansPerEmployee; i++ {
		isbns = append(isbns, f.addBook(t, "Book", seqISBN(i)).ISBN)
	}

	// one over the cap: rejected up front, nothing processed
	records, err := f.loans.BorrowMultiple(ctx, e.Barcode, isbns)
	assert.Equal(t, services.CodeLoanLimitExceeded, services.ErrorCode(err))
	var be *services.BatchError
	assert.False(t, errors.As(err, &be))
	assert.Empty(t, records)

	n, err := f.loans.GetEmployeeActiveLoanCount(ctx, e.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestBorrowMultipleUnknownBarcode(t *testing.T) {
	f := newFixture(t)
	f.addBook(t, "Book", seqISBN(1))

	_, err := f.loans.BorrowMultiple(context.Background(), "NOBODY", []string{seqISBN(1)})
	assert.Equal(t, services.CodeEmployeeNotFound, services.ErrorCode(err))
}

func TestReturnMultiplePartialFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b1 := f.addBook(t, "Book One", seqISBN(1))
	b2 := f.addBook(t, "Book Two", seqISBN(2))
	e := f.addEmployee(t, "EMP001", "山田太郎")

	_, err := f.loans.Borrow(ctx, b1.ID, e.ID)
	require.NoError(t, err)

	// b2 is on the shelf, returning it fails; b1 still comes back
	records, err := f.loans.ReturnMultiple(ctx, []string{b2.ISBN, b1.ISBN})

	var be *services.BatchError
	require.ErrorAs(t, err, &be)
	require.Len(t, be.Failures, 1)
	assert.Equal(t, b2.ISBN, be.Failures[0].ISBN)
	assert.Equal(t, services.CodeBookNotBorrowed, be.Failures[0].ECode)
	require.Len(t, records, 1)
	assert.Equal(t, b1.ID, records[0].BookID)

	n, err := f.loans.GetEmployeeActiveLoanCount(ctx, e.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReturnMultipleAllGood(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b1 := f.addBook(t, "Book One", seqISBN(1))
	b2 := f.addBook(t, "Book Two", seqISBN(2))
	e := f.addEmployee(t, "EMP001", "山田太郎")

	_, err := f.loans.Borrow(ctx, b1.ID, e.ID)
	require.NoError(t, err)
	_, err = f.loans.Borrow(ctx, b2.ID, e.ID)
	require.NoError(t, err)

	records, err := f.loans.ReturnMultiple(ctx, []string{b1.ISBN, b2.ISBN})
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
