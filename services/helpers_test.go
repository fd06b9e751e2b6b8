package services_test

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"

	"Gin_postgres_redis_library_lending/db/memory"
	"Gin_postgres_redis_library_lending/models"
	"Gin_postgres_redis_library_lending/services"

	"github.com/stretchr/testify/require"
)

type fixture struct {
	store     *memory.Store
	loans     *services.LoanService
	books     *services.BookService
	employees *services.EmployeeService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.NewStore()
	return &fixture{
		store:     st,
		loans:     services.NewLoanService(st.Loans(), st.Books(), st.Employees()),
		books:     services.NewBookService(st.Books()),
		employees: services.NewEmployeeService(st.Employees(), st.Loans()),
	}
}

func (f *fixture) addBook(t *testing.T, title, isbn string) *models.Book {
	t.Helper()
	b, err := f.books.AddBook(context.Background(), title, "Some Author", isbn, "")
	require.NoError(t, err)
	return b
}

func (f *fixture) addEmployee(t *testing.T, id, name string) *models.Employee {
	t.Helper()
	e, err := f.employees.AddEmployee(context.Background(), id, name, strings.ToLower(id)+"@company.com")
	require.NoError(t, err)
	return e
}

// isbn13 completes a 12-digit prefix with its ISBN-13 check digit.
func isbn13(prefix string) string {
	if len(prefix) != 12 {
		panic("isbn13 prefix must be 12 digits")
	}
	sum := 0
	for i := 0; i < 12; i++ {
		d := int(prefix[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return prefix + strconv.Itoa((10-sum%10)%10)
}

// seqISBN yields distinct valid ISBNs for bulk fixtures.
func seqISBN(n int) string {
	return isbn13(fmt.Sprintf("978000000%03d", n))
}
