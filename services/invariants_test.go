package services_test

import (
	"context"
	"fmt"
	"testing"

	"Gin_postgres_redis_library_lending/db/memory"
	"Gin_postgres_redis_library_lending/models"
	"Gin_postgres_redis_library_lending/services"

	"pgregory.net/rapid"
)

// Random borrow/return sequences must never break the ledger: at most one
// active loan per book, at most MaxLoansPerEmployee per employee, and book
// status always consistent with the loan records. Individual operations are
// free to fail (that is the point of the preconditions); the state after
// each step is not.
func TestLendingInvariants(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		st := memory.NewStore()
		engine := services.NewLoanService(st.Loans(), st.Books(), st.Employees())
		bookSvc := services.NewBookService(st.Books())
		empSvc := services.NewEmployeeService(st.Employees(), st.Loans())
		ctx := context.Background()

		nBooks := rapid.IntRange(1, 6).Draw(rt, "nBooks")
		nEmployees := rapid.IntRange(1, 3).Draw(rt, "nEmployees")

		var bookIDs []string
		for i := 0; i < nBooks; i++ {
			b, err := bookSvc.AddBook(ctx, fmt.Sprintf("Book %d", i), "Author", seqISBN(i), "")
			if err != nil {
				rt.Fatalf("add book: %v", err)
			}
			bookIDs = append(bookIDs, b.ID)
		}
		var empIDs []string
		for i := 0; i < nEmployees; i++ {
			e, err := empSvc.AddEmployee(ctx, fmt.Sprintf("EMP%03d", i), "Employee",
				fmt.Sprintf("emp%03d@company.com", i))
			if err != nil {
				rt.Fatalf("add employee: %v", err)
			}
			empIDs = append(empIDs, e.ID)
		}

		steps := rapid.IntRange(1, 50).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			book := bookIDs[rapid.IntRange(0, len(bookIDs)-1).Draw(rt, "book")]
			if rapid.Bool().Draw(rt, "borrow") {
				emp := empIDs[rapid.IntRange(0, len(empIDs)-1).Draw(rt, "employee")]
				_, _ = engine.Borrow(ctx, book, emp)
			} else {
				_, _ = engine.Return(ctx, book)
			}
			checkLedger(rt, ctx, st, empIDs)
		}
	})
}

func checkLedger(rt *rapid.T, ctx context.Context, st *memory.Store, empIDs []string) {
	active, err := st.Loans().FindActive(ctx)
	if err != nil {
		rt.Fatalf("list active: %v", err)
	}
	activeByBook := map[string]models.LoanRecord{}
	for _, l := range active {
		if prev, dup := activeByBook[l.BookID]; dup {
			rt.Fatalf("book %s has two active loans: %s and %s", l.BookID, prev.ID, l.ID)
		}
		activeByBook[l.BookID] = l
	}

	books, err := st.Books().FindAll(ctx)
	if err != nil {
		rt.Fatalf("list books: %v", err)
	}
	for _, b := range books {
		l, borrowed := activeByBook[b.ID]
		switch b.Status {
		case models.BookStatusBorrowed:
			if !borrowed {
				rt.Fatalf("book %s marked borrowed without an active loan", b.ID)
			}
			if b.CurrentBorrowerID == nil || *b.CurrentBorrowerID != l.EmployeeID {
				rt.Fatalf("book %s borrower does not match its loan", b.ID)
			}
		case models.BookStatusAvailable:
			if borrowed {
				rt.Fatalf("book %s marked available but loan %s is open", b.ID, l.ID)
			}
			if b.CurrentBorrowerID != nil {
				rt.Fatalf("available book %s still has a borrower", b.ID)
			}
		default:
			rt.Fatalf("book %s in unknown status %q", b.ID, b.Status)
		}
	}

	for _, eid := range empIDs {
		loans, err := st.Loans().FindActiveByEmployeeID(ctx, eid)
		if err != nil {
			rt.Fatalf("list employee loans: %v", err)
		}
		if len(loans) > services.MaxLoansPerEmployee {
			rt.Fatalf("employee %s holds %d loans, cap is %d", eid, len(loans), services.MaxLoansPerEmployee)
		}
	}
}
