// controllers/srv.go
package controllers

import (
	"net/http"
	"strings"
	"time"

	"Gin_postgres_redis_library_lending/app"
	"Gin_postgres_redis_library_lending/db"
	"Gin_postgres_redis_library_lending/services"
	"Gin_postgres_redis_library_lending/session"

	"github.com/gin-gonic/gin"
)

type Srv struct {
	Repo      *db.Repo
	Books     *services.BookService
	Employees *services.EmployeeService
	Loans     *services.LoanService
	Kiosk     *session.KioskStore
	WebOrigin string
	Cfg       app.Config
}

func GetSrv(a *app.App) *Srv {
	repo := db.NewRepo(a.DB)
	return &Srv{
		Repo:      repo,
		Books:     services.NewBookService(repo.Books),
		Employees: services.NewEmployeeService(repo.Employees, repo.Loans),
		Loans:     services.NewLoanService(repo.Loans, repo.Books, repo.Employees),
		Kiosk:     a.KioskSessions(),
		WebOrigin: a.Config.WebOrigin,
		Cfg:       a.Config,
	}
}

// NewSrv wires the controllers over explicit dependencies; tests use it with
// the in-memory repositories.
func NewSrv(books services.BookRepository, employees services.EmployeeRepository, loans services.LoanRepository) *Srv {
	return &Srv{
		Books:     services.NewBookService(books),
		Employees: services.NewEmployeeService(employees, loans),
		Loans:     services.NewLoanService(loans, books, employees),
	}
}

// --- helpers ---

// 统一设置自助机会话 Cookie
func (s *Srv) setKioskCookie(w http.ResponseWriter, sessionID string, maxAge time.Duration) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.KioskSessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
		MaxAge:   int(maxAge / time.Second),
	})
}

func (s *Srv) clearKioskCookie(w http.ResponseWriter) {
	secure := strings.HasPrefix(s.WebOrigin, "https://")
	http.SetCookie(w, &http.Cookie{
		Name:     app.KioskSessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   secure,
	})
}

// statusFor maps the closed service error set onto HTTP statuses. Unknown
// errors count as storage failures.
func statusFor(err error) int {
	switch services.ErrorCode(err) {
	case services.CodeBookNotFound, services.CodeEmployeeNotFound, services.CodeLoanNotFound:
		return http.StatusNotFound
	case services.CodeInvalidInput:
		return http.StatusBadRequest
	case services.CodeBookAlreadyBorrowed, services.CodeBookNotBorrowed,
		services.CodeLoanLimitExceeded, services.CodeLoanAlreadyReturned,
		services.CodeDuplicate, services.CodeBookBorrowedDelete,
		services.CodeEmployeeHasLoans:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), app.H{"error": err.Error(), "code": services.ErrorCode(err)})
}

// sessionEmployeeID returns the badged-in employee, if any.
func sessionEmployeeID(c *gin.Context) string {
	v, ok := c.Get("employeeID")
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}
