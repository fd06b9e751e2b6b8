package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"Gin_postgres_redis_library_lending/controllers"
	"Gin_postgres_redis_library_lending/db/memory"
	"Gin_postgres_redis_library_lending/models"
	"Gin_postgres_redis_library_lending/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, badgedIn string) (*gin.Engine, *controllers.Srv) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := memory.NewStore()
	s := controllers.NewSrv(st.Books(), st.Employees(), st.Loans())

	r := gin.New()
	if badgedIn != "" {
		r.Use(func(c *gin.Context) { c.Set("employeeID", badgedIn) })
	}
	lc := controllers.NewLoanController(s)
	bc := controllers.NewBookController(s)
	r.POST("/api/loans/borrow", lc.Borrow)
	r.POST("/api/loans/return", lc.Return)
	r.POST("/api/loans/borrow-by-isbn", lc.BorrowByISBN)
	r.POST("/api/loans/borrow-multiple", lc.BorrowMultiple)
	r.GET("/api/loans/active", lc.ListActive)
	r.POST("/api/books", bc.CreateBook)
	return r, s
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func seed(t *testing.T, s *controllers.Srv) (*models.Book, *models.Employee) {
	t.Helper()
	ctx := context.Background()
	b, err := s.Books.AddBook(ctx, "リーダブルコード", "Dustin Boswell", "9784873115658", "")
	require.NoError(t, err)
	e, err := s.Employees.AddEmployee(ctx, "EMP001", "山田太郎", "yamada@company.com")
	require.NoError(t, err)
	return b, e
}

func TestBorrowAndReturnEndpoints(t *testing.T) {
	r, s := newTestRouter(t, "")
	b, e := seed(t, s)

	w := doJSON(t, r, http.MethodPost, "/api/loans/borrow",
		gin.H{"bookId": b.ID, "employeeId": e.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// second borrow conflicts
	w = doJSON(t, r, http.MethodPost, "/api/loans/borrow",
		gin.H{"bookId": b.ID, "employeeId": e.ID})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, services.CodeBookAlreadyBorrowed, decode(t, w)["code"])

	w = doJSON(t, r, http.MethodPost, "/api/loans/return", gin.H{"bookId": b.ID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/loans/return", gin.H{"bookId": b.ID})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, services.CodeBookNotBorrowed, decode(t, w)["code"])
}

func TestBorrowMissingEmployee(t *testing.T) {
	r, s := newTestRouter(t, "")
	b, _ := seed(t, s)

	// no session, no employeeId in the body
	w := doJSON(t, r, http.MethodPost, "/api/loans/borrow", gin.H{"bookId": b.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBorrowFallsBackToKioskSession(t *testing.T) {
	r, s := newTestRouter(t, "EMP001")
	b, e := seed(t, s)

	w := doJSON(t, r, http.MethodPost, "/api/loans/borrow", gin.H{"bookId": b.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	loans, err := s.Loans.GetEmployeeActiveLoans(context.Background(), e.ID)
	require.NoError(t, err)
	assert.Len(t, loans, 1)
}

func TestBorrowByISBNEndpointNotFound(t *testing.T) {
	r, s := newTestRouter(t, "")
	_, e := seed(t, s)

	w := doJSON(t, r, http.MethodPost, "/api/loans/borrow-by-isbn",
		gin.H{"isbn": "9780306406157", "employeeId": e.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, services.CodeBookNotFound, decode(t, w)["code"])
}

func TestBorrowMultipleEndpointPartialFailure(t *testing.T) {
	r, s := newTestRouter(t, "")
	b, e := seed(t, s)
	ctx := context.Background()
	b2, err := s.Books.AddBook(ctx, "Clean Code", "Robert C. Martin", "9784048930598", "")
	require.NoError(t, err)

	// b2 goes out first, so the batch half-fails
	_, err = s.Loans.Borrow(ctx, b2.ID, e.ID)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/loans/borrow-multiple",
		gin.H{"barcode": e.Barcode, "isbns": []string{b.ISBN, b2.ISBN}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	out := decode(t, w)
	assert.Len(t, out["loans"], 1)
	assert.Len(t, out["failures"], 1)
}

func TestCreateBookEndpoint(t *testing.T) {
	r, _ := newTestRouter(t, "")

	w := doJSON(t, r, http.MethodPost, "/api/books",
		gin.H{"title": "Clean Code", "author": "Robert C. Martin", "isbn": "9784048930598"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// checksum failure surfaces as a validation error
	w = doJSON(t, r, http.MethodPost, "/api/books",
		gin.H{"title": "Bad", "author": "Bad", "isbn": "9780306406158"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, services.CodeInvalidInput, decode(t, w)["code"])

	// missing required field fails binding
	w = doJSON(t, r, http.MethodPost, "/api/books", gin.H{"title": "No Author"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListActiveEndpoint(t *testing.T) {
	r, s := newTestRouter(t, "")
	b, e := seed(t, s)

	w := doJSON(t, r, http.MethodGet, "/api/loans/active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["loans"])

	_, err := s.Loans.Borrow(context.Background(), b.ID, e.ID)
	require.NoError(t, err)

	w = doJSON(t, r, http.MethodGet, "/api/loans/active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["loans"], 1)
}
