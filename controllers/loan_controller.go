package controllers

import (
	"errors"
	"net/http"
	"time"

	"Gin_postgres_redis_library_lending/app"
	"Gin_postgres_redis_library_lending/services"

	"github.com/gin-gonic/gin"
)

type LoanController struct{ *Srv }

func NewLoanController(s *Srv) *LoanController { return &LoanController{Srv: s} }

// Borrow checks a book out by id. The employee comes from the body or, when
// omitted, from the kiosk session.
func (lc *LoanController) Borrow(c *gin.Context) {
	var in struct {
		BookID     string `json:"bookId" binding:"required"`
		EmployeeID string `json:"employeeId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	eid := in.EmployeeID
	if eid == "" {
		eid = sessionEmployeeID(c)
	}
	if eid == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing employeeId"})
		return
	}

	loan, err := lc.Loans.Borrow(c.Request.Context(), in.BookID, eid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, loan)
}

// Return checks a book back in by id.
func (lc *LoanController) Return(c *gin.Context) {
	var in struct {
		BookID string `json:"bookId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	loan, err := lc.Loans.Return(c.Request.Context(), in.BookID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (lc *LoanController) BorrowByISBN(c *gin.Context) {
	var in struct {
		ISBN       string `json:"isbn" binding:"required"`
		EmployeeID string `json:"employeeId"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	eid := in.EmployeeID
	if eid == "" {
		eid = sessionEmployeeID(c)
	}
	if eid == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing employeeId"})
		return
	}

	loan, err := lc.Loans.BorrowByISBN(c.Request.Context(), in.ISBN, eid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, loan)
}

func (lc *LoanController) ReturnByISBN(c *gin.Context) {
	var in struct {
		ISBN string `json:"isbn" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	loan, err := lc.Loans.ReturnByISBN(c.Request.Context(), in.ISBN)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

// BorrowByBarcodes is the two-scan desk flow: badge then book.
func (lc *LoanController) BorrowByBarcodes(c *gin.Context) {
	var in struct {
		ISBN    string `json:"isbn" binding:"required"`
		Barcode string `json:"barcode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	loan, err := lc.Loans.BorrowByBarcodes(c.Request.Context(), in.ISBN, in.Barcode)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, loan)
}

// BorrowMultiple borrows a scanned stack in one go. Partial failures come
// back alongside the loans that did go through; only the up-front cap check
// rejects the whole batch.
func (lc *LoanController) BorrowMultiple(c *gin.Context) {
	var in struct {
		Barcode string   `json:"barcode"`
		ISBNs   []string `json:"isbns" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	barcode := in.Barcode
	if barcode == "" {
		// 徽章条码就是员工 ID
		barcode = sessionEmployeeID(c)
	}
	if barcode == "" {
		c.JSON(http.StatusBadRequest, app.H{"error": "missing barcode"})
		return
	}

	loans, err := lc.Loans.BorrowMultiple(c.Request.Context(), barcode, in.ISBNs)
	if err != nil {
		var be *services.BatchError
		if errors.As(err, &be) {
			c.JSON(http.StatusOK, app.H{"loans": loans, "failures": be.Failures})
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, app.H{"loans": loans})
}

func (lc *LoanController) ReturnMultiple(c *gin.Context) {
	var in struct {
		ISBNs []string `json:"isbns" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	loans, err := lc.Loans.ReturnMultiple(c.Request.Context(), in.ISBNs)
	if err != nil {
		var be *services.BatchError
		if errors.As(err, &be) {
			c.JSON(http.StatusOK, app.H{"loans": loans, "failures": be.Failures})
			return
		}
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"loans": loans})
}

// Extend moves the due date by a day offset or to an explicit date.
func (lc *LoanController) Extend(c *gin.Context) {
	var in struct {
		Days    int        `json:"days"`
		DueDate *time.Time `json:"dueDate"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	if in.Days == 0 && in.DueDate == nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "days or dueDate required"})
		return
	}
	loan, err := lc.Loans.ExtendLoan(c.Request.Context(), c.Param("id"), in.Days, in.DueDate)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, loan)
}

func (lc *LoanController) ListActive(c *gin.Context) {
	loans, err := lc.Loans.GetActiveLoans(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"loans": loans})
}

// 借还记录 ?bookId=&employeeId=
func (lc *LoanController) History(c *gin.Context) {
	loans, err := lc.Loans.GetLoanHistory(c.Request.Context(), c.Query("bookId"), c.Query("employeeId"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"loans": loans})
}
