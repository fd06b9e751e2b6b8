package controllers

import (
	"net/http"

	"Gin_postgres_redis_library_lending/app"
	"Gin_postgres_redis_library_lending/services"

	"github.com/gin-gonic/gin"
)

type EmployeeController struct{ *Srv }

func NewEmployeeController(s *Srv) *EmployeeController { return &EmployeeController{Srv: s} }

func (ec *EmployeeController) ListEmployees(c *gin.Context) {
	employees, err := ec.Employees.GetAllEmployees(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"employees": employees})
}

func (ec *EmployeeController) GetEmployee(c *gin.Context) {
	e, err := ec.Employees.GetEmployeeByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (ec *EmployeeController) GetEmployeeByBarcode(c *gin.Context) {
	e, err := ec.Employees.GetEmployeeByBarcode(c.Request.Context(), c.Param("barcode"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (ec *EmployeeController) CreateEmployee(c *gin.Context) {
	var in struct {
		ID    string `json:"id" binding:"required"`
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	e, err := ec.Employees.AddEmployee(c.Request.Context(), in.ID, in.Name, in.Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (ec *EmployeeController) UpdateEmployee(c *gin.Context) {
	var in struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}
	e, err := ec.Employees.UpdateEmployee(c.Request.Context(), c.Param("id"), services.EmployeeUpdate{
		Name:  in.Name,
		Email: in.Email,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// DeleteEmployee removes the employee and revokes any live kiosk sessions.
// Active loans block the delete inside the service.
func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	id := c.Param("id")
	if err := ec.Employees.DeleteEmployee(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	if ec.Kiosk != nil {
		_ = ec.Kiosk.RevokeAllForEmployee(c.Request.Context(), id)
	}
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// 员工当前借着的书
func (ec *EmployeeController) ListEmployeeLoans(c *gin.Context) {
	loans, err := ec.Loans.GetEmployeeActiveLoans(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"loans": loans})
}

func (ec *EmployeeController) CountEmployeeLoans(c *gin.Context) {
	n, err := ec.Loans.GetEmployeeActiveLoanCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"count": n})
}
