package controllers

import (
	"net/http"

	"Gin_postgres_redis_library_lending/app"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type KioskController struct{ *Srv }

func NewKioskController(s *Srv) *KioskController { return &KioskController{Srv: s} }

// BadgeIn opens a kiosk session from a badge scan and sets the session
// cookie. The barcode must resolve to a registered employee.
func (kc *KioskController) BadgeIn(c *gin.Context) {
	var in struct {
		Barcode string `json:"barcode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	e, err := kc.Employees.GetEmployeeByBarcode(c.Request.Context(), in.Barcode)
	if err != nil {
		fail(c, err)
		return
	}

	id := uuid.NewString()
	if err := kc.Kiosk.Create(c.Request.Context(), id, e.ID); err != nil {
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
		return
	}
	kc.setKioskCookie(c.Writer, id, kc.Cfg.KioskTTL)
	c.JSON(http.StatusOK, app.H{"employee": e})
}

// BadgeOut revokes the kiosk session and clears the cookie.
func (kc *KioskController) BadgeOut(c *gin.Context) {
	if ck, err := c.Request.Cookie(app.KioskSessionCookie); err == nil && ck.Value != "" {
		_ = kc.Kiosk.Delete(c.Request.Context(), ck.Value)
	}
	kc.clearKioskCookie(c.Writer)
	c.JSON(http.StatusOK, app.H{"ok": true})
}

// WhoAmI reports the badged-in employee and how many loans they hold.
func (kc *KioskController) WhoAmI(c *gin.Context) {
	eid := sessionEmployeeID(c)
	if eid == "" {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	e, err := kc.Employees.GetEmployeeByID(c.Request.Context(), eid)
	if err != nil {
		fail(c, err)
		return
	}
	n, err := kc.Loans.GetEmployeeActiveLoanCount(c.Request.Context(), eid)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"employee": e, "activeLoans": n})
}
