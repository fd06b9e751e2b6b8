package app

import (
	"Gin_postgres_redis_library_lending/db"
	"Gin_postgres_redis_library_lending/session"
	"net/http"

	"github.com/gin-gonic/gin"
)

const KioskSessionCookie = "kiosk_session"

// KioskRequired rejects requests without a live kiosk session. The badged-in
// employee must still exist; a stale session is revoked on the spot.
func KioskRequired(kioskSess *session.KioskStore, repo *db.Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(KioskSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		ks, err := kioskSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		e, err := repo.Employees.FindByID(c.Request.Context(), ks.EmployeeID)
		if err != nil || e == nil {
			_ = kioskSess.Delete(c.Request.Context(), ck.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		c.Set("employeeID", ks.EmployeeID)
		c.Set("employeeName", e.Name)

		c.Next()
	}
}

// KioskOptional attaches employeeID when a kiosk session is present but lets
// the request through either way. Loan endpoints use it so a request body may
// omit the employee and fall back to whoever badged in.
func KioskOptional(kioskSess *session.KioskStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ck, err := c.Request.Cookie(KioskSessionCookie); err == nil && ck.Value != "" {
			if ks, err := kioskSess.Get(c.Request.Context(), ck.Value); err == nil {
				c.Set("employeeID", ks.EmployeeID)
			}
		}
		c.Next()
	}
}
