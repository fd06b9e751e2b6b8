package routes

import (
	"Gin_postgres_redis_library_lending/app"
	"Gin_postgres_redis_library_lending/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	// 控制器与依赖
	s := controllers.GetSrv(a)
	bookCtl := controllers.NewBookController(s)
	empCtl := controllers.NewEmployeeController(s)
	loanCtl := controllers.NewLoanController(s)
	kioskCtl := controllers.NewKioskController(s)

	// 复用的中间件
	kioskMW := app.KioskOptional(s.Kiosk)
	authMW := app.KioskRequired(s.Kiosk, s.Repo)
	seenMW := app.TouchLastActive(s.Repo, a.RDB, a.Config.SeenThrottle)

	// ------------------------------
	// 自助机会话（扫徽章登录）
	// ------------------------------
	kiosk := r.Group("/api/kiosk")
	{
		kiosk.POST("/session", kioskCtl.BadgeIn)
		kiosk.DELETE("/session", kioskCtl.BadgeOut)
	}
	kioskAuth := r.Group("/api/kiosk", authMW, seenMW)
	{
		kioskAuth.GET("/whoami", kioskCtl.WhoAmI)
	}

	// ------------------------------
	// 藏书目录
	// ------------------------------
	books := r.Group("/api/books")
	{
		books.GET("", bookCtl.ListBooks) // ?q=&available=
		books.POST("", bookCtl.CreateBook)
		books.GET("/isbn/:isbn", bookCtl.GetBookByISBN)
		books.GET("/:id", bookCtl.GetBook)
		books.PUT("/:id", bookCtl.UpdateBook)
		books.DELETE("/:id", bookCtl.DeleteBook)
	}

	// ------------------------------
	// 员工管理
	// ------------------------------
	employees := r.Group("/api/employees")
	{
		employees.GET("", empCtl.ListEmployees)
		employees.POST("", empCtl.CreateEmployee)
		employees.GET("/barcode/:barcode", empCtl.GetEmployeeByBarcode)
		employees.GET("/:id", empCtl.GetEmployee)
		employees.PUT("/:id", empCtl.UpdateEmployee)
		employees.DELETE("/:id", empCtl.DeleteEmployee)
		employees.GET("/:id/loans", empCtl.ListEmployeeLoans)
		employees.GET("/:id/loans/count", empCtl.CountEmployeeLoans)
	}

	// ------------------------------
	// 借还
	// ------------------------------
	loans := r.Group("/api/loans", kioskMW, seenMW)
	{
		loans.POST("/borrow", loanCtl.Borrow)
		loans.POST("/borrow-by-isbn", loanCtl.BorrowByISBN)
		loans.POST("/borrow-by-barcodes", loanCtl.BorrowByBarcodes)
		loans.POST("/borrow-multiple", loanCtl.BorrowMultiple)
		loans.POST("/return", loanCtl.Return)
		loans.POST("/return-by-isbn", loanCtl.ReturnByISBN)
		loans.POST("/return-multiple", loanCtl.ReturnMultiple)
		loans.POST("/:id/extend", loanCtl.Extend)
		loans.GET("/active", loanCtl.ListActive)
		loans.GET("/history", loanCtl.History) // ?bookId=&employeeId=
	}
}
