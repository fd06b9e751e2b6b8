package db

import "gorm.io/gorm"

// Repo bundles the gorm-backed repositories over one connection.
type Repo struct {
	Books     *BookRepo
	Employees *EmployeeRepo
	Loans     *LoanRepo
}

func NewRepo(conn *gorm.DB) *Repo {
	return &Repo{
		Books:     &BookRepo{DB: conn},
		Employees: &EmployeeRepo{DB: conn},
		Loans:     &LoanRepo{DB: conn},
	}
}
