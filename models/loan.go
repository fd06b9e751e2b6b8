package models

import "time"

const LoanTable = "lib_loans"

// Loan status is terminal once returned; there is no transition back.
const (
	LoanStatusActive   = "active"
	LoanStatusReturned = "returned"
)

type LoanRecord struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	BookID     string `gorm:"type:uuid;index;not null" json:"bookId"`
	EmployeeID string `gorm:"size:64;index;not null" json:"employeeId"`

	BorrowedAt time.Time  `gorm:"index;not null" json:"borrowedAt"`
	DueDate    time.Time  `gorm:"not null" json:"dueDate"`
	ReturnedAt *time.Time `gorm:"index" json:"returnedAt,omitempty"`
	Status     string     `gorm:"size:20;not null;default:'active'" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (LoanRecord) TableName() string { return LoanTable }

// Active reports whether the loan is still open.
func (l *LoanRecord) Active() bool { return l.Status == LoanStatusActive }
