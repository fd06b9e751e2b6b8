package models

import "time"

const EmployeeTable = "lib_employees"

type Employee struct {
	// Externally assigned (e.g. "EMP001"), never generated here.
	ID    string `gorm:"size:64;primaryKey" json:"id"`
	Name  string `gorm:"size:200;not null" json:"name"`
	Email string `gorm:"size:255;uniqueIndex;not null" json:"email"` // stored lowercased

	// Equal to ID at creation and immutable afterwards; kept as its own
	// column so scanner lookups stay an indexed query.
	Barcode string `gorm:"size:64;uniqueIndex;not null" json:"barcode"`

	RegisteredAt time.Time  `gorm:"not null" json:"registeredAt"`
	LastActiveAt *time.Time `gorm:"index" json:"lastActiveAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (Employee) TableName() string { return EmployeeTable }
