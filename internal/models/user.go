package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleStaff   UserRole = "staff"
)

type Student struct {
	ID             string  `json:"id" gorm:"primaryKey;size:36"`
	Name           string  `json:"name" gorm:"not null;size:100"`
	RegisterNumber string  `json:"register_number" gorm:"uniqueIndex;not null;size:50"`
	RollNumber     string  `json:"roll_number" gorm:"size:50"`
	Department     string  `json:"department" gorm:"not null;size:100;index"`
	Year           int     `json:"year" gorm:"not null"`
	Semester       int     `json:"semester" gorm:"not null"`
	Email          *string `json:"email,omitempty" gorm:"size:255"`
	PasswordHash   string  `json:"-" gorm:"not null;size:255"`

	CreatedAt time.Time `json:"created_at"`
}

func (Student) TableName() string {
	return "students"
}

type Staff struct {
	ID           string `json:"id" gorm:"primaryKey;size:36"`
	Name         string `json:"name" gorm:"not null;size:100"`
	Department   string `json:"department" gorm:"not null;size:100"`
	AcademicYear string `json:"academic_year" gorm:"size:20"`
	Email        string `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string `json:"-" gorm:"not null;size:255"`

	CreatedAt time.Time `json:"created_at"`
}

func (Staff) TableName() string {
	return "staff"
}

// Principal is the authenticated caller as carried by a bearer token.
type Principal struct {
	UserID string
	Role   UserRole
	Name   string
}
