package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered student account.
type User struct {
	ID            uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username      string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash  string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FullName      string    `json:"full_name" gorm:"size:255;not null"`
	DateOfBirth   string    `json:"date_of_birth" gorm:"size:64;not null"`
	Gender        string    `json:"gender" gorm:"size:32;not null"`
	ContactNumber string    `json:"contact_number" gorm:"size:32;not null"`
	Email         string    `json:"email" gorm:"uniqueIndex;size:255;not null"`

	ParentDetails ParentDetails `json:"parent_details" gorm:"embedded;embeddedPrefix:parent_"`
	Address       Address       `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	StudentInfo   StudentInfo   `json:"student_info" gorm:"embedded;embeddedPrefix:student_"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ParentDetails holds guardian contact information.
type ParentDetails struct {
	FatherName    string `json:"father_name" gorm:"size:255;not null"`
	MotherName    string `json:"mother_name" gorm:"size:255;not null"`
	ContactNumber string `json:"contact_number" gorm:"size:32;not null"`
	Email         string `json:"email" gorm:"size:255;not null"`
}

// Address holds the postal address of the student.
type Address struct {
	Street     string `json:"street" gorm:"size:255;not null"`
	City       string `json:"city" gorm:"size:128;not null"`
	State      string `json:"state" gorm:"size:128;not null"`
	PostalCode string `json:"postal_code" gorm:"size:32;not null"`
}

// StudentInfo holds enrollment details.
type StudentInfo struct {
	RollNumber             string `json:"roll_number" gorm:"size:64;not null"`
	Department             string `json:"department" gorm:"size:128;not null"`
	Program                string `json:"program" gorm:"size:128;not null"`
	EnrollmentYear         int    `json:"enrollment_year" gorm:"not null"`
	ExpectedGraduationYear int    `json:"expected_graduation_year" gorm:"not null"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
