package models

import (
	"time"
)

// User represents a row in the fleet_users table.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         *string   `json:"name,omitempty" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // never sent to the client
	RoleID       int64     `json:"role_id" db:"role_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Company represents a row in the companies table. All business attributes
// are nullable; the store's NOT NULL constraints are the only validation.
type Company struct {
	ID                 int64     `json:"id" db:"id"`
	UserID             int64     `json:"-" db:"user_id"`
	Name               *string   `json:"name" db:"name"`
	EstablishedDate    *string   `json:"established_date" db:"established_date"`
	RegistrationNumber *string   `json:"registration_number" db:"registration_number"`
	Website            *string   `json:"website" db:"website"`
	Address1           *string   `json:"address1" db:"address1"`
	Address2           *string   `json:"address2" db:"address2"`
	City               *string   `json:"city" db:"city"`
	State              *string   `json:"state" db:"state"`
	ZipCode            *string   `json:"zip_code" db:"zip_code"`
	ContactFirstName   *string   `json:"contact_first_name" db:"contact_first_name"`
	ContactLastName    *string   `json:"contact_last_name" db:"contact_last_name"`
	ContactEmail       *string   `json:"contact_email" db:"contact_email"`
	ContactPhone       *string   `json:"contact_phone" db:"contact_phone"`
	IsActive           bool      `json:"-" db:"is_active"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// Driver represents a row in the drivers table.
type Driver struct {
	ID              int64     `json:"id" db:"id"`
	UserID          int64     `json:"-" db:"user_id"`
	CompanyID       *int64    `json:"-" db:"company_id"`
	FirstName       *string   `json:"first_name" db:"first_name"`
	LastName        *string   `json:"last_name" db:"last_name"`
	Email           *string   `json:"email" db:"email"`
	Phone           *string   `json:"phone" db:"phone"`
	DateOfBirth     *string   `json:"date_of_birth" db:"date_of_birth"`
	LicenseNumber   *string   `json:"license_number" db:"license_number"`
	ExperienceYears *int64    `json:"experience_years" db:"experience_years"`
	Address1        *string   `json:"address1" db:"address1"`
	Address2        *string   `json:"address2" db:"address2"`
	City            *string   `json:"city" db:"city"`
	State           *string   `json:"state" db:"state"`
	ZipCode         *string   `json:"zip_code" db:"zip_code"`
	IsActive        bool      `json:"-" db:"is_active"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// CompanyInput carries the company attributes a client may supply on create
// or update. On update a nil field means "keep the stored value" — there is
// no way to clear a field.
type CompanyInput struct {
	Name               *string `json:"name"`
	EstablishedDate    *string `json:"established_date"`
	RegistrationNumber *string `json:"registration_number"`
	Website            *string `json:"website"`
	Address1           *string `json:"address1"`
	Address2           *string `json:"address2"`
	City               *string `json:"city"`
	State              *string `json:"state"`
	ZipCode            *string `json:"zip_code"`
	ContactFirstName   *string `json:"contact_first_name"`
	ContactLastName    *string `json:"contact_last_name"`
	ContactEmail       *string `json:"contact_email"`
	ContactPhone       *string `json:"contact_phone"`
}

// DriverInput carries the driver attributes a client may supply on create or
// update, with the same nil-means-keep semantics as CompanyInput.
type DriverInput struct {
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	DateOfBirth     *string `json:"date_of_birth"`
	LicenseNumber   *string `json:"license_number"`
	ExperienceYears *int64  `json:"experience_years"`
	Address1        *string `json:"address1"`
	Address2        *string `json:"address2"`
	City            *string `json:"city"`
	State           *string `json:"state"`
	ZipCode         *string `json:"zip_code"`
}

// Pagination is the metadata half of a list envelope.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}
