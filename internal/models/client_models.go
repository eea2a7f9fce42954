package models

import "time"

// Client represents a customer of the toy store.
type Client struct {
	ID        int64     `json:"id" db:"id"`
	FullName  string    `json:"fullName" db:"full_name"`
	Email     string    `json:"email" db:"email"`
	BirthDate Date      `json:"birthDate" db:"birth_date"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
