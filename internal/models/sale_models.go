package models

import "time"

// Sale is a single transaction owned by exactly one Client.
// SaleDate is stamped when the row is inserted and never changes afterwards.
type Sale struct {
	ID        int64     `json:"id" db:"id"`
	ClientID  int64     `json:"client" db:"client_id"`
	Amount    Money     `json:"amount" db:"amount"`
	SaleDate  Date      `json:"saleDate" db:"sale_date"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
