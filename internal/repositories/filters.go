package repositories

import (
	"fmt"
	"strings"

	"toy_store_backend/internal/models"
)

// Predicate is a single exact-match condition: column = value.
type Predicate struct {
	Column string
	Value  interface{}
}

// ClientFilter lists the fields clients may be filtered on. Nil fields are
// not filtered.
type ClientFilter struct {
	FullName *string
	Email    *string
}

// Predicates compiles the filter into AND-combined exact-match predicates.
func (f ClientFilter) Predicates() []Predicate {
	var preds []Predicate
	if f.FullName != nil {
		preds = append(preds, Predicate{Column: "full_name", Value: *f.FullName})
	}
	if f.Email != nil {
		preds = append(preds, Predicate{Column: "email", Value: *f.Email})
	}
	return preds
}

// SaleFilter lists the fields sales may be filtered on.
type SaleFilter struct {
	ClientID *int64
	SaleDate *models.Date
}

func (f SaleFilter) Predicates() []Predicate {
	var preds []Predicate
	if f.ClientID != nil {
		preds = append(preds, Predicate{Column: "client_id", Value: *f.ClientID})
	}
	if f.SaleDate != nil {
		preds = append(preds, Predicate{Column: "sale_date", Value: *f.SaleDate})
	}
	return preds
}

// Page selects a 1-based page of Size rows. Size <= 0 means no limit.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	if p.Number <= 1 || p.Size <= 0 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

// buildWhere renders predicates as " WHERE a = $n AND b = $n+1" starting at
// placeholder argStart. It returns the clause and the matching args.
func buildWhere(preds []Predicate, argStart int) (string, []interface{}) {
	if len(preds) == 0 {
		return "", nil
	}
	conditions := make([]string, 0, len(preds))
	args := make([]interface{}, 0, len(preds))
	for i, p := range preds {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", p.Column, argStart+i))
		args = append(args, p.Value)
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// buildLimit appends LIMIT/OFFSET placeholders for page.
func buildLimit(page Page, argStart int) (string, []interface{}) {
	if page.Size <= 0 {
		return "", nil
	}
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", argStart, argStart+1), []interface{}{page.Size, page.Offset()}
}
