package models

import (
	"database/sql/driver"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time of day. The wrapped time is always
// midnight UTC so two Dates for the same day compare equal.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in t's own location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return NewDate(t), nil
}

func (d Date) String() string { return d.Format(DateLayout) }

// Equal reports whether both dates name the same day.
func (d Date) Equal(other Date) bool { return d.Time.Equal(other.Time) }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s, expected a \"YYYY-MM-DD\" string", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Scan implements sql.Scanner for DATE columns.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		*d = NewDate(v)
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		return d.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

// Value implements driver.Valuer.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Money is a fixed-point currency amount. It is rendered in JSON as a string
// with exactly two fractional digits ("99.90").
type Money struct {
	decimal.Decimal
}

// NewMoney parses a decimal string such as "99.99".
func NewMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{trimZeros(d)}, nil
}

// MustMoney is NewMoney for literals known to be valid.
func MustMoney(s string) Money {
	m, err := NewMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// MoneyFromDecimal wraps an existing decimal.
func MoneyFromDecimal(d decimal.Decimal) Money { return Money{d} }

func (m Money) String() string { return m.StringFixed(2) }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts both quoted ("12.50") and bare (12.5) numbers.
func (m *Money) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("a valid number is required: %w", err)
	}
	m.Decimal = trimZeros(d)
	return nil
}

// Digits reports how many significant integer and fractional digits m has.
// It only inspects the coefficient and exponent, so it stays cheap for
// inputs such as "1e-100000000" that would be slow to rescale.
func (m Money) Digits() (integer, fraction int64) {
	d := trimZeros(m.Decimal)
	if d.Sign() == 0 {
		return 0, 0
	}
	n := int64(len(strings.TrimPrefix(d.Coefficient().String(), "-")))
	exp := int64(d.Exponent())
	if exp < 0 {
		fraction = -exp
	}
	integer = n + exp
	if integer < 0 {
		integer = 0
	}
	return integer, fraction
}

// trimZeros drops trailing zeros from the coefficient, moving them into the
// exponent. Zero is returned with exponent 0.
func trimZeros(d decimal.Decimal) decimal.Decimal {
	coef := d.Coefficient()
	if coef.Sign() == 0 {
		return decimal.Zero
	}
	s := coef.String()
	trimmed := strings.TrimRight(s, "0")
	if len(trimmed) == len(s) {
		return d
	}
	exp := int64(d.Exponent()) + int64(len(s)-len(trimmed))
	if exp > math.MaxInt32 {
		return d
	}
	coef.SetString(trimmed, 10)
	return decimal.NewFromBigInt(coef, int32(exp))
}
