package core

import (
	"errors"
	"fmt"
	"strings"
)

type (
	Money struct {
		Cents int64
	}

	// Deputy identifies a federal deputy as resolved by the directory search.
	Deputy struct {
		ID    int64
		Name  string
		Party string
		State string // two-letter UF code
	}

	// Expense is one reimbursement record from the despesas listing. Amount
	// keeps the raw upstream value (string or number on the wire); coercion
	// to cents happens during aggregation.
	Expense struct {
		Category     string
		Amount       string
		DocumentDate string
		Supplier     string
		DocumentCode string
	}

	// CategoryTotal is the summed spend for one expense category.
	CategoryTotal struct {
		Name   string
		Amount Money
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyName     = errors.New("empty name")
)

// DataFormatError reports a fetched record whose amount field could not be
// coerced to a numeric value. It fails the whole aggregation.
type DataFormatError struct {
	Field string
	Value string
	Err   error
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("bad %s value %q: %v", e.Field, e.Value, e.Err)
}

func (e *DataFormatError) Unwrap() error { return e.Err }

func (d Deputy) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Label renders the banner form "Name (PARTY-UF)".
func (d Deputy) Label() string {
	if d.Party == "" && d.State == "" {
		return d.Name
	}
	return d.Name + " (" + d.Party + "-" + d.State + ")"
}
