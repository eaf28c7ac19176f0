package smartwallet

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValidationError reports a client-side input check failure. It is raised
// before any network I/O, so a call that fails validation never reaches the
// backend.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// MinPasswordLen mirrors the backend's signup rule so the failure is caught
// locally.
const MinPasswordLen = 8

// StatementTypes are the accepted statement_type values for uploads.
var StatementTypes = []string{"Bank", "Credit Card", "UPI"}

// ValidatePassword checks the signup password rule.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return &ValidationError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters long", MinPasswordLen)}
	}
	return nil
}

// ValidateEmail performs a cheap shape check; real validation is the
// backend's job.
func ValidateEmail(email string) error {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return &ValidationError{Field: "email", Reason: "not an email address"}
	}
	return nil
}

// ParseBudget validates and normalizes a user-supplied budget amount. It
// accepts any decimal notation, rejects negatives, and returns the value as
// the float the backend expects.
func ParseBudget(s string) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, &ValidationError{Field: "budget", Reason: fmt.Sprintf("%q is not a number", s)}
	}
	if d.IsNegative() {
		return 0, &ValidationError{Field: "budget", Reason: "must not be negative"}
	}
	f, _ := d.Float64()
	return f, nil
}

// ValidateDate checks a YYYY-MM-DD filter bound.
func ValidateDate(day string) error {
	if day == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return &ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not in YYYY-MM-DD format", day)}
	}
	return nil
}

// ValidateMonth checks a YYYY-MM stats filter.
func ValidateMonth(month string) error {
	if month == "" {
		return nil
	}
	if _, err := time.Parse("2006-01", month); err != nil {
		return &ValidationError{Field: "month", Reason: fmt.Sprintf("%q is not in YYYY-MM format", month)}
	}
	return nil
}

// NormalizeStatementType maps loose spellings ("upi", "credit-card",
// "creditcard") onto the canonical statement types, the same normalization
// the backend applies server-side. Empty input stays empty: the backend
// treats the type as optional.
func NormalizeStatementType(s string) (string, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	t = strings.NewReplacer("-", " ", "_", " ").Replace(t)
	t = strings.Join(strings.Fields(t), " ")
	switch t {
	case "":
		return "", nil
	case "bank":
		return "Bank", nil
	case "credit card", "creditcard", "cc":
		return "Credit Card", nil
	case "upi":
		return "UPI", nil
	}
	return "", &ValidationError{Field: "statement_type", Reason: fmt.Sprintf("%q is not one of %s", s, strings.Join(StatementTypes, ", "))}
}
