// Package ledger defines transaction records and the store they are kept in.
package ledger

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Type is the kind of a transaction.
type Type string

const (
	Invest Type = "Invest"
	Return Type = "Return"
)

// Valid reports whether t is a known transaction type.
func (t Type) Valid() bool {
	return t == Invest || t == Return
}

// Lower returns the type name for use inside sentences, e.g. "invest".
func (t Type) Lower() string {
	return strings.ToLower(string(t))
}

// Status is the settlement state of a transaction.
type Status string

// StatusPending is the status of every freshly logged transaction.
const StatusPending Status = "Pending"

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

// Record is one ledger row. JSON names match the spreadsheet column headers.
type Record struct {
	Date         string `json:"Date" db:"date"`
	Timestamp    string `json:"Timestamp" db:"ts"`
	Type         Type   `json:"Type" db:"type"`
	Amount       string `json:"Amount" db:"amount"`
	ReturnAmount string `json:"Return Amount" db:"return_amount"`
	Status       Status `json:"Status" db:"status"`
	Notes        string `json:"Notes" db:"notes"`
}

// NewRecord builds a pending record stamped with now in UTC.
func NewRecord(now time.Time, typ Type, amount, note string) Record {
	now = now.UTC()
	return Record{
		Date:      now.Format(dateLayout),
		Timestamp: now.Format(timestampLayout),
		Type:      typ,
		Amount:    amount,
		Status:    StatusPending,
		Notes:     note,
	}
}

// ErrInvalidAmount is returned for amounts that are not a plain run of digits.
var ErrInvalidAmount = errors.New("ledger: amount must be a whole number")

var amountRe = regexp.MustCompile(`^[0-9]+$`)

// ValidateAmount trims s and checks it is a non-empty run of ASCII digits.
// Signs, decimals and separators are rejected.
func ValidateAmount(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !amountRe.MatchString(s) {
		return "", ErrInvalidAmount
	}
	return s, nil
}
