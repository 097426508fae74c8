package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Loan is a single borrower's ledger entry. Dates are carried verbatim as
// ISO date strings; the store does not interpret them.
type Loan struct {
	ID          LoanID    `json:"_id"`
	Sno         Sequence  `json:"sno"`
	Name        string    `json:"name"`
	GivenDate   string    `json:"givenDate"`
	TotalAmount Amount    `json:"totalAmount"`
	Interest    Amount    `json:"interest"`
	Paid        []Payment `json:"paid"`
}

// Payment is one recorded repayment within a loan.
type Payment struct {
	Amount Amount `json:"amount"`
	Date   string `json:"date"`
}

// LoanPatch is a partial update. Nil fields leave the stored value
// unchanged; a non-nil Paid wholly replaces the stored payment list.
type LoanPatch struct {
	Sno         *Sequence  `json:"sno"`
	Name        *string    `json:"name"`
	GivenDate   *string    `json:"givenDate"`
	TotalAmount *Amount    `json:"totalAmount"`
	Interest    *Amount    `json:"interest"`
	Paid        *[]Payment `json:"paid"`
}

// Apply merges the patch into a copy of the given loan.
func (p LoanPatch) Apply(l Loan) Loan {
	if p.Sno != nil {
		l.Sno = *p.Sno
	}
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.GivenDate != nil {
		l.GivenDate = *p.GivenDate
	}
	if p.TotalAmount != nil {
		l.TotalAmount = *p.TotalAmount
	}
	if p.Interest != nil {
		l.Interest = *p.Interest
	}
	if p.Paid != nil {
		l.Paid = append([]Payment(nil), (*p.Paid)...)
	}
	return l
}

// Amount is a float64 that decodes leniently: JSON numbers parse as usual,
// numeric strings are converted, and anything else (null, booleans, objects)
// becomes 0 instead of failing the whole document.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*a = Amount(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*a = Amount(f)
			return nil
		}
	}
	*a = 0
	return nil
}

// Sequence is an int64 with the same lenient decoding policy as Amount.
// Fractional values truncate toward zero.
type Sequence int64

func (s *Sequence) UnmarshalJSON(b []byte) error {
	var n int64
	if err := json.Unmarshal(b, &n); err == nil {
		*s = Sequence(n)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*s = Sequence(int64(f))
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		if n, err := strconv.ParseInt(strings.TrimSpace(str), 10, 64); err == nil {
			*s = Sequence(n)
			return nil
		}
	}
	*s = 0
	return nil
}
