package models

// TotalPaid sums the payment amounts of a loan.
func TotalPaid(l Loan) float64 {
	var sum float64
	for _, p := range l.Paid {
		sum += float64(p.Amount)
	}
	return sum
}

// Balance is the outstanding amount: principal plus flat interest minus
// everything paid so far, clamped at zero so an overpaid loan reads as
// settled rather than negative.
func Balance(l Loan) float64 {
	b := float64(l.TotalAmount) + float64(l.Interest) - TotalPaid(l)
	if b < 0 {
		return 0
	}
	return b
}

// LoanView is the read-side shape of a loan: the stored record plus the
// derived totals. The derived fields are computed fresh per read and are
// never persisted.
type LoanView struct {
	Loan
	TotalPaid float64 `json:"totalPaid"`
	Balance   float64 `json:"balance"`
}

// NewLoanView annotates a stored loan with its derived totals.
func NewLoanView(l Loan) LoanView {
	return LoanView{Loan: l, TotalPaid: TotalPaid(l), Balance: Balance(l)}
}

// NewLoanViews annotates a list of loans, preserving order.
func NewLoanViews(loans []Loan) []LoanView {
	views := make([]LoanView, 0, len(loans))
	for _, l := range loans {
		views = append(views, NewLoanView(l))
	}
	return views
}
