package dto

import "github.com/hongminglow/loanbook-be/internal/models"

// LoanInput is the create-request body: a loan minus its identifier.
type LoanInput struct {
	Sno         models.Sequence  `json:"sno"`
	Name        string           `json:"name"`
	GivenDate   string           `json:"givenDate"`
	TotalAmount models.Amount    `json:"totalAmount"`
	Interest    models.Amount    `json:"interest"`
	Paid        []models.Payment `json:"paid"`
}

// Loan converts the input into a record ready for the store to assign an id.
func (in LoanInput) Loan() models.Loan {
	return models.Loan{
		Sno:         in.Sno,
		Name:        in.Name,
		GivenDate:   in.GivenDate,
		TotalAmount: in.TotalAmount,
		Interest:    in.Interest,
		Paid:        in.Paid,
	}
}
