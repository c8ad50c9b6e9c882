package mapping

import (
	"github.com/SscSPs/loan_tracker/internal/core/domain"
	"github.com/SscSPs/loan_tracker/internal/models"
)

// ToModelLoan converts a domain Loan to a model Loan
func ToModelLoan(d domain.Loan) models.Loan {
	return models.Loan{
		LoanID:        d.LoanID,
		Amount:        d.Amount,
		InterestRate:  d.InterestRate,
		Term:          d.Term,
		BorrowerName:  d.BorrowerName,
		BorrowerEmail: d.BorrowerEmail,
		Description:   d.Description,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		Status:        models.LoanStatus(d.Status),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDomainLoan converts a model Loan to a domain Loan
func ToDomainLoan(m models.Loan) domain.Loan {
	return domain.Loan{
		LoanID:        m.LoanID,
		Amount:        m.Amount,
		InterestRate:  m.InterestRate,
		Term:          m.Term,
		BorrowerName:  m.BorrowerName,
		BorrowerEmail: m.BorrowerEmail,
		Description:   m.Description,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		Status:        domain.LoanStatus(m.Status),
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

// ToDomainLoanSlice converts a slice of model Loans to a slice of domain Loans
func ToDomainLoanSlice(ms []models.Loan) []domain.Loan {
	ds := make([]domain.Loan, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLoan(m)
	}
	return ds
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID: m.PaymentID,
		LoanID:    m.LoanID,
		Amount:    m.Amount,
		PaidAt:    m.PaidAt,
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID: m.DocumentID,
		LoanID:     m.LoanID,
		Name:       m.Name,
		URL:        m.URL,
		CreatedAt:  m.CreatedAt,
	}
}
