package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/loan_tracker/internal/apperrors"
	"github.com/SscSPs/loan_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/loan_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/loan_tracker/internal/core/ports/services"
	"github.com/SscSPs/loan_tracker/internal/dto"
	"github.com/SscSPs/loan_tracker/internal/utils/amortization"
	"github.com/SscSPs/loan_tracker/internal/utils/pagination"
	"github.com/SscSPs/loan_tracker/internal/validation"
	"github.com/google/uuid"
)

// loanService implements the LoanSvcFacade interface
type loanService struct {
	BaseService
	loanRepo  portsrepo.LoanRepositoryFacade
	validator *validation.LoanValidator
	views     portssvc.ViewInvalidator
	now       func() time.Time
}

// LoanServiceOption is a functional option for configuring the loan service
type LoanServiceOption func(*loanService)

// WithViewInvalidator makes every successful write drop cached loan views.
func WithViewInvalidator(views portssvc.ViewInvalidator) LoanServiceOption {
	return func(s *loanService) {
		s.views = views
	}
}

// WithClock overrides the time source used for createdAt/updatedAt.
func WithClock(now func() time.Time) LoanServiceOption {
	return func(s *loanService) {
		s.now = now
	}
}

// NewLoanService creates a new loan service with the provided options
func NewLoanService(repo portsrepo.LoanRepositoryFacade, options ...LoanServiceOption) portssvc.LoanSvcFacade {
	svc := &loanService{
		loanRepo:  repo,
		validator: validation.NewLoanValidator(),
		now:       time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure loanService implements the LoanSvcFacade interface
var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// resolveFilter turns raw listing parameters into a repository filter.
func resolveFilter(params dto.ListLoansParams) (domain.LoanFilter, error) {
	filter := domain.LoanFilter{
		Search: strings.TrimSpace(params.Search),
		Sort:   domain.ResolveSort(domain.LoanSortKey(params.Sort)),
		Limit:  params.PerPage,
		Offset: pagination.Offset(params.Page, params.PerPage),
	}

	status := strings.TrimSpace(params.Status)
	if status != "" && !strings.EqualFold(status, domain.StatusFilterAll) {
		filter.Status = domain.LoanStatus(strings.ToUpper(status))
		if !filter.Status.IsValid() {
			errs := validation.NewErrors()
			errs.Add(dto.FieldStatus, "Invalid status")
			return filter, errs
		}
	}
	return filter, nil
}

func (s *loanService) ListLoans(ctx context.Context, params dto.ListLoansParams) (*domain.LoanPage, error) {
	params = params.Normalize()
	filter, err := resolveFilter(params)
	if err != nil {
		return nil, err
	}

	loans, total, err := s.loanRepo.ListLoans(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans",
			slog.String("status", string(filter.Status)),
			slog.String("sort", string(filter.Sort.Key)),
			slog.Int("page", params.Page))
		return nil, err
	}
	if loans == nil {
		loans = []domain.Loan{}
	}

	return &domain.LoanPage{
		Loans:      loans,
		Total:      total,
		Page:       params.Page,
		PerPage:    params.PerPage,
		TotalPages: pagination.TotalPages(total, params.PerPage),
	}, nil
}

func (s *loanService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if !isLoanID(loanID) {
		return nil, apperrors.ErrNotFound
	}
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find loan by ID", slog.String("loan_id", loanID))
		}
		return nil, err
	}
	return loan, nil
}

func (s *loanService) CreateLoan(ctx context.Context, input dto.LoanInput) (*domain.Loan, error) {
	if input.EndDate == nil && input.StartDate != nil && input.Term != nil && *input.Term > 0 {
		end := amortization.AddMonths(*input.StartDate, *input.Term)
		input.EndDate = &end
	}

	if err := s.validator.Validate(input, validation.ModeCreate); err != nil {
		s.LogDebug(ctx, "Loan create rejected", slog.String("error", err.Error()))
		return nil, err
	}

	now := s.now().UTC()
	loan := domain.Loan{
		LoanID:        uuid.NewString(),
		Amount:        *input.Amount,
		InterestRate:  *input.InterestRate,
		Term:          *input.Term,
		BorrowerName:  *input.BorrowerName,
		BorrowerEmail: *input.BorrowerEmail,
		StartDate:     *input.StartDate,
		EndDate:       *input.EndDate,
		Status:        domain.StatusPending,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if input.Description != nil {
		loan.Description = *input.Description
	}

	if err := s.loanRepo.SaveLoan(ctx, loan); err != nil {
		s.LogError(ctx, err, "Failed to save loan", slog.String("loan_id", loan.LoanID))
		return nil, err
	}

	s.invalidate(ctx, loan.LoanID)
	s.LogInfo(ctx, "Loan created successfully", slog.String("loan_id", loan.LoanID))
	return &loan, nil
}

func (s *loanService) UpdateLoan(ctx context.Context, loanID string, input dto.LoanInput) (*domain.Loan, error) {
	if !isLoanID(loanID) {
		return nil, apperrors.ErrNotFound
	}

	patch := input.ToPatch()
	if patch.IsEmpty() {
		errs := validation.NewErrors()
		errs.Add(validation.GeneralField, "no fields to update")
		return nil, errs
	}
	if err := s.validator.Validate(input, validation.ModeUpdate); err != nil {
		s.LogDebug(ctx, "Loan update rejected", slog.String("loan_id", loanID), slog.String("error", err.Error()))
		return nil, err
	}

	loan, err := s.loanRepo.UpdateLoan(ctx, loanID, patch, s.now().UTC())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update loan", slog.String("loan_id", loanID))
		}
		return nil, err
	}

	s.invalidate(ctx, loanID)
	s.LogInfo(ctx, "Loan updated successfully", slog.String("loan_id", loanID))
	return loan, nil
}

func (s *loanService) DeleteLoan(ctx context.Context, loanID string) error {
	if !isLoanID(loanID) {
		return apperrors.ErrNotFound
	}
	if err := s.loanRepo.DeleteLoan(ctx, loanID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete loan", slog.String("loan_id", loanID))
		}
		return err
	}

	s.invalidate(ctx, loanID)
	s.LogInfo(ctx, "Loan deleted successfully", slog.String("loan_id", loanID))
	return nil
}

// invalidate drops cached views after a write. A failure here only leaves
// views stale until their TTL, so it is logged rather than returned.
func (s *loanService) invalidate(ctx context.Context, loanIDs ...string) {
	if s.views == nil {
		return
	}
	if err := s.views.InvalidateLoans(ctx, loanIDs...); err != nil {
		s.LogError(ctx, err, "Failed to invalidate cached loan views",
			slog.Any("loan_ids", loanIDs))
	}
}

// isLoanID reports whether id could name a stored loan. Malformed ids are
// treated as unknown instead of reaching the database as a type error.
func isLoanID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
