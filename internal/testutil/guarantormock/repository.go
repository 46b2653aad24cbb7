package guarantormock

import (
	"context"

	domain "gmfn-backend/internal/domain/guarantor"
)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn              func(ctx context.Context, g *domain.Guarantor) error
	GetByIDFn             func(ctx context.Context, id uint64) (*domain.Guarantor, error)
	ListByLoanFn          func(ctx context.Context, loanID uint64) ([]domain.Guarantor, error)
	CountApprovedByLoanFn func(ctx context.Context, loanID uint64) (int64, error)
	SaveFn                func(ctx context.Context, g *domain.Guarantor) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, g *domain.Guarantor) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, g)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Guarantor, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByLoan(ctx context.Context, loanID uint64) ([]domain.Guarantor, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanID)
	}
	return nil, nil
}

func (m *Repo) CountApprovedByLoan(ctx context.Context, loanID uint64) (int64, error) {
	if m.CountApprovedByLoanFn != nil {
		return m.CountApprovedByLoanFn(ctx, loanID)
	}
	return 0, nil
}

func (m *Repo) Save(ctx context.Context, g *domain.Guarantor) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, g)
	}
	return nil
}
