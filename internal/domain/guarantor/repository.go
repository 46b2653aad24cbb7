package guarantor

import "context"

type Repository interface {
	Create(ctx context.Context, g *Guarantor) error
	GetByID(ctx context.Context, id uint64) (*Guarantor, error)
	ListByLoan(ctx context.Context, loanID uint64) ([]Guarantor, error)
	CountApprovedByLoan(ctx context.Context, loanID uint64) (int64, error)
	Save(ctx context.Context, g *Guarantor) error
}
