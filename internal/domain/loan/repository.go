package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	// GetByIDForUpdate locks the loan row for the remainder of the
	// surrounding transaction (SELECT ... FOR UPDATE).
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	ListByBorrower(ctx context.Context, clanID, borrowerUserID uint64) ([]Loan, error)
	ListByClan(ctx context.Context, clanID uint64) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
}
