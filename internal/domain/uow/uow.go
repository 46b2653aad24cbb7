package uow

import (
	"context"

	"gmfn-backend/internal/domain/clan"
	"gmfn-backend/internal/domain/guarantor"
	"gmfn-backend/internal/domain/loan"
	"gmfn-backend/internal/domain/user"
)

type Repos struct {
	Users       user.Repository
	Clans       clan.Repository
	Memberships clan.MembershipRepository
	Loans       loan.Repository
	Guarantors  guarantor.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the loan row first, then pass it in
	WithinLoanTx(ctx context.Context, loanID uint64, fn func(r Repos, l *loan.Loan) error) error
}
