package loan

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gmfn-backend/internal/domain/clan"
	"gmfn-backend/internal/domain/fault"
	"gmfn-backend/internal/domain/guarantor"
	"gmfn-backend/internal/domain/loan"
	"gmfn-backend/internal/domain/uow"
	"gmfn-backend/internal/usecase/member"
)

type Usecase struct {
	loans      loan.Repository
	members    clan.MembershipRepository
	guarantors guarantor.Repository
	uow        uow.UnitOfWork
}

func NewUsecase(loans loan.Repository, members clan.MembershipRepository, guarantors guarantor.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{loans: loans, members: members, guarantors: guarantors, uow: tx}
}

type CreateInput struct {
	Amount   decimal.Decimal
	Currency string
}

// Create requests a loan for the caller. Within the personal pool the
// loan auto-approves and the pool is debited in the same transaction as
// the insert; beyond the pool it stays pending behind the guarantor quota.
func (u *Usecase) Create(ctx context.Context, caller *member.Context, in CreateInput) (*loan.Loan, error) {
	if !in.Amount.IsPositive() {
		return nil, fault.InvalidInput("amount must be positive")
	}
	currency := in.Currency
	if currency == "" {
		currency = loan.DefaultCurrency
	}

	var created *loan.Loan
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// re-read the membership inside the tx so the debit applies to
		// the current balance, not the one resolved at request start
		m, err := r.Memberships.Get(ctx, caller.Clan.ID, caller.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fault.Forbidden("not a clan member")
			}
			return err
		}

		l := &loan.Loan{
			ClanID:             caller.Clan.ID,
			BorrowerUserID:     caller.UserID,
			Amount:             in.Amount,
			Currency:           currency,
			Status:             loan.StatusPending,
			GuarantorsRequired: loan.GuarantorsBeyondPool,
		}

		if in.Amount.LessThanOrEqual(m.PersonalPoolBalance) {
			now := time.Now().UTC()
			borrower := caller.UserID
			l.Status = loan.StatusApproved
			l.GuarantorsRequired = 0
			l.DecisionByUserID = &borrower
			l.DecisionAt = &now
			m.PersonalPoolBalance = m.PersonalPoolBalance.Sub(in.Amount)
			if err := r.Memberships.Save(ctx, m); err != nil {
				return err
			}
		}

		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		created = l
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Get returns a loan to its borrower or to an admin of its clan.
func (u *Usecase) Get(ctx context.Context, loanID, callerUserID uint64) (*loan.Loan, error) {
	l, err := u.loans.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("loan not found")
		}
		return nil, err
	}
	m, err := u.members.Get(ctx, l.ClanID, callerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.Forbidden("not allowed")
		}
		return nil, err
	}
	if l.BorrowerUserID != callerUserID && !m.IsAdmin() {
		return nil, fault.Forbidden("not allowed")
	}
	return l, nil
}

// ListMine returns the caller's loans in their clan, newest first.
func (u *Usecase) ListMine(ctx context.Context, caller *member.Context) ([]loan.Loan, error) {
	return u.loans.ListByBorrower(ctx, caller.Clan.ID, caller.UserID)
}

// ListAll returns every loan in the caller's clan; clan admins only.
func (u *Usecase) ListAll(ctx context.Context, caller *member.Context) ([]loan.Loan, error) {
	if !caller.Membership.IsAdmin() {
		return nil, fault.Forbidden("clan admin privileges required")
	}
	return u.loans.ListByClan(ctx, caller.Clan.ID)
}

// UpdateStatus applies an admin decision. Approval requires the quota of
// approved guarantors; terminal loans are immutable. The loan row is
// locked for the check-then-write sequence.
func (u *Usecase) UpdateStatus(ctx context.Context, loanID uint64, newStatus string, caller *member.Context) (*loan.Loan, error) {
	st, ok := loan.ParseStatus(newStatus)
	if !ok {
		return nil, fault.InvalidInput("invalid status %q", newStatus)
	}
	// the only transitions are pending -> approved|rejected
	if !st.Terminal() {
		return nil, fault.InvalidInput("loan status can only be set to approved or rejected")
	}

	var updated *loan.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if caller.Clan.ID != l.ClanID || !caller.Membership.IsAdmin() {
			return fault.Forbidden("clan admin privileges required")
		}
		if l.Status.Terminal() {
			return fault.Conflict("loan already decided")
		}
		if st == loan.StatusApproved {
			approved, err := r.Guarantors.CountApprovedByLoan(ctx, l.ID)
			if err != nil {
				return err
			}
			if approved < int64(l.GuarantorsRequired) {
				return fault.PreconditionFailed(
					"loan requires %d approved guarantor(s); currently %d",
					l.GuarantorsRequired, approved,
				)
			}
		}
		now := time.Now().UTC()
		decider := caller.UserID
		l.Status = st
		l.DecisionByUserID = &decider
		l.DecisionAt = &now
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		updated = l
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("loan not found")
		}
		return nil, err
	}
	return updated, nil
}
