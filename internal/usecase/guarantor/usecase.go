package guarantor

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

// Invite records a pending guarantee on a loan. Admin-only; the guarantor
// must already be a member of the loan's clan, and a borrower cannot
// guarantee their own loan. The membership check runs inside the insert
// transaction and is additionally backed by the composite FK, so a
// concurrent membership removal cannot slip a non-member in.
func (u *Usecase) Invite(ctx context.Context, loanID, guarantorUserID uint64, pledge decimal.Decimal, caller *member.Context) (*guarantor.Guarantor, error) {
	if pledge.IsNegative() {
		return nil, fault.InvalidInput("pledge amount cannot be negative")
	}

	l, err := u.loans.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("loan not found")
		}
		return nil, err
	}
	if caller.Clan.ID != l.ClanID || !caller.Membership.IsAdmin() {
		return nil, fault.Forbidden("clan admin privileges required")
	}
	if guarantorUserID == l.BorrowerUserID {
		return nil, fault.InvalidInput("borrower cannot guarantee their own loan")
	}

	var created *guarantor.Guarantor
	err = u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Memberships.Get(ctx, l.ClanID, guarantorUserID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fault.InvalidInput("guarantor must be a clan member")
			}
			return err
		}
		g := &guarantor.Guarantor{
			LoanID:          l.ID,
			ClanID:          l.ClanID,
			GuarantorUserID: guarantorUserID,
			PledgeAmount:    pledge,
			Status:          guarantor.StatusPending,
		}
		if err := r.Guarantors.Create(ctx, g); err != nil {
			switch {
			case errors.Is(err, gorm.ErrDuplicatedKey):
				return fault.Conflict("guarantor already added for this loan")
			case errors.Is(err, gorm.ErrForeignKeyViolated):
				return fault.InvalidInput("guarantor must be a clan member")
			}
			return err
		}
		created = g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// List returns a loan's guarantors, newest first, to members of its clan.
func (u *Usecase) List(ctx context.Context, loanID uint64, caller *member.Context) ([]guarantor.Guarantor, error) {
	l, err := u.loans.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("loan not found")
		}
		return nil, err
	}
	if caller.Clan.ID != l.ClanID {
		return nil, fault.Forbidden("not allowed")
	}
	return u.guarantors.ListByLoan(ctx, l.ID)
}

// Decide records a guarantor's accept/decline outcome. On approval the
// loan row is already locked (WithinLoanTx), the approved count is
// re-read, and a pending loan that has met its quota flips to approved
// exactly once, stamped to the deciding admin.
func (u *Usecase) Decide(ctx context.Context, loanID, guarantorRowID uint64, newStatus string, caller *member.Context) (*guarantor.Guarantor, error) {
	st, ok := guarantor.ParseStatus(newStatus)
	if !ok {
		return nil, fault.InvalidInput("invalid status %q", newStatus)
	}

	var decided *guarantor.Guarantor
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.Loan) error {
		if caller.Clan.ID != l.ClanID || !caller.Membership.IsAdmin() {
			return fault.Forbidden("clan admin privileges required")
		}
		g, err := r.Guarantors.GetByID(ctx, guarantorRowID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fault.NotFound("guarantor not found")
			}
			return err
		}
		if g.LoanID != l.ID {
			return fault.NotFound("guarantor not found")
		}
		if g.Status.Terminal() {
			return fault.Conflict("guarantee already decided")
		}

		g.Status = st
		if st != guarantor.StatusPending {
			now := time.Now().UTC()
			g.RespondedAt = &now
		}
		if err := r.Guarantors.Save(ctx, g); err != nil {
			return err
		}

		if st == guarantor.StatusApproved && l.Status == loan.StatusPending {
			approved, err := r.Guarantors.CountApprovedByLoan(ctx, l.ID)
			if err != nil {
				return err
			}
			if approved >= int64(l.GuarantorsRequired) {
				now := time.Now().UTC()
				decider := caller.UserID
				l.Status = loan.StatusApproved
				l.DecisionByUserID = &decider
				l.DecisionAt = &now
				if err := r.Loans.Save(ctx, l); err != nil {
					return err
				}
			}
		}
		decided = g
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("loan not found")
		}
		return nil, err
	}
	return decided, nil
}
