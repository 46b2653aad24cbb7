package mysql

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	loanDomain "gmfn-backend/internal/domain/loan"
	"gmfn-backend/internal/domain/uow"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	guarantorRepo := NewGuarantorRepository(db)

	var loanID uint64
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		l := makeLoan(1, 10, "150000.00")
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		if l.ID == 0 {
			t.Fatalf("loan auto ID not set")
		}
		loanID = l.ID
		return r.Guarantors.Create(ctx, makeGuarantor(l.ID, 1, 20))
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	if _, err := loanRepo.GetByID(ctx, loanID); err != nil {
		t.Fatalf("loan not visible after commit: %v", err)
	}
	gs, err := guarantorRepo.ListByLoan(ctx, loanID)
	if err != nil || len(gs) != 1 {
		t.Fatalf("guarantor not visible after commit: %v (n=%d)", err, len(gs))
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)

	sentinel := errors.New("boom")

	var loanID uint64
	_ = guow.WithinTx(ctx, func(r uow.Repos) error {
		l := makeLoan(1, 10, "150000.00")
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		loanID = l.ID
		return sentinel // force rollback
	})

	if _, err := loanRepo.GetByID(ctx, loanID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected loan not found after rollback, got %v", err)
	}
}

func TestGormUoW_WithinLoanTx_PassesLockedLoan(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)

	l := makeLoan(1, 10, "150000.00")
	if err := loanRepo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	err := guow.WithinLoanTx(ctx, l.ID, func(r uow.Repos, locked *loanDomain.Loan) error {
		if locked.ID != l.ID {
			t.Fatalf("locked loan id = %d, want %d", locked.ID, l.ID)
		}
		locked.Status = loanDomain.StatusApproved
		return r.Loans.Save(ctx, locked)
	})
	if err != nil {
		t.Fatalf("WithinLoanTx err: %v", err)
	}

	got, err := loanRepo.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != loanDomain.StatusApproved {
		t.Fatalf("status = %s, want approved", got.Status)
	}
}

func TestGormUoW_WithinLoanTx_NotFound(t *testing.T) {
	db := openTestDB(t)
	guow := NewGormUoW(db)

	err := guow.WithinLoanTx(context.Background(), 9999, func(r uow.Repos, l *loanDomain.Loan) error {
		t.Fatal("callback should not run")
		return nil
	})
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGormUoW_WithinLoanTx_RollsBackGuarantorWrites(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	guow := NewGormUoW(db)
	loanRepo := NewLoanRepository(db)
	guarantorRepo := NewGuarantorRepository(db)

	l := makeLoan(1, 10, "150000.00")
	if err := loanRepo.Create(ctx, l); err != nil {
		t.Fatalf("Create: %v", err)
	}

	sentinel := errors.New("boom")
	_ = guow.WithinLoanTx(ctx, l.ID, func(r uow.Repos, locked *loanDomain.Loan) error {
		if err := r.Guarantors.Create(ctx, makeGuarantor(locked.ID, 1, 20)); err != nil {
			return err
		}
		return sentinel
	})

	gs, err := guarantorRepo.ListByLoan(ctx, l.ID)
	if err != nil {
		t.Fatalf("ListByLoan: %v", err)
	}
	if len(gs) != 0 {
		t.Fatalf("guarantor visible after rollback: %+v", gs)
	}
}
