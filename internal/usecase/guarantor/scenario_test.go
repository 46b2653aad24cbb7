package guarantor

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	mysqlrepo "gmfn-backend/internal/adapter/repository/mysql"
	clanDomain "gmfn-backend/internal/domain/clan"
	guarantorDomain "gmfn-backend/internal/domain/guarantor"
	loanDomain "gmfn-backend/internal/domain/loan"
	userDomain "gmfn-backend/internal/domain/user"
	loanUsecase "gmfn-backend/internal/usecase/loan"
	"gmfn-backend/internal/usecase/member"
)

// flowEnv wires the real gorm repositories and usecases over an
// in-memory sqlite DB, so the full lending flow runs against actual
// constraints and transactions.
type flowEnv struct {
	db         *gorm.DB
	loanRepo   loanDomain.Repository
	memberRepo clanDomain.MembershipRepository
	loans      *loanUsecase.Usecase
	guarantors *Usecase
}

func newFlowEnv(t *testing.T) *flowEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&userDomain.User{},
		&clanDomain.Clan{},
		&clanDomain.Membership{},
		&loanDomain.Loan{},
		&guarantorDomain.Guarantor{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}

	loanRepo := mysqlrepo.NewLoanRepository(db)
	memberRepo := mysqlrepo.NewMembershipRepository(db)
	guarantorRepo := mysqlrepo.NewGuarantorRepository(db)
	tx := mysqlrepo.NewGormUoW(db)

	return &flowEnv{
		db:         db,
		loanRepo:   loanRepo,
		memberRepo: memberRepo,
		loans:      loanUsecase.NewUsecase(loanRepo, memberRepo, guarantorRepo, tx),
		guarantors: NewUsecase(loanRepo, memberRepo, guarantorRepo, tx),
	}
}

func (e *flowEnv) seedMember(t *testing.T, clanID, userID uint64, role userDomain.Role, balance string) *member.Context {
	t.Helper()
	m := clanDomain.Membership{
		ClanID:              clanID,
		UserID:              userID,
		Role:                role,
		PersonalPoolBalance: decimal.RequireFromString(balance),
	}
	if err := e.db.Create(&m).Error; err != nil {
		t.Fatalf("seed membership: %v", err)
	}
	return &member.Context{
		Clan:       clanDomain.Clan{ID: clanID, Name: clanDomain.DefaultName},
		Membership: m,
		UserID:     userID,
	}
}

func TestFlow_BeyondPoolLoanApprovesOnSecondGuarantee(t *testing.T) {
	env := newFlowEnv(t)
	ctx := context.Background()

	borrower := env.seedMember(t, 1, 10, userDomain.RoleUser, "0")
	admin := env.seedMember(t, 1, 2, userDomain.RoleAdmin, "0")
	env.seedMember(t, 1, 20, userDomain.RoleUser, "0")
	env.seedMember(t, 1, 21, userDomain.RoleUser, "0")
	env.seedMember(t, 1, 22, userDomain.RoleUser, "0")

	l, err := env.loans.Create(ctx, borrower, loanUsecase.CreateInput{Amount: decimal.RequireFromString("100.00")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.Status != loanDomain.StatusPending || l.GuarantorsRequired != 2 {
		t.Fatalf("expected pending with quota 2, got %+v", l)
	}

	g1, err := env.guarantors.Invite(ctx, l.ID, 20, decimal.RequireFromString("50.00"), admin)
	if err != nil {
		t.Fatalf("Invite g1: %v", err)
	}
	g2, err := env.guarantors.Invite(ctx, l.ID, 21, decimal.RequireFromString("50.00"), admin)
	if err != nil {
		t.Fatalf("Invite g2: %v", err)
	}

	if _, err := env.guarantors.Decide(ctx, l.ID, g1.ID, "approved", admin); err != nil {
		t.Fatalf("Decide g1: %v", err)
	}
	mid, err := env.loanRepo.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if mid.Status != loanDomain.StatusPending {
		t.Fatalf("loan flipped on first approval: %s", mid.Status)
	}

	if _, err := env.guarantors.Decide(ctx, l.ID, g2.ID, "approved", admin); err != nil {
		t.Fatalf("Decide g2: %v", err)
	}
	done, err := env.loanRepo.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if done.Status != loanDomain.StatusApproved {
		t.Fatalf("loan not approved at quota: %s", done.Status)
	}
	if done.DecisionByUserID == nil || *done.DecisionByUserID != admin.UserID {
		t.Fatalf("decision not stamped to deciding admin: %+v", done.DecisionByUserID)
	}
	if done.DecisionAt == nil {
		t.Fatal("decision_at not stamped")
	}

	// a late third approval must not re-stamp the decided loan
	g3, err := env.guarantors.Invite(ctx, l.ID, 22, decimal.Zero, admin)
	if err != nil {
		t.Fatalf("Invite g3: %v", err)
	}
	if _, err := env.guarantors.Decide(ctx, l.ID, g3.ID, "approved", admin); err != nil {
		t.Fatalf("Decide g3: %v", err)
	}
	after, err := env.loanRepo.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !after.DecisionAt.Equal(*done.DecisionAt) || *after.DecisionByUserID != *done.DecisionByUserID {
		t.Fatalf("decided loan re-stamped: %+v", after)
	}
}

func TestFlow_WithinPoolLoanAutoApprovesAndDebits(t *testing.T) {
	env := newFlowEnv(t)
	ctx := context.Background()

	borrower := env.seedMember(t, 1, 10, userDomain.RoleUser, "500.00")

	l, err := env.loans.Create(ctx, borrower, loanUsecase.CreateInput{Amount: decimal.RequireFromString("300.00")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if l.Status != loanDomain.StatusApproved || l.GuarantorsRequired != 0 {
		t.Fatalf("expected auto-approved with no quota, got %+v", l)
	}
	if l.DecisionByUserID == nil || *l.DecisionByUserID != borrower.UserID {
		t.Fatalf("decision not stamped to borrower: %+v", l.DecisionByUserID)
	}

	m, err := env.memberRepo.Get(ctx, 1, 10)
	if err != nil {
		t.Fatalf("Get membership: %v", err)
	}
	if !m.PersonalPoolBalance.Equal(decimal.RequireFromString("200.00")) {
		t.Fatalf("pool balance = %s, want 200.00", m.PersonalPoolBalance)
	}
}

func TestFlow_RejectedGuaranteeKeepsLoanBehindQuota(t *testing.T) {
	env := newFlowEnv(t)
	ctx := context.Background()

	borrower := env.seedMember(t, 1, 10, userDomain.RoleUser, "0")
	admin := env.seedMember(t, 1, 2, userDomain.RoleAdmin, "0")
	env.seedMember(t, 1, 20, userDomain.RoleUser, "0")
	env.seedMember(t, 1, 21, userDomain.RoleUser, "0")

	l, err := env.loans.Create(ctx, borrower, loanUsecase.CreateInput{Amount: decimal.RequireFromString("100.00")})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	g1, err := env.guarantors.Invite(ctx, l.ID, 20, decimal.Zero, admin)
	if err != nil {
		t.Fatalf("Invite g1: %v", err)
	}
	g2, err := env.guarantors.Invite(ctx, l.ID, 21, decimal.Zero, admin)
	if err != nil {
		t.Fatalf("Invite g2: %v", err)
	}

	if _, err := env.guarantors.Decide(ctx, l.ID, g1.ID, "approved", admin); err != nil {
		t.Fatalf("Decide g1: %v", err)
	}
	if _, err := env.guarantors.Decide(ctx, l.ID, g2.ID, "rejected", admin); err != nil {
		t.Fatalf("Decide g2: %v", err)
	}

	got, err := env.loanRepo.GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != loanDomain.StatusPending {
		t.Fatalf("loan must stay pending behind quota, got %s", got.Status)
	}

	// an admin override is still refused short of the quota
	if _, err := env.loans.UpdateStatus(ctx, l.ID, "approved", admin); err == nil {
		t.Fatal("expected precondition failure approving below quota")
	}
}
