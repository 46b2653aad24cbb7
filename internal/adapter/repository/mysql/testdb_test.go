package mysql

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	clanDomain "gmfn-backend/internal/domain/clan"
	guarantorDomain "gmfn-backend/internal/domain/guarantor"
	loanDomain "gmfn-backend/internal/domain/loan"
	userDomain "gmfn-backend/internal/domain/user"
)

// openTestDB opens an in-memory sqlite DB and migrates the domain models.
// TranslateError is on, same as production, so constraint violations
// surface as gorm.ErrDuplicatedKey / ErrForeignKeyViolated.
func openTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func makeLoan(clanID, borrowerUserID uint64, amount string) *loanDomain.Loan {
	return &loanDomain.Loan{
		ClanID:             clanID,
		BorrowerUserID:     borrowerUserID,
		Amount:             decimal.RequireFromString(amount),
		Currency:           loanDomain.DefaultCurrency,
		Status:             loanDomain.StatusPending,
		GuarantorsRequired: loanDomain.GuarantorsBeyondPool,
		CreatedAt:          time.Now().UTC(),
	}
}
