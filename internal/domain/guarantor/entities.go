package guarantor

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), true
	}
	return "", false
}

func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

// Guarantor records one clan member's guarantee on a loan. One row per
// (loan, guarantor user); (clan_id, guarantor_user_id) must reference an
// existing clan membership (composite FK added in the mysql migration).
type Guarantor struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"id"`
	LoanID          uint64          `gorm:"not null;index:idx_guarantors_loan;uniqueIndex:ux_loan_guarantor" json:"loan_id"`
	ClanID          uint64          `gorm:"not null;index:idx_guarantors_clan" json:"clan_id"`
	GuarantorUserID uint64          `gorm:"not null;index:idx_guarantors_user;uniqueIndex:ux_loan_guarantor" json:"guarantor_user_id"`
	PledgeAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"pledge_amount"`
	Status          Status          `gorm:"size:20;default:pending" json:"status"`
	RespondedAt     *time.Time      `gorm:"column:responded_at" json:"responded_at"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Guarantor) TableName() string { return "loan_guarantors" }
