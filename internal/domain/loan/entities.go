package loan

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

// ParseStatus rejects anything outside the closed status set.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), true
	}
	return "", false
}

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool { return s == StatusApproved || s == StatusRejected }

// GuarantorsBeyondPool is the quota of approved peer guarantees required
// before a loan exceeding the borrower's personal pool may be approved.
const GuarantorsBeyondPool = 2

// DefaultCurrency is applied when a loan request does not name one.
const DefaultCurrency = "NGN"

type Loan struct {
	ID                 uint64          `gorm:"primaryKey;column:id" json:"id"`
	ClanID             uint64          `gorm:"not null;index:idx_loans_clan" json:"clan_id"`
	BorrowerUserID     uint64          `gorm:"not null;index:idx_loans_borrower" json:"borrower_user_id"`
	Amount             decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency           string          `gorm:"size:8;default:NGN" json:"currency"`
	Status             Status          `gorm:"size:32;default:pending" json:"status"`
	GuarantorsRequired int             `gorm:"not null;default:0" json:"guarantors_required"`
	DecisionByUserID   *uint64         `gorm:"column:decision_by_user_id" json:"decision_by_user_id"`
	DecisionAt         *time.Time      `gorm:"column:decision_at" json:"decision_at"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }
