package clan

import (
	"time"

	"github.com/shopspring/decimal"

	"gmfn-backend/internal/domain/user"
)

// DefaultName is the single well-known clan provisioned at startup.
const DefaultName = "GMFN Default Clan"

type Clan struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"id"`
	Name      string    `gorm:"size:120;uniqueIndex:ux_clans_name" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Clan) TableName() string { return "clans" }

// Membership carries a user's role and personal credit pool within one clan.
// The (clan_id, user_id) pair is unique; the composite index is also the
// target of the loan_guarantors referential constraint.
type Membership struct {
	ID                  uint64          `gorm:"primaryKey;column:id" json:"id"`
	ClanID              uint64          `gorm:"not null;uniqueIndex:ux_membership_clan_user;index:idx_membership_clan" json:"clan_id"`
	UserID              uint64          `gorm:"not null;uniqueIndex:ux_membership_clan_user;index:idx_membership_user" json:"user_id"`
	Role                user.Role       `gorm:"size:20;default:user" json:"role"`
	PersonalPoolBalance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"personal_pool_balance"`
	CreatedAt           time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Membership) TableName() string { return "clan_memberships" }

func (m *Membership) IsAdmin() bool { return m.Role == user.RoleAdmin }
