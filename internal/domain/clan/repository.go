package clan

import "context"

type Repository interface {
	Create(ctx context.Context, c *Clan) error
	GetByName(ctx context.Context, name string) (*Clan, error)
	GetByID(ctx context.Context, id uint64) (*Clan, error)
}

type MembershipRepository interface {
	Create(ctx context.Context, m *Membership) error
	Get(ctx context.Context, clanID, userID uint64) (*Membership, error)
	Save(ctx context.Context, m *Membership) error
}
