package mysql

import (
	"context"

	"gorm.io/gorm"

	clanDomain "gmfn-backend/internal/domain/clan"
)

type ClanRepository struct{ db *gorm.DB }

func NewClanRepository(db *gorm.DB) *ClanRepository { return &ClanRepository{db: db} }

func (r *ClanRepository) Create(ctx context.Context, c *clanDomain.Clan) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ClanRepository) GetByName(ctx context.Context, name string) (*clanDomain.Clan, error) {
	var out clanDomain.Clan
	res := r.db.WithContext(ctx).Where("name = ?", name).First(&out)
	return &out, res.Error
}

func (r *ClanRepository) GetByID(ctx context.Context, id uint64) (*clanDomain.Clan, error) {
	var out clanDomain.Clan
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

type MembershipRepository struct{ db *gorm.DB }

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) Create(ctx context.Context, m *clanDomain.Membership) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MembershipRepository) Get(ctx context.Context, clanID, userID uint64) (*clanDomain.Membership, error) {
	var out clanDomain.Membership
	res := r.db.WithContext(ctx).
		Where("clan_id = ? AND user_id = ?", clanID, userID).
		First(&out)
	return &out, res.Error
}

func (r *MembershipRepository) Save(ctx context.Context, m *clanDomain.Membership) error {
	return r.db.WithContext(ctx).Save(m).Error
}
