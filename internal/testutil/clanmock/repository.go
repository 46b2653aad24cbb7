package clanmock

import (
	"context"

	domain "gmfn-backend/internal/domain/clan"
)

// ClanRepo is a function-backed mock that satisfies domain.Repository.
type ClanRepo struct {
	CreateFn    func(ctx context.Context, c *domain.Clan) error
	GetByNameFn func(ctx context.Context, name string) (*domain.Clan, error)
	GetByIDFn   func(ctx context.Context, id uint64) (*domain.Clan, error)
}

var _ domain.Repository = (*ClanRepo)(nil)

func (m *ClanRepo) Create(ctx context.Context, c *domain.Clan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *ClanRepo) GetByName(ctx context.Context, name string) (*domain.Clan, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}
	return nil, context.Canceled
}

func (m *ClanRepo) GetByID(ctx context.Context, id uint64) (*domain.Clan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

// MembershipRepo is a function-backed mock for domain.MembershipRepository.
type MembershipRepo struct {
	CreateFn func(ctx context.Context, m *domain.Membership) error
	GetFn    func(ctx context.Context, clanID, userID uint64) (*domain.Membership, error)
	SaveFn   func(ctx context.Context, m *domain.Membership) error
}

var _ domain.MembershipRepository = (*MembershipRepo)(nil)

func (m *MembershipRepo) Create(ctx context.Context, mem *domain.Membership) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, mem)
	}
	return nil
}

func (m *MembershipRepo) Get(ctx context.Context, clanID, userID uint64) (*domain.Membership, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, clanID, userID)
	}
	return nil, context.Canceled
}

func (m *MembershipRepo) Save(ctx context.Context, mem *domain.Membership) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, mem)
	}
	return nil
}
