package member

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gmfn-backend/internal/domain/clan"
	"gmfn-backend/internal/domain/fault"
	"gmfn-backend/internal/domain/user"
	"gmfn-backend/pkg/passwd"
)

// Context is the caller's resolved authorization context: default clan,
// the caller's membership in it, and the caller's user id. Resolved once
// per request and passed by value into clan-scoped operations.
type Context struct {
	Clan       clan.Clan
	Membership clan.Membership
	UserID     uint64
}

type Usecase struct {
	users   user.Repository
	clans   clan.Repository
	members clan.MembershipRepository
}

func NewUsecase(users user.Repository, clans clan.Repository, members clan.MembershipRepository) *Usecase {
	return &Usecase{users: users, clans: clans, members: members}
}

// Signup registers a user with a bcrypt-hashed password. Duplicate email
// surfaces as Conflict via the unique constraint.
func (u *Usecase) Signup(ctx context.Context, email, password string) (*user.User, error) {
	if email == "" || password == "" {
		return nil, fault.InvalidInput("email and password are required")
	}
	hash, err := passwd.Hash(password)
	if err != nil {
		return nil, err
	}
	nu := &user.User{Email: email, HashedPassword: hash, Role: user.RoleUser}
	if err := u.users.Create(ctx, nu); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fault.Conflict("email already registered")
		}
		return nil, err
	}
	return nu, nil
}

// Authenticate checks email/password credentials and returns the user.
// Lookup and verification failures are indistinguishable to the caller.
func (u *Usecase) Authenticate(ctx context.Context, email, password string) (*user.User, error) {
	cu, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.Forbidden("invalid credentials")
		}
		return nil, err
	}
	if !passwd.Verify(cu.HashedPassword, password) {
		return nil, fault.Forbidden("invalid credentials")
	}
	return cu, nil
}

// DefaultClan returns the well-known clan. Bootstrap provisions it at
// startup; the lazy create here only covers a fresh store, and a lost
// race against a concurrent create means someone else won: reload.
func (u *Usecase) DefaultClan(ctx context.Context) (*clan.Clan, error) {
	c, err := u.clans.GetByName(ctx, clan.DefaultName)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	c = &clan.Clan{Name: clan.DefaultName}
	if err := u.clans.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return u.clans.GetByName(ctx, clan.DefaultName)
		}
		return nil, err
	}
	return c, nil
}

// Resolve builds the caller context for userID against the default clan,
// lazily creating a membership with role "user" and a zero pool balance.
func (u *Usecase) Resolve(ctx context.Context, userID uint64) (*Context, error) {
	c, err := u.DefaultClan(ctx)
	if err != nil {
		return nil, err
	}
	m, err := u.members.Get(ctx, c.ID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m = &clan.Membership{
			ClanID:              c.ID,
			UserID:              userID,
			Role:                user.RoleUser,
			PersonalPoolBalance: decimal.Zero,
		}
		err = u.members.Create(ctx, m)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			m, err = u.members.Get(ctx, c.ID, userID)
		}
	}
	if err != nil {
		return nil, err
	}
	return &Context{Clan: *c, Membership: *m, UserID: userID}, nil
}

// SetPoolBalance overwrites a member's personal pool balance. Admin-only,
// absolute set, never a delta.
func (u *Usecase) SetPoolBalance(ctx context.Context, clanID, targetUserID uint64, balance decimal.Decimal, caller *Context) (*clan.Membership, error) {
	if caller.Clan.ID != clanID || !caller.Membership.IsAdmin() {
		return nil, fault.Forbidden("clan admin privileges required")
	}
	if balance.IsNegative() {
		return nil, fault.InvalidInput("pool balance cannot be negative")
	}
	m, err := u.members.Get(ctx, clanID, targetUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fault.NotFound("membership not found")
		}
		return nil, err
	}
	m.PersonalPoolBalance = balance
	if err := u.members.Save(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
