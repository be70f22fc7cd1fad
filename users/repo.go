package users

import "context"

// UserRepo persists user accounts. Get methods populate Tokens, Following
// and Followers alongside the profile fields.
//
// Token and follow mutations are atomic per-item operations rather than
// load-mutate-store of whole collections, so concurrent logins, logouts and
// follows on the same account cannot drop each other's writes. The follow
// relation is stored as a single fact per (follower, target) pair; both
// "sides" of the relation are projections of it and cannot diverge.
type UserRepo interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Update persists profile fields and the password hash. It never touches
	// tokens or follows.
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error

	// Session token allowlist
	AddToken(ctx context.Context, userID, token string) error
	RemoveToken(ctx context.Context, userID, token string) error
	ClearTokens(ctx context.Context, userID string) error

	// Follow graph, set semantics: adding an existing pair or removing a
	// missing pair succeeds as a no-op.
	AddFollow(ctx context.Context, followerID, targetID string) error
	RemoveFollow(ctx context.Context, followerID, targetID string) error
}
