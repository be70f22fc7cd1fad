// Package social maintains the symmetric following/followers relation
// between accounts and serves the following-filtered feed.
package social

import (
	"context"

	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/users"
	"github.com/pkg/errors"
)

// Graph mutates the follow relation. The relation is stored as one fact per
// (follower, target) pair, so both directions always move together - a
// one-sided follow cannot exist as a stable state.
type Graph struct {
	userRepo users.UserRepo
}

func NewGraph(userRepo users.UserRepo) (*Graph, error) {
	if userRepo == nil {
		return nil, errors.New("[NewGraph] user repo is required")
	}
	return &Graph{userRepo: userRepo}, nil
}

// Follow makes follower follow the account named targetUsername. Following
// an already-followed account is a successful no-op (set semantics).
// Self-follows are rejected.
func (g *Graph) Follow(ctx context.Context, follower *users.User, targetUsername string) (*users.User, error) {
	target, err := g.resolve(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if target.ID == follower.ID {
		return nil, apperrors.Wrapf(apperrors.ErrValidation, "cannot follow yourself")
	}
	if err := g.userRepo.AddFollow(ctx, follower.ID, target.ID); err != nil {
		return nil, errors.Wrap(err, "[Follow] userRepo.AddFollow")
	}
	return target, nil
}

// Unfollow removes the relation. Unfollowing an account that was never
// followed is a successful no-op.
func (g *Graph) Unfollow(ctx context.Context, follower *users.User, targetUsername string) (*users.User, error) {
	target, err := g.resolve(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if err := g.userRepo.RemoveFollow(ctx, follower.ID, target.ID); err != nil {
		return nil, errors.Wrap(err, "[Unfollow] userRepo.RemoveFollow")
	}
	return target, nil
}

func (g *Graph) resolve(ctx context.Context, username string) (*users.User, error) {
	target, err := g.userRepo.GetByUsername(ctx, users.NormalizeUsername(username))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Wrapf(apperrors.ErrNotFound, "there is no user with such username")
		}
		return nil, errors.Wrap(err, "[resolve] userRepo.GetByUsername")
	}
	return target, nil
}
