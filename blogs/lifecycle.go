package blogs

import (
	"context"

	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/users"
	"github.com/pkg/errors"
)

// TxRunner executes fn with repositories bound to one atomic unit of work.
// The Postgres runner opens a transaction and hands fn transaction-scoped
// repos; the in-memory runner hands back the plain fakes.
type TxRunner func(ctx context.Context, fn func(userRepo users.UserRepo, blogRepo Repo) error) error

// Lifecycle enforces that no blog survives the deletion of its owning
// account. The cascade is explicit orchestration, not a persistence hook:
// delete the owned blogs, then the account, as one transaction.
type Lifecycle struct {
	userRepo users.UserRepo
	blogRepo Repo
	runTx    TxRunner
}

func NewLifecycle(userRepo users.UserRepo, blogRepo Repo, runTx TxRunner) (*Lifecycle, error) {
	if userRepo == nil {
		return nil, errors.New("[NewLifecycle] user repo is required")
	}
	if blogRepo == nil {
		return nil, errors.New("[NewLifecycle] blog repo is required")
	}
	l := &Lifecycle{userRepo: userRepo, blogRepo: blogRepo, runTx: runTx}
	if l.runTx == nil {
		l.runTx = func(ctx context.Context, fn func(users.UserRepo, Repo) error) error {
			return fn(l.userRepo, l.blogRepo)
		}
	}
	return l, nil
}

// DeleteAccount re-verifies the owner's password before anything happens -
// a hijacked but still-valid session token must not be enough for an
// irreversible delete. On success every blog with PostedBy = user and the
// account record are gone; on failure the account stays intact.
func (l *Lifecycle) DeleteAccount(ctx context.Context, user *users.User, password string) error {
	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return apperrors.ErrInvalidCredentials
	}

	err := l.runTx(ctx, func(userRepo users.UserRepo, blogRepo Repo) error {
		if err := blogRepo.DeleteByAuthor(ctx, user.ID); err != nil {
			return errors.Wrap(err, "blogRepo.DeleteByAuthor")
		}
		if err := userRepo.Delete(ctx, user.ID); err != nil {
			return errors.Wrap(err, "userRepo.Delete")
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "[DeleteAccount] cascade")
	}
	return nil
}
