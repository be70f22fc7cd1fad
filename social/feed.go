package social

import (
	"context"

	"github.com/jrsteele09/go-blog-server/blogs"
	"github.com/jrsteele09/go-blog-server/users"
	"github.com/pkg/errors"
)

// Feed serves blogs authored by accounts the reader follows, newest first.
type Feed struct {
	userRepo users.UserRepo
	blogRepo blogs.Repo
}

func NewFeed(userRepo users.UserRepo, blogRepo blogs.Repo) (*Feed, error) {
	if userRepo == nil {
		return nil, errors.New("[NewFeed] user repo is required")
	}
	if blogRepo == nil {
		return nil, errors.New("[NewFeed] blog repo is required")
	}
	return &Feed{userRepo: userRepo, blogRepo: blogRepo}, nil
}

// ForUser returns one page of the reader's following feed plus the total
// number of matching blogs.
func (f *Feed) ForUser(ctx context.Context, userID string, offset, limit int) ([]*blogs.Blog, int, error) {
	user, err := f.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, 0, errors.Wrap(err, "[Feed.ForUser] userRepo.GetByID")
	}

	list, total, err := f.blogRepo.ListByAuthors(ctx, user.Following, offset, limit)
	if err != nil {
		return nil, 0, errors.Wrap(err, "[Feed.ForUser] blogRepo.ListByAuthors")
	}
	return list, total, nil
}

// Global returns one page of all blogs, newest first.
func (f *Feed) Global(ctx context.Context, offset, limit int) ([]*blogs.Blog, int, error) {
	list, total, err := f.blogRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, errors.Wrap(err, "[Feed.Global] blogRepo.List")
	}
	return list, total, nil
}
