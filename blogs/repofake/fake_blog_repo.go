package fakeblogrepo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-blog-server/blogs"
	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
)

var _ blogs.Repo = (*FakeBlogRepo)(nil)

type FakeBlogRepo struct {
	lock   sync.RWMutex
	blogs  map[string]*blogs.Blog
	titles map[string]string // title to blog id
}

func NewFakeBlogRepo() *FakeBlogRepo {
	return &FakeBlogRepo{
		blogs:  make(map[string]*blogs.Blog),
		titles: make(map[string]string),
	}
}

func (br *FakeBlogRepo) Create(ctx context.Context, blog *blogs.Blog) error {
	br.lock.Lock()
	defer br.lock.Unlock()

	if _, ok := br.titles[blog.Title]; ok {
		return apperrors.Wrapf(apperrors.ErrConflict, "title %q", blog.Title)
	}
	if blog.ID == "" {
		blog.ID = uuid.New().String()
	}
	if blog.CreatedAt.IsZero() {
		blog.CreatedAt = time.Now().UTC()
	}
	blog.UpdatedAt = blog.CreatedAt

	stored := *blog
	br.blogs[blog.ID] = &stored
	br.titles[blog.Title] = blog.ID
	return nil
}

func (br *FakeBlogRepo) GetByID(ctx context.Context, id string) (*blogs.Blog, error) {
	br.lock.RLock()
	defer br.lock.RUnlock()

	stored, ok := br.blogs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	blog := *stored
	return &blog, nil
}

func (br *FakeBlogRepo) Update(ctx context.Context, blog *blogs.Blog) error {
	br.lock.Lock()
	defer br.lock.Unlock()

	existing, ok := br.blogs[blog.ID]
	if !ok || existing.PostedBy != blog.PostedBy {
		return apperrors.ErrNotFound
	}
	if id, taken := br.titles[blog.Title]; taken && id != blog.ID {
		return apperrors.Wrapf(apperrors.ErrConflict, "title %q", blog.Title)
	}

	delete(br.titles, existing.Title)
	blog.CreatedAt = existing.CreatedAt
	blog.UpdatedAt = time.Now().UTC()

	stored := *blog
	br.blogs[blog.ID] = &stored
	br.titles[blog.Title] = blog.ID
	return nil
}

func (br *FakeBlogRepo) Delete(ctx context.Context, id, postedBy string) error {
	br.lock.Lock()
	defer br.lock.Unlock()

	existing, ok := br.blogs[id]
	if !ok || existing.PostedBy != postedBy {
		return apperrors.ErrNotFound
	}
	delete(br.titles, existing.Title)
	delete(br.blogs, id)
	return nil
}

func (br *FakeBlogRepo) DeleteByAuthor(ctx context.Context, authorID string) error {
	br.lock.Lock()
	defer br.lock.Unlock()

	for id, blog := range br.blogs {
		if blog.PostedBy == authorID {
			delete(br.titles, blog.Title)
			delete(br.blogs, id)
		}
	}
	return nil
}

func (br *FakeBlogRepo) List(ctx context.Context, offset, limit int) ([]*blogs.Blog, int, error) {
	br.lock.RLock()
	defer br.lock.RUnlock()
	return paginate(br.newestFirst(nil), offset, limit)
}

func (br *FakeBlogRepo) ListByAuthors(ctx context.Context, authorIDs []string, offset, limit int) ([]*blogs.Blog, int, error) {
	br.lock.RLock()
	defer br.lock.RUnlock()

	authors := make(map[string]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		authors[id] = struct{}{}
	}
	return paginate(br.newestFirst(func(b *blogs.Blog) bool {
		_, ok := authors[b.PostedBy]
		return ok
	}), offset, limit)
}

func (br *FakeBlogRepo) ListByTag(ctx context.Context, tagID string) ([]*blogs.Blog, error) {
	br.lock.RLock()
	defer br.lock.RUnlock()

	matches := br.newestFirst(func(b *blogs.Blog) bool {
		for _, id := range b.TagIDs {
			if id == tagID {
				return true
			}
		}
		return false
	})
	return matches, nil
}

func (br *FakeBlogRepo) Search(ctx context.Context, term string) ([]*blogs.Blog, error) {
	br.lock.RLock()
	defer br.lock.RUnlock()

	term = strings.ToLower(term)
	matches := br.newestFirst(func(b *blogs.Blog) bool {
		return strings.Contains(strings.ToLower(b.Title), term) ||
			strings.Contains(strings.ToLower(b.Body), term)
	})
	return matches, nil
}

// newestFirst copies matching blogs sorted by creation time descending.
// Callers hold at least the read lock.
func (br *FakeBlogRepo) newestFirst(match func(*blogs.Blog) bool) []*blogs.Blog {
	list := make([]*blogs.Blog, 0)
	for _, stored := range br.blogs {
		if match != nil && !match(stored) {
			continue
		}
		blog := *stored
		list = append(list, &blog)
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list
}

func paginate(list []*blogs.Blog, offset, limit int) ([]*blogs.Blog, int, error) {
	total := len(list)
	if offset >= total {
		return []*blogs.Blog{}, total, nil
	}
	end := offset + limit
	if limit <= 0 || end > total {
		end = total
	}
	return list[offset:end], total, nil
}
