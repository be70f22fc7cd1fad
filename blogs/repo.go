package blogs

import "context"

// Repo persists blog posts. Listings are newest first and return the total
// count alongside the requested page. There is no ownership pointer stored
// on the user side; ownership queries go through PostedBy.
type Repo interface {
	Create(ctx context.Context, blog *Blog) error
	GetByID(ctx context.Context, id string) (*Blog, error)

	// Update persists title, body, excerpt, image and tags for the blog with
	// the given ID, but only when PostedBy matches; otherwise not-found.
	Update(ctx context.Context, blog *Blog) error

	// Delete removes one blog owned by postedBy; not-found when no such pair.
	Delete(ctx context.Context, id, postedBy string) error

	// DeleteByAuthor removes every blog the author owns (cascade support).
	DeleteByAuthor(ctx context.Context, authorID string) error

	List(ctx context.Context, offset, limit int) ([]*Blog, int, error)
	ListByAuthors(ctx context.Context, authorIDs []string, offset, limit int) ([]*Blog, int, error)
	ListByTag(ctx context.Context, tagID string) ([]*Blog, error)
	Search(ctx context.Context, term string) ([]*Blog, error)
}
