package postgresblogrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jrsteele09/go-blog-server/blogs"
	"github.com/jrsteele09/go-blog-server/internal/dbx"
	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
)

const pgUniqueViolation = "23505"

const blogColumns = `id, title, body, excerpt, image, posted_by, created_at, updated_at`

var _ blogs.Repo = (*PostgresBlogRepo)(nil)

type PostgresBlogRepo struct {
	db dbx.DBTX
}

func New(db dbx.DBTX) *PostgresBlogRepo {
	return &PostgresBlogRepo{db: db}
}

func (br *PostgresBlogRepo) Create(ctx context.Context, blog *blogs.Blog) error {
	if blog.ID == "" {
		blog.ID = uuid.New().String()
	}
	if blog.CreatedAt.IsZero() {
		blog.CreatedAt = time.Now().UTC()
	}
	blog.UpdatedAt = blog.CreatedAt

	query := `INSERT INTO blogs (id, title, body, excerpt, image, posted_by, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := br.db.ExecContext(ctx, query,
		blog.ID, blog.Title, blog.Body, blog.Excerpt, blog.Image, blog.PostedBy, blog.CreatedAt, blog.UpdatedAt); err != nil {
		return translateErr(err)
	}
	return br.replaceTags(ctx, blog.ID, blog.TagIDs)
}

func (br *PostgresBlogRepo) GetByID(ctx context.Context, id string) (*blogs.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE id = $1`
	blog, err := br.scanOne(br.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if blog.TagIDs, err = br.tagIDs(ctx, blog.ID); err != nil {
		return nil, err
	}
	return blog, nil
}

func (br *PostgresBlogRepo) Update(ctx context.Context, blog *blogs.Blog) error {
	blog.UpdatedAt = time.Now().UTC()

	query := `UPDATE blogs SET title = $3, body = $4, excerpt = $5, image = $6, updated_at = $7
	          WHERE id = $1 AND posted_by = $2`
	res, err := br.db.ExecContext(ctx, query,
		blog.ID, blog.PostedBy, blog.Title, blog.Body, blog.Excerpt, blog.Image, blog.UpdatedAt)
	if err != nil {
		return translateErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrNotFound
	}
	return br.replaceTags(ctx, blog.ID, blog.TagIDs)
}

func (br *PostgresBlogRepo) Delete(ctx context.Context, id, postedBy string) error {
	res, err := br.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1 AND posted_by = $2`, id, postedBy)
	if err != nil {
		return translateErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (br *PostgresBlogRepo) DeleteByAuthor(ctx context.Context, authorID string) error {
	_, err := br.db.ExecContext(ctx, `DELETE FROM blogs WHERE posted_by = $1`, authorID)
	return translateErr(err)
}

func (br *PostgresBlogRepo) List(ctx context.Context, offset, limit int) ([]*blogs.Blog, int, error) {
	var total int
	if err := br.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM blogs`).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	query := `SELECT ` + blogColumns + ` FROM blogs
	          ORDER BY created_at DESC, id DESC OFFSET $1 LIMIT $2`
	list, err := br.scanMany(ctx, query, offset, pageLimit(limit))
	return list, total, err
}

func (br *PostgresBlogRepo) ListByAuthors(ctx context.Context, authorIDs []string, offset, limit int) ([]*blogs.Blog, int, error) {
	if len(authorIDs) == 0 {
		return []*blogs.Blog{}, 0, nil
	}

	var total int
	if err := br.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blogs WHERE posted_by = ANY($1)`, authorIDs).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	query := `SELECT ` + blogColumns + ` FROM blogs WHERE posted_by = ANY($1)
	          ORDER BY created_at DESC, id DESC OFFSET $2 LIMIT $3`
	list, err := br.scanMany(ctx, query, authorIDs, offset, pageLimit(limit))
	return list, total, err
}

func (br *PostgresBlogRepo) ListByTag(ctx context.Context, tagID string) ([]*blogs.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs
	          WHERE id IN (SELECT blog_id FROM blog_tags WHERE tag_id = $1)
	          ORDER BY created_at DESC, id DESC`
	return br.scanMany(ctx, query, tagID)
}

func (br *PostgresBlogRepo) Search(ctx context.Context, term string) ([]*blogs.Blog, error) {
	query := `SELECT ` + blogColumns + ` FROM blogs
	          WHERE title ILIKE '%' || $1 || '%' OR body ILIKE '%' || $1 || '%'
	          ORDER BY created_at DESC, id DESC`
	return br.scanMany(ctx, query, term)
}

func (br *PostgresBlogRepo) replaceTags(ctx context.Context, blogID string, tagIDs []string) error {
	if _, err := br.db.ExecContext(ctx, `DELETE FROM blog_tags WHERE blog_id = $1`, blogID); err != nil {
		return translateErr(err)
	}
	for _, tagID := range tagIDs {
		if _, err := br.db.ExecContext(ctx,
			`INSERT INTO blog_tags (blog_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, blogID, tagID); err != nil {
			return translateErr(err)
		}
	}
	return nil
}

func (br *PostgresBlogRepo) tagIDs(ctx context.Context, blogID string) ([]string, error) {
	rows, err := br.db.QueryContext(ctx, `SELECT tag_id FROM blog_tags WHERE blog_id = $1 ORDER BY tag_id`, blogID)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, translateErr(err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (br *PostgresBlogRepo) scanMany(ctx context.Context, query string, args ...any) ([]*blogs.Blog, error) {
	rows, err := br.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	list := make([]*blogs.Blog, 0)
	for rows.Next() {
		blog := &blogs.Blog{}
		if err := rows.Scan(&blog.ID, &blog.Title, &blog.Body, &blog.Excerpt, &blog.Image,
			&blog.PostedBy, &blog.CreatedAt, &blog.UpdatedAt); err != nil {
			return nil, translateErr(err)
		}
		list = append(list, blog)
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr(err)
	}

	for _, blog := range list {
		if blog.TagIDs, err = br.tagIDs(ctx, blog.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (br *PostgresBlogRepo) scanOne(row *sql.Row) (*blogs.Blog, error) {
	blog := &blogs.Blog{}
	err := row.Scan(&blog.ID, &blog.Title, &blog.Body, &blog.Excerpt, &blog.Image,
		&blog.PostedBy, &blog.CreatedAt, &blog.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrapf(err, "blogs select")
	}
	return blog, nil
}

// pageLimit maps limit <= 0 to LIMIT NULL, meaning the whole result set.
func pageLimit(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

func translateErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperrors.Wrapf(apperrors.ErrConflict, "%s", pgErr.ConstraintName)
	}
	return apperrors.Wrapf(err, "blogs sql")
}
