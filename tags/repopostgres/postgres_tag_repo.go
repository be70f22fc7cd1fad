package postgrestagrepo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jrsteele09/go-blog-server/internal/dbx"
	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/tags"
)

const pgUniqueViolation = "23505"

var _ tags.Repo = (*PostgresTagRepo)(nil)

type PostgresTagRepo struct {
	db dbx.DBTX
}

func New(db dbx.DBTX) *PostgresTagRepo {
	return &PostgresTagRepo{db: db}
}

func (tr *PostgresTagRepo) Create(ctx context.Context, tag *tags.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	_, err := tr.db.ExecContext(ctx, `INSERT INTO tags (id, name) VALUES ($1, $2)`, tag.ID, tag.Name)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return apperrors.Wrapf(apperrors.ErrConflict, "tag %q", tag.Name)
		}
		return apperrors.Wrapf(err, "tags insert")
	}
	return nil
}

func (tr *PostgresTagRepo) GetByName(ctx context.Context, name string) (*tags.Tag, error) {
	tag := &tags.Tag{}
	err := tr.db.QueryRowContext(ctx, `SELECT id, name FROM tags WHERE name = $1`, name).Scan(&tag.ID, &tag.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrapf(err, "tags select")
	}
	return tag, nil
}

func (tr *PostgresTagRepo) List(ctx context.Context) ([]*tags.Tag, error) {
	rows, err := tr.db.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, apperrors.Wrapf(err, "tags select")
	}
	defer rows.Close()

	list := make([]*tags.Tag, 0)
	for rows.Next() {
		tag := &tags.Tag{}
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, apperrors.Wrapf(err, "tags scan")
		}
		list = append(list, tag)
	}
	return list, rows.Err()
}
