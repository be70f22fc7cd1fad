// Package storage opens the Postgres database, applies migrations and
// builds the repository set the services run on.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jrsteele09/go-blog-server/blogs"
	postgresblogrepo "github.com/jrsteele09/go-blog-server/blogs/repopostgres"
	"github.com/jrsteele09/go-blog-server/internal/dbx"
	"github.com/jrsteele09/go-blog-server/storage/migrations"
	"github.com/jrsteele09/go-blog-server/tags"
	postgrestagrepo "github.com/jrsteele09/go-blog-server/tags/repopostgres"
	"github.com/jrsteele09/go-blog-server/users"
	postgresuserrepo "github.com/jrsteele09/go-blog-server/users/repopostgres"
)

type PostgresStore struct {
	db    *sql.DB
	users users.UserRepo
	blogs blogs.Repo
	tags  tags.Repo
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	s := &PostgresStore{
		db:    db,
		users: postgresuserrepo.New(db),
		blogs: postgresblogrepo.New(db),
		tags:  postgrestagrepo.New(db),
	}

	if err := s.RunMigrations(ctx); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) Conn() *sql.DB {
	return s.db
}

func (s *PostgresStore) Users() users.UserRepo {
	return s.users
}

func (s *PostgresStore) Blogs() blogs.Repo {
	return s.blogs
}

func (s *PostgresStore) Tags() tags.Repo {
	return s.tags
}

func (s *PostgresStore) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, s.db, "."); err != nil {
		return err
	}
	return nil
}

// TxRunner returns a blogs.TxRunner whose repositories share one database
// transaction, so the account-deletion cascade commits or rolls back as a
// unit.
func (s *PostgresStore) TxRunner() blogs.TxRunner {
	return func(ctx context.Context, fn func(users.UserRepo, blogs.Repo) error) error {
		return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return fn(postgresuserrepo.New(tx), postgresblogrepo.New(tx))
		})
	}
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
