package postgresuserrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jrsteele09/go-blog-server/internal/dbx"
	apperrors "github.com/jrsteele09/go-blog-server/internal/errors"
	"github.com/jrsteele09/go-blog-server/users"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var _ users.UserRepo = (*PostgresUserRepo)(nil)

// PostgresUserRepo stores users in three tables: users, user_tokens and
// follows. Tokens and follow relations are child rows, so adding or removing
// one is a single atomic statement. Constructing the repo over a dbx.DBTX
// lets the same code run against a plain handle or inside a transaction.
type PostgresUserRepo struct {
	db dbx.DBTX
}

func New(db dbx.DBTX) *PostgresUserRepo {
	return &PostgresUserRepo{db: db}
}

func (ur *PostgresUserRepo) Create(ctx context.Context, user *users.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO users (id, username, email, password_hash, image, about, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := ur.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Image, user.About, user.CreatedAt)
	return translateErr(err)
}

func (ur *PostgresUserRepo) GetByID(ctx context.Context, id string) (*users.User, error) {
	return ur.getBy(ctx, "id", id)
}

func (ur *PostgresUserRepo) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	return ur.getBy(ctx, "email", email)
}

func (ur *PostgresUserRepo) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	return ur.getBy(ctx, "username", username)
}

func (ur *PostgresUserRepo) Update(ctx context.Context, user *users.User) error {
	query := `UPDATE users SET username = $2, email = $3, password_hash = $4, image = $5, about = $6
	          WHERE id = $1`
	res, err := ur.db.ExecContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Image, user.About)
	if err != nil {
		return translateErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (ur *PostgresUserRepo) Delete(ctx context.Context, id string) error {
	// user_tokens and follows rows cascade via foreign keys
	res, err := ur.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translateErr(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (ur *PostgresUserRepo) AddToken(ctx context.Context, userID, token string) error {
	query := `INSERT INTO user_tokens (user_id, token, created_at) VALUES ($1, $2, $3)`
	_, err := ur.db.ExecContext(ctx, query, userID, token, time.Now().UTC())
	return translateErr(err)
}

func (ur *PostgresUserRepo) RemoveToken(ctx context.Context, userID, token string) error {
	_, err := ur.db.ExecContext(ctx, `DELETE FROM user_tokens WHERE user_id = $1 AND token = $2`, userID, token)
	return translateErr(err)
}

func (ur *PostgresUserRepo) ClearTokens(ctx context.Context, userID string) error {
	_, err := ur.db.ExecContext(ctx, `DELETE FROM user_tokens WHERE user_id = $1`, userID)
	return translateErr(err)
}

func (ur *PostgresUserRepo) AddFollow(ctx context.Context, followerID, targetID string) error {
	// ON CONFLICT DO NOTHING gives the relation set semantics; the foreign
	// key on followee_id turns a missing target into a not-found error.
	query := `INSERT INTO follows (follower_id, followee_id) VALUES ($1, $2)
	          ON CONFLICT (follower_id, followee_id) DO NOTHING`
	_, err := ur.db.ExecContext(ctx, query, followerID, targetID)
	return translateErr(err)
}

func (ur *PostgresUserRepo) RemoveFollow(ctx context.Context, followerID, targetID string) error {
	_, err := ur.db.ExecContext(ctx, `DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`, followerID, targetID)
	return translateErr(err)
}

func (ur *PostgresUserRepo) getBy(ctx context.Context, column, value string) (*users.User, error) {
	query := `SELECT id, username, email, password_hash, image, about, created_at
	          FROM users WHERE ` + column + ` = $1`

	user := &users.User{}
	err := ur.db.QueryRowContext(ctx, query, value).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.Image, &user.About, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrapf(err, "users select")
	}

	if user.Tokens, err = ur.stringColumn(ctx,
		`SELECT token FROM user_tokens WHERE user_id = $1 ORDER BY created_at`, user.ID); err != nil {
		return nil, err
	}
	if user.Following, err = ur.stringColumn(ctx,
		`SELECT followee_id FROM follows WHERE follower_id = $1 ORDER BY followee_id`, user.ID); err != nil {
		return nil, err
	}
	if user.Followers, err = ur.stringColumn(ctx,
		`SELECT follower_id FROM follows WHERE followee_id = $1 ORDER BY follower_id`, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (ur *PostgresUserRepo) stringColumn(ctx context.Context, query, arg string) ([]string, error) {
	rows, err := ur.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, apperrors.Wrapf(err, "users select")
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, apperrors.Wrapf(err, "users scan")
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func translateErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperrors.Wrapf(apperrors.ErrConflict, "%s", pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return apperrors.ErrNotFound
		}
	}
	return apperrors.Wrapf(err, "users sql")
}
