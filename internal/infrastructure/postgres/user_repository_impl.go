package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/todocards/api/internal/domain/entity"
	"github.com/todocards/api/internal/domain/repository"
)

// UserRepository stores each user as a single row with the List/Item subtree
// embedded in a lists JSONB column. The version column backs the
// compare-and-swap in SaveLists.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `
	id, email, COALESCE(password_hash, ''), name, COALESCE(avatar_url, ''),
	COALESCE(google_id, ''), COALESCE(facebook_id, ''), COALESCE(github_id, ''), COALESCE(twitter_id, ''),
	lists, version, created_at, updated_at
`

// providerColumns whitelists the federated id columns; provider names come
// from code, never from request input, but the lookup keeps SQL static.
var providerColumns = map[string]string{
	"google":   "google_id",
	"facebook": "facebook_id",
	"github":   "github_id",
	"twitter":  "twitter_id",
}

func marshalLists(lists []entity.List) ([]byte, error) {
	if lists == nil {
		lists = []entity.List{}
	}
	return json.Marshal(lists)
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var lists []byte
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.AvatarURL,
		&u.GoogleID, &u.FacebookID, &u.GitHubID, &u.TwitterID,
		&lists, &u.Version, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(lists, &u.Lists); err != nil {
		return nil, fmt.Errorf("decode lists for user %s: %w", u.ID, err)
	}
	if u.Lists == nil {
		u.Lists = []entity.List{}
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	lists, err := marshalLists(u.Lists)
	if err != nil {
		return err
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, avatar_url, google_id, facebook_id, github_id, twitter_id, lists)
		VALUES ($1, NULLIF($2, ''), $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), $9)
		RETURNING id, version, created_at, updated_at
	`, u.Email, u.Password, u.Name, u.AvatarURL, u.GoogleID, u.FacebookID, u.GitHubID, u.TwitterID, lists)

	return row.Scan(&u.ID, &u.Version, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *UserRepository) GetByProvider(ctx context.Context, provider, providerID string) (*entity.User, error) {
	col, ok := providerColumns[provider]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q: %w", provider, entity.ErrValidation)
	}
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE `+col+` = $1`, providerID)
	return scanUser(row)
}

// UpdateProfile persists the scalar profile fields, including federated
// provider ids linked after creation. The lists column is deliberately
// excluded; all list mutations go through SaveLists.
func (r *UserRepository) UpdateProfile(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET email = $1, name = $2, avatar_url = $3,
		    google_id = NULLIF($4, ''), facebook_id = NULLIF($5, ''),
		    github_id = NULLIF($6, ''), twitter_id = NULLIF($7, ''),
		    updated_at = $8
		WHERE id = $9
	`, u.Email, u.Name, u.AvatarURL, u.GoogleID, u.FacebookID, u.GitHubID, u.TwitterID, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// SaveLists replaces the user's whole list subtree iff the row still carries
// expectedVersion. A lost race surfaces as entity.ErrConflict so the caller
// can reload and retry.
func (r *UserRepository) SaveLists(ctx context.Context, userID string, lists []entity.List, expectedVersion int64) error {
	b, err := marshalLists(lists)
	if err != nil {
		return err
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET lists = $1, version = version + 1, updated_at = now()
		WHERE id = $2 AND version = $3
	`, b, userID, expectedVersion)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return entity.ErrNotFound
		}
		return entity.ErrConflict
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
