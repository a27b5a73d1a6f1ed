package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/little-lemon/internal/model"
)

const (
	qTokenInsert    = "INSERT INTO auth_tokens (token_key, user_id) VALUES (?, ?)"
	qTokenKeyByUser = "SELECT token_key FROM auth_tokens WHERE user_id = ? LIMIT 1"
	qTokenUser      = "SELECT u.id, u.username, u.email, u.password_hash, u.is_active, u.created_at " +
		"FROM auth_tokens t JOIN users u ON u.id = t.user_id " +
		"WHERE t.token_key = ? AND u.is_active = TRUE LIMIT 1"
	qTokenDelete = "DELETE FROM auth_tokens WHERE token_key = ?"
)

// TokenRepo persists API tokens.  A user holds at most one token
// (auth_tokens.user_id is unique); deleting the row revokes it.
type TokenRepo struct{ db *sqlx.DB }

func NewTokenRepo(db *sqlx.DB) *TokenRepo { return &TokenRepo{db: db} }

// Create stores key for userID.  ErrTokenExists means the user already
// has one.
func (r *TokenRepo) Create(ctx context.Context, userID uint64, key string) error {
	if _, err := r.db.ExecContext(ctx, qTokenInsert, key, userID); err != nil {
		if isDuplicateKey(err) {
			return ErrTokenExists
		}
		return err
	}
	return nil
}

// KeyForUser returns the stored token of userID, or ErrTokenNotFound.
func (r *TokenRepo) KeyForUser(ctx context.Context, userID uint64) (string, error) {
	var key string
	if err := r.db.GetContext(ctx, &key, qTokenKeyByUser, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	return key, nil
}

// UserByKey resolves a token to its active owner.
func (r *TokenRepo) UserByKey(ctx context.Context, key string) (*model.User, error) {
	var u model.User
	if err := r.db.GetContext(ctx, &u, qTokenUser, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &u, nil
}

// DeleteByKey revokes a token.
func (r *TokenRepo) DeleteByKey(ctx context.Context, key string) error {
	res, err := r.db.ExecContext(ctx, qTokenDelete, key)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res, ErrTokenNotFound)
}
