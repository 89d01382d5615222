package store

import (
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/insight-hunter/models"
)

const usersTable = "users"

// userColumns is the column order every user query selects and returns.
// It must match the Scan order in scanUser.
var userColumns = []string{
	"user_id",
	"email",
	"password_hash",
	"demo_mode",
	"reset_token_hash",
	"reset_token_expires_at",
	"created_at",
	"updated_at",
}

func returningUserColumns() string {
	return "RETURNING " + strings.Join(userColumns, ", ")
}

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	query, args, err := b.Insert(usersTable).
		Columns("user_id", "email", "password_hash", "demo_mode", "created_at", "updated_at").
		Values(user.UserID, user.Email, user.PasswordHash, user.DemoMode, user.CreatedAt, user.UpdatedAt).
		Suffix(returningUserColumns()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildFindUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	query, args, err := b.Select(userColumns...).
		From(usersTable).
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSetResetTokenQuery(b sq.StatementBuilderType, email, tokenHash string, expiresAt, now time.Time) (string, []any, error) {
	query, args, err := b.Update(usersTable).
		Set("reset_token_hash", tokenHash).
		Set("reset_token_expires_at", expiresAt).
		Set("updated_at", now).
		Where(sq.Eq{"email": email}).
		Suffix(returningUserColumns()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildResetPasswordQuery matches only a stored, unexpired token and clears
// it in the same statement, so a token can be consumed at most once.
func buildResetPasswordQuery(b sq.StatementBuilderType, tokenHash, passwordHash string, now time.Time) (string, []any, error) {
	query, args, err := b.Update(usersTable).
		Set("password_hash", passwordHash).
		Set("reset_token_hash", nil).
		Set("reset_token_expires_at", nil).
		Set("updated_at", now).
		Where(sq.Eq{"reset_token_hash": tokenHash}).
		Where(sq.Gt{"reset_token_expires_at": now}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildSetDemoModeQuery(b sq.StatementBuilderType, userID string, enabled bool, now time.Time) (string, []any, error) {
	query, args, err := b.Update(usersTable).
		Set("demo_mode", enabled).
		Set("updated_at", now).
		Where(sq.Eq{"user_id": userID}).
		Suffix(returningUserColumns()).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
