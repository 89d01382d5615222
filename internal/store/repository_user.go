package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/insight-hunter/internal/logger"
	"github.com/MKhiriev/insight-hunter/internal/utils"
	"github.com/MKhiriev/insight-hunter/models"
)

// userRepository is the SQL implementation of [UserRepository] for both
// supported dialects. It handles account creation, lookup, reset token
// bookkeeping and the demo mode flag against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
	ids    *utils.UUIDGenerator
	now    func() time.Time
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Str("dialect", db.dialect).Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
		ids:    utils.NewUUIDGenerator(),
		now:    time.Now,
	}
}

// CreateUser persists a new user and returns the stored row.
//
// UserID and the timestamps are assigned here when the caller left them
// empty. The INSERT returns all columns, so the caller receives the
// canonical database representation of the account.
//
// Error handling:
//   - unique constraint on email → [ErrEmailAlreadyExists].
//   - transient driver failure → [ErrDatabaseUnavailable].
//   - any other failure → [ErrExecutingQuery] or [ErrScanningRow].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if user.UserID == "" {
		user.UserID = r.ids.Generate()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now().UTC()
	}
	user.UpdatedAt = user.CreatedAt

	query, args, err := buildCreateUserQuery(r.db.builder, user)
	if err != nil {
		return models.User{}, err
	}

	return r.queryUser(ctx, "*userRepository.CreateUser", ErrEmailAlreadyExists, query, args...)
}

// FindUserByEmail looks a user up by exact email match.
// Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	query, args, err := buildFindUserQuery(r.db.builder, sq.Eq{"email": email})
	if err != nil {
		return models.User{}, err
	}

	return r.queryUser(ctx, "*userRepository.FindUserByEmail", nil, query, args...)
}

// FindUserByID looks a user up by id.
// Returns [ErrNoUserWasFound] when no row matches.
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (models.User, error) {
	query, args, err := buildFindUserQuery(r.db.builder, sq.Eq{"user_id": userID})
	if err != nil {
		return models.User{}, err
	}

	return r.queryUser(ctx, "*userRepository.FindUserByID", nil, query, args...)
}

// SetResetToken stores tokenHash and its expiry on the user with email,
// replacing any outstanding token. Returns [ErrNoUserWasFound] for an
// unknown email.
func (r *userRepository) SetResetToken(ctx context.Context, email, tokenHash string, expiresAt time.Time) (models.User, error) {
	query, args, err := buildSetResetTokenQuery(r.db.builder, email, tokenHash, expiresAt.UTC(), r.now().UTC())
	if err != nil {
		return models.User{}, err
	}

	return r.queryUser(ctx, "*userRepository.SetResetToken", nil, query, args...)
}

// ResetPasswordByToken replaces the password hash of the user whose stored
// reset token digest equals tokenHash and has not expired at now, clearing the
// token. It returns the number of affected rows (0 or 1).
func (r *userRepository) ResetPasswordByToken(ctx context.Context, tokenHash, passwordHash string, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildResetPasswordQuery(r.db.builder, tokenHash, passwordHash, now.UTC())
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ResetPasswordByToken").Msg("error executing update")
		return 0, r.mapError(err, nil)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ResetPasswordByToken").Msg("error reading affected rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return affected, nil
}

// SetDemoMode updates the demo mode flag of the user with userID.
// Returns [ErrNoUserWasFound] for an unknown id.
func (r *userRepository) SetDemoMode(ctx context.Context, userID string, enabled bool) (models.User, error) {
	query, args, err := buildSetDemoModeQuery(r.db.builder, userID, enabled, r.now().UTC())
	if err != nil {
		return models.User{}, err
	}

	return r.queryUser(ctx, "*userRepository.SetDemoMode", nil, query, args...)
}

// queryUser runs a statement returning a single user row.
// uniqueErr, when non-nil, is returned for unique constraint violations.
func (r *userRepository) queryUser(ctx context.Context, funcName string, uniqueErr error, query string, args ...any) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error executing query")
		return models.User{}, r.mapError(err, uniqueErr)
	}

	user, err := scanUser(row)
	if err == nil {
		return user, nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}

	log.Err(err).Str("func", funcName).Msg("error scanning user row")
	if r.db.errorClassificator.Classify(err) != Unclassified {
		return models.User{}, r.mapError(err, uniqueErr)
	}
	return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
}

func (r *userRepository) mapError(err error, uniqueErr error) error {
	switch r.db.errorClassificator.Classify(err) {
	case UniqueViolation:
		if uniqueErr != nil {
			return uniqueErr
		}
	case Transient:
		return fmt.Errorf("%w: %w", ErrDatabaseUnavailable, err)
	}

	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}

func scanUser(row *sql.Row) (models.User, error) {
	var (
		user             models.User
		resetTokenHash   sql.NullString
		resetTokenExpiry sql.NullTime
	)

	err := row.Scan(
		&user.UserID,
		&user.Email,
		&user.PasswordHash,
		&user.DemoMode,
		&resetTokenHash,
		&resetTokenExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, err
	}

	if resetTokenHash.Valid {
		user.ResetTokenHash = &resetTokenHash.String
	}
	if resetTokenExpiry.Valid {
		expiresAt := resetTokenExpiry.Time
		user.ResetTokenExpiresAt = &expiresAt
	}

	return user, nil
}
