package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/insight-hunter/internal/config"
	"github.com/MKhiriev/insight-hunter/internal/logger"
	"github.com/MKhiriev/insight-hunter/internal/store"
	"github.com/MKhiriev/insight-hunter/internal/utils"
	"github.com/MKhiriev/insight-hunter/models"
	"golang.org/x/crypto/bcrypt"
)

// dummyPassword is hashed once at construction. Logins for unknown emails
// compare against that hash so they take as long as logins for known ones.
const dummyPassword = "insight-hunter-timing-equaliser"

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for
// password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// bcryptCost is the work factor of new password hashes.
	bcryptCost int

	// dummyHash is a bcrypt hash of dummyPassword at bcryptCost.
	dummyHash []byte

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	now func() time.Time

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// It fails when no token sign key is configured. The returned service is safe
// for concurrent use; all state is read-only after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) (AuthService, error) {
	if cfg.TokenSignKey == "" {
		return nil, ErrTokenSignKeyIsNotSpecified
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPasswordHashingFailed, err)
	}

	return &authService{
		userRepository: userRepository,
		bcryptCost:     cfg.BcryptCost,
		dummyHash:      dummyHash,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		now:            time.Now,
		logger:         logger,
	}, nil
}

// RegisterUser creates a new user account in demo mode.
//
// Returns the persisted user (with a server-assigned UserID and without the
// password hash) or:
//   - ErrInvalidDataProvided if email or password is empty or the password
//     cannot be hashed.
//   - ErrUserAlreadyExists if the email is taken.
//   - A wrapped storage error for any other repository failure.
func (a *authService) RegisterUser(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Str("func", "authService.RegisterUser").Str("email", email).Msg("invalid user data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	passwordHash, err := hashPassword(password, a.bcryptCost)
	if err != nil {
		log.Err(err).Str("func", "authService.RegisterUser").Str("email", email).Msg("password hashing failed")
		return models.User{}, err
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        email,
		PasswordHash: passwordHash,
		DemoMode:     true,
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			log.Warn().Str("func", "authService.RegisterUser").Str("email", email).Msg("email already registered")
			return models.User{}, ErrUserAlreadyExists
		}
		log.Err(err).Str("func", "authService.RegisterUser").Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return redact(registeredUser), nil
}

// Login authenticates an existing user and issues a bearer token.
//
// Unknown email and wrong password both return ErrInvalidCredentials, and both
// paths run one bcrypt comparison.
func (a *authService) Login(ctx context.Context, email, password string) (models.LoginResponse, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Str("func", "authService.Login").Msg("invalid user data provided")
		return models.LoginResponse{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			_ = bcrypt.CompareHashAndPassword(a.dummyHash, []byte(password))
			log.Info().Str("func", "authService.Login").Msg("login with unknown email")
			return models.LoginResponse{}, ErrInvalidCredentials
		}
		log.Err(err).Str("func", "authService.Login").Msg("user search by email failed")
		return models.LoginResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)); err != nil {
		log.Info().Str("func", "authService.Login").Str("user_id", foundUser.UserID).Msg("wrong password")
		return models.LoginResponse{}, ErrInvalidCredentials
	}

	token, err := a.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Str("func", "authService.Login").Str("user_id", foundUser.UserID).Msg("token creation failed")
		return models.LoginResponse{}, err
	}

	return models.LoginResponse{Token: token.SignedString, User: redact(foundUser)}, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	identity := models.Identity{UserID: user.UserID, Email: user.Email}
	token, err := utils.GenerateJWTToken(a.tokenIssuer, identity, a.tokenDuration, a.tokenSignKey, a.now())
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (bad signature, expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Identity, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "authService.ParseToken").Msg("token rejected")
		return models.Identity{}, ErrTokenIsExpiredOrInvalid
	}

	return token.Identity, nil
}

// SetDemoMode changes the demo flag of targetID on behalf of requestor.
//
// Returns ErrForbidden when requestor is not the owner and ErrUserNotFound
// when the account does not exist.
func (a *authService) SetDemoMode(ctx context.Context, requestor models.Identity, targetID string, enabled bool) (models.User, error) {
	log := logger.FromContext(ctx)

	if requestor.UserID == "" || requestor.UserID != targetID {
		log.Warn().
			Str("func", "authService.SetDemoMode").
			Str("requestor", requestor.UserID).
			Str("target", targetID).
			Msg("demo mode change for another user")
		return models.User{}, ErrForbidden
	}

	user, err := a.userRepository.SetDemoMode(ctx, targetID, enabled)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUserNotFound
		}
		log.Err(err).Str("func", "authService.SetDemoMode").Str("user_id", targetID).Msg("demo mode update failed")
		return models.User{}, fmt.Errorf("demo mode update failed: %w", err)
	}

	return redact(user), nil
}

// SeedDemoUser registers the demo account unless a user with email exists.
// Calling it repeatedly returns the same account.
func (a *authService) SeedDemoUser(ctx context.Context, email, password string) (models.User, error) {
	existing, err := a.userRepository.FindUserByEmail(ctx, email)
	if err == nil {
		return redact(existing), nil
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, fmt.Errorf("demo user lookup failed: %w", err)
	}

	user, err := a.RegisterUser(ctx, email, password)
	if errors.Is(err, ErrUserAlreadyExists) {
		// created concurrently by another seeder
		existing, err = a.userRepository.FindUserByEmail(ctx, email)
		if err != nil {
			return models.User{}, fmt.Errorf("demo user lookup failed: %w", err)
		}
		return redact(existing), nil
	}

	return user, err
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrInvalidDataProvided
		}
		return "", fmt.Errorf("%w: %w", ErrPasswordHashingFailed, err)
	}
	return string(hash), nil
}

// redact strips credential material before a user leaves the service layer.
func redact(user models.User) models.User {
	user.PasswordHash = ""
	user.ResetTokenHash = nil
	user.ResetTokenExpiresAt = nil
	return user
}
