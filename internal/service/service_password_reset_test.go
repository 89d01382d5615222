package service

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/MKhiriev/insight-hunter/internal/logger"
	"github.com/MKhiriev/insight-hunter/internal/mock"
	"github.com/MKhiriev/insight-hunter/internal/store"
	"github.com/MKhiriev/insight-hunter/internal/utils"
	"github.com/MKhiriev/insight-hunter/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

var resetNow = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

func newTestResetSvc(t *testing.T, ctrl *gomock.Controller) (*passwordResetService, *mock.MockUserRepository, *mock.MockNotifier) {
	t.Helper()
	repo := mock.NewMockUserRepository(ctrl)
	n := mock.NewMockNotifier(ctrl)

	svc := NewPasswordResetService(repo, n, testAppConfig(), logger.Nop()).(*passwordResetService)
	svc.now = func() time.Time { return resetNow }
	svc.generateToken = func() (string, error) { return "raw-reset-token", nil }

	return svc, repo, n
}

// ── Forgot ───────────────────────────────────────────────────────────────────

func TestPasswordResetService_Forgot_StoresDigestAndNotifies(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, n := newTestResetSvc(t, ctrl)
	ctx := context.Background()

	wantDigest := utils.HashString("raw-reset-token", "test-reset-key")

	gomock.InOrder(
		repo.EXPECT().SetResetToken(ctx, "a@x.com", wantDigest, resetNow.Add(time.Hour)).
			Return(models.User{UserID: "u-1", Email: "a@x.com"}, nil),
		n.EXPECT().NotifyPasswordReset(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, event models.PasswordResetEvent) error {
				assert.Equal(t, "u-1", event.UserID)
				assert.Equal(t, "a@x.com", event.Email)
				assert.Equal(t, "raw-reset-token", event.Token)

				u, err := url.Parse(event.URL)
				require.NoError(t, err)
				assert.Equal(t, "/reset", u.Path)
				assert.Equal(t, "raw-reset-token", u.Query().Get("token"))
				return nil
			},
		),
	)

	require.NoError(t, svc.Forgot(ctx, "a@x.com"))
}

func TestPasswordResetService_Forgot_UnknownEmailSendsNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestResetSvc(t, ctrl)

	repo.EXPECT().SetResetToken(gomock.Any(), "nobody@x.com", gomock.Any(), gomock.Any()).
		Return(models.User{}, store.ErrNoUserWasFound)
	// no NotifyPasswordReset expectation: gomock fails the test on any call

	assert.NoError(t, svc.Forgot(context.Background(), "nobody@x.com"))
}

func TestPasswordResetService_Forgot_NotifierFailureIsNotSurfaced(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, n := newTestResetSvc(t, ctrl)

	repo.EXPECT().SetResetToken(gomock.Any(), "a@x.com", gomock.Any(), gomock.Any()).
		Return(models.User{UserID: "u-1", Email: "a@x.com"}, nil)
	n.EXPECT().NotifyPasswordReset(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	assert.NoError(t, svc.Forgot(context.Background(), "a@x.com"))
}

func TestPasswordResetService_Forgot_Errors(t *testing.T) {
	t.Run("empty email", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, _ := newTestResetSvc(t, ctrl)

		assert.ErrorIs(t, svc.Forgot(context.Background(), ""), ErrInvalidDataProvided)
	})

	t.Run("token generation fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, _, _ := newTestResetSvc(t, ctrl)
		svc.generateToken = func() (string, error) { return "", errors.New("entropy exhausted") }

		assert.ErrorIs(t, svc.Forgot(context.Background(), "a@x.com"), ErrResetTokenNotGenerated)
	})

	t.Run("database down", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc, repo, _ := newTestResetSvc(t, ctrl)
		repo.EXPECT().SetResetToken(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(models.User{}, store.ErrDatabaseUnavailable)

		assert.ErrorIs(t, svc.Forgot(context.Background(), "a@x.com"), store.ErrDatabaseUnavailable)
	})
}

func TestPasswordResetService_GeneratedTokensAreDistinct(t *testing.T) {
	svc := NewPasswordResetService(nil, nil, testAppConfig(), logger.Nop()).(*passwordResetService)

	first, err := svc.generateToken()
	require.NoError(t, err)
	second, err := svc.generateToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	// 32 bytes in unpadded base64url
	assert.Len(t, first, 43)
}

func TestPasswordResetService_HashKeyFallsBackToSignKey(t *testing.T) {
	cfg := testAppConfig()
	cfg.ResetTokenHashKey = ""

	svc := NewPasswordResetService(nil, nil, cfg, logger.Nop()).(*passwordResetService)

	assert.Equal(t, cfg.TokenSignKey, svc.hashKey)
}

func TestPasswordResetService_ResetLink(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestResetSvc(t, ctrl)
	ctx := context.Background()

	svc.resetURL = "https://app.example.com/reset?lang=en"
	link := svc.resetLink(ctx, "a+b/c")
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "en", u.Query().Get("lang"))
	assert.Equal(t, "a+b/c", u.Query().Get("token"))

	svc.resetURL = ""
	assert.Empty(t, svc.resetLink(ctx, "tok"))

	svc.resetURL = "://broken"
	assert.Empty(t, svc.resetLink(ctx, "tok"))
}

// ── Reset ────────────────────────────────────────────────────────────────────

func TestPasswordResetService_Reset_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestResetSvc(t, ctrl)

	wantDigest := utils.HashString("raw-reset-token", "test-reset-key")
	repo.EXPECT().ResetPasswordByToken(gomock.Any(), wantDigest, gomock.Any(), resetNow).DoAndReturn(
		func(_ context.Context, _, passwordHash string, _ time.Time) (int64, error) {
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte("pw2")))
			return 1, nil
		},
	)

	assert.NoError(t, svc.Reset(context.Background(), "raw-reset-token", "pw2"))
}

func TestPasswordResetService_Reset_Errors(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		password string
		affected int64
		repoErr  error
		callRepo bool
		wantErr  error
	}{
		{name: "unknown or expired token", token: "garbage", password: "pw2", callRepo: true, wantErr: ErrInvalidResetToken},
		{name: "empty token", password: "pw2", wantErr: ErrInvalidDataProvided},
		{name: "empty password", token: "tok", wantErr: ErrInvalidDataProvided},
		{name: "database down", token: "tok", password: "pw2", callRepo: true, repoErr: store.ErrDatabaseUnavailable, wantErr: store.ErrDatabaseUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, repo, _ := newTestResetSvc(t, ctrl)
			if tt.callRepo {
				repo.EXPECT().ResetPasswordByToken(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(tt.affected, tt.repoErr)
			}

			assert.ErrorIs(t, svc.Reset(context.Background(), tt.token, tt.password), tt.wantErr)
		})
	}
}
