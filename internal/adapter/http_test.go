// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/insight-hunter/internal/config"
	"github.com/MKhiriev/insight-hunter/internal/logger"
	"github.com/MKhiriev/insight-hunter/models"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()

	a, err := NewHTTPServerAdapter(config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func errorServer(t *testing.T, status int, message string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, status, models.ErrorResponse{Error: message})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "host and port", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "trailing slash", raw: "https://api.example.com/", want: "https://api.example.com"},
		{name: "surrounding spaces", raw: "  http://127.0.0.1:9000  ", want: "http://127.0.0.1:9000"},
		{name: "empty", raw: "   ", wantErr: ErrEmptyAddress},
		{name: "no host", raw: "http://", wantErr: ErrInvalidAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewHTTPServerAdapter_EmptyAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.ClientAdapter{}, logger.Nop())
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

func TestRegister_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/register", r.URL.Path)

		var req models.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@x.com", req.Email)
		assert.Equal(t, "pw1", req.Password)

		writeJSON(t, w, http.StatusOK, models.User{UserID: "u-1", Email: req.Email, DemoMode: true})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	user, err := a.Register(context.Background(), "a@x.com", "pw1")

	require.NoError(t, err)
	assert.Equal(t, "u-1", user.UserID)
	assert.True(t, user.DemoMode)
	assert.Empty(t, a.Token())
}

func TestRegister_AlreadyExists(t *testing.T) {
	srv := errorServer(t, http.StatusBadRequest, "user already exists")

	_, err := newTestAdapter(t, srv.URL).Register(context.Background(), "a@x.com", "pw1")

	require.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "user already exists")
}

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		writeJSON(t, w, http.StatusOK, models.LoginResponse{
			Token: "header.payload.sig",
			User:  models.User{UserID: "u-1", Email: "a@x.com"},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	resp, err := a.Login(context.Background(), "a@x.com", "pw1")

	require.NoError(t, err)
	assert.Equal(t, "u-1", resp.User.UserID)
	assert.Equal(t, "header.payload.sig", a.Token())
}

func TestLogin_InvalidCredentials(t *testing.T) {
	srv := errorServer(t, http.StatusUnauthorized, "invalid credentials")

	a := newTestAdapter(t, srv.URL)
	a.SetToken("previous")
	_, err := a.Login(context.Background(), "a@x.com", "wrong")

	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Contains(t, err.Error(), "invalid credentials")
	assert.Equal(t, "previous", a.Token())
}

func TestForgotAndReset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/forgot":
			var req models.ForgotRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "a@x.com", req.Email)
			writeJSON(t, w, http.StatusOK, models.MessageResponse{Message: "If the account exists, a reset link has been sent"})
		case "/auth/reset":
			var req models.ResetRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.Token != "good" {
				writeJSON(t, w, http.StatusBadRequest, models.ErrorResponse{Error: "invalid token"})
				return
			}
			writeJSON(t, w, http.StatusOK, models.MessageResponse{Message: "Password reset"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	msg, err := a.Forgot(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "If the account exists, a reset link has been sent", msg)

	msg, err = a.Reset(context.Background(), "good", "pw2")
	require.NoError(t, err)
	assert.Equal(t, "Password reset", msg)

	_, err = a.Reset(context.Background(), "bad", "pw2")
	require.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestSetDemoMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/u-1/demo-mode", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var req models.DemoModeRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.DemoMode)
		assert.False(t, *req.DemoMode)

		writeJSON(t, w, http.StatusOK, models.User{UserID: "u-1", DemoMode: false})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken(" tok ")

	user, err := a.SetDemoMode(context.Background(), "u-1", false)
	require.NoError(t, err)
	assert.False(t, user.DemoMode)
}

func TestSetDemoMode_Forbidden(t *testing.T) {
	srv := errorServer(t, http.StatusForbidden, "forbidden")

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")

	_, err := a.SetDemoMode(context.Background(), "someone-else", true)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestAuthedRequests_WithoutToken(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	_, err := a.Reports(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)

	_, err = a.SetDemoMode(context.Background(), "u-1", true)
	assert.ErrorIs(t, err, ErrNoToken)

	assert.False(t, called)
}

func TestReports(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, models.ReportsResponse{Insights: []string{"one", "two"}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")

	insights, err := a.Reports(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, insights)
}

func TestHealthAndVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			writeJSON(t, w, http.StatusOK, models.HealthResponse{Status: "Backend running"})
		case "/api/version":
			w.Header().Set("Content-Type", "text/plain")
			_, _ = w.Write([]byte("1.2.3\n"))
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	status, err := a.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Backend running", status)

	version, err := a.Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", version)
}

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "json body", status: http.StatusBadRequest, body: `{"error":"validation failed: email"}`, wantErr: ErrBadRequest, wantMsg: "validation failed: email"},
		{name: "plain body", status: http.StatusNotFound, body: "nothing here\n", wantErr: ErrNotFound, wantMsg: "nothing here"},
		{name: "empty body", status: http.StatusServiceUnavailable, wantErr: ErrServiceUnavailable, wantMsg: "service unavailable"},
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":"too many requests"}`, wantErr: ErrTooManyRequests},
		{name: "conflict", status: http.StatusConflict, body: `{"error":"duplicate"}`, wantErr: ErrConflict, wantMsg: "duplicate"},
		{name: "internal", status: http.StatusInternalServerError, body: `{"error":"internal server error"}`, wantErr: ErrInternalServerError},
		{name: "unmapped", status: http.StatusTeapot, body: "short and stout", wantMsg: "http 418: short and stout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestAdapter(t, srv.URL).Health(context.Background())
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}
