package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/insight-hunter/internal/config"
	"github.com/MKhiriev/insight-hunter/internal/logger"
	"github.com/MKhiriev/insight-hunter/internal/utils"
	"github.com/MKhiriev/insight-hunter/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// It normalises cfg.HTTPAddress into a base URL and applies
// cfg.RequestTimeout to every request.
//
// Returns an error if the address is empty or cannot be parsed as a URL.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidAddress
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. The token is whitespace-trimmed.
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Register(ctx context.Context, email, password string) (models.User, error) {
	var user models.User
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.RegisterRequest{Email: email, Password: password}).
		SetResult(&user).
		Post("/auth/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Login implements [ServerAdapter]. On success the returned token replaces
// the one held by the adapter.
func (h *httpServerAdapter) Login(ctx context.Context, email, password string) (models.LoginResponse, error) {
	var out models.LoginResponse
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.LoginRequest{Email: email, Password: password}).
		SetResult(&out).
		Post("/auth/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	h.SetToken(out.Token)
	h.logger.Debug().Str("func", "httpServerAdapter.Login").Str("user_id", out.User.UserID).Msg("logged in")

	return out, nil
}

func (h *httpServerAdapter) Forgot(ctx context.Context, email string) (string, error) {
	return h.postMessage(ctx, "/auth/forgot", models.ForgotRequest{Email: email})
}

func (h *httpServerAdapter) Reset(ctx context.Context, token, password string) (string, error) {
	return h.postMessage(ctx, "/auth/reset", models.ResetRequest{Token: token, Password: password})
}

func (h *httpServerAdapter) SetDemoMode(ctx context.Context, userID string, enabled bool) (models.User, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	resp, err := req.
		SetPathParam("id", userID).
		SetBody(models.DemoModeRequest{DemoMode: &enabled}).
		SetResult(&user).
		Patch("/users/{id}/demo-mode")
	if err != nil {
		return models.User{}, fmt.Errorf("demo mode request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (h *httpServerAdapter) Reports(ctx context.Context) ([]string, error) {
	req, err := h.authedRequest(ctx)
	if err != nil {
		return nil, err
	}

	var out models.ReportsResponse
	resp, err := req.SetResult(&out).Get("/reports")
	if err != nil {
		return nil, fmt.Errorf("reports request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return out.Insights, nil
}

func (h *httpServerAdapter) Health(ctx context.Context) (string, error) {
	var out models.HealthResponse
	resp, err := h.client.R().SetContext(ctx).SetResult(&out).Get("/")
	if err != nil {
		return "", fmt.Errorf("health request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return out.Status, nil
}

// Version implements [ServerAdapter]. The endpoint answers in plain text.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).SetHeader("Accept", "text/plain").Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) postMessage(ctx context.Context, path string, body any) (string, error) {
	var out models.MessageResponse
	resp, err := h.client.R().SetContext(ctx).SetBody(body).SetResult(&out).Post(path)
	if err != nil {
		return "", fmt.Errorf("request %s: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return out.Message, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) (*resty.Request, error) {
	token := h.Token()
	if token == "" {
		return nil, ErrNoToken
	}

	return h.client.R().SetContext(ctx).SetAuthToken(token), nil
}
