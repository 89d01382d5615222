package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/insight-hunter/internal/config"
	"github.com/MKhiriev/insight-hunter/internal/logger"
	"github.com/MKhiriev/insight-hunter/internal/mock"
	"github.com/MKhiriev/insight-hunter/internal/service"
	"github.com/MKhiriev/insight-hunter/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// serviceMocks bundles the mocked services behind a Handler.
type serviceMocks struct {
	auth    *mock.MockAuthService
	reset   *mock.MockPasswordResetService
	reports *mock.MockReportService
	appInfo *mock.MockAppInfoService
}

func newMockedHandler(t *testing.T, cfg config.Server) (*Handler, serviceMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mocks := serviceMocks{
		auth:    mock.NewMockAuthService(ctrl),
		reset:   mock.NewMockPasswordResetService(ctrl),
		reports: mock.NewMockReportService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
	}
	services := &service.Services{
		AuthService:          mocks.auth,
		PasswordResetService: mocks.reset,
		ReportService:        mocks.reports,
		AppInfoService:       mocks.appInfo,
	}

	return NewHandler(services, cfg, logger.Nop()), mocks
}

// doRequest sends body (marshalled unless it is a string) through handler.
func doRequest(t *testing.T, handler http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), "body: %s", rr.Body.String())
	return resp.Error
}
