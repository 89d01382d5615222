// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// buildRouter creates a minimal chi.Mux with a set of routes for tests.
// It intentionally does not use Handler.Init() to avoid service/logger setup.
func buildRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/api/items", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("items"))
	})
	router.Post("/api/items", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{name: "GET /api/items passes through", method: http.MethodGet, path: "/api/items", expectedStatus: http.StatusOK},
		{name: "POST /api/items passes through", method: http.MethodPost, path: "/api/items", expectedStatus: http.StatusCreated},
		{name: "POST /auth/login in sub-router passes through", method: http.MethodPost, path: "/auth/login", expectedStatus: http.StatusOK},
		{name: "DELETE /api/items is hidden", method: http.MethodDelete, path: "/api/items", expectedStatus: http.StatusNotFound},
		{name: "PATCH /api/items is hidden", method: http.MethodPatch, path: "/api/items", expectedStatus: http.StatusNotFound},
		{name: "GET /auth/login in sub-router is hidden", method: http.MethodGet, path: "/auth/login", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)
		})
	}
}

func TestCheckHTTPMethod_WritesJSONError(t *testing.T) {
	router := buildRouter()

	rr := doRequest(t, router, http.MethodDelete, "/api/items", nil, nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "not found", decodeError(t, rr))
}

func TestCheckHTTPMethod_PassThroughBody(t *testing.T) {
	router := buildRouter()

	rr := doRequest(t, router, http.MethodGet, "/api/items", nil, nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "items", rr.Body.String())
}
