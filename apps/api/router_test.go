package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/zenGate-Global/palmyra-idcheck/contracts"
	validationshandler "github.com/zenGate-Global/palmyra-idcheck/domains/validations/be/handler"
	validationsrepo "github.com/zenGate-Global/palmyra-idcheck/domains/validations/be/repo"
	validationsservice "github.com/zenGate-Global/palmyra-idcheck/domains/validations/be/service"
	"github.com/zenGate-Global/palmyra-idcheck/platform/go/metrics"
	platformmiddleware "github.com/zenGate-Global/palmyra-idcheck/platform/go/middleware"
	"github.com/zenGate-Global/palmyra-idcheck/platform/go/payloadschema"
)

func newTestRouter(t *testing.T, ready func(context.Context) error) (http.Handler, *validationsrepo.MemoryJournal) {
	t.Helper()

	logger := zaptest.NewLogger(t)
	journal := validationsrepo.NewMemoryJournal(0)
	m := metrics.New()
	svc := validationsservice.New(journal, payloadschema.NewValidator(contracts.Registrations), validationsservice.Config{
		DigestSalt: []byte("router-test"),
		Logger:     logger,
		Metrics:    m,
	})

	contract, err := platformmiddleware.LoadContract(context.Background(), contracts.ValidationsYAML)
	require.NoError(t, err)

	return newRouter(routerConfig{
		Logger:         logger,
		Handler:        validationshandler.New(svc, logger),
		Contract:       contract,
		Metrics:        m,
		Ready:          ready,
		RequestTimeout: 5 * time.Second,
	}), journal
}

func TestProbes(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, nil)
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
	}

	failing, _ := newTestRouter(t, func(context.Context) error { return errors.New("db down") })
	rec := httptest.NewRecorder()
	failing.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestValidateThroughFullStack(t *testing.T) {
	t.Parallel()

	router, journal := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validations/cif", strings.NewReader(`{"value":"B12345674"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Caller", "organization-registration")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.JSONEq(t, `{"kind":"cif","valid":true,"reason":"valid"}`, rec.Body.String())

	page, err := journal.List(context.Background(), validationsservice.ListOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Events, 1)
	require.Equal(t, "organization-registration", page.Events[0].Caller)
	require.NotEmpty(t, page.Events[0].RequestID)
}

func TestContractRejectsBeforeHandler(t *testing.T) {
	t.Parallel()

	router, journal := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validations/dni", strings.NewReader(`{"value":42}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	page, err := journal.List(context.Background(), validationsservice.ListOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Empty(t, page.Events)
}

func TestMetricsAndDocs(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/validations/phone", strings.NewReader(`{"value":"612345678"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), req)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `idcheck_validation_outcomes_total{kind="phone",reason="valid"} 1`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi/validations.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Contains(t, doc, "paths")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi/users.json", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/openapi/validations.json")
}
