package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hostelmate-data/internal/domain"
	"hostelmate-data/internal/repository"
	"hostelmate-data/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

var (
	ownerA = domain.Caller{OwnerID: "owner-a"}
	ownerB = domain.Caller{OwnerID: "owner-b"}
	admin  = domain.Caller{OwnerID: "admin", Privileged: true}
)

type testEnv struct {
	router *Router
	auth   *Authenticator
	repos  *repository.Repositories
}

func setupRouter(t *testing.T, requireSubscription bool) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	repos := repository.NewMemoryRepositories()
	now := func() time.Time { return time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC) }
	svcs := service.NewServices(repos, now, nil, requireSubscription, logger)

	auth := NewAuthenticator(testSecret, "hostelmate", logger)
	router := NewRouter(auth, logger)
	router.RegisterHealthRoutes()
	router.RegisterMeRoutes(NewMeHandler(svcs.Me, logger))
	router.RegisterDashboardRoutes(NewDashboardHandler(svcs.Dashboard, logger))
	router.RegisterEntityRoutes(svcs)

	return &testEnv{router: router, auth: auth, repos: repos}
}

func (e *testEnv) do(t *testing.T, caller *domain.Caller, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if caller != nil {
		token, err := e.auth.IssueToken(*caller, time.Hour)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeResult[T any](t *testing.T, rec *httptest.ResponseRecorder) Result[T] {
	t.Helper()
	var res Result[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestHealthz(t *testing.T) {
	env := setupRouter(t, false)

	rec := env.do(t, nil, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ResultSuccess, decodeResult[map[string]string](t, rec).Code)
}

func TestAuth_Rejections(t *testing.T) {
	env := setupRouter(t, false)

	rec := env.do(t, nil, http.MethodGet, "/api/v1/me", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, ResultError, decodeResult[any](t, rec).Code)

	// 其他密钥签发
	other := NewAuthenticator("other-secret", "hostelmate", zap.NewNop())
	token, err := other.IssueToken(ownerA, time.Hour)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// 过期
	token, err = env.auth.IssueToken(ownerA, -time.Minute)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, ResultTokenExpired, decodeResult[any](t, rec).Code)
}

func TestAuth_ParseClaims(t *testing.T) {
	auth := NewAuthenticator(testSecret, "hostelmate", zap.NewNop())

	token, err := auth.IssueToken(admin, time.Hour)
	require.NoError(t, err)

	caller, err := auth.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, admin, caller)

	wrongIssuer := NewAuthenticator(testSecret, "someone-else", zap.NewNop())
	_, err = wrongIssuer.Parse(token)
	assert.Error(t, err)
}

func TestMe(t *testing.T) {
	env := setupRouter(t, false)

	rec := env.do(t, &admin, http.MethodGet, "/api/v1/me", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	me := decodeResult[service.MeResponse](t, rec).Result
	assert.Equal(t, "admin", me.OwnerID)
	assert.True(t, me.IsSuperuser)
	assert.False(t, me.HasActiveSubscription)
}

func TestEntityRoutes_CRUD(t *testing.T) {
	env := setupRouter(t, false)

	rec := env.do(t, &ownerA, http.MethodPost, "/api/v1/properties", map[string]any{"property_name": "Marina Heights"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeResult[domain.Property](t, rec).Result
	assert.Equal(t, "owner-a", created.OwnerID)

	rec = env.do(t, &ownerA, http.MethodGet, "/api/v1/properties", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeResult[[]domain.Property](t, rec).Result, 1)

	rec = env.do(t, &ownerB, http.MethodGet, "/api/v1/properties/"+created.PropertyID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, &ownerA, http.MethodPut, "/api/v1/properties/"+created.PropertyID, map[string]any{"property_name": "Marina Towers"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Marina Towers", decodeResult[domain.Property](t, rec).Result.PropertyName)

	rec = env.do(t, &ownerA, http.MethodDelete, "/api/v1/properties/"+created.PropertyID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, &ownerA, http.MethodGet, "/api/v1/properties/"+created.PropertyID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEntityRoutes_BadRequests(t *testing.T) {
	env := setupRouter(t, false)

	rec := env.do(t, &ownerA, http.MethodPost, "/api/v1/properties", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, &ownerA, http.MethodPost, "/api/v1/properties", map[string]any{"city": "Dubai"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeResult[any](t, rec).Message, "property_name")

	rec = env.do(t, &ownerA, http.MethodPost, "/api/v1/units", map[string]any{
		"property_id": "missing", "unit_number": "101", "bedspace_type": "Triple",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, &ownerA, http.MethodPatch, "/api/v1/properties", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPlanRoutes_PrivilegedWrites(t *testing.T) {
	env := setupRouter(t, false)
	plan := map[string]any{"plan_name": "Starter", "price": "49", "duration_months": 1}

	rec := env.do(t, &ownerA, http.MethodPost, "/api/v1/subscription-plans", plan)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, &admin, http.MethodPost, "/api/v1/subscription-plans", plan)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.do(t, &ownerA, http.MethodGet, "/api/v1/subscription-plans", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeResult[[]domain.SubscriptionPlan](t, rec).Result, 1)
}

func TestDashboardRoutes(t *testing.T) {
	env := setupRouter(t, false)

	rec := env.do(t, &ownerA, http.MethodGet, "/api/v1/dashboard/kpis?start_date=2026-03-15&end_date=2026-05-20", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Result struct {
			KPIs   map[string]any             `json:"kpis"`
			Charts map[string]json.RawMessage `json:"charts_data"`
			WhatIf map[string]any             `json:"what_if_analysis"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2026-03-01", body.Result.KPIs["selected_start_date"])
	assert.Contains(t, body.Result.Charts, "monthly_trends")
	assert.Contains(t, body.Result.WhatIf, "occupancy_rate_with_impact")

	rec = env.do(t, &ownerA, http.MethodGet, "/api/v1/dashboard/kpis?end_date=20-05-2026", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid date format. Use YYYY-MM-DD.", decodeResult[any](t, rec).Message)

	rec = env.do(t, &ownerA, http.MethodGet, "/api/v1/dashboard/kpis?price_change_percent=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, &ownerA, http.MethodPost, "/api/v1/dashboard/kpis", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDashboardRoutes_SubscriptionRequired(t *testing.T) {
	env := setupRouter(t, true)

	rec := env.do(t, &ownerA, http.MethodGet, "/api/v1/dashboard/kpis", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, &admin, http.MethodGet, "/api/v1/dashboard/kpis", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDashboardExport(t *testing.T) {
	env := setupRouter(t, false)

	rec := env.do(t, &ownerA, http.MethodGet, "/api/v1/dashboard/export?start_date=2026-08-01&end_date=2026-10-15", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "dashboard_2026-08-01_2026-10-15.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{SheetKPIs, SheetTrends, SheetBreakdowns, SheetWhatIf}, f.GetSheetList())

	rows, err := f.GetRows(SheetTrends)
	require.NoError(t, err)
	// 表头 + 8、9、10 三个月
	assert.Len(t, rows, 4)
	assert.Equal(t, "Month", rows[0][0])
}
