package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"travelex-backend/controllers"
	"travelex-backend/middleware"
	"travelex-backend/models"
	"travelex-backend/routes"
	"travelex-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	router *gin.Engine
	store  *services.MemoryStore
	prefs  *services.MemoryPreferenceStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := services.NewMemoryStore()
	prefs := services.NewMemoryPreferenceStore()
	var payments services.PaymentProvider = services.NoopPaymentProvider{}

	router := routes.SetupRouter(
		controllers.NewAuthController(store, store),
		controllers.NewUserController(store, store),
		controllers.NewDestinationController(store, store),
		controllers.NewBookingController(store, store, payments),
		controllers.NewReviewController(store),
		controllers.NewActivityController(store),
		controllers.NewAnalyticsController(store),
		controllers.NewCurrencyController(prefs),
	)
	return &testEnv{router: router, store: store, prefs: prefs}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func (e *testEnv) register(t *testing.T, username, password string) (userID, token string) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": username, "password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var data struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &data))
	require.NotEmpty(t, data.Token)
	return data.User.ID, data.Token
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	admin, err := e.store.CreateUser(&services.UpsertUser{
		Username: "root", Password: "rootpw", Role: "admin",
	})
	require.NoError(t, err)
	token, err := middleware.IssueToken(admin)
	require.NoError(t, err)
	return token
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "mira", "hunter22")

	// The username is taken now.
	w := env.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"username": "mira", "password": "other",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "mira", "password": "hunter22",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Wrong password and unknown user look the same.
	w = env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "mira", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")

	w = env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "ghost", "password": "hunter22",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The hash never leaks into responses.
	assert.NotContains(t, w.Body.String(), "password")
}

func TestBrowseDestinations(t *testing.T) {
	env := newTestEnv(t)
	seed := []models.Destination{
		{Name: "Bali Beach Retreat", Country: "Indonesia", Price: "1500", IsActive: true, ImageURL: "https://img/bali.jpg"},
		{Name: "Paris City Tour", Country: "France", Price: "2500", IsActive: true, ImageURL: "https://img/paris.jpg"},
	}
	for i := range seed {
		require.NoError(t, env.store.CreateDestination(&seed[i]))
	}

	w := env.do(t, http.MethodGet, "/api/destinations?search=beach", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Destination
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Bali Beach Retreat", list[0].Name)

	w = env.do(t, http.MethodGet, "/api/destinations?sort=price-high", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Paris City Tour", list[0].Name)

	w = env.do(t, http.MethodGet, "/api/destinations?region=europe&budget=2000-3000", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Paris City Tour", list[0].Name)
}

func TestBookingLifecycle(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "kai", "pw123456")
	dest := models.Destination{Name: "Kenya Safari Adventure", Price: "2900", IsActive: true}
	require.NoError(t, env.store.CreateDestination(&dest))

	payload := gin.H{
		"destinationId": dest.ID,
		"checkIn":       "2026-10-01",
		"checkOut":      "2026-10-08",
		"totalAmount":   "2900.00",
	}

	// No token, no booking.
	w := env.do(t, http.MethodPost, "/api/bookings", "", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/bookings", token, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Booking models.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))
	assert.Equal(t, models.BookingStatusActive, created.Booking.Status)
	assert.Equal(t, 1, created.Booking.Guests)

	// Same tuple again is a conflict.
	w = env.do(t, http.MethodPost, "/api/bookings", token, payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.do(t, http.MethodGet, "/api/bookings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []models.BookingWithDetails
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &mine))
	require.Len(t, mine, 1)
	assert.Equal(t, "Kenya Safari Adventure", mine[0].Destination.Name)

	// Cancel frees the dates for a new booking.
	path := fmt.Sprintf("/api/bookings/%d/cancel", created.Booking.ID)
	w = env.do(t, http.MethodPost, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/bookings", token, payload)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestBookingOwnership(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.register(t, "owner", "pw123456")
	_, intruder := env.register(t, "intruder", "pw123456")
	dest := models.Destination{Name: "Paris City Tour", Price: "2500", IsActive: true}
	require.NoError(t, env.store.CreateDestination(&dest))

	w := env.do(t, http.MethodPost, "/api/bookings", owner, gin.H{
		"destinationId": dest.ID,
		"checkIn":       "2026-05-01",
		"checkOut":      "2026-05-06",
		"totalAmount":   "2500.00",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Booking models.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &created))
	path := fmt.Sprintf("/api/bookings/%d", created.Booking.ID)

	w = env.do(t, http.MethodGet, path, intruder, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = env.do(t, http.MethodPost, path+"/cancel", intruder, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Admins can read any booking.
	w = env.do(t, http.MethodGet, path, env.adminToken(t), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCurrencyPreferenceRoutes(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "zoe", "pw123456")

	w := env.do(t, http.MethodGet, "/api/currencies", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"default":"AUD"`)

	// Nothing saved yet resolves to the default.
	w = env.do(t, http.MethodGet, "/api/currencies/preference", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"AUD"`)

	w = env.do(t, http.MethodPut, "/api/currencies/preference", token, gin.H{"code": "EUR"})
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, "/api/currencies/preference", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"EUR"`)
	assert.Contains(t, w.Body.String(), `"symbol":"€"`)

	// GBP is accepted on write but migrated away on read.
	w = env.do(t, http.MethodPut, "/api/currencies/preference", token, gin.H{"code": "GBP"})
	require.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, "/api/currencies/preference", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"AUD"`)

	w = env.do(t, http.MethodPut, "/api/currencies/preference", token, gin.H{"code": "BTC"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.register(t, "plain", "pw123456")

	w := env.do(t, http.MethodGet, "/api/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := env.adminToken(t)
	w = env.do(t, http.MethodGet, "/api/admin/users", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/admin/activity-logs?limit=5", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var logs []models.ActivityLog
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &logs))
	// Registration wrote a user.register entry.
	require.NotEmpty(t, logs)
	assert.Equal(t, "user.register", logs[0].Action)

	w = env.do(t, http.MethodGet, "/api/admin/analytics/revenue", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = env.do(t, http.MethodGet, "/api/admin/analytics/users", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminDestinationImageConflict(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken(t)

	w := env.do(t, http.MethodPost, "/api/admin/destinations", admin, gin.H{
		"name": "Bali Beach Retreat", "imageUrl": "https://img/a.jpg", "isActive": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodPost, "/api/admin/destinations", admin, gin.H{
		"name": "Copycat Resort", "imageUrl": "https://img/a.jpg",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Bali Beach Retreat")
}

func TestAdminDeactivateDestination(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken(t)
	dest := models.Destination{Name: "Paris City Tour", Price: "2500", IsActive: true}
	require.NoError(t, env.store.CreateDestination(&dest))

	// isActive: false pulls the row from the public catalog; no delete needed.
	path := fmt.Sprintf("/api/admin/destinations/%d", dest.ID)
	w := env.do(t, http.MethodPut, path, admin, gin.H{"isActive": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/destinations", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list []models.Destination
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &list))
	assert.Empty(t, list)

	// The row itself survives and keeps its name.
	got, err := env.store.GetDestination(dest.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paris City Tour", got.Name)
	assert.False(t, got.IsActive)
}
