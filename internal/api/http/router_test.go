package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/store-rating-service/internal/api/http"
	"github.com/spec-kit/store-rating-service/internal/api/http/handlers"
	"github.com/spec-kit/store-rating-service/internal/auth"
	"github.com/spec-kit/store-rating-service/internal/config"
	"github.com/spec-kit/store-rating-service/internal/domain"
	"github.com/spec-kit/store-rating-service/internal/events"
	"github.com/spec-kit/store-rating-service/internal/observability"
	"github.com/spec-kit/store-rating-service/internal/repository"
	"github.com/spec-kit/store-rating-service/internal/service"
)

const testSecret = "test-secret"

// In-memory fakes back the full route stack so flows like
// register -> duplicate register -> login behave statefully.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[user.Email]; exists {
		return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.ID == id {
			found := *user
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[email]; ok {
		found := *user
		return &found, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.ID == id {
			user.PasswordHash = passwordHash
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	users := make([]domain.User, 0, len(f.users))
	for _, user := range f.users {
		users = append(users, *user)
	}
	return users, nil
}

func (f *fakeUserRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.users)), nil
}

type fakeStoreRepo struct {
	mu     sync.Mutex
	nextID int64
	stores map[int64]*domain.Store
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{stores: make(map[int64]*domain.Store)}
}

func (f *fakeStoreRepo) Create(_ context.Context, store *domain.Store) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	store.ID = f.nextID
	stored := *store
	f.stores[store.ID] = &stored
	return nil
}

func (f *fakeStoreRepo) GetByID(_ context.Context, id int64) (*domain.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if store, ok := f.stores[id]; ok {
		found := *store
		return &found, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeStoreRepo) ListWithRatings(_ context.Context) ([]domain.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stores := make([]domain.Store, 0, len(f.stores))
	for _, store := range f.stores {
		stores = append(stores, *store)
	}
	return stores, nil
}

func (f *fakeStoreRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.stores)), nil
}

type ratingKey struct{ userID, storeID int64 }

type fakeRatingRepo struct {
	mu      sync.Mutex
	ratings map[ratingKey]*domain.Rating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: make(map[ratingKey]*domain.Rating)}
}

func (f *fakeRatingRepo) Create(_ context.Context, rating *domain.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := ratingKey{rating.UserID, rating.StoreID}
	if _, exists := f.ratings[key]; exists {
		return &pgconn.PgError{Code: "23505", ConstraintName: "ratings_pkey"}
	}
	stored := *rating
	f.ratings[key] = &stored
	return nil
}

func (f *fakeRatingRepo) Update(_ context.Context, rating *domain.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := ratingKey{rating.UserID, rating.StoreID}
	if _, exists := f.ratings[key]; !exists {
		return pgx.ErrNoRows
	}
	stored := *rating
	f.ratings[key] = &stored
	return nil
}

func (f *fakeRatingRepo) List(_ context.Context, filter repository.RatingFilter) ([]domain.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ratings := make([]domain.Rating, 0, len(f.ratings))
	for _, rating := range f.ratings {
		if filter.StoreID != nil && rating.StoreID != *filter.StoreID {
			continue
		}
		ratings = append(ratings, *rating)
	}
	return ratings, nil
}

func (f *fakeRatingRepo) Count(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.ratings)), nil
}

func newTestApp() *fiber.App {
	cfg := config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             testSecret,
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
		},
	}

	userRepo := newFakeUserRepo()
	storeRepo := newFakeStoreRepo()
	ratingRepo := newFakeRatingRepo()
	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg, userRepo, dispatcher)
	storeService := service.NewStoreService(storeRepo, userRepo, dispatcher)
	ratingService := service.NewRatingService(ratingRepo, storeRepo, dispatcher)
	statsService := service.NewStatsService(userRepo, storeRepo, ratingRepo)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("store-rating-service", "test", nil, nil),
		Users:          handlers.NewUsersHandler(authService),
		Stores:         handlers.NewStoresHandler(storeService),
		Ratings:        handlers.NewRatingsHandler(ratingService),
		Stats:          handlers.NewStatsHandler(statsService),
		AuthMiddleware: auth.NewMiddleware(authService.TokenManager()),
	})
	return app
}

func jsonRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func registerAndLogin(t *testing.T, app *fiber.App, email, role string) string {
	t.Helper()
	resp := jsonRequest(t, app, http.MethodPost, "/api/users/register", "", map[string]any{
		"name":     "Test Account",
		"email":    email,
		"password": "Abcdef1!",
		"address":  "1 Main St",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodPost, "/api/users/login", "", map[string]any{
		"email":    email,
		"password": "Abcdef1!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	token, ok := body["accessToken"].(string)
	require.True(t, ok, "login response must carry accessToken")
	return token
}

func TestRegisterLoginFlow(t *testing.T) {
	app := newTestApp()

	resp := jsonRequest(t, app, http.MethodPost, "/api/users/register", "", map[string]any{
		"name":     "Alice",
		"email":    "a@b.com",
		"password": "Abcdef1!",
		"role":     "Normal User",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// same email again
	resp = jsonRequest(t, app, http.MethodPost, "/api/users/register", "", map[string]any{
		"name":     "Alice Again",
		"email":    "a@b.com",
		"password": "Abcdef1!",
		"role":     "Normal User",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodPost, "/api/users/login", "", map[string]any{
		"email":    "a@b.com",
		"password": "Abcdef1!",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.NotEmpty(t, body["accessToken"])
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	app := newTestApp()

	resp := jsonRequest(t, app, http.MethodPost, "/api/users/register", "", map[string]any{
		"name":     "Eve",
		"email":    "eve@b.com",
		"password": "Abcdef1!",
		"role":     "Root",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLoginInvalidCredentials(t *testing.T) {
	app := newTestApp()
	registerAndLogin(t, app, "a@b.com", "Normal User")

	resp := jsonRequest(t, app, http.MethodPost, "/api/users/login", "", map[string]any{
		"email":    "a@b.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	app := newTestApp()

	resp := jsonRequest(t, app, http.MethodGet, "/api/stores", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRoleGateOnStoreCreation(t *testing.T) {
	app := newTestApp()
	userToken := registerAndLogin(t, app, "user@b.com", "Normal User")

	// authenticated but not an administrator
	resp := jsonRequest(t, app, http.MethodPost, "/api/stores/add", userToken, map[string]any{
		"name":     "Corner Shop",
		"owner_id": 1,
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// same token on a route with no role requirement
	resp = jsonRequest(t, app, http.MethodGet, "/api/stores", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminCreatesStoreAndUserRates(t *testing.T) {
	app := newTestApp()
	// the owner account takes id 1
	registerAndLogin(t, app, "owner@b.com", "Store Owner")
	adminToken := registerAndLogin(t, app, "admin@b.com", "System Administrator")

	resp := jsonRequest(t, app, http.MethodPost, "/api/stores/add", adminToken, map[string]any{
		"name":     "Corner Shop",
		"email":    "shop@example.com",
		"address":  "2 High St",
		"owner_id": 1,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// unknown owner
	resp = jsonRequest(t, app, http.MethodPost, "/api/stores/add", adminToken, map[string]any{
		"name":     "Orphan Shop",
		"owner_id": 99,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	userToken := registerAndLogin(t, app, "rater@b.com", "Normal User")

	resp = jsonRequest(t, app, http.MethodPost, "/api/ratings/add", userToken, map[string]any{
		"store_id": 1,
		"rating":   4,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// second submission for the same store conflicts
	resp = jsonRequest(t, app, http.MethodPost, "/api/ratings/add", userToken, map[string]any{
		"store_id": 1,
		"rating":   5,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// updates go through the update route
	resp = jsonRequest(t, app, http.MethodPut, "/api/ratings/update", userToken, map[string]any{
		"store_id": 1,
		"rating":   5,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// out-of-range value
	resp = jsonRequest(t, app, http.MethodPost, "/api/ratings/add", userToken, map[string]any{
		"store_id": 1,
		"rating":   6,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// updating a rating that was never submitted
	resp = jsonRequest(t, app, http.MethodPut, "/api/ratings/update", adminToken, map[string]any{
		"store_id": 1,
		"rating":   3,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// listing reflects the update and supports the store filter
	resp = jsonRequest(t, app, http.MethodGet, "/api/ratings?store_id=1", userToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()
	var ratings []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ratings))
	require.Len(t, ratings, 1)
	assert.Equal(t, float64(5), ratings[0]["rating"])
}

func TestExpiredTokenRejected(t *testing.T) {
	app := newTestApp()
	registerAndLogin(t, app, "a@b.com", "Normal User")

	claims := &auth.Claims{
		UserID: 1,
		Role:   domain.RoleNormalUser,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Second)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	resp := jsonRequest(t, app, http.MethodGet, "/api/stores", expired, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUpdatePasswordChangesLogin(t *testing.T) {
	app := newTestApp()
	token := registerAndLogin(t, app, "a@b.com", "Normal User")

	resp := jsonRequest(t, app, http.MethodPut, "/api/users/update-password", token, map[string]any{
		"password": "NewPass1!",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodPost, "/api/users/login", "", map[string]any{
		"email":    "a@b.com",
		"password": "Abcdef1!",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = jsonRequest(t, app, http.MethodPost, "/api/users/login", "", map[string]any{
		"email":    "a@b.com",
		"password": "NewPass1!",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestStatsIsPublic(t *testing.T) {
	app := newTestApp()
	registerAndLogin(t, app, "a@b.com", "Normal User")

	resp := jsonRequest(t, app, http.MethodGet, "/api/stats", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(1), body["users"])
	assert.Equal(t, float64(0), body["stores"])
	assert.Equal(t, float64(0), body["ratings"])
}

func TestUsersListHidesPasswordHash(t *testing.T) {
	app := newTestApp()
	token := registerAndLogin(t, app, "a@b.com", "Normal User")

	resp := jsonRequest(t, app, http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")

	var users []map[string]any
	require.NoError(t, json.Unmarshal(raw, &users))
	require.Len(t, users, 1)
	assert.Equal(t, "a@b.com", users[0]["email"])
}
