package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/threadline/pos-service/internal/domain"
	sports "github.com/threadline/pos-service/internal/services/ports"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (*sports.LoginResult, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sports.LoginResult), args.Error(1)
}

func (m *mockAuthService) ValidateToken(token string) (*domain.AuthClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthClaims), args.Error(1)
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_MissingHeader(t *testing.T) {
	var called bool
	handler := Auth(new(mockAuthService))(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/1", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "AUTH_MISSING")
}

func TestAuth_MalformedHeader(t *testing.T) {
	var called bool
	handler := Auth(new(mockAuthService))(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/1", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuth_InvalidToken(t *testing.T) {
	svc := new(mockAuthService)
	svc.On("ValidateToken", "bad-token").Return(nil, domain.ErrAuthInvalid)

	var called bool
	handler := Auth(svc)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/1", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAuth_ValidTokenStoresClaims(t *testing.T) {
	claims := &domain.AuthClaims{UserID: 12, ShopID: 4, Username: "manager1", Role: domain.RoleManager}
	svc := new(mockAuthService)
	svc.On("ValidateToken", "good-token").Return(claims, nil)

	var got *domain.AuthClaims
	handler := Auth(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/1", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, int64(4), got.ShopID)
}

func withClaims(r *http.Request, claims *domain.AuthClaims) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
}

func withShopParam(r *http.Request, shopID string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("shopId", shopID)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestShopScope_MatchingShopPasses(t *testing.T) {
	var called bool
	handler := ShopScope(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/shop/4", nil)
	req = withShopParam(req, "4")
	req = withClaims(req, &domain.AuthClaims{ShopID: 4, Role: domain.RoleCashier})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestShopScope_OtherShopForbidden(t *testing.T) {
	var called bool
	handler := ShopScope(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/shop/9", nil)
	req = withShopParam(req, "9")
	req = withClaims(req, &domain.AuthClaims{ShopID: 4, Role: domain.RoleCashier})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
	assert.Contains(t, rec.Body.String(), "AUTH_SHOP_MISMATCH")
}

func TestShopScope_AdminPassesForAnyShop(t *testing.T) {
	var called bool
	handler := ShopScope(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/shop/9", nil)
	req = withShopParam(req, "9")
	req = withClaims(req, &domain.AuthClaims{ShopID: 4, Role: domain.RoleAdmin})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestShopScope_ShopIDQueryParam(t *testing.T) {
	var called bool
	handler := ShopScope(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments/5?shop_id=9", nil)
	req = withClaims(req, &domain.AuthClaims{ShopID: 4, Role: domain.RoleCashier})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

func TestShopScope_NoShopInRequestPasses(t *testing.T) {
	var called bool
	handler := ShopScope(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payments", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
