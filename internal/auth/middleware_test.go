package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"foodshare/internal/model"
)

// MockTokenStore is a mock implementation of TokenStoreInterface.
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) RevokeAccessToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsAccessTokenRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func newProtectedServer(jwtService *JWTService, tokens TokenStoreInterface, roles ...model.Role) *echo.Echo {
	e := echo.New()
	g := e.Group("", Middleware(jwtService, tokens), RequireRole(roles...))
	g.GET("/whoami", func(c echo.Context) error {
		claims, _ := ClaimsFromContext(c)
		return c.String(http.StatusOK, string(claims.Role))
	})
	return e
}

func doRequest(e *echo.Echo, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware(t *testing.T) {
	jwtService := NewJWTService("test-secret", time.Hour)
	ngoToken, err := jwtService.GenerateAccessToken(uuid.New(), model.RoleNGO)
	require.NoError(t, err)
	restaurantToken, err := jwtService.GenerateAccessToken(uuid.New(), model.RoleRestaurant)
	require.NoError(t, err)

	tests := []struct {
		name       string
		token      string
		revoked    bool
		wantStatus int
	}{
		{"missing token", "", false, http.StatusUnauthorized},
		{"malformed token", "abc.def.ghi", false, http.StatusUnauthorized},
		{"matching role", ngoToken, false, http.StatusOK},
		{"wrong role", restaurantToken, false, http.StatusForbidden},
		{"revoked token", ngoToken, true, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := new(MockTokenStore)
			tokens.On("IsAccessTokenRevoked", mock.Anything, mock.Anything).Return(tt.revoked, nil).Maybe()

			rec := doRequest(newProtectedServer(jwtService, tokens, model.RoleNGO), tt.token)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestTokenStore_NilCacheNeverRevokes(t *testing.T) {
	store := NewTokenStore(nil)
	ctx := context.Background()

	require.NoError(t, store.RevokeAccessToken(ctx, "jti", time.Minute))
	revoked, err := store.IsAccessTokenRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}
