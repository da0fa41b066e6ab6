package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cwrs/internal/domain/entity"
	"cwrs/internal/domain/service/mocks"
	"cwrs/internal/infrastructure/ratelimit"
	apperrors "cwrs/pkg/errors"
)

func ok(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func newContext(header string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr.Code
}

func TestAuthenticate(t *testing.T) {
	ctrl := gomock.NewController(t)
	auth := mocks.NewMockAuthProvider(ctrl)
	m := NewAuthMiddleware(auth)

	c, _ := newContext("")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, m.Authenticate(ok)(c)))

	c, _ = newContext("Token abc")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, m.Authenticate(ok)(c)))

	auth.EXPECT().VerifyToken(gomock.Any(), "bad").Return("", errors.New("expired"))
	c, _ = newContext("Bearer bad")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, m.Authenticate(ok)(c)))

	auth.EXPECT().VerifyToken(gomock.Any(), "good").Return("uid-1", nil)
	c, rec := newContext("Bearer good")
	require.NoError(t, m.Authenticate(ok)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "uid-1", c.Get("uid"))
}

type roleUsers struct {
	users map[string]*entity.User
}

func (r roleUsers) Create(context.Context, *entity.User) error { return nil }
func (r roleUsers) GetByID(ctx context.Context, _ entity.Role, id string) (*entity.User, error) {
	return r.FindByID(ctx, id)
}
func (r roleUsers) FindByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("User", nil)
}
func (r roleUsers) FindByUsername(context.Context, string) (*entity.User, error) {
	return nil, apperrors.NotFound("User", nil)
}
func (r roleUsers) ListByRole(context.Context, entity.Role) ([]*entity.User, error) { return nil, nil }
func (r roleUsers) Update(context.Context, *entity.User) error                    { return nil }

func TestRoleMiddleware(t *testing.T) {
	m := NewRoleMiddleware(roleUsers{users: map[string]*entity.User{
		"s1": {ID: "s1", Role: entity.RoleSeller},
		"b1": {ID: "b1", Role: entity.RoleBuyer},
	}})

	tests := []struct {
		name string
		uid  string
		mw   echo.MiddlewareFunc
		code int
	}{
		{"seller on seller route", "s1", m.SellerOnly, http.StatusOK},
		{"buyer on seller route", "b1", m.SellerOnly, http.StatusForbidden},
		{"buyer on buyer route", "b1", m.BuyerOnly, http.StatusOK},
		{"unregistered", "x", m.BuyerOnly, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext("")
			c.Set("uid", tt.uid)
			err := tt.mw(ok)(c)
			if tt.code == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, http.StatusOK, rec.Code)
				return
			}
			assert.Equal(t, tt.code, statusOf(t, err))
		})
	}

	c, _ := newContext("")
	assert.Equal(t, http.StatusUnauthorized, statusOf(t, m.SellerOnly(ok)(c)))
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.NewRateLimiter(map[string]ratelimit.Policy{
		"assistant": {Burst: 1, Every: time.Minute},
	})
	h := RateLimit(limiter, "assistant")(ok)

	c, rec := newContext("")
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newContext("")
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}
