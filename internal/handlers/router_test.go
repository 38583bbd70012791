package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/hudada-hub/duanju-admin-sub001/internal/mocks/service_mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter mounts the parameterized routes without the auth middleware
// so handler tests can inject identity straight into the context.
func newTestRouter(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/api/withdrawals/{id}", h.GetWithdrawal)
	r.Get("/api/admin/points/{userID}/logs", h.GetPointLogs)
	return r
}

func signTestToken(t *testing.T, secretKey string, userID int64, isAdmin bool) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secretKey))
	require.NoError(t, err)
	return signed
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	withdrawalSvc := service_mocks.NewMockWithdrawalService(ctrl)
	withdrawalSvc.EXPECT().HandleNotification(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	withdrawalSvc.EXPECT().GetUserWithdrawals(gomock.Any(), int64(7)).Return(nil, nil).AnyTimes()

	h := NewHandler(nil, withdrawalSvc, nil, "secret")
	router := NewRouter(h, "secret")

	srv := httptest.NewServer(router)
	defer srv.Close()

	t.Run("unknown path", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/unknown")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("wrong method", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/user/register")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("protected route requires a token", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/withdrawals")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("protected route accepts a signed token", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/withdrawals", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, "secret", 7, false))

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("token signed with another key is refused", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/withdrawals", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+signTestToken(t, "other", 7, false))

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("gateway callback needs no token", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/api/gateway/notify", "application/x-www-form-urlencoded",
			strings.NewReader("trade_status=SUCCESS"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}
