package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/hudada-hub/duanju-admin-sub001/internal/apperrors"
	"github.com/hudada-hub/duanju-admin-sub001/internal/mocks/service_mocks"
	"github.com/hudada-hub/duanju-admin-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(svc *service_mocks.MockUserService)
		wantStatus int
		wantToken  bool
	}{
		{
			name: "new user",
			body: `{"login":"alice","password":"secret"}`,
			setup: func(svc *service_mocks.MockUserService) {
				svc.EXPECT().Register(gomock.Any(), "alice", "secret").Return(nil)
				svc.EXPECT().GetUserByLogin(gomock.Any(), "alice").Return(&models.User{ID: 7, Login: "alice"}, nil)
			},
			wantStatus: http.StatusOK,
			wantToken:  true,
		},
		{
			name: "login taken",
			body: `{"login":"alice","password":"secret"}`,
			setup: func(svc *service_mocks.MockUserService) {
				svc.EXPECT().Register(gomock.Any(), "alice", "secret").Return(apperrors.ErrUserAlreadyExists)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "empty password",
			body:       `{"login":"alice"}`,
			setup:      func(*service_mocks.MockUserService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"login":`,
			setup:      func(*service_mocks.MockUserService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := service_mocks.NewMockUserService(ctrl)
			tt.setup(svc)

			h := NewHandler(svc, nil, nil, "secret")
			req := httptest.NewRequest(http.MethodPost, "/api/user/register", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Register(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantToken {
				var resp authResponse
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.NotEmpty(t, resp.Token)
				assert.True(t, strings.HasPrefix(rec.Header().Get("Authorization"), "Bearer "))
			}
		})
	}
}

func TestHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(svc *service_mocks.MockUserService)
		wantStatus int
	}{
		{
			name: "valid credentials",
			body: `{"login":"alice","password":"secret"}`,
			setup: func(svc *service_mocks.MockUserService) {
				svc.EXPECT().Authenticate(gomock.Any(), "alice", "secret").Return(nil)
				svc.EXPECT().GetUserByLogin(gomock.Any(), "alice").Return(&models.User{ID: 7, Login: "alice", IsAdmin: true}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "wrong password",
			body: `{"login":"alice","password":"wrong"}`,
			setup: func(svc *service_mocks.MockUserService) {
				svc.EXPECT().Authenticate(gomock.Any(), "alice", "wrong").Return(apperrors.ErrInvalidCredentials)
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty login",
			body:       `{"password":"secret"}`,
			setup:      func(*service_mocks.MockUserService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := service_mocks.NewMockUserService(ctrl)
			tt.setup(svc)

			h := NewHandler(svc, nil, nil, "secret")
			req := httptest.NewRequest(http.MethodPost, "/api/user/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.Login(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
