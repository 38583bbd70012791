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

func TestHandler_AdjustPoints(t *testing.T) {
	body := `{"user_id":7,"delta":-50,"reason":"correction"}`

	tests := []struct {
		name       string
		isAdmin    bool
		body       string
		setup      func(svc *service_mocks.MockPointsService)
		wantStatus int
	}{
		{
			name:    "admin adjusts balance",
			isAdmin: true,
			body:    body,
			setup: func(svc *service_mocks.MockPointsService) {
				svc.EXPECT().AdjustPoints(gomock.Any(), int64(7), int64(-50), int64(1), "correction").Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "non-admin is refused",
			body:       body,
			setup:      func(*service_mocks.MockPointsService) {},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "malformed json",
			isAdmin:    true,
			body:       `{"user_id":`,
			setup:      func(*service_mocks.MockPointsService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:    "zero delta",
			isAdmin: true,
			body:    `{"user_id":7,"delta":0,"reason":"noop"}`,
			setup: func(svc *service_mocks.MockPointsService) {
				svc.EXPECT().AdjustPoints(gomock.Any(), int64(7), int64(0), int64(1), "noop").Return(apperrors.ErrInvalidRequest)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:    "debit below zero",
			isAdmin: true,
			body:    body,
			setup: func(svc *service_mocks.MockPointsService) {
				svc.EXPECT().AdjustPoints(gomock.Any(), int64(7), int64(-50), int64(1), "correction").Return(apperrors.ErrInsufficientPoints)
			},
			wantStatus: http.StatusPaymentRequired,
		},
		{
			name:    "unknown user",
			isAdmin: true,
			body:    `{"user_id":999,"delta":10,"reason":"bonus"}`,
			setup: func(svc *service_mocks.MockPointsService) {
				svc.EXPECT().AdjustPoints(gomock.Any(), int64(999), int64(10), int64(1), "bonus").Return(apperrors.ErrUserNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := service_mocks.NewMockPointsService(ctrl)
			tt.setup(svc)

			h := NewHandler(nil, nil, svc, "secret")
			req := httptest.NewRequest(http.MethodPost, "/api/admin/points/adjust", strings.NewReader(tt.body))
			req = authedRequest(req, 1, tt.isAdmin)
			rec := httptest.NewRecorder()

			h.AdjustPoints(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_GetPointLogs(t *testing.T) {
	tests := []struct {
		name       string
		isAdmin    bool
		setup      func(svc *service_mocks.MockPointsService)
		wantStatus int
		wantLogs   int
	}{
		{
			name:    "admin reads the ledger",
			isAdmin: true,
			setup: func(svc *service_mocks.MockPointsService) {
				svc.EXPECT().GetPointLogs(gomock.Any(), int64(7)).Return([]models.PointLog{
					{ID: 1, UserID: 7, Delta: 100, BalanceAfter: 100, Reason: "task payout"},
					{ID: 2, UserID: 7, Delta: -30, BalanceAfter: 70, ActorID: 1, Reason: "correction"},
				}, nil)
			},
			wantStatus: http.StatusOK,
			wantLogs:   2,
		},
		{
			name:    "empty ledger",
			isAdmin: true,
			setup: func(svc *service_mocks.MockPointsService) {
				svc.EXPECT().GetPointLogs(gomock.Any(), int64(7)).Return(nil, nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:       "non-admin is refused",
			setup:      func(*service_mocks.MockPointsService) {},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := service_mocks.NewMockPointsService(ctrl)
			tt.setup(svc)

			h := NewHandler(nil, nil, svc, "secret")
			r := newTestRouter(h)

			req := httptest.NewRequest(http.MethodGet, "/api/admin/points/7/logs", nil)
			req = authedRequest(req, 1, tt.isAdmin)
			rec := httptest.NewRecorder()

			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLogs > 0 {
				var got []models.PointLog
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Len(t, got, tt.wantLogs)
			}
		})
	}
}
