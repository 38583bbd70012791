package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/hudada-hub/duanju-admin-sub001/internal/apperrors"
	"github.com/hudada-hub/duanju-admin-sub001/internal/mocks/repository_mocks"
	"github.com/hudada-hub/duanju-admin-sub001/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestPointsService_AdjustPoints(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		delta   int64
		actorID int64
		reason  string
		setup   func(repo *repository_mocks.MockPointsRepository)
		wantErr error
	}{
		{
			name:    "credit",
			userID:  7,
			delta:   50,
			actorID: 1,
			reason:  "bonus",
			setup: func(repo *repository_mocks.MockPointsRepository) {
				repo.EXPECT().Adjust(gomock.Any(), int64(7), int64(50), int64(1), "bonus").Return(nil)
			},
		},
		{
			name:    "debit below zero",
			userID:  7,
			delta:   -200,
			actorID: 1,
			reason:  "penalty",
			setup: func(repo *repository_mocks.MockPointsRepository) {
				repo.EXPECT().Adjust(gomock.Any(), int64(7), int64(-200), int64(1), "penalty").Return(apperrors.ErrInsufficientPoints)
			},
			wantErr: apperrors.ErrInsufficientPoints,
		},
		{
			name:    "zero delta",
			userID:  7,
			delta:   0,
			actorID: 1,
			reason:  "noop",
			setup:   func(*repository_mocks.MockPointsRepository) {},
			wantErr: apperrors.ErrInvalidRequest,
		},
		{
			name:    "empty reason",
			userID:  7,
			delta:   10,
			actorID: 1,
			setup:   func(*repository_mocks.MockPointsRepository) {},
			wantErr: apperrors.ErrInvalidRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := repository_mocks.NewMockPointsRepository(ctrl)
			tt.setup(repo)

			svc := NewPointsService(repo)
			err := svc.AdjustPoints(context.Background(), tt.userID, tt.delta, tt.actorID, tt.reason)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPointsService_GetPointLogs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository_mocks.NewMockPointsRepository(ctrl)
	repo.EXPECT().GetLogs(gomock.Any(), int64(7)).Return([]models.PointLog{
		{ID: 1, UserID: 7, Delta: 100, BalanceAfter: 100, Reason: "task payout"},
	}, nil)

	svc := NewPointsService(repo)
	logs, err := svc.GetPointLogs(context.Background(), 7)
	assert.NoError(t, err)
	assert.Len(t, logs, 1)
	assert.Equal(t, "task payout", logs[0].Reason)
}
