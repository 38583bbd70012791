package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/hudada-hub/duanju-admin-sub001/internal/apperrors"
	"github.com/hudada-hub/duanju-admin-sub001/internal/mocks/repository_mocks"
	"github.com/hudada-hub/duanju-admin-sub001/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_Register(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(repo *repository_mocks.MockUserRepository)
		wantErr error
	}{
		{
			name: "new user",
			setup: func(repo *repository_mocks.MockUserRepository) {
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, user *models.User) error {
						assert.Equal(t, "alice", user.Login)
						assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret")))
						return nil
					})
			},
		},
		{
			name: "login taken",
			setup: func(repo *repository_mocks.MockUserRepository) {
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(apperrors.ErrUserAlreadyExists)
			},
			wantErr: apperrors.ErrUserAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := repository_mocks.NewMockUserRepository(ctrl)
			tt.setup(repo)

			svc := NewUserService(repo)
			err := svc.Register(context.Background(), "alice", "secret")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestUserService_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		setup    func(repo *repository_mocks.MockUserRepository)
		wantErr  error
	}{
		{
			name:     "valid credentials",
			password: "secret",
			setup: func(repo *repository_mocks.MockUserRepository) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), "alice").Return(&models.User{Login: "alice", Password: string(hash)}, nil)
			},
		},
		{
			name:     "wrong password",
			password: "wrong",
			setup: func(repo *repository_mocks.MockUserRepository) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), "alice").Return(&models.User{Login: "alice", Password: string(hash)}, nil)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown login",
			password: "secret",
			setup: func(repo *repository_mocks.MockUserRepository) {
				repo.EXPECT().GetUserByLogin(gomock.Any(), "alice").Return(nil, apperrors.ErrUserNotFound)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := repository_mocks.NewMockUserRepository(ctrl)
			tt.setup(repo)

			svc := NewUserService(repo)
			err := svc.Authenticate(context.Background(), "alice", tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
