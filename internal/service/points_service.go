package service

import (
	"context"

	"github.com/hudada-hub/duanju-admin-sub001/internal/apperrors"
	"github.com/hudada-hub/duanju-admin-sub001/internal/models"
	"github.com/hudada-hub/duanju-admin-sub001/internal/repository"
)

type PointsService interface {
	AdjustPoints(ctx context.Context, userID, delta, actorID int64, reason string) error
	GetPoints(ctx context.Context, userID int64) (int64, error)
	GetPointLogs(ctx context.Context, userID int64) ([]models.PointLog, error)
}

type pointsService struct {
	repo repository.PointsRepository
}

func NewPointsService(repo repository.PointsRepository) PointsService {
	return &pointsService{repo: repo}
}

func (s *pointsService) AdjustPoints(ctx context.Context, userID, delta, actorID int64, reason string) error {
	if delta == 0 || reason == "" {
		return apperrors.ErrInvalidRequest
	}
	return s.repo.Adjust(ctx, userID, delta, actorID, reason)
}

func (s *pointsService) GetPoints(ctx context.Context, userID int64) (int64, error) {
	return s.repo.GetPoints(ctx, userID)
}

func (s *pointsService) GetPointLogs(ctx context.Context, userID int64) ([]models.PointLog, error) {
	return s.repo.GetLogs(ctx, userID)
}
