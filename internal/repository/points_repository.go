package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hudada-hub/duanju-admin-sub001/internal/apperrors"
	"github.com/hudada-hub/duanju-admin-sub001/internal/logger"
	"github.com/hudada-hub/duanju-admin-sub001/internal/models"
	"go.uber.org/zap"
)

// PointsRepository is the ledger contract: every points mutation is a
// guarded balance update plus an audit row in one transaction. The row lock
// taken by the UPDATE serializes concurrent mutations of the same balance.
type PointsRepository interface {
	Adjust(ctx context.Context, userID, delta, actorID int64, reason string) error
	GetPoints(ctx context.Context, userID int64) (int64, error)
	GetLogs(ctx context.Context, userID int64) ([]models.PointLog, error)
}

type pointsRepo struct {
	db *sql.DB
}

func NewPointsRepository(db *sql.DB) PointsRepository {
	return &pointsRepo{db: db}
}

func (r *pointsRepo) Adjust(ctx context.Context, userID, delta, actorID int64, reason string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.Log.Error("rollback error", zap.Error(rbErr))
			}
		}
	}()

	if err = applyPointDelta(ctx, tx, userID, delta, actorID, reason); err != nil {
		return err
	}

	err = tx.Commit()
	return err
}

func (r *pointsRepo) GetPoints(ctx context.Context, userID int64) (int64, error) {
	var points int64
	err := r.db.QueryRowContext(ctx, `SELECT points FROM users WHERE id = $1`, userID).Scan(&points)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, apperrors.ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}
	return points, nil
}

func (r *pointsRepo) GetLogs(ctx context.Context, userID int64) ([]models.PointLog, error) {
	query := `
		SELECT id, user_id, delta, balance_after, actor_id, reason, created_at
		FROM point_logs WHERE user_id = $1 ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		logger.Log.Error("failed to query point logs", zap.Error(err))
		return nil, err
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Log.Error("failed to close rows", zap.Error(err))
		}
	}(rows)

	var logs []models.PointLog
	for rows.Next() {
		var l models.PointLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Delta, &l.BalanceAfter, &l.ActorID, &l.Reason, &l.CreatedAt); err != nil {
			logger.Log.Error("failed to scan point log", zap.Error(err))
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

// applyPointDelta mutates the balance and appends the audit row inside tx.
// The WHERE guard keeps balances non-negative; a mutation that would go
// negative matches no row and is rejected. A zero-row update against a user
// that does not exist at all is a not-found, not a balance rejection.
func applyPointDelta(ctx context.Context, tx *sql.Tx, userID, delta, actorID int64, reason string) error {
	var balance int64
	err := tx.QueryRowContext(ctx, `
		UPDATE users
		SET points = points + $1
		WHERE id = $2 AND points + $1 >= 0
		RETURNING points
	`, delta, userID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrUserNotFound
		}
		return apperrors.ErrInsufficientPoints
	}
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO point_logs (user_id, delta, balance_after, actor_id, reason)
		VALUES ($1, $2, $3, $4, $5)
	`, userID, delta, balance, actorID, reason)
	return err
}
