package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hudada-hub/duanju-admin-sub001/internal/apperrors"
	"github.com/hudada-hub/duanju-admin-sub001/internal/logger"
	"github.com/hudada-hub/duanju-admin-sub001/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

type WithdrawalRepository interface {
	CreateProcessing(ctx context.Context, w *models.Withdrawal) (int64, error)
	AttachGatewayResult(ctx context.Context, id int64, orderID string, fee, actual decimal.Decimal) error
	Settle(ctx context.Context, taskID int64, target models.WithdrawalStatus, raw string) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Withdrawal, error)
	GetByTaskID(ctx context.Context, taskID int64) (*models.Withdrawal, error)
	GetByUserID(ctx context.Context, userID int64) ([]models.Withdrawal, error)
	GetStaleProcessing(ctx context.Context, olderThan time.Time) ([]models.Withdrawal, error)
}

type withdrawalRepo struct {
	db *sql.DB
}

func NewWithdrawalRepository(db *sql.DB) WithdrawalRepository {
	return &withdrawalRepo{db: db}
}

// CreateProcessing inserts the PROCESSING record and advances the task to
// WITHDRAW_REQUESTED in one transaction. The unique constraint on task_id is
// the mutual-exclusion primitive: among racing submissions for the same task
// exactly one insert succeeds, the rest get ErrWithdrawalExists.
func (r *withdrawalRepo) CreateProcessing(ctx context.Context, w *models.Withdrawal) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.Log.Error("rollback error", zap.Error(rbErr))
			}
		}
	}()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO withdrawals (task_id, user_id, amount, account_type, account_info, reference, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, w.TaskID, w.UserID, w.Amount, w.AccountType, w.AccountInfo, w.Reference, w.Status).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			err = apperrors.ErrWithdrawalExists
		}
		return 0, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE tasks SET status = $1, updated_at = now() WHERE id = $2
	`, models.TaskStatusWithdrawRequested, w.TaskID)
	if err != nil {
		return 0, err
	}

	err = tx.Commit()
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *withdrawalRepo) AttachGatewayResult(ctx context.Context, id int64, orderID string, fee, actual decimal.Decimal) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE withdrawals
		SET gateway_order_id = $1, fee = $2, actual_amount = $3, updated_at = now()
		WHERE id = $4
	`, orderID, fee, actual, id)
	return err
}

// Settle applies a gateway outcome through a compare-and-swap on the record
// status: the update only matches while the record is still PROCESSING. A
// redelivered notification finds zero matching rows and commits nothing,
// which is the idempotency guarantee. When the swap wins and the outcome is
// SUCCESS, the task advances to SETTLED and the task's points are credited to
// the assignee through the ledger, all in the same transaction.
func (r *withdrawalRepo) Settle(ctx context.Context, taskID int64, target models.WithdrawalStatus, raw string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				logger.Log.Error("rollback error", zap.Error(rbErr))
			}
		}
	}()

	res, err := tx.ExecContext(ctx, `
		UPDATE withdrawals
		SET status = $1, raw_notify = $2, updated_at = now()
		WHERE task_id = $3 AND status = $4
	`, target, raw, taskID, models.WithdrawalStatusProcessing)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	if rows == 0 {
		// Either the record is already terminal (a redelivery) or it never
		// existed. Only the latter is an error.
		var status models.WithdrawalStatus
		err = tx.QueryRowContext(ctx, `SELECT status FROM withdrawals WHERE task_id = $1`, taskID).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			err = apperrors.ErrWithdrawalNotFound
			return false, err
		}
		if err != nil {
			return false, err
		}
		if !status.Terminal() {
			err = fmt.Errorf("withdrawal for task %d in unexpected status %s", taskID, status)
			return false, err
		}
		err = tx.Commit()
		return false, err
	}

	taskStatus := models.TaskStatusSettleFailed
	if target == models.WithdrawalStatusSuccess {
		taskStatus = models.TaskStatusSettled
	}

	var points, assigneeID int64
	err = tx.QueryRowContext(ctx, `
		UPDATE tasks SET status = $1, updated_at = now() WHERE id = $2
		RETURNING points, assignee_id
	`, taskStatus, taskID).Scan(&points, &assigneeID)
	if err != nil {
		return false, err
	}

	if target == models.WithdrawalStatusSuccess && points > 0 {
		if err = applyPointDelta(ctx, tx, assigneeID, points, 0, "task payout"); err != nil {
			return false, err
		}
	}

	err = tx.Commit()
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *withdrawalRepo) GetByID(ctx context.Context, id int64) (*models.Withdrawal, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *withdrawalRepo) GetByTaskID(ctx context.Context, taskID int64) (*models.Withdrawal, error) {
	return r.getOne(ctx, `WHERE task_id = $1`, taskID)
}

const withdrawalColumns = `
	SELECT id, task_id, user_id, amount, fee, actual_amount, account_type, account_info,
	       reference, status, gateway_order_id, raw_notify, created_at, updated_at
	FROM withdrawals
`

func (r *withdrawalRepo) getOne(ctx context.Context, where string, arg any) (*models.Withdrawal, error) {
	var w models.Withdrawal
	err := r.db.QueryRowContext(ctx, withdrawalColumns+where, arg).Scan(
		&w.ID, &w.TaskID, &w.UserID, &w.Amount, &w.Fee, &w.ActualAmount,
		&w.AccountType, &w.AccountInfo, &w.Reference, &w.Status,
		&w.GatewayOrderID, &w.RawNotify, &w.CreatedAt, &w.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrWithdrawalNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *withdrawalRepo) GetByUserID(ctx context.Context, userID int64) ([]models.Withdrawal, error) {
	return r.getMany(ctx, withdrawalColumns+`WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *withdrawalRepo) GetStaleProcessing(ctx context.Context, olderThan time.Time) ([]models.Withdrawal, error) {
	return r.getMany(ctx, withdrawalColumns+`WHERE status = 'PROCESSING' AND created_at < $1 ORDER BY created_at`, olderThan)
}

func (r *withdrawalRepo) getMany(ctx context.Context, query string, arg any) ([]models.Withdrawal, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		logger.Log.Error("failed to query withdrawals", zap.Error(err))
		return nil, err
	}
	defer func(rows *sql.Rows) {
		if err := rows.Close(); err != nil {
			logger.Log.Error("failed to close rows", zap.Error(err))
		}
	}(rows)

	var withdrawals []models.Withdrawal
	for rows.Next() {
		var w models.Withdrawal
		if err := rows.Scan(
			&w.ID, &w.TaskID, &w.UserID, &w.Amount, &w.Fee, &w.ActualAmount,
			&w.AccountType, &w.AccountInfo, &w.Reference, &w.Status,
			&w.GatewayOrderID, &w.RawNotify, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			logger.Log.Error("failed to scan withdrawal", zap.Error(err))
			return nil, err
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, rows.Err()
}

// isUniqueViolation recognizes 23505 from both drivers: pgx serves the
// application, lib/pq the repository integration tests.
func isUniqueViolation(err error) bool {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) && pgxErr.Code == uniqueViolation {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
