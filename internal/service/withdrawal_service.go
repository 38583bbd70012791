package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"
	"github.com/hudada-hub/duanju-admin-sub001/internal/apperrors"
	"github.com/hudada-hub/duanju-admin-sub001/internal/gateway"
	"github.com/hudada-hub/duanju-admin-sub001/internal/logger"
	"github.com/hudada-hub/duanju-admin-sub001/internal/models"
	"github.com/hudada-hub/duanju-admin-sub001/internal/repository"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type WithdrawalService interface {
	Submit(ctx context.Context, callerID int64, isAdmin bool, req models.WithdrawalRequest) (*models.Withdrawal, error)
	HandleNotification(ctx context.Context, values url.Values) error
	GetWithdrawal(ctx context.Context, id int64) (*models.Withdrawal, error)
	GetUserWithdrawals(ctx context.Context, userID int64) ([]models.Withdrawal, error)
}

type withdrawalService struct {
	tasks       repository.TaskRepository
	withdrawals repository.WithdrawalRepository
	gateway     gateway.ClientInterface
	verifier    *gateway.SignatureVerifier
	validate    *validator.Validate
}

func NewWithdrawalService(
	tasks repository.TaskRepository,
	withdrawals repository.WithdrawalRepository,
	client gateway.ClientInterface,
	verifier *gateway.SignatureVerifier,
) WithdrawalService {
	return &withdrawalService{
		tasks:       tasks,
		withdrawals: withdrawals,
		gateway:     client,
		verifier:    verifier,
		validate:    validator.New(),
	}
}

// Submit runs the eligibility checks, persists the PROCESSING record and
// only then calls the gateway. The record is durable before the irreversible
// external call, so a crash or transport failure mid-call leaves a
// recoverable PROCESSING row for the reconciler, never a lost payout.
func (s *withdrawalService) Submit(ctx context.Context, callerID int64, isAdmin bool, req models.WithdrawalRequest) (*models.Withdrawal, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.ErrInvalidRequest
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidRequest
	}

	task, err := s.tasks.GetTask(ctx, req.TaskID)
	if err != nil {
		return nil, err
	}

	if task.AssigneeID != callerID && !isAdmin {
		return nil, apperrors.ErrForbidden
	}

	// A task carries at most one withdrawal attempt, terminal or not. A
	// resubmission is a conflict even after a failed first attempt; the
	// unique constraint in CreateProcessing backstops the live race.
	if _, err := s.withdrawals.GetByTaskID(ctx, task.ID); err == nil {
		return nil, apperrors.ErrWithdrawalExists
	} else if !errors.Is(err, apperrors.ErrWithdrawalNotFound) {
		return nil, err
	}

	if !task.CanWithdraw() {
		return nil, apperrors.ErrTaskNotWithdrawable
	}

	if req.Amount.GreaterThan(decimal.NewFromInt(task.Points)) {
		return nil, apperrors.ErrInvalidRequest
	}

	w := &models.Withdrawal{
		TaskID:      task.ID,
		UserID:      task.AssigneeID,
		Amount:      req.Amount,
		AccountType: req.AccountType,
		AccountInfo: req.AccountInfo,
		Reference:   gateway.NewReference(task.ID),
		Status:      models.WithdrawalStatusProcessing,
	}

	id, err := s.withdrawals.CreateProcessing(ctx, w)
	if err != nil {
		return nil, err
	}
	w.ID = id

	result, err := s.gateway.Transfer(ctx, gateway.TransferRequest{
		Reference:   w.Reference,
		Amount:      w.Amount,
		AccountType: w.AccountType,
		AccountInfo: w.AccountInfo,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrGatewayRejected) {
			// Definitive business rejection: the transfer will never happen,
			// settle the record as FAILED right away.
			if _, settleErr := s.withdrawals.Settle(ctx, task.ID, models.WithdrawalStatusFailed, err.Error()); settleErr != nil {
				logger.Log.Error("failed to mark withdrawal failed",
					zap.Int64("task_id", task.ID), zap.Error(settleErr))
			}
			return nil, err
		}
		// Transport-level failure: the gateway may or may not have accepted
		// the transfer. Leave PROCESSING for reconciliation.
		logger.Log.Warn("gateway transfer did not complete, leaving withdrawal processing",
			zap.Int64("task_id", task.ID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrGatewayRejected, err)
	}

	if err := s.withdrawals.AttachGatewayResult(ctx, id, result.OrderID, result.Fee, result.ActualAmount); err != nil {
		logger.Log.Error("failed to attach gateway result", zap.Int64("withdrawal_id", id), zap.Error(err))
	}

	w.GatewayOrderID = result.OrderID
	w.Fee = result.Fee
	w.ActualAmount = result.ActualAmount
	return w, nil
}

// HandleNotification processes an asynchronous gateway callback. A verified
// notification settles the withdrawal through the status compare-and-swap;
// a redelivery of an already settled notification is a silent no-op.
func (s *withdrawalService) HandleNotification(ctx context.Context, values url.Values) error {
	n := gateway.ParseNotification(values)

	if err := s.verifier.Verify(n); err != nil {
		logger.Log.Error("gateway notification failed signature verification",
			zap.Error(err), zap.Any("payload", n.Fields))
		return err
	}

	ref, err := n.Reference()
	if err != nil {
		logger.Log.Error("gateway notification carries no business reference",
			zap.Error(err), zap.String("biz_content", n.BizContent))
		return err
	}

	taskID, err := gateway.DecodeReference(ref)
	if err != nil {
		logger.Log.Error("gateway notification reference does not decode",
			zap.Error(err), zap.String("reference", ref))
		return err
	}

	var target models.WithdrawalStatus
	switch n.TradeStatus {
	case gateway.TradeStatusSuccess:
		target = models.WithdrawalStatusSuccess
	case gateway.TradeStatusFailed:
		target = models.WithdrawalStatusFailed
	default:
		logger.Log.Error("gateway notification carries unknown trade status",
			zap.String("trade_status", string(n.TradeStatus)), zap.Int64("task_id", taskID))
		return apperrors.ErrInvalidRequest
	}

	applied, err := s.withdrawals.Settle(ctx, taskID, target, values.Encode())
	if err != nil {
		return err
	}
	if !applied {
		logger.Log.Info("duplicate gateway notification, settlement already terminal",
			zap.Int64("task_id", taskID), zap.String("trade_status", string(n.TradeStatus)))
	}
	return nil
}

func (s *withdrawalService) GetWithdrawal(ctx context.Context, id int64) (*models.Withdrawal, error) {
	return s.withdrawals.GetByID(ctx, id)
}

func (s *withdrawalService) GetUserWithdrawals(ctx context.Context, userID int64) ([]models.Withdrawal, error) {
	return s.withdrawals.GetByUserID(ctx, userID)
}
