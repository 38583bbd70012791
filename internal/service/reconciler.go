package service

import (
	"context"
	"time"

	"github.com/hudada-hub/duanju-admin-sub001/internal/gateway"
	"github.com/hudada-hub/duanju-admin-sub001/internal/logger"
	"github.com/hudada-hub/duanju-admin-sub001/internal/models"
	"github.com/hudada-hub/duanju-admin-sub001/internal/repository"
	"go.uber.org/zap"
)

// Reconciler sweeps withdrawals stuck in PROCESSING past the staleness
// window and settles them from the gateway's ground truth. A record goes
// stale when the submission call or the callback was lost; the gateway is
// authoritative for what actually happened to the money.
type Reconciler struct {
	withdrawals   repository.WithdrawalRepository
	gatewayClient gateway.ClientInterface
	pollInterval  time.Duration
	staleness     time.Duration
}

func NewReconciler(withdrawals repository.WithdrawalRepository, client gateway.ClientInterface, interval, staleness time.Duration) *Reconciler {
	return &Reconciler{
		withdrawals:   withdrawals,
		gatewayClient: client,
		pollInterval:  interval,
		staleness:     staleness,
	}
}

func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.reconcileStale(ctx)
		}
	}
}

func (r *Reconciler) reconcileStale(ctx context.Context) {
	stale, err := r.withdrawals.GetStaleProcessing(ctx, time.Now().Add(-r.staleness))
	if err != nil {
		logger.Log.Error("failed to load stale withdrawals", zap.Error(err))
		return
	}

	for _, w := range stale {
		result, err := r.gatewayClient.QueryTransfer(ctx, w.Reference)
		if err != nil {
			logger.Log.Warn("failed to query gateway for stale withdrawal",
				zap.Int64("withdrawal_id", w.ID), zap.Error(err))
			continue
		}
		if result == nil {
			// Still in flight at the gateway.
			continue
		}

		var target models.WithdrawalStatus
		switch result.Status {
		case gateway.TradeStatusSuccess:
			target = models.WithdrawalStatusSuccess
		case gateway.TradeStatusFailed:
			target = models.WithdrawalStatusFailed
		default:
			continue
		}

		applied, err := r.withdrawals.Settle(ctx, w.TaskID, target, "reconciled from gateway query: "+string(result.Status))
		if err != nil {
			logger.Log.Error("failed to settle stale withdrawal",
				zap.Int64("withdrawal_id", w.ID), zap.Error(err))
			continue
		}
		if applied {
			logger.Log.Info("reconciled stale withdrawal",
				zap.Int64("withdrawal_id", w.ID), zap.String("status", string(target)))
		}
	}
}
