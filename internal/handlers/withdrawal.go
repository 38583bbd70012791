package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/hudada-hub/duanju-admin-sub001/internal/apperrors"
	"github.com/hudada-hub/duanju-admin-sub001/internal/logger"
	"github.com/hudada-hub/duanju-admin-sub001/internal/middleware"
	"github.com/hudada-hub/duanju-admin-sub001/internal/models"
	"go.uber.org/zap"
)

// Acknowledgement literals expected by the gateway. The success token stops
// redelivery; the fail token triggers a retry.
const (
	ackSuccess = "success"
	ackFail    = "fail"
)

func (h *Handler) SubmitWithdrawal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.WithdrawalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	withdrawal, err := h.withdrawalService.Submit(r.Context(), userID, middleware.IsAdmin(r.Context()), req)
	switch {
	case err == nil:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(withdrawal); err != nil {
			logger.Log.Error("failed to encode withdrawal json", zap.Error(err))
		}
	case errors.Is(err, apperrors.ErrInvalidRequest):
		http.Error(w, "invalid withdrawal request", http.StatusBadRequest)
	case errors.Is(err, apperrors.ErrTaskNotFound):
		http.Error(w, "task not found", http.StatusNotFound)
	case errors.Is(err, apperrors.ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, apperrors.ErrTaskNotWithdrawable):
		http.Error(w, "task is not withdrawable", http.StatusUnprocessableEntity)
	case errors.Is(err, apperrors.ErrWithdrawalExists):
		http.Error(w, "withdrawal already exists for task", http.StatusConflict)
	case errors.Is(err, apperrors.ErrGatewayRejected):
		http.Error(w, "payment gateway error", http.StatusBadGateway)
		logger.Log.Error("gateway error on withdrawal submit", zap.Error(err))
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
		logger.Log.Error("submit withdrawal error", zap.Error(err))
	}
}

func (h *Handler) GetWithdrawal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid withdrawal id", http.StatusBadRequest)
		return
	}

	withdrawal, err := h.withdrawalService.GetWithdrawal(r.Context(), id)
	if errors.Is(err, apperrors.ErrWithdrawalNotFound) {
		http.Error(w, "withdrawal not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		logger.Log.Error("failed to get withdrawal", zap.Error(err))
		return
	}

	if withdrawal.UserID != userID && !middleware.IsAdmin(r.Context()) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(withdrawal); err != nil {
		logger.Log.Error("failed to encode withdrawal json", zap.Error(err))
	}
}

func (h *Handler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	withdrawals, err := h.withdrawalService.GetUserWithdrawals(r.Context(), userID)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		logger.Log.Error("failed to get withdrawals", zap.Error(err))
		return
	}

	if len(withdrawals) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(withdrawals); err != nil {
		logger.Log.Error("failed to encode withdrawals json", zap.Error(err))
	}
}

// GatewayNotify answers the gateway per its protocol: the success token once
// the settlement transition is confirmed applied, including no-op
// redeliveries. Permanently invalid notifications get the fail token with a
// 4xx so the gateway stops retrying something that can never be applied;
// transient internal failures get the fail token with a 5xx so it retries.
func (h *Handler) GatewayNotify(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(ackFail))
		return
	}

	err := h.withdrawalService.HandleNotification(r.Context(), r.PostForm)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(ackSuccess))
	case errors.Is(err, apperrors.ErrInvalidSignature),
		errors.Is(err, apperrors.ErrInvalidReference),
		errors.Is(err, apperrors.ErrWithdrawalNotFound),
		errors.Is(err, apperrors.ErrInvalidRequest):
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(ackFail))
	default:
		logger.Log.Error("gateway notification processing failed", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(ackFail))
	}
}
