package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WithdrawalStatus string

const (
	WithdrawalStatusProcessing WithdrawalStatus = "PROCESSING"
	WithdrawalStatusSuccess    WithdrawalStatus = "SUCCESS"
	WithdrawalStatusFailed     WithdrawalStatus = "FAILED"
	WithdrawalStatusClosed     WithdrawalStatus = "CLOSED"
)

// Terminal reports whether the status has no outgoing transitions.
func (s WithdrawalStatus) Terminal() bool {
	return s == WithdrawalStatusSuccess || s == WithdrawalStatusFailed || s == WithdrawalStatusClosed
}

type Withdrawal struct {
	ID             int64            `json:"id" db:"id"`
	TaskID         int64            `json:"task_id" db:"task_id"`
	UserID         int64            `json:"-" db:"user_id"`
	Amount         decimal.Decimal  `json:"amount" db:"amount"`
	Fee            decimal.Decimal  `json:"fee" db:"fee"`
	ActualAmount   decimal.Decimal  `json:"actual_amount" db:"actual_amount"`
	AccountType    string           `json:"account_type" db:"account_type"`
	AccountInfo    string           `json:"account_info" db:"account_info"`
	Reference      string           `json:"-" db:"reference"`
	Status         WithdrawalStatus `json:"status" db:"status"`
	GatewayOrderID string           `json:"gateway_order_id,omitempty" db:"gateway_order_id"`
	RawNotify      string           `json:"-" db:"raw_notify"`
	CreatedAt      time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at" db:"updated_at"`
}

type WithdrawalRequest struct {
	TaskID      int64           `json:"task_id" validate:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount"`
	AccountType string          `json:"account_type" validate:"required"`
	AccountInfo string          `json:"account_info" validate:"required"`
}
