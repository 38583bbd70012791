package models

import "time"

// PointLog is one row of the append-only points audit trail. Every balance
// change goes through the ledger and leaves exactly one of these.
type PointLog struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"user_id" db:"user_id"`
	Delta        int64     `json:"delta" db:"delta"`
	BalanceAfter int64     `json:"balance_after" db:"balance_after"`
	ActorID      int64     `json:"actor_id" db:"actor_id"`
	Reason       string    `json:"reason" db:"reason"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
