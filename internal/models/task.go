package models

import "time"

type TaskStatus string

const (
	TaskStatusPending           TaskStatus = "PENDING"
	TaskStatusInProgress        TaskStatus = "IN_PROGRESS"
	TaskStatusSubmitted         TaskStatus = "SUBMITTED"
	TaskStatusAuthorConfirmed   TaskStatus = "AUTHOR_CONFIRMED"
	TaskStatusAdminConfirmed    TaskStatus = "ADMIN_CONFIRMED"
	TaskStatusWithdrawRequested TaskStatus = "WITHDRAW_REQUESTED"
	TaskStatusSettled           TaskStatus = "SETTLED"
	TaskStatusSettleFailed      TaskStatus = "SETTLE_FAILED"
)

type Task struct {
	ID                int64      `json:"id" db:"id"`
	Title             string     `json:"title" db:"title"`
	Points            int64      `json:"points" db:"points"`
	RequiresAdminOnly bool       `json:"requires_admin_only" db:"requires_admin_only"`
	Status            TaskStatus `json:"status" db:"status"`
	AssigneeID        int64      `json:"-" db:"assignee_id"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at" db:"updated_at"`
}

// CanWithdraw reports whether the task is in a payable state. Admin-only
// tasks become payable after admin confirmation, every other task after the
// author confirms. No other status is eligible.
func (t *Task) CanWithdraw() bool {
	if t.RequiresAdminOnly {
		return t.Status == TaskStatusAdminConfirmed
	}
	return t.Status == TaskStatusAuthorConfirmed
}
