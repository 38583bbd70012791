package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/hudada-hub/duanju-admin-sub001/internal/apperrors"
	"github.com/hudada-hub/duanju-admin-sub001/internal/models"
)

type TaskRepository interface {
	GetTask(ctx context.Context, id int64) (*models.Task, error)
}

type taskRepo struct {
	db *sql.DB
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepo{db: db}
}

func (r *taskRepo) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	query := `
		SELECT id, title, points, requires_admin_only, status, assignee_id, created_at, updated_at
		FROM tasks WHERE id = $1
	`
	var task models.Task
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&task.ID, &task.Title, &task.Points, &task.RequiresAdminOnly,
		&task.Status, &task.AssigneeID, &task.CreatedAt, &task.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}
