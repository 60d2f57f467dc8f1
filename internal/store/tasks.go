package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/madeengine/memoryd/internal/models"
)

// PutTask inserts a task record. A TaskRecord whose ReportID does not
// resolve to an existing cognitive record is still accepted; it simply
// becomes orphaned.
func (c *Client) PutTask(ctx context.Context, task models.TaskRecord) (models.TaskRecord, error) {
	if task.ReportID == "" {
		return models.TaskRecord{}, NewValidationError("report_id", "report_id is required")
	}
	if task.TaskName == "" {
		return models.TaskRecord{}, NewValidationError("task_name", "task_name is required")
	}
	if task.TaskID == "" {
		task.TaskID = uuid.New().String()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	const q = `
		INSERT INTO tasks (task_id, report_id, task_name, importance, required_time, available_time, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`
	_, err := c.db.ExecContext(ctx, q,
		task.TaskID, task.ReportID, task.TaskName, task.Importance, task.RequiredTime, task.AvailableTime, task.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return models.TaskRecord{}, ErrAlreadyExists
		}
		return models.TaskRecord{}, fmt.Errorf("insert task: %w", err)
	}

	return task, nil
}

// ListTasks returns every task for a report, most recently created
// first. An empty slice (not an error) is returned when there are none.
func (c *Client) ListTasks(ctx context.Context, reportID string) ([]models.TaskRecord, error) {
	const q = `
		SELECT task_id, report_id, task_name, importance, required_time, available_time, created_at
		FROM tasks WHERE report_id = $1 ORDER BY created_at DESC
	`
	rows, err := c.db.QueryContext(ctx, q, reportID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var out []models.TaskRecord
	for rows.Next() {
		var t models.TaskRecord
		if err := rows.Scan(&t.TaskID, &t.ReportID, &t.TaskName, &t.Importance, &t.RequiredTime, &t.AvailableTime, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
