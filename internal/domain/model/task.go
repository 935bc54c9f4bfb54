package model

import (
	"errors"
	"strings"
	"time"
)

// Task is a single task list entry. OwnerID is nil for legacy entries
// whose owner account has been deleted or reaped.
type Task struct {
	ID        int64     `db:"id"           json:"id"`
	Content   string    `db:"content"      json:"content"`
	OwnerID   *string   `db:"owner_id"     json:"owner_id,omitempty"`
	Completed bool      `db:"is_completed" json:"completed"`
	CreatedAt time.Time `db:"created_at"   json:"created_at"`
}

// TaskWithAccess decorates a task with the server-computed manage hint for
// the requesting identity. The hint is presentation-only; mutation
// endpoints re-evaluate the authorization predicate themselves.
type TaskWithAccess struct {
	Task
	CanManage bool `json:"can_manage"`
}

// CreateTaskParams carries inputs for inserting a new task.
type CreateTaskParams struct {
	Content string
	OwnerID *string
}

// Validate checks structural requirements prior to insert.
func (p *CreateTaskParams) Validate() error {
	if strings.TrimSpace(p.Content) == "" {
		return errors.New("content is required")
	}
	return nil
}
