package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// TaskStatus represents where a task is in its lifecycle.
// The numeric values are part of the public API contract.
type TaskStatus int

// Possible task status values
const (
	TaskStatusPending    TaskStatus = 1
	TaskStatusInProgress TaskStatus = 2
	TaskStatusCompleted  TaskStatus = 3
	TaskStatusCancelled  TaskStatus = 4
)

// AllTaskStatuses lists every valid status in declaration order.
var AllTaskStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusCancelled,
}

// String returns the canonical name of the status, which is also the value
// stored in the database.
func (s TaskStatus) String() string {
	switch s {
	case TaskStatusPending:
		return "Pending"
	case TaskStatusInProgress:
		return "InProgress"
	case TaskStatusCompleted:
		return "Completed"
	case TaskStatusCancelled:
		return "Cancelled"
	default:
		return fmt.Sprintf("TaskStatus(%d)", int(s))
	}
}

// IsValid reports whether s is one of the known statuses.
func (s TaskStatus) IsValid() bool {
	return s >= TaskStatusPending && s <= TaskStatusCancelled
}

// ParseTaskStatus converts a status name or numeric value into a TaskStatus.
// Names are matched case-insensitively and may use snake_case
// ("in_progress") or the canonical form ("InProgress").
func ParseTaskStatus(raw string) (TaskStatus, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, fmt.Errorf("%w: empty value", ErrInvalidStatus)
	}

	if n, err := strconv.Atoi(value); err == nil {
		status := TaskStatus(n)
		if !status.IsValid() {
			return 0, fmt.Errorf("%w: %d", ErrInvalidStatus, n)
		}
		return status, nil
	}

	normalized := strings.ToLower(strings.ReplaceAll(value, "_", ""))
	for _, status := range AllTaskStatuses {
		if strings.ToLower(status.String()) == normalized {
			return status, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}
