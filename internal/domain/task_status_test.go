package domain

import (
	"errors"
	"testing"
)

func TestParseTaskStatus(t *testing.T) {
	t.Parallel()

	valid := map[string]TaskStatus{
		"Pending":     TaskStatusPending,
		"pending":     TaskStatusPending,
		"InProgress":  TaskStatusInProgress,
		"in_progress": TaskStatusInProgress,
		"IN_PROGRESS": TaskStatusInProgress,
		"completed":   TaskStatusCompleted,
		"Cancelled":   TaskStatusCancelled,
		"1":           TaskStatusPending,
		"2":           TaskStatusInProgress,
		"3":           TaskStatusCompleted,
		" 4 ":         TaskStatusCancelled,
	}

	for input, expected := range valid {
		got, err := ParseTaskStatus(input)
		if err != nil {
			t.Errorf("input %q: expected no error, got %v", input, err)
			continue
		}
		if got != expected {
			t.Errorf("input %q: expected %s, got %s", input, expected, got)
		}
	}

	for _, input := range []string{"", "0", "5", "-1", "done", "canceled"} {
		_, err := ParseTaskStatus(input)
		if !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("input %q: expected ErrInvalidStatus, got %v", input, err)
		}
	}
}

func TestTaskStatusIsValid(t *testing.T) {
	t.Parallel()

	for _, s := range AllTaskStatuses {
		if !s.IsValid() {
			t.Errorf("Expected %s to be valid", s)
		}
	}
	for _, s := range []TaskStatus{0, 5, -3} {
		if s.IsValid() {
			t.Errorf("Expected %d to be invalid", int(s))
		}
	}
	if TaskStatus(9).String() != "TaskStatus(9)" {
		t.Errorf("Unexpected string for unknown status: %s", TaskStatus(9).String())
	}
}
