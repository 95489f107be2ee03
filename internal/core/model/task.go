package model

import (
	"fmt"
	"strings"
	"time"
)

// Priority ranks a task in the pending list.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// ParsePriority converts a priority name into a Priority.
func ParsePriority(value string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(value))) {
	case PriorityHigh:
		return PriorityHigh, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	default:
		return "", fmt.Errorf("unknown priority %q", value)
	}
}

// Valid reports whether the priority is one of the known levels.
func (priority Priority) Valid() bool {
	return priority == PriorityHigh || priority == PriorityMedium || priority == PriorityLow
}

// Rank orders priorities: high=0, medium=1, low=2.
func (priority Priority) Rank() int {
	switch priority {
	case PriorityHigh:
		return 0
	case PriorityLow:
		return 2
	default:
		return 1
	}
}

// Label is the select-box caption for a priority.
func (priority Priority) Label() string {
	switch priority {
	case PriorityHigh:
		return "Important!"
	case PriorityLow:
		return "When you can"
	default:
		return "Soon, dear"
	}
}

func (priority Priority) Emoji() string {
	switch priority {
	case PriorityHigh:
		return "❗"
	case PriorityLow:
		return "💝"
	default:
		return "⭐"
	}
}

// PriorityFromLabel maps a select-box caption back to its priority.
func PriorityFromLabel(label string) Priority {
	for _, priority := range Priorities {
		if priority.Label() == label {
			return priority
		}
	}
	return PriorityMedium
}

// Task is a single to-do item.
type Task struct {
	ID        string
	Text      string
	Priority  Priority
	CreatedAt time.Time
}

// Display renders the task text followed by its priority emoji.
func (task Task) Display() string {
	return task.Text + " " + task.Priority.Emoji()
}
