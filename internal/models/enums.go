package models

import (
	"errors"
	"strings"
)

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

type Status string

const (
	StatusBacklog  Status = "BACKLOG"
	StatusTodo     Status = "TODO"
	StatusDoing    Status = "DOING"
	StatusDone     Status = "DONE"
	StatusArchived Status = "ARCHIVED"
)

var (
	ErrInvalidPriority = errors.New("invalid priority")
	ErrInvalidStatus   = errors.New("invalid status")
)

// AllStatuses lists every status in workflow order. Reporting relies on this
// order for its buckets.
func AllStatuses() []Status {
	return []Status{StatusBacklog, StatusTodo, StatusDoing, StatusDone, StatusArchived}
}

// ParsePriority folds case and rejects anything outside the enum.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToUpper(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return p, nil
	default:
		return "", ErrInvalidPriority
	}
}

// ParseStatus folds case and rejects anything outside the enum.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusBacklog, StatusTodo, StatusDoing, StatusDone, StatusArchived:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

// PriorityOrDefault substitutes LOW for anything it cannot parse. Project
// creation accepts sloppy input on purpose, unlike task edits which go
// through ParsePriority and reject it.
func PriorityOrDefault(s string) Priority {
	p, err := ParsePriority(s)
	if err != nil {
		return PriorityLow
	}
	return p
}

// StatusOrDefault substitutes BACKLOG for anything it cannot parse.
func StatusOrDefault(s string) Status {
	st, err := ParseStatus(s)
	if err != nil {
		return StatusBacklog
	}
	return st
}
