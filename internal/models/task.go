package models

import "time"

type Task struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Details     string    `json:"details"`
	AssignedTo  string    `json:"assigned_to"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	Comments    []Comment `json:"comments"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}
