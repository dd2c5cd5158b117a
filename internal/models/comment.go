package models

import "time"

// Comment is append-only and owned by the task or project it hangs off.
// Append order defines display order.
type Comment struct {
	Timestamp time.Time `json:"timestamp"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
}
