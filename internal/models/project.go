package models

import "time"

// LeaseDuration is the fixed window between creation and expiry of a
// project or task. It is not configurable.
const LeaseDuration = 24 * time.Hour

type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Leader      string    `json:"leader"`
	Members     []string  `json:"members"`
	Tasks       []Task    `json:"tasks"`
	Comments    []Comment `json:"comments"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// IsLeader reports whether the username is the recorded project leader.
func (p *Project) IsLeader(username string) bool {
	return p.Leader == username
}

// IsMember reports whether the username is in the member set. The leader is
// always a member.
func (p *Project) IsMember(username string) bool {
	for _, m := range p.Members {
		if m == username {
			return true
		}
	}
	return false
}

// FindTask returns a pointer into the project's task slice, or nil if the ID
// is unknown. Callers mutate through the pointer before persisting the whole
// collection.
func (p *Project) FindTask(taskID string) *Task {
	for i := range p.Tasks {
		if p.Tasks[i].ID == taskID {
			return &p.Tasks[i]
		}
	}
	return nil
}

// Expired reports whether the project's lease has run out at the given time.
func (p *Project) Expired(now time.Time) bool {
	return !p.EndTime.After(now)
}
