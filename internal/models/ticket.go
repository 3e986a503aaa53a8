package models

import "time"

type Ticket struct {
	ID           string     `json:"id"`
	Number       int        `json:"number"`
	DisplayID    string     `json:"display_id"`
	DepartmentID string     `json:"department_id"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	CalledAt     *time.Time `json:"called_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

const (
	StatusWaiting   = "waiting"
	StatusCalled    = "called"
	StatusCompleted = "completed"
)
