package models

import "time"

// SessionStatus enumerates the lifecycle states of a session.
type SessionStatus string

const (
	StatusScheduled  SessionStatus = "Scheduled"
	StatusInProgress SessionStatus = "InProgress"
	StatusCompleted  SessionStatus = "Completed"
	StatusCancelled  SessionStatus = "Cancelled"
	StatusArchived   SessionStatus = "Archived"
)

// Session represents a scheduled, staffed unit of billable work between one
// employee and one client. "Specialist" in older client code is a display
// alias for the same employee, never a second assignee.
type Session struct {
	ID           string        `bson:"id" json:"id"`
	Title        string        `bson:"title" json:"title"`
	CompanyID    string        `bson:"company_id" json:"company_id"` // immutable after creation
	ClientID     string        `bson:"client_id" json:"client_id"`
	ClientName   string        `bson:"client_name" json:"client_name"`
	EmployeeID   string        `bson:"employee_id" json:"employee_id"`
	EmployeeName string        `bson:"employee_name" json:"employee_name"`
	Date         string        `bson:"date" json:"date"`             // "YYYY-MM-DD"
	StartTime    string        `bson:"start_time" json:"start_time"` // "HH:MM"
	EndTime      string        `bson:"end_time" json:"end_time"`     // "HH:MM", same day, exclusive
	Status       SessionStatus `bson:"status" json:"status"`
	Price        float64       `bson:"price" json:"price"`
	Notes        []SessionNote `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time     `bson:"created_at" json:"created_at"`
	CompletedAt  *time.Time    `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
}

// SessionNote is an internal note attached to a session by a staff member.
type SessionNote struct {
	ID         string    `bson:"id" json:"id"`
	SessionID  string    `bson:"session_id" json:"session_id"`
	AuthorID   string    `bson:"author_id" json:"author_id"`
	AuthorName string    `bson:"author_name" json:"author_name"`
	Content    string    `bson:"content" json:"content"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
