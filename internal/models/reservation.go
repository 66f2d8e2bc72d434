package models

import "time"

// Reservation is a table booking. Cancellation deletes the row.
type Reservation struct {
	ID            int       `json:"id"`
	CustomerName  string    `json:"customer_name"`
	ContactNumber string    `json:"contact_number"`
	NumPeople     int       `json:"num_people"`
	CreatedAt     time.Time `json:"created_at,omitempty"`
}

// Feedback is a free-text customer comment. Rows are only ever inserted.
type Feedback struct {
	ID           int       `json:"id"`
	CustomerName string    `json:"customer_name"`
	FeedbackText string    `json:"feedback_text"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}
