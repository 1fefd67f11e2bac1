package model

import "time"

// Notification is an in-app notification shown on the notifications screen.
type Notification struct {
	ID    int64     `json:"id"`
	Title string    `json:"title"`
	Body  string    `json:"body"`
	Date  time.Time `json:"date"`
	Read  bool      `json:"read"`
}
