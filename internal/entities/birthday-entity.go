package entities

import "time"

type BirthdayMessage struct {
	ID         uint64    `json:"id" db:"message_id"`
	ReceiverID uint64    `json:"receiver_id" db:"receiver_id"`
	SenderID   uint64    `json:"sender_id" db:"sender_id"`
	SenderName string    `json:"sender_name" db:"sender_name"`
	Message    string    `json:"message" db:"message"`
	Timestamp  time.Time `json:"timestamp" db:"timestamp"`
	IsRead     bool      `json:"is_read" db:"is_read"`
}

// BirthdaySeen marks that the birthday banner was shown for the current occurrence.
type BirthdaySeen struct {
	ID         uint64    `json:"id" db:"id"`
	EmpID      uint64    `json:"emp_id" db:"emp_id"`
	BirthDate  time.Time `json:"birth_date" db:"birth_date"`
	ExpiryDate time.Time `json:"expiry_date" db:"expiry_date"`
}

// BirthdayThread is one row of a receiver's inbox: the latest message per sender.
type BirthdayThread struct {
	SenderID    uint64
	SenderName  string
	Message     string
	Timestamp   time.Time
	UnreadCount int64
}
