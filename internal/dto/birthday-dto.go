package dto

import "time"

type BirthdayMessageRequestDTO struct {
	ReceiverID uint64 `json:"receiverId" validate:"required"`
	SenderID   uint64 `json:"senderId" validate:"required"`
	SenderName string `json:"senderName"`
	Message    string `json:"message" validate:"required,max=2000"`
}

type BirthdayMessageResponseDTO struct {
	ID         uint64    `json:"id"`
	ReceiverID uint64    `json:"receiverId"`
	SenderID   uint64    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	IsRead     bool      `json:"isRead"`
}

type BirthdayInboxDTO struct {
	EmpID       uint64    `json:"empId"`
	Name        string    `json:"name"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	UnreadCount int64     `json:"unreadCount"`
}

type MessageDTO struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type EmployeeBirthdayTodayDTO struct {
	EmpID uint64 `json:"empId"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type BirthdayStatusDTO struct {
	IsBirthday bool `json:"isBirthday"`
}
