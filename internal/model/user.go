package model

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

type User struct {
	ID           int64     `json:"id"`
	PhoneNumber  string    `json:"phoneNumber"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	SeatNumber   *int      `json:"seatNumber"` // nil для учителя
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsTeacher проверяет роль пользователя
func (u *User) IsTeacher() bool {
	return u.Role == RoleTeacher
}
