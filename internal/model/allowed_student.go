package model

// AllowedStudent запись белого списка: только эти номера могут зарегистрироваться
type AllowedStudent struct {
	ID          int64  `json:"id" yaml:"-"`
	Name        string `json:"name" yaml:"name" validate:"required,max=100"`
	PhoneNumber string `json:"phoneNumber" yaml:"phone" validate:"required,min=4,max=20"`
	SeatNumber  int    `json:"seatNumber" yaml:"seat" validate:"gte=0"`
}
