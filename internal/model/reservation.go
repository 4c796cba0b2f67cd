package model

import "time"

type ReservationType string

const (
	ReservationTypeOnsite ReservationType = "onsite" // Очный вопрос в слоте расписания
	ReservationTypeOnline ReservationType = "online" // Вопрос онлайн, без слота
)

// Valid проверяет что тип известен
func (t ReservationType) Valid() bool {
	return t == ReservationTypeOnsite || t == ReservationTypeOnline
}

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"   // Ожидает учителя
	ReservationStatusConfirmed ReservationStatus = "confirmed" // Очный вопрос подтверждён
	ReservationStatusAnswered  ReservationStatus = "answered"  // Учитель ответил
	ReservationStatusCancelled ReservationStatus = "cancelled" // Отменено учителем
)

// Valid проверяет что статус известен
func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed,
		ReservationStatusAnswered, ReservationStatusCancelled:
		return true
	}
	return false
}

type Reservation struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"userId"`
	ScheduleID      *int64            `json:"scheduleId"` // nil для online
	Type            ReservationType   `json:"type"`
	Content         *string           `json:"content"`
	PhotoURLs       []string          `json:"photoUrls"`
	TeacherFeedback *string           `json:"teacherFeedback"`
	TeacherPhotoURL *string           `json:"teacherPhotoUrl"`
	Status          ReservationStatus `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// IsOnsite проверяет что резервация занимает место в слоте
func (r *Reservation) IsOnsite() bool {
	return r.Type == ReservationTypeOnsite
}

// IsPending проверяет что резервация ещё не обработана учителем
func (r *Reservation) IsPending() bool {
	return r.Status == ReservationStatusPending
}

// ReservationDetails резервация с данными студента и слота для списков
type ReservationDetails struct {
	Reservation
	StudentName string `json:"studentName"`
	SeatNumber  int    `json:"seatNumber"`
	Day         string `json:"day"`
	Period      int    `json:"period"`
}

// Подписи для резерваций без слота в списках
const (
	DayLabelOnsite = "현장"
	DayLabelOnline = "온라인"
)
