package model

// DefaultScheduleCapacity вместимость слота по умолчанию
const DefaultScheduleCapacity = 4

// Schedule слот для очных вопросов (день недели + пара)
type Schedule struct {
	ID           int64  `json:"id"`
	DayOfWeek    string `json:"dayOfWeek"`
	PeriodNumber int    `json:"periodNumber"`
	Capacity     int    `json:"capacity"`
}

// ScheduleWithCount слот с текущей загрузкой для списка расписания
type ScheduleWithCount struct {
	Schedule
	CurrentCount     int  `json:"currentCount"`
	IsReservedByUser bool `json:"isReservedByUser"`
}

// IsFull проверяет заполненность слота
func (s *ScheduleWithCount) IsFull() bool {
	return s.CurrentCount >= s.Capacity
}
