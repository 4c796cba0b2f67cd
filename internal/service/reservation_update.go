package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/go-playground/validator/v10"
)

// CancelledFeedback сообщение, которое получает студент при отмене без комментария
const CancelledFeedback = "Reservation cancelled by teacher"

// ReservationUpdate изменение резервации: TeacherUpdate или StudentUpdate
type ReservationUpdate interface {
	isReservationUpdate()
}

// TeacherUpdate поля, которые меняет учитель
type TeacherUpdate struct {
	Status          *model.ReservationStatus `json:"status"`
	TeacherFeedback *string                  `json:"teacherFeedback"`
	TeacherPhotoURL *string                  `json:"teacherPhotoUrl"`
}

// StudentUpdate поля, которые меняет владелец резервации
type StudentUpdate struct {
	Content   *string   `json:"content"`
	PhotoURLs *[]string `json:"photoUrls"`
}

func (TeacherUpdate) isReservationUpdate() {}
func (StudentUpdate) isReservationUpdate() {}

var (
	teacherFields = map[string]bool{"status": true, "teacherFeedback": true, "teacherPhotoUrl": true}
	studentFields = map[string]bool{"content": true, "photoUrls": true}
)

// Лимиты те же, что при создании резервации
const (
	MaxContentLength = 5000
	MaxPhotoURLs     = 10
)

var fieldValidator = validator.New(validator.WithRequiredStructEnabled())

// ParseReservationUpdate разбирает тело PATCH запроса в зависимости от роли.
// Неизвестные поля отклоняются. Поля учителя от студента разбираются как TeacherUpdate,
// отказ Forbidden выдаёт ReservationService.Update после поиска резервации.
func ParseReservationUpdate(role model.Role, body []byte) (ReservationUpdate, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, Validation("invalid JSON body")
	}
	if len(fields) == 0 {
		return nil, ErrEmptyUpdate
	}

	teacherShape := role == model.RoleTeacher
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		switch {
		case !teacherFields[key] && !studentFields[key]:
			return nil, Validation("unknown field %q", key)
		case role == model.RoleTeacher && studentFields[key]:
			return nil, Validation("field %q cannot be set by a teacher", key)
		case teacherFields[key]:
			teacherShape = true
		}
	}

	if teacherShape {
		var upd TeacherUpdate
		if err := json.Unmarshal(body, &upd); err != nil {
			return nil, Validation("invalid teacher update: %v", err)
		}
		if role != model.RoleTeacher {
			return upd, nil
		}
		if upd.Status == nil && upd.TeacherFeedback == nil && upd.TeacherPhotoURL == nil {
			return nil, ErrEmptyUpdate
		}
		if err := upd.validate(); err != nil {
			return nil, err
		}
		return upd, nil
	}

	var upd StudentUpdate
	if err := json.Unmarshal(body, &upd); err != nil {
		return nil, Validation("invalid update: %v", err)
	}
	if upd.Content == nil && upd.PhotoURLs == nil {
		return nil, ErrEmptyUpdate
	}
	if err := upd.validate(); err != nil {
		return nil, err
	}
	return upd, nil
}

func (u TeacherUpdate) validate() error {
	if u.Status != nil && (!u.Status.Valid() || *u.Status == model.ReservationStatusPending) {
		return Validation("status must be confirmed, answered or cancelled")
	}
	if u.TeacherFeedback != nil {
		if err := checkField("teacherFeedback", *u.TeacherFeedback, fmt.Sprintf("max=%d", MaxContentLength)); err != nil {
			return err
		}
	}
	if u.TeacherPhotoURL != nil {
		return checkField("teacherPhotoUrl", strings.TrimSpace(*u.TeacherPhotoURL), "omitempty,url")
	}
	return nil
}

func (u StudentUpdate) validate() error {
	if u.Content != nil {
		if err := checkField("content", *u.Content, fmt.Sprintf("max=%d", MaxContentLength)); err != nil {
			return err
		}
	}
	if u.PhotoURLs != nil {
		return checkField("photoUrls", *u.PhotoURLs, fmt.Sprintf("max=%d,dive,url", MaxPhotoURLs))
	}
	return nil
}

func checkField(name string, value any, tag string) error {
	if err := fieldValidator.Var(value, tag); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Validation("field %s failed on %s", name, verrs[0].Tag())
		}
		return Validation("invalid field %s", name)
	}
	return nil
}

// teacherTransitions допустимые переходы статуса. Из cancelled выхода нет.
var teacherTransitions = map[model.ReservationStatus][]model.ReservationStatus{
	model.ReservationStatusPending: {
		model.ReservationStatusConfirmed,
		model.ReservationStatusAnswered,
		model.ReservationStatusCancelled,
	},
	model.ReservationStatusAnswered: {
		model.ReservationStatusConfirmed,
		model.ReservationStatusAnswered,
		model.ReservationStatusCancelled,
	},
	model.ReservationStatusConfirmed: {
		model.ReservationStatusCancelled,
	},
}

// CanTransition проверяет может ли учитель перевести резервацию из from в to
func CanTransition(from, to model.ReservationStatus) bool {
	return slices.Contains(teacherTransitions[from], to)
}

// apply применяет изменение учителя. r не меняется, если возвращена ошибка.
func (u TeacherUpdate) apply(r *model.Reservation) error {
	if r.Status == model.ReservationStatusCancelled {
		return ErrReservationClosed
	}

	feedback := r.TeacherFeedback
	if u.TeacherFeedback != nil {
		feedback = nonEmpty(*u.TeacherFeedback)
	}

	photo := r.TeacherPhotoURL
	if u.TeacherPhotoURL != nil {
		photo = nonEmpty(*u.TeacherPhotoURL)
	}

	status := r.Status
	if u.Status != nil {
		to := *u.Status
		if !CanTransition(r.Status, to) {
			return ErrInvalidTransition
		}

		switch to {
		case model.ReservationStatusAnswered:
			if feedback == nil {
				return ErrFeedbackRequired
			}
		case model.ReservationStatusCancelled:
			if feedback == nil {
				msg := CancelledFeedback
				feedback = &msg
			}
		}
		status = to
	}

	r.Status = status
	r.TeacherFeedback = feedback
	r.TeacherPhotoURL = photo
	return nil
}

// apply применяет изменение студента, пока резервация ожидает учителя
func (u StudentUpdate) apply(r *model.Reservation) error {
	if !r.IsPending() {
		return ErrReservationLocked
	}

	if u.Content != nil {
		r.Content = u.Content
	}
	if u.PhotoURLs != nil {
		r.PhotoURLs = slices.Clone(*u.PhotoURLs)
		if r.PhotoURLs == nil {
			r.PhotoURLs = []string{}
		}
	}
	return nil
}

func nonEmpty(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
