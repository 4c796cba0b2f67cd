package service

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/Freeeeeet/academy_booking/internal/repository"
	"github.com/google/uuid"
)

// memStore хранилище в памяти для тестов сервисов
type memStore struct {
	mu           sync.Mutex
	nextID       int64
	users        map[int64]*model.User
	allowed      map[int64]*model.AllowedStudent
	schedules    map[int64]*model.Schedule
	reservations map[int64]*model.Reservation
	sessions     map[uuid.UUID]*model.Session
}

func newMemStore() *memStore {
	return &memStore{
		users:        map[int64]*model.User{},
		allowed:      map[int64]*model.AllowedStudent{},
		schedules:    map[int64]*model.Schedule{},
		reservations: map[int64]*model.Reservation{},
		sessions:     map[uuid.UUID]*model.Session{},
	}
}

func (s *memStore) id() int64 {
	s.nextID++
	return s.nextID
}

// memTx сериализует транзакции целиком, как блокировки строк в Postgres
type memTx struct {
	mu sync.Mutex
}

func (t *memTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(ctx)
}

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.PhoneNumber == user.PhoneNumber {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.id()
	user.CreatedAt = time.Now()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r memUsers) GetByPhone(_ context.Context, phone string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.PhoneNumber == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r memUsers) LockByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	return nil
}

func (r memUsers) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

type memAllowed struct{ *memStore }

func (r memAllowed) Create(_ context.Context, student *model.AllowedStudent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.allowed {
		if a.PhoneNumber == student.PhoneNumber {
			return repository.ErrDuplicate
		}
	}
	student.ID = r.id()
	cp := *student
	r.allowed[student.ID] = &cp
	return nil
}

func (r memAllowed) Upsert(_ context.Context, student *model.AllowedStudent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.allowed {
		if a.PhoneNumber == student.PhoneNumber {
			a.Name = student.Name
			a.SeatNumber = student.SeatNumber
			student.ID = a.ID
			return nil
		}
	}
	student.ID = r.id()
	cp := *student
	r.allowed[student.ID] = &cp
	return nil
}

func (r memAllowed) GetByPhone(_ context.Context, phone string) (*model.AllowedStudent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.allowed {
		if a.PhoneNumber == phone {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memAllowed) List(_ context.Context) ([]*model.AllowedStudent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := []*model.AllowedStudent{}
	for _, a := range r.allowed {
		cp := *a
		list = append(list, &cp)
	}
	slices.SortFunc(list, func(a, b *model.AllowedStudent) int { return a.SeatNumber - b.SeatNumber })
	return list, nil
}

func (r memAllowed) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.allowed), nil
}

type memSchedules struct{ *memStore }

func (r memSchedules) Create(_ context.Context, schedule *model.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.schedules {
		if s.DayOfWeek == schedule.DayOfWeek && s.PeriodNumber == schedule.PeriodNumber {
			return repository.ErrDuplicate
		}
	}
	schedule.ID = r.id()
	cp := *schedule
	r.schedules[schedule.ID] = &cp
	return nil
}

func (r memSchedules) GetByID(_ context.Context, id int64) (*model.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.schedules[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r memSchedules) GetByIDForUpdate(ctx context.Context, id int64) (*model.Schedule, error) {
	return r.GetByID(ctx, id)
}

func (r memSchedules) ListWithCounts(_ context.Context, userID int64) ([]*model.ScheduleWithCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := []*model.ScheduleWithCount{}
	for _, s := range r.schedules {
		item := &model.ScheduleWithCount{Schedule: *s}
		for _, res := range r.reservations {
			if res.IsOnsite() && res.ScheduleID != nil && *res.ScheduleID == s.ID {
				item.CurrentCount++
				if res.UserID == userID {
					item.IsReservedByUser = true
				}
			}
		}
		list = append(list, item)
	}
	slices.SortFunc(list, func(a, b *model.ScheduleWithCount) int { return int(a.ID - b.ID) })
	return list, nil
}

func (r memSchedules) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.schedules), nil
}

type memReservations struct{ *memStore }

func (r memReservations) Create(_ context.Context, reservation *model.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reservation.IsOnsite() {
		for _, existing := range r.reservations {
			if existing.IsOnsite() && existing.UserID == reservation.UserID &&
				*existing.ScheduleID == *reservation.ScheduleID {
				return repository.ErrDuplicate
			}
		}
	}
	reservation.ID = r.id()
	r.reservations[reservation.ID] = cloneReservation(reservation)
	return nil
}

func (r memReservations) GetByID(_ context.Context, id int64) (*model.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res, ok := r.reservations[id]; ok {
		return cloneReservation(res), nil
	}
	return nil, nil
}

func (r memReservations) GetByIDForUpdate(ctx context.Context, id int64) (*model.Reservation, error) {
	return r.GetByID(ctx, id)
}

func (r memReservations) Update(_ context.Context, reservation *model.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reservations[reservation.ID]; !ok {
		return repository.ErrNotFound
	}
	r.reservations[reservation.ID] = cloneReservation(reservation)
	return nil
}

func (r memReservations) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reservations[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.reservations, id)
	return nil
}

func (r memReservations) CountOnsiteBySchedule(_ context.Context, scheduleID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, res := range r.reservations {
		if res.IsOnsite() && *res.ScheduleID == scheduleID {
			count++
		}
	}
	return count, nil
}

func (r memReservations) CountOnsiteCreatedBetween(_ context.Context, userID int64, from, to time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, res := range r.reservations {
		if res.IsOnsite() && res.UserID == userID &&
			!res.CreatedAt.Before(from) && !res.CreatedAt.After(to) {
			count++
		}
	}
	return count, nil
}

func (r memReservations) ExistsOnsite(_ context.Context, userID, scheduleID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, res := range r.reservations {
		if res.IsOnsite() && res.UserID == userID && *res.ScheduleID == scheduleID {
			return true, nil
		}
	}
	return false, nil
}

func (r memReservations) ListDetailsByUser(_ context.Context, userID int64) ([]*model.ReservationDetails, error) {
	return r.details(func(res *model.Reservation) bool { return res.UserID == userID }), nil
}

func (r memReservations) ListDetails(_ context.Context) ([]*model.ReservationDetails, error) {
	return r.details(func(*model.Reservation) bool { return true }), nil
}

func (r memReservations) details(match func(*model.Reservation) bool) []*model.ReservationDetails {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := []*model.ReservationDetails{}
	for _, res := range r.reservations {
		if !match(res) {
			continue
		}
		d := &model.ReservationDetails{Reservation: *cloneReservation(res)}
		if u, ok := r.users[res.UserID]; ok {
			d.StudentName = u.Name
			if u.SeatNumber != nil {
				d.SeatNumber = *u.SeatNumber
			}
		}
		if res.ScheduleID != nil {
			if s, ok := r.schedules[*res.ScheduleID]; ok {
				d.Day, d.Period = s.DayOfWeek, s.PeriodNumber
			}
		} else {
			d.Day = model.DayLabelOnline
		}
		list = append(list, d)
	}
	slices.SortFunc(list, func(a, b *model.ReservationDetails) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return int(b.ID - a.ID)
	})
	return list
}

func (r memReservations) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reservations)
}

type memSessions struct{ *memStore }

func (r memSessions) Create(_ context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session.CreatedAt = time.Now()
	cp := *session
	r.sessions[session.ID] = &cp
	return nil
}

func (r memSessions) GetByID(_ context.Context, id uuid.UUID) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (r memSessions) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

func (r memSessions) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for id, s := range r.sessions {
		if s.IsExpired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

func cloneReservation(r *model.Reservation) *model.Reservation {
	cp := *r
	cp.PhotoURLs = slices.Clone(r.PhotoURLs)
	return &cp
}

// recordingNotifier запоминает отправленные уведомления
type recordingNotifier struct {
	mu   sync.Mutex
	sent []int64
}

func (n *recordingNotifier) ReservationCreated(_ context.Context, reservation *model.Reservation, _ *model.User) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, reservation.ID)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}
