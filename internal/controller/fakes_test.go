package controller

import (
	"context"
	"io"
	"sync"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/Freeeeeet/academy_booking/internal/service"
	"github.com/google/uuid"
)

type fakeAuth struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*model.User
	roster   map[string]bool
	users    map[string]*model.User
	nextID   int64
	err      error
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{
		sessions: map[uuid.UUID]*model.User{},
		roster:   map[string]bool{"1234567890": true},
		users:    map[string]*model.User{},
	}
}

func (a *fakeAuth) login(user *model.User) uuid.UUID {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := uuid.New()
	a.sessions[id] = user
	return id
}

func (a *fakeAuth) Register(_ context.Context, phone, _ string) (*model.User, *model.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	phone = service.NormalizePhone(phone)
	if a.users[phone] != nil {
		return nil, nil, service.ErrAlreadyRegistered
	}
	if !a.roster[phone] {
		return nil, nil, service.ErrNotOnRoster
	}
	a.nextID++
	user := &model.User{ID: a.nextID, PhoneNumber: phone, PasswordHash: "hash", Name: "홍길동", Role: model.RoleStudent}
	a.users[phone] = user
	session := &model.Session{ID: uuid.New(), UserID: user.ID}
	a.sessions[session.ID] = user
	return user, session, nil
}

func (a *fakeAuth) Login(_ context.Context, phone, password string) (*model.User, *model.Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	user := a.users[service.NormalizePhone(phone)]
	if user == nil || password != "secret" {
		return nil, nil, service.ErrInvalidCredentials
	}
	session := &model.Session{ID: uuid.New(), UserID: user.ID}
	a.sessions[session.ID] = user
	return user, session, nil
}

func (a *fakeAuth) Logout(_ context.Context, id uuid.UUID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.sessions, id)
	return nil
}

func (a *fakeAuth) Authenticate(_ context.Context, id uuid.UUID) (*model.User, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return nil, a.err
	}
	return a.sessions[id], nil
}

type fakeSchedules struct {
	lastUser *model.User
	called   bool
}

func (s *fakeSchedules) List(_ context.Context, user *model.User) ([]*model.ScheduleWithCount, error) {
	s.called = true
	s.lastUser = user
	return []*model.ScheduleWithCount{
		{Schedule: model.Schedule{ID: 1, DayOfWeek: "월요일", PeriodNumber: 1, Capacity: 4}, CurrentCount: 2},
	}, nil
}

type fakeReservations struct {
	createErr  error
	lastInput  service.CreateReservationInput
	lastUpdate service.ReservationUpdate
	updateErr  error
	deleted    []int64
}

func (r *fakeReservations) Create(_ context.Context, student *model.User, in service.CreateReservationInput) (*model.Reservation, error) {
	r.lastInput = in
	if r.createErr != nil {
		return nil, r.createErr
	}
	return &model.Reservation{
		ID:         10,
		UserID:     student.ID,
		ScheduleID: in.ScheduleID,
		Type:       in.Type,
		Content:    in.Content,
		PhotoURLs:  []string{},
		Status:     model.ReservationStatusPending,
	}, nil
}

func (r *fakeReservations) Update(_ context.Context, actor *model.User, id int64, upd service.ReservationUpdate) (*model.Reservation, error) {
	r.lastUpdate = upd
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	if id == 404 {
		return nil, service.ErrReservationNotFound
	}
	if _, ok := upd.(service.TeacherUpdate); ok && !actor.IsTeacher() {
		return nil, service.ErrTeacherFieldsOnly
	}
	return &model.Reservation{ID: id, Type: model.ReservationTypeOnline, PhotoURLs: []string{}, Status: model.ReservationStatusAnswered}, nil
}

func (r *fakeReservations) Delete(_ context.Context, _ *model.User, id int64) error {
	if id == 404 {
		return service.ErrReservationNotFound
	}
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeReservations) ListMine(_ context.Context, user *model.User) ([]*model.ReservationDetails, error) {
	return []*model.ReservationDetails{{
		Reservation: model.Reservation{ID: 1, UserID: user.ID, Type: model.ReservationTypeOnline, PhotoURLs: []string{}},
		StudentName: user.Name,
		Day:         model.DayLabelOnline,
	}}, nil
}

func (r *fakeReservations) ListAll(_ context.Context, actor *model.User) ([]*model.ReservationDetails, error) {
	if !actor.IsTeacher() {
		return nil, service.ErrTeacherOnly
	}
	return []*model.ReservationDetails{}, nil
}

type fakeRoster struct {
	added []model.AllowedStudent
}

func (r *fakeRoster) Add(_ context.Context, student model.AllowedStudent) (*model.AllowedStudent, error) {
	if student.PhoneNumber == "1234567890" {
		return nil, service.ErrAllowedStudentExists
	}
	student.ID = int64(len(r.added) + 1)
	r.added = append(r.added, student)
	return &student, nil
}

func (r *fakeRoster) List(context.Context) ([]*model.AllowedStudent, error) {
	return []*model.AllowedStudent{{ID: 1, Name: "홍길동", PhoneNumber: "1234567890", SeatNumber: 1}}, nil
}

type fakeUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (u *fakeUploader) Upload(_ context.Context, filename, contentType string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.objects == nil {
		u.objects = map[string][]byte{}
	}
	u.objects[filename] = data
	return "https://cdn.example/" + filename + "?type=" + contentType, nil
}
