package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReservationUpdate(t *testing.T) {
	tests := []struct {
		name string
		role model.Role
		body string
		want ReservationUpdate
		err  error
		kind ErrorKind
	}{
		{
			name: "student content",
			role: model.RoleStudent,
			body: `{"content":"new"}`,
			want: StudentUpdate{Content: ptr("new")},
		},
		{
			name: "student photos",
			role: model.RoleStudent,
			body: `{"photoUrls":["https://cdn.example/a.png","https://cdn.example/b.png"]}`,
			want: StudentUpdate{PhotoURLs: &[]string{"https://cdn.example/a.png", "https://cdn.example/b.png"}},
		},
		{
			name: "student clears photos",
			role: model.RoleStudent,
			body: `{"photoUrls":[]}`,
			want: StudentUpdate{PhotoURLs: &[]string{}},
		},
		{
			name: "student photo is not a url",
			role: model.RoleStudent,
			body: `{"photoUrls":["https://cdn.example/a.png","not a url"]}`,
			kind: KindValidation,
		},
		{
			name: "student too many photos",
			role: model.RoleStudent,
			body: photoURLsBody(MaxPhotoURLs + 1),
			kind: KindValidation,
		},
		{
			name: "student content at limit",
			role: model.RoleStudent,
			body: `{"content":"` + strings.Repeat("a", MaxContentLength) + `"}`,
			want: StudentUpdate{Content: ptr(strings.Repeat("a", MaxContentLength))},
		},
		{
			name: "student content too long",
			role: model.RoleStudent,
			body: `{"content":"` + strings.Repeat("a", MaxContentLength+1) + `"}`,
			kind: KindValidation,
		},
		{
			name: "student sets status",
			role: model.RoleStudent,
			body: `{"status":"confirmed"}`,
			want: TeacherUpdate{Status: statusPtr(model.ReservationStatusConfirmed)},
		},
		{
			name: "student sets feedback with content",
			role: model.RoleStudent,
			body: `{"content":"x","teacherFeedback":"self answer"}`,
			want: TeacherUpdate{TeacherFeedback: ptr("self answer")},
		},
		{
			name: "teacher answer",
			role: model.RoleTeacher,
			body: `{"status":"answered","teacherFeedback":"done","teacherPhotoUrl":"https://cdn/a.png"}`,
			want: TeacherUpdate{
				Status:          statusPtr(model.ReservationStatusAnswered),
				TeacherFeedback: ptr("done"),
				TeacherPhotoURL: ptr("https://cdn/a.png"),
			},
		},
		{
			name: "teacher photo is not a url",
			role: model.RoleTeacher,
			body: `{"teacherPhotoUrl":"page 10"}`,
			kind: KindValidation,
		},
		{
			name: "teacher clears photo",
			role: model.RoleTeacher,
			body: `{"teacherPhotoUrl":""}`,
			want: TeacherUpdate{TeacherPhotoURL: ptr("")},
		},
		{
			name: "teacher feedback too long",
			role: model.RoleTeacher,
			body: `{"teacherFeedback":"` + strings.Repeat("a", MaxContentLength+1) + `"}`,
			kind: KindValidation,
		},
		{
			name: "teacher sends content",
			role: model.RoleTeacher,
			body: `{"content":"x"}`,
			kind: KindValidation,
		},
		{
			name: "teacher resets to pending",
			role: model.RoleTeacher,
			body: `{"status":"pending"}`,
			kind: KindValidation,
		},
		{
			name: "unknown status",
			role: model.RoleTeacher,
			body: `{"status":"archived"}`,
			kind: KindValidation,
		},
		{
			name: "unknown field",
			role: model.RoleStudent,
			body: `{"scheduleId":3}`,
			kind: KindValidation,
		},
		{
			name: "empty object",
			role: model.RoleStudent,
			body: `{}`,
			err:  ErrEmptyUpdate,
			kind: KindValidation,
		},
		{
			name: "only nulls",
			role: model.RoleTeacher,
			body: `{"status":null}`,
			err:  ErrEmptyUpdate,
			kind: KindValidation,
		},
		{
			name: "not json",
			role: model.RoleStudent,
			body: `content=x`,
			kind: KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseReservationUpdate(tt.role, []byte(tt.body))
			if tt.want != nil {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			require.Error(t, err)
			assert.Nil(t, got)
			assert.Equal(t, tt.kind, KindOf(err))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	const (
		pending   = model.ReservationStatusPending
		confirmed = model.ReservationStatusConfirmed
		answered  = model.ReservationStatusAnswered
		cancelled = model.ReservationStatusCancelled
	)

	tests := []struct {
		from, to model.ReservationStatus
		want     bool
	}{
		{pending, confirmed, true},
		{pending, answered, true},
		{pending, cancelled, true},
		{pending, pending, false},
		{answered, answered, true},
		{answered, confirmed, true},
		{answered, cancelled, true},
		{confirmed, cancelled, true},
		{confirmed, answered, false},
		{confirmed, pending, false},
		{cancelled, confirmed, false},
		{cancelled, answered, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestTeacherUpdateApply_LeavesReservationOnError(t *testing.T) {
	r := &model.Reservation{Status: model.ReservationStatusConfirmed}

	err := TeacherUpdate{
		Status:          statusPtr(model.ReservationStatusAnswered),
		TeacherFeedback: ptr("answer"),
		TeacherPhotoURL: ptr("https://cdn/p.png"),
	}.apply(r)

	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, model.ReservationStatusConfirmed, r.Status)
	assert.Nil(t, r.TeacherFeedback)
	assert.Nil(t, r.TeacherPhotoURL)
}

func TestTeacherUpdateApply_BlankFeedbackDoesNotAnswer(t *testing.T) {
	r := &model.Reservation{Status: model.ReservationStatusPending}

	err := TeacherUpdate{
		Status:          statusPtr(model.ReservationStatusAnswered),
		TeacherFeedback: ptr("   "),
	}.apply(r)

	assert.ErrorIs(t, err, ErrFeedbackRequired)
	assert.Equal(t, model.ReservationStatusPending, r.Status)
}

func TestTeacherUpdateApply_CancelKeepsStoredAnswer(t *testing.T) {
	r := &model.Reservation{Status: model.ReservationStatusAnswered, TeacherFeedback: ptr("see page 10")}

	err := TeacherUpdate{Status: statusPtr(model.ReservationStatusCancelled)}.apply(r)

	require.NoError(t, err)
	assert.Equal(t, model.ReservationStatusCancelled, r.Status)
	assert.Equal(t, "see page 10", *r.TeacherFeedback)
}

func TestTeacherUpdateApply_CancelKeepsGivenReason(t *testing.T) {
	r := &model.Reservation{Status: model.ReservationStatusPending}

	err := TeacherUpdate{
		Status:          statusPtr(model.ReservationStatusCancelled),
		TeacherFeedback: ptr("teacher is sick today"),
	}.apply(r)

	require.NoError(t, err)
	assert.Equal(t, "teacher is sick today", *r.TeacherFeedback)
}

func photoURLsBody(n int) string {
	urls := make([]string, n)
	for i := range urls {
		urls[i] = fmt.Sprintf("%q", fmt.Sprintf("https://cdn.example/%d.png", i))
	}
	return `{"photoUrls":[` + strings.Join(urls, ",") + `]}`
}

func ptr(s string) *string {
	return &s
}

func statusPtr(s model.ReservationStatus) *model.ReservationStatus {
	return &s
}
