package notifier

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []*bot.SendMessageParams
	err  error
}

func (s *fakeSender) SendMessage(_ context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, params)
	return &models.Message{}, s.err
}

type fakeSchedules map[int64]*model.Schedule

func (f fakeSchedules) GetByID(_ context.Context, id int64) (*model.Schedule, error) {
	return f[id], nil
}

var kst = time.FixedZone("KST", 9*60*60)

func TestTelegram_ReservationCreated(t *testing.T) {
	sender := &fakeSender{}
	schedules := fakeSchedules{7: {ID: 7, DayOfWeek: "월요일", PeriodNumber: 2, Capacity: 4}}
	n := NewTelegram(sender, schedules, 42, kst, zap.NewNop())

	seat := 24
	scheduleID := int64(7)
	content := "<b>integral</b> question"
	ctx, cancel := context.WithCancel(context.Background())

	n.ReservationCreated(ctx, &model.Reservation{
		ID:         1,
		ScheduleID: &scheduleID,
		Type:       model.ReservationTypeOnsite,
		Content:    &content,
		PhotoURLs:  []string{"a", "b"},
		Status:     model.ReservationStatusPending,
		CreatedAt:  time.Date(2026, 3, 2, 5, 0, 0, 0, time.UTC),
	}, &model.User{Name: "김철수", SeatNumber: &seat})
	// Отмена запроса не должна отменять отправку
	cancel()
	n.Wait()

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, models.ParseModeHTML, msg.ParseMode)

	text := msg.Text
	assert.Contains(t, text, "새 현장 질문")
	assert.Contains(t, text, "김철수 (좌석 24)")
	assert.Contains(t, text, "월요일 2교시")
	assert.Contains(t, text, "2026-03-02 14:00")
	assert.Contains(t, text, "&lt;b&gt;integral&lt;/b&gt;")
	assert.Contains(t, text, "사진 2장")
}

func TestTelegram_SendErrorIsLogged(t *testing.T) {
	sender := &fakeSender{err: errors.New("telegram down")}
	n := NewTelegram(sender, nil, 42, kst, zap.NewNop())

	n.ReservationCreated(context.Background(), &model.Reservation{
		ID:     2,
		Type:   model.ReservationTypeOnline,
		Status: model.ReservationStatusPending,
	}, &model.User{Name: "홍길동"})
	n.Wait()

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Text, "새 온라인 질문")
}

func TestFormatReservationCreated_TruncatesContent(t *testing.T) {
	content := strings.Repeat("가", contentPreview+50)
	text := FormatReservationCreated(&model.Reservation{
		Type:    model.ReservationTypeOnline,
		Content: &content,
		Status:  model.ReservationStatusPending,
	}, &model.User{Name: "a"}, nil, kst)

	assert.Contains(t, text, strings.Repeat("가", contentPreview)+"…")
	assert.NotContains(t, text, strings.Repeat("가", contentPreview+1))
}

func TestGetStatusDisplay(t *testing.T) {
	assert.Equal(t, StatusDisplay{"💬", "답변완료"}, GetStatusDisplay(model.ReservationStatusAnswered))
	assert.Equal(t, StatusDisplay{"❓", "알 수 없음"}, GetStatusDisplay("archived"))
}
