package notifier

import (
	"context"
	"fmt"
	"html"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const (
	sendTimeout    = 10 * time.Second
	contentPreview = 200
)

// MessageSender часть API бота, которая нужна уведомлениям. *bot.Bot удовлетворяет интерфейсу.
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// ScheduleGetter достаёт слот для текста уведомления
type ScheduleGetter interface {
	GetByID(ctx context.Context, id int64) (*model.Schedule, error)
}

// Telegram отправляет учителю сообщение о каждом новом вопросе.
// Отправка асинхронная и не влияет на результат создания резервации.
type Telegram struct {
	sender    MessageSender
	schedules ScheduleGetter
	chatID    int64
	location  *time.Location
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// NewTelegramBot создаёт клиента бота по токену
func NewTelegramBot(token string) (*bot.Bot, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return b, nil
}

func NewTelegram(sender MessageSender, schedules ScheduleGetter, chatID int64, location *time.Location, logger *zap.Logger) *Telegram {
	if location == nil {
		location = time.Local
	}
	return &Telegram{
		sender:    sender,
		schedules: schedules,
		chatID:    chatID,
		location:  location,
		logger:    logger,
	}
}

// ReservationCreated отправляет уведомление в фоне
func (t *Telegram) ReservationCreated(ctx context.Context, reservation *model.Reservation, student *model.User) {
	ctx = context.WithoutCancel(ctx)

	t.wg.Add(1)
	go func() {
		defer t.wg.Done()

		ctx, cancel := context.WithTimeout(ctx, sendTimeout)
		defer cancel()

		var schedule *model.Schedule
		if reservation.ScheduleID != nil && t.schedules != nil {
			s, err := t.schedules.GetByID(ctx, *reservation.ScheduleID)
			if err != nil {
				t.logger.Warn("Failed to load schedule for notification", zap.Error(err))
			}
			schedule = s
		}

		_, err := t.sender.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    t.chatID,
			Text:      FormatReservationCreated(reservation, student, schedule, t.location),
			ParseMode: models.ParseModeHTML,
		})
		if err != nil {
			t.logger.Error("Failed to notify teacher",
				zap.Int64("reservation_id", reservation.ID),
				zap.Error(err),
			)
			return
		}

		t.logger.Debug("Teacher notified", zap.Int64("reservation_id", reservation.ID))
	}()
}

// Wait дожидается отправки всех уведомлений, вызывается при остановке сервера
func (t *Telegram) Wait() {
	t.wg.Wait()
}

// StatusDisplay отображение статуса резервации
type StatusDisplay struct {
	Emoji string
	Text  string
}

// GetStatusDisplay возвращает emoji и текст для статуса резервации
func GetStatusDisplay(status model.ReservationStatus) StatusDisplay {
	displays := map[model.ReservationStatus]StatusDisplay{
		model.ReservationStatusPending:   {"⏳", "대기중"},
		model.ReservationStatusConfirmed: {"✅", "확인됨"},
		model.ReservationStatusAnswered:  {"💬", "답변완료"},
		model.ReservationStatusCancelled: {"❌", "취소됨"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return StatusDisplay{"❓", "알 수 없음"}
}

// FormatReservationCreated текст уведомления о новом вопросе (HTML)
func FormatReservationCreated(r *model.Reservation, student *model.User, schedule *model.Schedule, loc *time.Location) string {
	var sb strings.Builder

	status := GetStatusDisplay(r.Status)

	if r.IsOnsite() {
		sb.WriteString("🏫 <b>새 현장 질문</b>\n\n")
	} else {
		sb.WriteString("💻 <b>새 온라인 질문</b>\n\n")
	}

	fmt.Fprintf(&sb, "👤 학생: %s", html.EscapeString(student.Name))
	if student.SeatNumber != nil {
		fmt.Fprintf(&sb, " (좌석 %d)", *student.SeatNumber)
	}
	sb.WriteString("\n")

	if schedule != nil {
		fmt.Fprintf(&sb, "📅 시간: %s %d교시\n", html.EscapeString(schedule.DayOfWeek), schedule.PeriodNumber)
	}

	fmt.Fprintf(&sb, "🕐 접수: %s\n", r.CreatedAt.In(loc).Format("2006-01-02 15:04"))
	fmt.Fprintf(&sb, "%s 상태: %s\n", status.Emoji, status.Text)

	if r.Content != nil && strings.TrimSpace(*r.Content) != "" {
		fmt.Fprintf(&sb, "\n📝 %s\n", html.EscapeString(truncate(strings.TrimSpace(*r.Content), contentPreview)))
	}
	if n := len(r.PhotoURLs); n > 0 {
		fmt.Fprintf(&sb, "📎 사진 %d장\n", n)
	}

	return sb.String()
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "…"
}
