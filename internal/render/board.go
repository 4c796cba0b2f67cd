package render

import (
	"bytes"
	"fmt"
	"image/color"
	"sort"

	"github.com/Freeeeeet/academy_booking/internal/model"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	headerHeight     = 60
	leftLabelsWidth  = 70
	legendHeight     = 40
	cellWidth        = 130
	cellHeight       = 70
	cellPadding      = 6
	cellBorderRadius = 6.0
	shadowOffset     = 3.0
)

// Цветовая схема
var (
	bgColor         = color.RGBA{245, 246, 248, 255}
	textColor       = color.RGBA{80, 85, 90, 220}
	labelColor      = color.RGBA{110, 115, 120, 200}
	gridLineColor   = color.NRGBA{200, 200, 200, 255}
	cellShadowColor = color.RGBA{0, 0, 0, 20}

	cellFreeColor     = color.RGBA{133, 193, 85, 220}
	cellPartialColor  = color.RGBA{255, 214, 102, 230}
	cellFullColor     = color.RGBA{255, 182, 193, 255}
	cellTextColor     = color.RGBA{20, 24, 28, 230}
	cellFullTextColor = color.RGBA{120, 40, 50, 255}
	cellMineColor     = color.RGBA{52, 101, 164, 255}
)

// Порядок и подписи дней. basicfont рисует только ASCII.
var dayOrder = []struct {
	name  string
	label string
}{
	{"월요일", "MON"},
	{"화요일", "TUE"},
	{"수요일", "WED"},
	{"목요일", "THU"},
	{"금요일", "FRI"},
	{"토요일", "SAT"},
	{"일요일", "SUN"},
}

// board раскладка слотов по сетке день x пара
type board struct {
	days    []string
	periods []int
	cells   map[string]map[int]*model.ScheduleWithCount
}

// ScheduleBoard рисует PNG с загрузкой очных слотов: колонки дни, строки пары
func ScheduleBoard(title string, schedules []*model.ScheduleWithCount) ([]byte, error) {
	b := layout(schedules)

	cols := max(len(b.days), 1)
	rows := max(len(b.periods), 1)
	width := leftLabelsWidth + cols*cellWidth + cellPadding
	height := headerHeight + rows*cellHeight + legendHeight

	dc := gg.NewContext(width, height)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(bgColor)
	dc.Clear()

	drawHeader(dc, title, width)
	drawGrid(dc, b)
	drawLegend(dc, height)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode board: %w", err)
	}
	return buf.Bytes(), nil
}

func layout(schedules []*model.ScheduleWithCount) board {
	b := board{cells: make(map[string]map[int]*model.ScheduleWithCount)}
	seenPeriod := make(map[int]bool)

	for _, s := range schedules {
		if s == nil {
			continue
		}
		if _, ok := b.cells[s.DayOfWeek]; !ok {
			b.cells[s.DayOfWeek] = make(map[int]*model.ScheduleWithCount)
			b.days = append(b.days, s.DayOfWeek)
		}
		b.cells[s.DayOfWeek][s.PeriodNumber] = s
		if !seenPeriod[s.PeriodNumber] {
			seenPeriod[s.PeriodNumber] = true
			b.periods = append(b.periods, s.PeriodNumber)
		}
	}

	sort.SliceStable(b.days, func(i, j int) bool {
		return dayRank(b.days[i]) < dayRank(b.days[j])
	})
	sort.Ints(b.periods)
	return b
}

// dayRank позиция дня в неделе, неизвестные дни в конце в порядке появления
func dayRank(day string) int {
	for i, d := range dayOrder {
		if d.name == day {
			return i
		}
	}
	return len(dayOrder)
}

// DayLabel ASCII-подпись дня для картинки
func DayLabel(day string) string {
	for _, d := range dayOrder {
		if d.name == day {
			return d.label
		}
	}
	var ascii []rune
	for _, r := range day {
		if r < 128 {
			ascii = append(ascii, r)
		}
	}
	if len(ascii) == 0 {
		return "?"
	}
	return string(ascii)
}

func drawHeader(dc *gg.Context, title string, width int) {
	dc.SetColor(textColor)
	dc.DrawStringAnchored(title, float64(width)/2, headerHeight/3, 0.5, 0.5)
}

func drawGrid(dc *gg.Context, b board) {
	top := float64(headerHeight) - 10

	for i, day := range b.days {
		x := float64(leftLabelsWidth + i*cellWidth)
		dc.SetColor(labelColor)
		dc.DrawStringAnchored(DayLabel(day), x+cellWidth/2, top, 0.5, 0)
	}

	for row, period := range b.periods {
		y := float64(headerHeight + row*cellHeight)

		dc.SetColor(labelColor)
		dc.DrawStringAnchored(fmt.Sprintf("P%d", period), leftLabelsWidth/2, y+cellHeight/2, 0.5, 0.5)

		dc.SetColor(gridLineColor)
		dc.SetLineWidth(1)
		dc.DrawLine(leftLabelsWidth, y, float64(leftLabelsWidth+len(b.days)*cellWidth), y)
		dc.Stroke()

		for col, day := range b.days {
			s, ok := b.cells[day][period]
			if !ok {
				continue
			}
			drawCell(dc, float64(leftLabelsWidth+col*cellWidth), y, s)
		}
	}
}

func drawCell(dc *gg.Context, x, y float64, s *model.ScheduleWithCount) {
	w := float64(cellWidth - 2*cellPadding)
	h := float64(cellHeight - 2*cellPadding)
	x += cellPadding
	y += cellPadding

	// Тень
	dc.SetColor(cellShadowColor)
	dc.DrawRoundedRectangle(x+shadowOffset, y+shadowOffset, w, h, cellBorderRadius)
	dc.Fill()

	fill := CellColor(s)
	dc.SetColor(fill)
	dc.DrawRoundedRectangle(x, y, w, h, cellBorderRadius)
	dc.Fill()

	// Рамка, у своей записи толще и другого цвета
	if s.IsReservedByUser {
		dc.SetColor(cellMineColor)
		dc.SetLineWidth(3)
	} else {
		dc.SetColor(darkenColor(fill, 0.8))
		dc.SetLineWidth(1)
	}
	dc.DrawRoundedRectangle(x, y, w, h, cellBorderRadius)
	dc.Stroke()

	txt := cellTextColor
	if s.IsFull() {
		txt = cellFullTextColor
	}
	dc.SetColor(txt)
	dc.DrawStringAnchored(fmt.Sprintf("%d/%d", s.CurrentCount, s.Capacity), x+w/2, y+h/2, 0.5, 0.5)
}

// CellColor цвет ячейки по заполненности слота
func CellColor(s *model.ScheduleWithCount) color.RGBA {
	switch {
	case s.IsFull():
		return cellFullColor
	case s.CurrentCount > 0:
		return cellPartialColor
	default:
		return cellFreeColor
	}
}

func drawLegend(dc *gg.Context, height int) {
	items := []struct {
		label string
		clr   color.Color
	}{
		{"free", cellFreeColor},
		{"partly taken", cellPartialColor},
		{"full", cellFullColor},
		{"mine", cellMineColor},
	}

	boxW, boxH := 18.0, 12.0
	x := float64(leftLabelsWidth)
	y := float64(height) - legendHeight/2 - boxH/2

	for _, item := range items {
		dc.SetColor(item.clr)
		dc.DrawRoundedRectangle(x, y, boxW, boxH, 3)
		dc.Fill()

		dc.SetColor(textColor)
		dc.DrawStringAnchored(item.label, x+boxW+6, y+boxH/2, 0, 0.35)
		w, _ := dc.MeasureString(item.label)
		x += boxW + 6 + w + 20
	}
}

// darkenColor затемняет цвет на указанный множитель
func darkenColor(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}
