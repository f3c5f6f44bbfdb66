package main

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/ugaemi/facepong-server/internal/game"
	"github.com/ugaemi/facepong-server/internal/session"
)

const (
	paddleRune = '█'
	ballRune   = '●'
	dashRune   = '─'
)

// screenViewer draws session frames on a terminal.
type screenViewer struct {
	screen tcell.Screen
	sound  *toneBank

	mu      sync.Mutex
	phase   session.PhaseEvent
	calib   session.Calibration
	message string
}

func newScreenViewer(screen tcell.Screen, sound *toneBank) *screenViewer {
	return &screenViewer{screen: screen, sound: sound}
}

func (v *screenViewer) Render(f game.Frame) {
	if f.Events.PlayerHit {
		v.sound.Play(tonePlayerHit)
	}
	if f.Events.AIHit {
		v.sound.Play(toneAIHit)
	}
	if f.Events.Scorer != game.SideNone {
		v.sound.Play(toneScore)
	}
	v.draw(f)
}

func (v *screenViewer) PhaseChanged(ev session.PhaseEvent) {
	v.mu.Lock()
	v.phase = ev
	v.mu.Unlock()
}

// SetCalibration updates the window shown in the status line.
func (v *screenViewer) SetCalibration(c session.Calibration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.calib = c
}

// SetMessage shows a transient note in the status line.
func (v *screenViewer) SetMessage(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.message = msg
}

// draw paints one frame. The last terminal row is the status line.
func (v *screenViewer) draw(f game.Frame) {
	s := v.screen
	cols, rows := s.Size()
	fieldRows := rows - 1
	if cols <= 0 || fieldRows <= 0 {
		return
	}
	sx := func(x float64) int { return clampCell(int(x/f.Width*float64(cols)), cols) }
	sy := func(y float64) int { return clampCell(int(y/f.Height*float64(fieldRows)), fieldRows) }

	bg := tcell.StyleDefault.Background(hexColor(f.Background))
	s.Fill(' ', bg)

	divider := bg.Foreground(hexColor(f.Divider.Color))
	period := f.Divider.Dash[0] + f.Divider.Dash[1]
	dy := sy(f.Divider.Y)
	for c := 0; c < cols; c++ {
		x := (float64(c) + 0.5) / float64(cols) * f.Width
		if period <= 0 || math.Mod(x, period) < f.Divider.Dash[0] {
			s.SetContent(c, dy, dashRune, nil, divider)
		}
	}

	for _, p := range []game.PaddleSprite{f.Player, f.AI} {
		style := bg.Foreground(hexColor(p.Color))
		x0, x1 := sx(p.X), sx(p.X+p.Width)
		y0, y1 := sy(p.Y), sy(p.Y+p.Height)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				s.SetContent(x, y, paddleRune, nil, style)
			}
		}
	}

	s.SetContent(sx(f.Ball.X), sy(f.Ball.Y), ballRune, nil, bg.Foreground(hexColor(f.Ball.Color)))

	score := fmt.Sprintf(" Player %d : %d AI ", f.Score.Player, f.Score.AI)
	drawText(s, 0, 0, score, bg.Foreground(tcell.ColorWhite).Bold(true))

	v.mu.Lock()
	status := v.statusLine(f)
	v.mu.Unlock()
	drawText(s, 0, rows-1, padRight(status, cols), tcell.StyleDefault.Reverse(true))

	s.Show()
}

// statusLine describes the phase and controls. Caller must hold v.mu.
func (v *screenViewer) statusLine(f game.Frame) string {
	var parts []string
	switch f.Phase {
	case game.PhaseLoading:
		parts = append(parts, "loading camera...")
	case game.PhaseMenu:
		parts = append(parts, "SPACE to start")
	case game.PhasePlaying:
		parts = append(parts, "←/→ move  p pause")
	case game.PhasePaused:
		parts = append(parts, "PAUSED  p resume")
	case game.PhaseGameOver:
		parts = append(parts, f.Winner.String()+" wins!  SPACE to play again")
	}
	if v.phase.Status != "" && f.Phase != game.PhaseGameOver {
		parts = append(parts, v.phase.Status)
	}
	parts = append(parts, fmt.Sprintf("window %.2f-%.2f [ ]", v.calib.Min, v.calib.Max))
	if v.message != "" {
		parts = append(parts, v.message)
	}
	parts = append(parts, "c camera  q quit")
	return " " + strings.Join(parts, " | ")
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

func padRight(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

func clampCell(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// hexColor parses "#rgb" or "#rrggbb".
func hexColor(s string) tcell.Color {
	if len(s) == 4 && s[0] == '#' {
		s = string([]byte{'#', s[1], s[1], s[2], s[2], s[3], s[3]})
	}
	return tcell.GetColor(s)
}
