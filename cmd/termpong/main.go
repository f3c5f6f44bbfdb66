// Command termpong plays face pong in a terminal. A keyboard-driven virtual
// face stands in for the webcam.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"github.com/ugaemi/facepong-server/internal/config"
	"github.com/ugaemi/facepong-server/internal/game"
	"github.com/ugaemi/facepong-server/internal/session"
	"github.com/ugaemi/facepong-server/internal/tracking"
)

const calibrationStep = 0.02

var errQuit = errors.New("quit")

func main() {
	if err := run(); err != nil && !errors.Is(err, errQuit) {
		fmt.Fprintf(os.Stderr, "termpong: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()
	closeLog, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	settings, err := config.LoadTuning(cfg.TuningFile)
	if err != nil {
		return err
	}

	sess, err := session.New("LOCAL", settings)
	if err != nil {
		return err
	}
	defer sess.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	sound, err := newToneBank()
	if err != nil {
		slog.Warn("audio disabled", "error", err)
	}
	defer sound.Close()

	viewer := newScreenViewer(screen, sound)
	viewer.SetCalibration(sess.Calibration())
	sess.Attach("terminal", viewer)

	oracle := newKeyboardOracle()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return sample(gctx, sess, oracle, settings)
	})
	g.Go(func() error {
		return handleInput(gctx, screen, sess, viewer, oracle)
	})

	if err := sess.MarkReady(); err != nil {
		return err
	}
	viewer.draw(sess.Frame())

	return g.Wait()
}

// sample feeds the virtual camera into the session until ctx ends. Losing
// the camera is reported to the match and sampling resumes once it returns.
func sample(ctx context.Context, sess *session.Session, oracle *keyboardOracle, s game.Settings) error {
	sampler := tracking.NewSampler(oracle, s.SampleInterval(), func(d tracking.Detection) {
		sess.ApplyDetection(d)
	})

	for {
		err := sampler.Run(ctx)
		if ctx.Err() != nil {
			return nil
		}
		if !tracking.Fatal(err) {
			return err
		}

		sess.ReportFailure("Please enable camera access")
		select {
		case <-ctx.Done():
			return nil
		case <-oracle.Restored():
		}
		if err := sess.MarkReady(); err != nil {
			return err
		}
	}
}

// handleInput turns key presses into session commands. It returns errQuit
// when the player quits.
func handleInput(ctx context.Context, screen tcell.Screen, sess *session.Session, viewer *screenViewer, oracle *keyboardOracle) error {
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				viewer.draw(sess.Frame())
			case *tcell.EventKey:
				if quit := handleKey(ev, sess, viewer, oracle); quit {
					return errQuit
				}
				if sess.Phase() != game.PhasePlaying {
					viewer.draw(sess.Frame())
				}
			}
		}
	}
}

func handleKey(ev *tcell.EventKey, sess *session.Session, viewer *screenViewer, oracle *keyboardOracle) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		oracle.MovePaddle(-1)
		return false
	case tcell.KeyRight:
		oracle.MovePaddle(1)
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	viewer.SetMessage("")
	switch ev.Rune() {
	case 'q':
		return true
	case ' ':
		if err := sess.Start(); err != nil {
			viewer.SetMessage(err.Error())
		}
	case 'p':
		if _, err := sess.TogglePause(); err != nil {
			viewer.SetMessage(err.Error())
		}
	case 'c':
		if oracle.ToggleCamera() {
			viewer.SetMessage("camera on")
		} else {
			viewer.SetMessage("camera off")
		}
	case '[', ']':
		delta := calibrationStep
		if ev.Rune() == ']' {
			delta = -calibrationStep
		}
		cal := sess.Calibration()
		lo, hi := adjustWindow(cal.Min, cal.Max, delta)
		if err := sess.Calibrate(lo, hi); err != nil {
			viewer.SetMessage("window too narrow")
		}
		viewer.SetCalibration(sess.Calibration())
	}
	return false
}

// setupLogger sends logs to LOG_FILE, or discards them, so they never draw
// over the game screen.
func setupLogger(cfg *config.Config) (func(), error) {
	opts := &slog.HandlerOptions{}
	switch cfg.LogLevel {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if path := os.Getenv("LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		w = f
		closeFn = func() { f.Close() }
	}

	var h slog.Handler
	switch cfg.LogFormat {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
	return closeFn, nil
}
