package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/taigrr/wirecube/pkg/render"
	"github.com/taigrr/wirecube/pkg/scene"
)

// runViewer draws the scene into the terminal until the user quits.
func runViewer(sc *scene.Scene, pal scene.Palette, fps int) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// mu guards sc and the framebuffer, shared with the event goroutine.
	var mu sync.Mutex
	fb := render.NewFramebuffer(render.TerminalSize(width, height))
	wf := render.NewWireframe(fb)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	go func() {
		for ev := range term.Events() {
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				mu.Lock()
				width, height = ev.Width, ev.Height
				term.Erase()
				term.Resize(width, height)
				fb = render.NewFramebuffer(render.TerminalSize(width, height))
				wf = render.NewWireframe(fb)
				mu.Unlock()

			case uv.KeyPressEvent:
				mu.Lock()
				quit := handleKey(sc, ev)
				mu.Unlock()
				if quit {
					cancel()
				}
			}
		}
	}()

	targetDuration := time.Second / time.Duration(fps)

	cleanup := func() {
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}

	for {
		select {
		case <-ctx.Done():
			cleanup()
			return nil
		default:
		}

		now := time.Now()

		mu.Lock()
		sc.Update(1 / float64(fps))
		err := sc.Draw(wf, pal)
		if err == nil {
			term.Draw(fb)
			err = term.Display()
		}
		mu.Unlock()
		if err != nil {
			cleanup()
			return fmt.Errorf("draw frame: %w", err)
		}

		elapsed := time.Since(now)
		if elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}

// handleKey applies a key binding to sc and reports whether the viewer
// should quit.
func handleKey(sc *scene.Scene, ev uv.KeyPressEvent) bool {
	switch {
	case ev.MatchString("escape", "ctrl+c", "q"):
		return true
	case ev.MatchString("1"):
		sc.SetPerspective(false)
	case ev.MatchString("2"):
		sc.SetPerspective(true)
	case ev.MatchString("a", "A", "shift+a"):
		sc.ToggleAutoSpin()
	}
	return false
}
