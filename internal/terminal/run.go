/*
 * Copyright (C) 2023 by Jason Figge
 */

package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"maze3d/internal/game"
	"maze3d/internal/surface"
)

type action int

const (
	actionNone action = iota
	actionQuit
	actionMute
)

// keyInput folds one key press into in. Terminals report no key releases, so
// movement keys act for a single frame per press or auto-repeat.
func keyInput(ev *tcell.EventKey, in *game.Input, state game.State) action {
	switch ev.Key() {
	case tcell.KeyUp:
		in.Forward = true
	case tcell.KeyDown:
		in.Backward = true
	case tcell.KeyLeft:
		in.TurnLeft = true
	case tcell.KeyRight:
		in.TurnRight = true
	case tcell.KeyTab:
		in.ToggleOverhead = true
	case tcell.KeyEscape:
		if state == game.Menu {
			return actionQuit
		}
		in.Back = true
	case tcell.KeyCtrlC:
		return actionQuit
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w':
			in.Forward = true
		case 's':
			in.Backward = true
		case 'a':
			in.TurnLeft = true
		case 'd':
			in.TurnRight = true
		case 'A':
			in.StrafeLeft = true
		case 'D':
			in.StrafeRight = true
		case ' ':
			in.Start = true
		case 'm':
			return actionMute
		case 'q':
			return actionQuit
		}
	}
	return actionNone
}

// Run drives session on an initialised screen until the player quits.
func Run(screen tcell.Screen, session *game.Session, sf *surface.Surface, fps int, onMute func()) error {
	if fps <= 0 {
		fps = 30
	}
	display := New(screen)

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	var in game.Input
	last := time.Now()
	for {
		select {
		case ev := <-events:
			switch e := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				switch keyInput(e, &in, session.State) {
				case actionQuit:
					return nil
				case actionMute:
					if onMute != nil {
						onMute()
					}
				}
			}
		case now := <-ticker.C:
			display.SetStatus(session.Status())
			if err := session.Frame(sf, display, in, now.Sub(last)); err != nil {
				return err
			}
			last = now
			in = game.Input{}
		}
	}
}
