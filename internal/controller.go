/*
 * Copyright (C) 2023 by Jason Figge
 */

package internal

import (
	"fmt"
	"log"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"maze3d/internal/game"
	"maze3d/internal/surface"
	"maze3d/internal/window"
)

// left or right shift
const shiftMask = 0x3

// Controller drives a game session from an SDL window.
type Controller struct {
	canvas    *window.Canvas
	session   *game.Session
	surface   *surface.Surface
	sink      *window.TextureSink
	width     int32
	height    int32
	shiftDown bool
	pending   game.Input
	last      time.Time
	OnMute    func()
}

func NewController(session *game.Session, width, height int32) *Controller {
	return &Controller{
		session: session,
		surface: surface.New(int(width), int(height), surface.Black),
		width:   width,
		height:  height,
	}
}

func (c *Controller) Init(canvas *window.Canvas) {
	c.canvas = canvas
	sink, err := window.NewTextureSink(canvas.Renderer(), c.width, c.height)
	if err != nil {
		log.Printf("%v", err)
		canvas.Quit()
		return
	}
	c.sink = sink
	c.last = time.Now()
	canvas.AddDestroyer(sink.Destroy)
}

func (c *Controller) Events(event sdl.Event) bool {
	if e, ok := event.(*sdl.KeyboardEvent); ok {
		return c.keyboardEvent(e)
	}
	return false
}

func (c *Controller) keyboardEvent(event *sdl.KeyboardEvent) bool {
	c.shiftDown = event.Keysym.Mod&shiftMask != 0
	if event.State != sdl.PRESSED || event.Repeat != 0 {
		return false
	}
	switch event.Keysym.Scancode {
	case sdl.SCANCODE_Q:
		c.canvas.Quit()
	case sdl.SCANCODE_ESCAPE:
		if c.session.State == game.Menu {
			c.canvas.Quit()
		}
		c.pending.Back = true
	case sdl.SCANCODE_SPACE:
		c.pending.Start = true
	case sdl.SCANCODE_TAB:
		c.pending.ToggleOverhead = true
	case sdl.SCANCODE_M:
		if c.OnMute != nil {
			c.OnMute()
		}
	default:
		return false
	}
	return true
}

func (c *Controller) OnUpdate() {
	in := c.pending
	c.pending = game.Input{}

	codes := sdl.GetKeyboardState()
	in.Forward = codes[sdl.SCANCODE_W] == 1 || codes[sdl.SCANCODE_UP] == 1
	in.Backward = codes[sdl.SCANCODE_S] == 1 || codes[sdl.SCANCODE_DOWN] == 1
	left := codes[sdl.SCANCODE_A] == 1 || codes[sdl.SCANCODE_LEFT] == 1
	right := codes[sdl.SCANCODE_D] == 1 || codes[sdl.SCANCODE_RIGHT] == 1
	if c.shiftDown {
		in.StrafeLeft, in.StrafeRight = left, right
	} else {
		in.TurnLeft, in.TurnRight = left, right
	}

	now := time.Now()
	c.session.Update(in, now.Sub(c.last))
	c.last = now
}

func (c *Controller) OnDraw(renderer *sdl.Renderer) {
	if c.sink == nil {
		return
	}
	window.ErrorTrap(renderer.Clear())
	c.session.Draw(c.surface)
	window.ErrorTrap(c.surface.Present(c.sink))
	c.canvas.Window().SetTitle(fmt.Sprintf("%s  FPS: %.0f", c.session.Status(), c.canvas.FrameRate()))
}
